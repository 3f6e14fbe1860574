// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package passwd

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/scatterpix/scatterpix/lib/secret"
)

// Algorithm is the PHC identifier for argon2id.
const Algorithm = "argon2id"

var (
	// ErrMismatch is returned by Verify when the password is wrong.
	ErrMismatch = errors.New("passwd: password does not match")

	// ErrMalformed is returned when a stored hash cannot be parsed.
	ErrMalformed = errors.New("passwd: malformed hash")
)

// Upper bounds on costs. Parameters come from stored hashes, which may
// be hostile: argon2 allocates MemoryKiB up front, so an unbounded m
// would let a crafted hash exhaust memory before verification fails.
const (
	MaxMemoryKiB = 4 * 1024 * 1024 // 4 GiB
	MaxTime      = 1024
)

// Params are argon2id cost parameters.
type Params struct {
	// Time is the number of passes over memory.
	Time uint32 `yaml:"time" json:"time"`

	// MemoryKiB is the memory cost in KiB.
	MemoryKiB uint32 `yaml:"memory_kib" json:"memory_kib"`

	Threads    uint8  `yaml:"threads" json:"threads"`
	SaltLength uint32 `yaml:"salt_length" json:"salt_length"`
	KeyLength  uint32 `yaml:"key_length" json:"key_length"`
}

// DefaultParams returns time 3, 64 MiB, one thread, a 16-byte salt, and
// a 32-byte key.
func DefaultParams() Params {
	return Params{
		Time:       3,
		MemoryKiB:  64 * 1024,
		Threads:    1,
		SaltLength: 16,
		KeyLength:  32,
	}
}

// Validate rejects parameters argon2 cannot use.
func (p Params) Validate() error {
	switch {
	case p.Time == 0:
		return errors.New("passwd: time must be at least 1")
	case p.Time > MaxTime:
		return fmt.Errorf("passwd: time %d exceeds %d", p.Time, MaxTime)
	case p.MemoryKiB > MaxMemoryKiB:
		return fmt.Errorf("passwd: memory_kib %d exceeds %d", p.MemoryKiB, MaxMemoryKiB)
	case p.Threads == 0:
		return errors.New("passwd: threads must be at least 1")
	case p.MemoryKiB < 8*uint32(p.Threads):
		return fmt.Errorf("passwd: memory_kib must be at least %d for %d threads", 8*uint32(p.Threads), p.Threads)
	case p.SaltLength < 8:
		return errors.New("passwd: salt_length must be at least 8")
	case p.KeyLength < 4:
		return errors.New("passwd: key_length must be at least 4")
	}
	return nil
}

// Encoded is a parsed PHC hash.
type Encoded struct {
	Version int
	Params  Params
	Salt    []byte
	Key     []byte
}

// String formats e as a PHC string.
func (e Encoded) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		Algorithm, e.Version,
		e.Params.MemoryKiB, e.Params.Time, e.Params.Threads,
		base64.RawStdEncoding.EncodeToString(e.Salt),
		base64.RawStdEncoding.EncodeToString(e.Key))
}

// Hash derives a new PHC hash for password with a random salt.
func Hash(password *secret.Buffer, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("passwd: generating salt: %w", err)
	}

	key := derive(password, salt, params)
	defer key.Close()

	return Encoded{
		Version: argon2.Version,
		Params:  params,
		Salt:    salt,
		Key:     key.Bytes(),
	}.String(), nil
}

// Verify checks password against a stored PHC hash. It returns nil on
// a match, ErrMismatch for a wrong password, and an error wrapping
// ErrMalformed when stored cannot be parsed.
func Verify(password *secret.Buffer, stored string) error {
	encoded, err := Parse(stored)
	if err != nil {
		return err
	}

	key := derive(password, encoded.Salt, encoded.Params)
	defer key.Close()

	if !key.Equal(encoded.Key) {
		return ErrMismatch
	}
	return nil
}

// NeedsRehash reports whether stored was produced with parameters
// other than current. Salt length is not compared: a longer salt than
// configured is not a weakness worth a rehash.
func NeedsRehash(stored string, current Params) (bool, error) {
	encoded, err := Parse(stored)
	if err != nil {
		return false, err
	}
	recorded := encoded.Params
	return encoded.Version != argon2.Version ||
		recorded.Time != current.Time ||
		recorded.MemoryKiB != current.MemoryKiB ||
		recorded.Threads != current.Threads ||
		recorded.KeyLength != current.KeyLength, nil
}

// Parse decodes a PHC argon2id string.
func Parse(stored string) (*Encoded, error) {
	// "$argon2id$v=19$m=..,t=..,p=..$salt$key" splits into six fields
	// with an empty first.
	fields := strings.Split(stored, "$")
	if len(fields) != 6 || fields[0] != "" {
		return nil, malformed("expected 5 '$'-separated fields")
	}
	if fields[1] != Algorithm {
		return nil, malformed(fmt.Sprintf("algorithm %q is not %s", fields[1], Algorithm))
	}

	version, ok := strings.CutPrefix(fields[2], "v=")
	if !ok {
		return nil, malformed("missing version")
	}
	encoded := &Encoded{}
	var err error
	if encoded.Version, err = strconv.Atoi(version); err != nil {
		return nil, malformed("invalid version")
	}
	if encoded.Version != argon2.Version {
		return nil, malformed(fmt.Sprintf("unsupported version %d", encoded.Version))
	}

	if err := parseParams(fields[3], &encoded.Params); err != nil {
		return nil, err
	}

	if encoded.Salt, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return nil, malformed("invalid salt encoding")
	}
	if encoded.Key, err = base64.RawStdEncoding.DecodeString(fields[5]); err != nil {
		return nil, malformed("invalid key encoding")
	}
	if len(encoded.Salt) == 0 || len(encoded.Key) == 0 {
		return nil, malformed("empty salt or key")
	}
	encoded.Params.SaltLength = uint32(len(encoded.Salt))
	encoded.Params.KeyLength = uint32(len(encoded.Key))
	return encoded, nil
}

func parseParams(text string, params *Params) error {
	seen := map[string]bool{}
	for _, pair := range strings.Split(text, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return malformed(fmt.Sprintf("parameter %q has no value", pair))
		}
		number, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return malformed(fmt.Sprintf("parameter %s: invalid value %q", name, value))
		}
		switch name {
		case "m":
			if number > MaxMemoryKiB {
				return malformed(fmt.Sprintf("memory %d KiB exceeds %d", number, MaxMemoryKiB))
			}
			params.MemoryKiB = uint32(number)
		case "t":
			if number > MaxTime {
				return malformed(fmt.Sprintf("time %d exceeds %d", number, MaxTime))
			}
			params.Time = uint32(number)
		case "p":
			if number > 255 {
				return malformed(fmt.Sprintf("parallelism %d exceeds 255", number))
			}
			params.Threads = uint8(number)
		default:
			return malformed(fmt.Sprintf("unknown parameter %q", name))
		}
		seen[name] = true
	}
	if !seen["m"] || !seen["t"] || !seen["p"] {
		return malformed("parameters must include m, t, and p")
	}
	if params.Time == 0 || params.Threads == 0 || params.MemoryKiB < 8*uint32(params.Threads) {
		return malformed("parameters out of range")
	}
	return nil
}

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformed, reason)
}

// derive runs argon2id into a secret buffer. The intermediate heap
// slice returned by argon2 is zeroed by NewFromBytes.
func derive(password *secret.Buffer, salt []byte, params Params) *secret.Buffer {
	key := argon2.IDKey(password.Bytes(), salt, params.Time, params.MemoryKiB, params.Threads, params.KeyLength)
	buffer, err := secret.NewFromBytes(key)
	if err != nil {
		// Only reachable if mmap fails for a few dozen bytes.
		panic(fmt.Sprintf("passwd: allocating key buffer: %v", err))
	}
	return buffer
}
