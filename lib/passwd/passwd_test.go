// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package passwd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/scatterpix/scatterpix/lib/secret"
)

// cheap keeps test derivations fast.
var cheap = Params{Time: 1, MemoryKiB: 64, Threads: 1, SaltLength: 16, KeyLength: 32}

func password(t *testing.T, text string) *secret.Buffer {
	t.Helper()
	buffer, err := secret.NewFromBytes([]byte(text))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	t.Cleanup(func() { buffer.Close() })
	return buffer
}

func TestHashVerify(t *testing.T) {
	hash, err := Hash(password(t, "correct horse"), cheap)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$") {
		t.Errorf("hash = %q, want the argon2id PHC prefix", hash)
	}

	if err := Verify(password(t, "correct horse"), hash); err != nil {
		t.Errorf("Verify(correct) = %v, want nil", err)
	}
	if err := Verify(password(t, "battery staple"), hash); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify(wrong) = %v, want ErrMismatch", err)
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	first, err := Hash(password(t, "same"), cheap)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash(password(t, "same"), cheap)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}

func TestHash_RejectsInvalidParams(t *testing.T) {
	invalid := cheap
	invalid.Time = 0
	if _, err := Hash(password(t, "x"), invalid); err == nil {
		t.Error("Hash with time 0 succeeded")
	}
}

func TestParse(t *testing.T) {
	encoded, err := Parse("$argon2id$v=19$m=65536,t=3,p=1$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Params{Time: 3, MemoryKiB: 65536, Threads: 1, SaltLength: 16, KeyLength: 32}
	if encoded.Params != want {
		t.Errorf("Params = %+v, want %+v", encoded.Params, want)
	}
	if string(encoded.Salt) != "somesaltsomesalt" {
		t.Errorf("Salt = %q", encoded.Salt)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=16$m=64,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=64,t=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=64,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=64,t=1,p=1,x=2$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$!!!$a2V5a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$",
	}
	for _, stored := range tests {
		if _, err := Parse(stored); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) = %v, want ErrMalformed", stored, err)
		}
	}
}

func TestVerify_Malformed(t *testing.T) {
	if err := Verify(password(t, "x"), "$argon2id$broken"); !errors.Is(err, ErrMalformed) {
		t.Errorf("Verify = %v, want ErrMalformed", err)
	}
}

func TestVerify_RejectsExcessiveCosts(t *testing.T) {
	// Both must fail in Parse, before argon2 allocates anything.
	for _, stored := range []string{
		"$argon2id$v=19$m=4294967295,t=1,p=1$c29tZXNhbHRzb21lc2FsdA$a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=64,t=4294967295,p=1$c29tZXNhbHRzb21lc2FsdA$a2V5a2V5a2V5a2V5",
	} {
		if err := Verify(password(t, "x"), stored); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) = %v, want ErrMalformed", stored, err)
		}
	}

	// The limits themselves are accepted.
	limit := fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=1$c29tZXNhbHRzb21lc2FsdA$a2V5a2V5a2V5a2V5", MaxMemoryKiB, MaxTime)
	if _, err := Parse(limit); err != nil {
		t.Errorf("Parse at the limits = %v, want nil", err)
	}
}

func TestParams_ValidateBounds(t *testing.T) {
	tooSlow := cheap
	tooSlow.Time = MaxTime + 1
	tooBig := cheap
	tooBig.MemoryKiB = MaxMemoryKiB + 1
	for _, params := range []Params{tooSlow, tooBig} {
		if err := params.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want an error", params)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := Hash(password(t, "pw"), cheap)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	stale, err := NeedsRehash(hash, cheap)
	if err != nil {
		t.Fatalf("NeedsRehash: %v", err)
	}
	if stale {
		t.Error("NeedsRehash with identical params = true")
	}

	stronger := cheap
	stronger.Time = 2
	stale, err = NeedsRehash(hash, stronger)
	if err != nil {
		t.Fatalf("NeedsRehash: %v", err)
	}
	if !stale {
		t.Error("NeedsRehash with a higher time cost = false")
	}
}

func TestDefaultParams(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams invalid: %v", err)
	}
}
