// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package passwd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/scatterpix/scatterpix/cmd/scatterpix/cli"
	argon "github.com/scatterpix/scatterpix/lib/passwd"
	"github.com/scatterpix/scatterpix/lib/secret"
)

// Exit codes of "passwd verify".
const (
	exitMismatch  = 1
	exitUsage     = 2
	exitMalformed = 3
)

// Command returns the "passwd" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "passwd",
		Summary: "Hash and verify passwords with argon2id",
		Subcommands: []*cli.Command{
			hashCommand(),
			verifyCommand(),
		},
	}
}

type hashParams struct {
	cli.ConfigFlag
}

func hashCommand() *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Hash a password read from stdin",
		Description: `Read a password from stdin, strip surrounding whitespace, and
print its argon2id hash in PHC form. On a terminal the password is
prompted for without echo.

Cost parameters come from the passwd section of the configuration
(default t=3, m=65536 KiB, p=1).`,
		Usage:  "scatterpix passwd hash < password.txt",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			return runHash(&params, args, os.Stdin, os.Stdout, os.Stderr)
		},
	}
}

func runHash(params *hashParams, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("hash takes no arguments, got %d", len(args))
	}
	cfg, logger, err := params.Setup("passwd/hash")
	if err != nil {
		return err
	}

	password, err := readPassword(stdin, stderr)
	if err != nil {
		return err
	}
	defer password.Close()
	if !password.Locked() {
		logger.Debug("password buffer could not be locked into memory")
	}

	hash, err := argon.Hash(password, cfg.Passwd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}

type verifyParams struct {
	cli.ConfigFlag
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a password from stdin against a stored hash",
		Description: `Read a password from stdin and check it against <hash>.

Exit status is 0 when the password matches, 1 when it does not, 2 on
a usage error, and 3 when <hash> is not a valid argon2id PHC string.
A match against a hash made with cost parameters other than the
configured ones prints a rehash warning to stderr.`,
		Usage: "scatterpix passwd verify '<hash>' < password.txt",
		Examples: []cli.Example{
			{
				Description: "Gate a script on a password",
				Command:     `scatterpix passwd verify "$(cat stored.hash)" < password.txt && echo ok`,
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			return runVerify(&params, args, os.Stdin, os.Stderr)
		},
	}
}

func runVerify(params *verifyParams, args []string, stdin io.Reader, stderr io.Writer) error {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: scatterpix passwd verify <stored-argon2-hash>")
		return &cli.ExitError{Code: exitUsage}
	}
	stored := args[0]

	cfg, _, err := params.Setup("passwd/verify")
	if err != nil {
		return err
	}

	// Reject a malformed hash before prompting for anything.
	if _, err := argon.Parse(stored); err != nil {
		fmt.Fprintf(stderr, "verification error: %v\n", err)
		return &cli.ExitError{Code: exitMalformed}
	}

	password, err := readPassword(stdin, stderr)
	if errors.Is(err, secret.ErrEmpty) {
		// An empty password matches no hash this tool produces.
		return &cli.ExitError{Code: exitMismatch}
	}
	if err != nil {
		return err
	}
	defer password.Close()

	switch err := argon.Verify(password, stored); {
	case errors.Is(err, argon.ErrMismatch):
		return &cli.ExitError{Code: exitMismatch}
	case errors.Is(err, argon.ErrMalformed):
		fmt.Fprintf(stderr, "verification error: %v\n", err)
		return &cli.ExitError{Code: exitMalformed}
	case err != nil:
		return err
	}

	if rehash, err := argon.NeedsRehash(stored, cfg.Passwd); err == nil && rehash {
		fmt.Fprintln(stderr, "warning: stored hash parameters are outdated, consider rehashing")
	}
	return nil
}

// readPassword prompts without echo when stdin is a terminal and
// otherwise reads all of stdin.
func readPassword(stdin io.Reader, stderr io.Writer) (*secret.Buffer, error) {
	file, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return secret.Read(stdin, secret.DefaultReadLimit)
	}

	fmt.Fprint(stderr, "Password: ")
	raw, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		secret.Zero(raw)
		return nil, fmt.Errorf("reading password: %w", err)
	}
	defer secret.Zero(raw)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, secret.ErrEmpty
	}
	return secret.NewFromBytes(trimmed)
}
