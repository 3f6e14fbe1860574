// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError asks main to exit with Code without printing an error
// line. The command has already reported the outcome itself, as
// `passwd verify` does for a wrong password.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the requested process exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}
