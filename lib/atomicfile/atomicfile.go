// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write atomically replaces path with the bytes produced by fill. fill
// receives a buffered writer over the temporary file; its error aborts
// the write. The file is created with the given permissions.
func Write(path string, perm os.FileMode, fill func(io.Writer) error) error {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	temporaryPath := temporary.Name()

	success := false
	defer func() {
		if !success {
			temporary.Close()
			os.Remove(temporaryPath)
		}
	}()

	writer := bufio.NewWriter(temporary)
	if err := fill(writer); err != nil {
		return err
	}
	// Flush, sync, chmod, close -- in that order.
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", temporaryPath, err)
	}
	if err := temporary.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", temporaryPath, err)
	}
	if err := temporary.Chmod(perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporaryPath, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming %s into place: %w", path, err)
	}
	success = true

	// Sync the parent directory so the rename survives a crash.
	if parent, err := os.Open(directory); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}

// WriteBytes atomically replaces path with data.
func WriteBytes(path string, perm os.FileMode, data []byte) error {
	return Write(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
