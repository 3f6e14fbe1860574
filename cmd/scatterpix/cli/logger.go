// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/scatterpix/scatterpix/lib/config"
)

// NewCommandLogger builds the logger for a command run. With format
// auto it writes text when stderr is a terminal and JSON otherwise, so
// scripted runs get machine-readable records. Invalid levels fall back
// to info; the config package rejects them at load time.
//
// Commands scope it with With:
//
//	logger := cli.NewCommandLogger(cfg.Log).With("command", "encode", "input", path)
func NewCommandLogger(options config.LogConfig) *slog.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), options)
}

func newLogger(w io.Writer, terminal bool, options config.LogConfig) *slog.Logger {
	level, err := config.ParseLevel(options.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	handlerOptions := &slog.HandlerOptions{Level: level}

	text := terminal
	switch options.Format {
	case config.FormatText:
		text = true
	case config.FormatJSON:
		text = false
	}
	if text {
		return slog.New(slog.NewTextHandler(w, handlerOptions))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOptions))
}
