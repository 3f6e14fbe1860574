// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/scatterpix/scatterpix/lib/config"
)

// ConfigFlag adds --config and --log-level to a params struct by
// embedding.
type ConfigFlag struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $SCATTERPIX_CONFIG)"`
	LogLevel   string `json:"-" flag:"log-level" desc:"override the configured log level (debug, info, warn, error)"`
}

// Setup loads the configuration and builds the command logger, scoped
// with command=name.
func (f *ConfigFlag) Setup(name string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(config.Resolve(f.ConfigPath))
	if err != nil {
		return nil, nil, err
	}
	if f.LogLevel != "" {
		if _, err := config.ParseLevel(f.LogLevel); err != nil {
			return nil, nil, err
		}
		cfg.Log.Level = f.LogLevel
	}
	return cfg, NewCommandLogger(cfg.Log).With("command", name), nil
}
