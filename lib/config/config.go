// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/scatterpix/scatterpix/lib/chunks"
	"github.com/scatterpix/scatterpix/lib/passwd"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "SCATTERPIX_CONFIG"

// Log formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" json:"log"`
	Disperse DisperseConfig `yaml:"disperse" json:"disperse"`
	Chunks   ChunksConfig   `yaml:"chunks" json:"chunks"`

	// Passwd holds the argon2id parameters for new hashes and the
	// reference point for rehash warnings.
	Passwd passwd.Params `yaml:"passwd" json:"passwd"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Format is auto (text on a terminal, JSON otherwise), text, or
	// json.
	Format string `yaml:"format" json:"format"`

	// Level is debug, info, warn, or error.
	Level string `yaml:"level" json:"level"`
}

// DisperseConfig configures encode and decode.
type DisperseConfig struct {
	// Sidecar writes a CBOR sidecar with every dispersed file.
	Sidecar bool `yaml:"sidecar" json:"sidecar"`

	// OutputDirectory receives outputs. Empty means next to the input.
	OutputDirectory string `yaml:"output_dir" json:"output_dir"`
}

// ChunksConfig configures chunk assembly and splitting.
type ChunksConfig struct {
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// Output is the default assembly output path.
	Output string `yaml:"output" json:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Format: FormatAuto,
			Level:  "info",
		},
		Chunks: ChunksConfig{
			ChunkSize: chunks.DefaultChunkSize,
			Output:    "reassembled.out",
		},
		Passwd: passwd.DefaultParams(),
	}
}

// Resolve returns the config file path from flagValue or the
// environment, or "" when neither is set.
func Resolve(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvironmentVariable)
}

// Load returns the configuration named by path, or Default when path
// is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path, merges it over Default, expands path variables,
// and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.decode(path, data); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err := decoder.Decode(c)
		// An empty YAML document leaves the defaults in place.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

func (c *Config) expandVariables() {
	c.Disperse.OutputDirectory = expandVars(c.Disperse.OutputDirectory)
	c.Chunks.Output = expandVars(c.Chunks.Output)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} and ${VAR:-default}. An unset or empty
// variable without a default expands to "".
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Log.Format {
	case FormatAuto, FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be one of auto, text, json", c.Log.Format))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Chunks.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunks.chunk_size must be positive, got %d", c.Chunks.ChunkSize))
	}
	if c.Chunks.Output == "" {
		errs = append(errs, errors.New("chunks.output is required"))
	}

	if err := c.Passwd.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level %q must be one of debug, info, warn, error", name)
}
