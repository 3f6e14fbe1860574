// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chunks.ChunkSize != 256*1024 {
		t.Errorf("ChunkSize = %d, want %d", cfg.Chunks.ChunkSize, 256*1024)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, "scatterpix.yaml", `
log:
  format: json
  level: debug
disperse:
  sidecar: true
chunks:
  chunk_size: 1024
passwd:
  time: 4
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Log.Format != FormatJSON || cfg.Log.Level != "debug" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Disperse.Sidecar {
		t.Error("Disperse.Sidecar = false, want true")
	}
	if cfg.Chunks.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", cfg.Chunks.ChunkSize)
	}
	if cfg.Chunks.Output != "reassembled.out" {
		t.Errorf("Chunks.Output = %q, want the default", cfg.Chunks.Output)
	}
	if cfg.Passwd.Time != 4 || cfg.Passwd.MemoryKiB != 65536 {
		t.Errorf("Passwd = %+v, want time 4 over default memory", cfg.Passwd)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "scatterpix.jsonc", `{
  // comments and trailing commas are allowed
  "disperse": {"output_dir": "/tmp/out",},
  "chunks": {"chunk_size": 4096},
}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Disperse.OutputDirectory != "/tmp/out" {
		t.Errorf("OutputDirectory = %q", cfg.Disperse.OutputDirectory)
	}
	if cfg.Chunks.ChunkSize != 4096 {
		t.Errorf("ChunkSize = %d", cfg.Chunks.ChunkSize)
	}
}

func TestLoadFile_EmptyYAML(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Log.Format != FormatAuto {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, FormatAuto)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	if _, err := LoadFile(writeConfig(t, "typo.yaml", "chunks:\n  chunksize: 5\n")); err == nil {
		t.Error("LoadFile accepted an unknown key")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile of a missing file succeeded")
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("SCATTERPIX_TEST_OUT", "/data/out")
	path := writeConfig(t, "vars.yaml", `
disperse:
  output_dir: ${SCATTERPIX_TEST_OUT}
chunks:
  output: ${SCATTERPIX_TEST_UNSET:-joined.bin}
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Disperse.OutputDirectory != "/data/out" {
		t.Errorf("OutputDirectory = %q, want /data/out", cfg.Disperse.OutputDirectory)
	}
	if cfg.Chunks.Output != "joined.bin" {
		t.Errorf("Chunks.Output = %q, want joined.bin", cfg.Chunks.Output)
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "xml"
	cfg.Chunks.ChunkSize = 0
	cfg.Passwd.Time = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate succeeded")
	}
	for _, fragment := range []string{"log.format", "chunk_size", "time"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q does not mention %s", err, fragment)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvironmentVariable, "/etc/scatterpix.yaml")
	if got := Resolve("/flag.yaml"); got != "/flag.yaml" {
		t.Errorf("Resolve(flag) = %q", got)
	}
	if got := Resolve(""); got != "/etc/scatterpix.yaml" {
		t.Errorf("Resolve(\"\") = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) succeeded")
	}
}
