// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/scatterpix/scatterpix/lib/config"
)

func TestNewLogger_AutoFormat(t *testing.T) {
	var buffer bytes.Buffer
	newLogger(&buffer, false, config.LogConfig{Format: config.FormatAuto}).Info("hello", "width", 2)

	var record map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &record); err != nil {
		t.Fatalf("non-terminal output is not JSON: %v (%q)", err, buffer.String())
	}
	if record["msg"] != "hello" || record["width"] != float64(2) {
		t.Errorf("record = %v", record)
	}

	buffer.Reset()
	newLogger(&buffer, true, config.LogConfig{Format: config.FormatAuto}).Info("hello")
	if !strings.Contains(buffer.String(), "msg=hello") {
		t.Errorf("terminal output = %q, want text", buffer.String())
	}
}

func TestNewLogger_ForcedFormat(t *testing.T) {
	var buffer bytes.Buffer
	newLogger(&buffer, true, config.LogConfig{Format: config.FormatJSON}).Info("forced")
	if !strings.HasPrefix(buffer.String(), "{") {
		t.Errorf("output = %q, want JSON", buffer.String())
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buffer bytes.Buffer
	logger := newLogger(&buffer, true, config.LogConfig{Format: config.FormatText, Level: "warn"})
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buffer.String(), "quiet") || !strings.Contains(buffer.String(), "loud") {
		t.Errorf("output = %q, want only the warning", buffer.String())
	}
}
