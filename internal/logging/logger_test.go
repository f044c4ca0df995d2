// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// captureGlobal swaps the global logger for one writing to a buffer and
// restores both logger and level when the test ends.
func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	captureGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})

	Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	captureGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("console message")

	output := buf.String()
	if !strings.Contains(output, "console message") {
		t.Errorf("expected console output to contain message, got: %s", output)
	}
	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("expected non-JSON console output, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogLevels(t *testing.T) {
	buf := captureGlobal(t)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		name    string
		logFunc func()
		level   string
	}{
		{"Debug", func() { Debug().Msg("debug msg") }, "debug"},
		{"Info", func() { Info().Msg("info msg") }, "info"},
		{"Warn", func() { Warn().Msg("warn msg") }, "warn"},
		{"Error", func() { Error().Msg("error msg") }, "error"},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.logFunc()
		if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
			t.Errorf("%s: expected level '%s' in output: %s", tt.name, tt.level, buf.String())
		}
	}
}

func TestErr(t *testing.T) {
	buf := captureGlobal(t)

	Err(errors.New("upstream unavailable")).Msg("fetch failed")

	output := buf.String()
	if !strings.Contains(output, "upstream unavailable") {
		t.Errorf("expected error text in output: %s", output)
	}
	if !strings.Contains(output, `"level":"error"`) {
		t.Errorf("expected error level in output: %s", output)
	}
}

func TestSetLevelString(t *testing.T) {
	captureGlobal(t)

	SetLevelString("warn")
	if IsLevelEnabled(zerolog.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !IsLevelEnabled(zerolog.ErrorLevel) {
		t.Error("error should be enabled at warn level")
	}
}

func TestWithComponentAndInstance(t *testing.T) {
	buf := captureGlobal(t)

	logger := WithComponent("registry")
	logger.Info().Msg("component message")
	if !strings.Contains(buf.String(), `"component":"registry"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}

	buf.Reset()
	instLogger := WithInstance("kemono.su")
	instLogger.Info().Msg("instance message")
	if !strings.Contains(buf.String(), `"instance":"kemono.su"`) {
		t.Errorf("expected instance field, got: %s", buf.String())
	}
}
