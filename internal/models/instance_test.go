// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package models

import "testing"

func TestNormalizeInstanceURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare domain", "kemono.su", "kemono.su"},
		{"https prefix", "https://Foo.example", "Foo.example"},
		{"http prefix", "http://foo.example", "foo.example"},
		{"trailing slash", "https://foo.example/", "foo.example"},
		{"surrounding whitespace", "  foo.example ", "foo.example"},
		{"host with port", "http://127.0.0.1:8080", "127.0.0.1:8080"},
		{"only one prefix stripped", "https://http://foo", "http://foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeInstanceURL(tt.input); got != tt.want {
				t.Errorf("NormalizeInstanceURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultInstances(t *testing.T) {
	defaults := DefaultInstances()
	if len(defaults) != 2 {
		t.Fatalf("expected 2 default instances, got %d", len(defaults))
	}
	if defaults[0].Name != "Coomer" || defaults[0].URL != "coomer.su" {
		t.Errorf("unexpected first default: %+v", defaults[0])
	}
	if defaults[1].Name != "Kemono" || defaults[1].URL != "kemono.su" {
		t.Errorf("unexpected second default: %+v", defaults[1])
	}
	for _, inst := range defaults {
		if !inst.IsDefault {
			t.Errorf("%s should be marked default", inst.Name)
		}
	}

	// Mutating the returned slice must not leak into later calls.
	defaults[0].URL = "changed"
	if DefaultInstances()[0].URL != "coomer.su" {
		t.Error("DefaultInstances should return a fresh slice")
	}
}
