// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tomtom215/coomono/internal/models"
)

func openTestStore(t *testing.T) *InstanceStore {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(Config{}); err == nil {
		t.Error("Open without path or in-memory mode should fail")
	}
}

func TestInstanceStore_SaveAndList(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	for i := 0; i < 12; i++ {
		inst := models.Instance{Name: fmt.Sprintf("Mirror %d", i), URL: fmt.Sprintf("https://m%d.example/", i)}
		saved, err := s.SaveInstance(inst)
		if err != nil || !saved {
			t.Fatalf("SaveInstance(%d) = %v, %v", i, saved, err)
		}
	}

	saved, err := s.SaveInstance(models.Instance{Name: "dup", URL: "m3.example"})
	if err != nil || saved {
		t.Errorf("duplicate SaveInstance = %v, %v; want false, nil", saved, err)
	}

	list, err := s.Instances()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 12 {
		t.Fatalf("len(Instances()) = %d, want 12", len(list))
	}
	// Ordering must follow insertion even past single-digit sequence numbers.
	for i, inst := range list {
		want := fmt.Sprintf("m%d.example", i)
		if inst.URL != want {
			t.Errorf("Instances()[%d].URL = %q, want %q", i, inst.URL, want)
		}
		if inst.IsDefault {
			t.Errorf("stored instance %q marked default", inst.URL)
		}
	}
}

func TestInstanceStore_Current(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if _, err := s.Current(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Current() on empty store = %v, want ErrNotFound", err)
	}

	if err := s.SaveCurrent("https://kemono.su/"); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCurrent("custom.example"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Current()
	if err != nil || got != "custom.example" {
		t.Errorf("Current() = %q, %v; want custom.example", got, err)
	}
}

func TestInstanceStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveInstance(models.Instance{Name: "Custom", URL: "custom.example"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCurrent("custom.example"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = reopened.Close() }()

	list, err := reopened.Instances()
	if err != nil || len(list) != 1 || list[0].Name != "Custom" {
		t.Errorf("Instances() after reopen = %+v, %v", list, err)
	}
	if cur, err := reopened.Current(); err != nil || cur != "custom.example" {
		t.Errorf("Current() after reopen = %q, %v", cur, err)
	}

	// New records continue after the released lease.
	if _, err := reopened.SaveInstance(models.Instance{Name: "Second", URL: "second.example"}); err != nil {
		t.Fatal(err)
	}
	list, _ = reopened.Instances()
	if len(list) != 2 || list[1].URL != "second.example" {
		t.Errorf("Instances() = %+v, want second.example appended", list)
	}
}

func TestInstanceStore_Closed(t *testing.T) {
	t.Parallel()

	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if _, err := s.Instances(); err == nil {
		t.Error("Instances() on closed store should fail")
	}
	if err := s.SaveCurrent("x.example"); err == nil {
		t.Error("SaveCurrent() on closed store should fail")
	}
}
