// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

// Package store persists user-added instances and the current instance
// selection in BadgerDB so they survive restarts.
//
// Key layout:
//
//	instance/<seq>   JSON instanceRecord, seq zero-padded for ordered iteration
//	current          bare domain of the selected instance
//	seq/instance     badger sequence backing <seq>
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/models"
)

// ErrNotFound is returned when no current instance has been saved.
var ErrNotFound = errors.New("not found")

const (
	instancePrefix = "instance/"
	currentKey     = "current"
	sequenceKey    = "seq/instance"
	sequenceLease  = 16
)

// Config holds store settings.
type Config struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in memory, for tests and ephemeral runs.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// instanceRecord is the stored form of a user-added instance.
type instanceRecord struct {
	Name    string    `json:"name"`
	URL     string    `json:"url"`
	AddedAt time.Time `json:"added_at"`
}

// InstanceStore is a badger-backed store for instance settings.
type InstanceStore struct {
	db  *badger.DB
	seq *badger.Sequence

	// saveMu serializes SaveInstance so the duplicate check and write are atomic.
	saveMu sync.Mutex

	mu     sync.Mutex
	closed bool
}

// Open opens or creates the store.
func Open(cfg Config) (*InstanceStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store path is required unless running in memory")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLease)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open instance sequence: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("Instance store opened")
	return &InstanceStore{db: db, seq: seq}, nil
}

// SaveInstance persists inst unless an instance with the same URL is stored.
// It reports whether a record was written.
func (s *InstanceStore) SaveInstance(inst models.Instance) (bool, error) {
	if err := s.checkNotClosed(); err != nil {
		return false, err
	}
	inst = inst.Normalized()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	existing, err := s.Instances()
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if e.URL == inst.URL {
			return false, nil
		}
	}

	n, err := s.seq.Next()
	if err != nil {
		return false, fmt.Errorf("next instance sequence: %w", err)
	}
	data, err := json.Marshal(instanceRecord{Name: inst.Name, URL: inst.URL, AddedAt: time.Now().UTC()})
	if err != nil {
		return false, fmt.Errorf("marshal instance: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%020d", instancePrefix, n))
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}); err != nil {
		return false, fmt.Errorf("save instance %s: %w", inst.URL, err)
	}
	return true, nil
}

// Instances returns stored instances in the order they were saved.
// Stored instances are never defaults.
func (s *InstanceStore) Instances() ([]models.Instance, error) {
	if err := s.checkNotClosed(); err != nil {
		return nil, err
	}

	instances := []models.Instance{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(instancePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rec instanceRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).Msg("Skipping unreadable instance record")
				continue
			}
			instances = append(instances, models.Instance{Name: rec.Name, URL: rec.URL})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate instances: %w", err)
	}
	return instances, nil
}

// SaveCurrent records the selected instance domain.
func (s *InstanceStore) SaveCurrent(url string) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}
	url = models.NormalizeInstanceURL(url)
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(currentKey), []byte(url))
	}); err != nil {
		return fmt.Errorf("save current instance: %w", err)
	}
	return nil
}

// Current returns the saved instance domain, or ErrNotFound.
func (s *InstanceStore) Current() (string, error) {
	if err := s.checkNotClosed(); err != nil {
		return "", err
	}

	var url string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(currentKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			url = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read current instance: %w", err)
	}
	return url, nil
}

// Close releases the sequence lease and closes the database.
func (s *InstanceStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close BadgerDB: %w", err))
	}
	return errors.Join(errs...)
}

func (s *InstanceStore) checkNotClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("instance store is closed")
	}
	return nil
}
