// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package history tracks per-user submission timestamps in embedded
// BadgerDB and answers velocity queries ("how many submissions in the
// last hour").
//
// The gaming scanner takes the velocity number as a plain caller
// input; this package is the standard way for a service to produce it.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package history

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrEmptyUserID indicates a velocity call without a user.
var ErrEmptyUserID = errors.New("empty user id")

// Config holds configuration for the submission tracker.
type Config struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory
	// is true.
	Path string

	// InMemory enables in-memory mode for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Retention is how long submission records are kept. Velocity
	// queries never look further back than this. Default 24h.
	Retention time.Duration

	// Logger is the logger for BadgerDB internals. Nil disables
	// BadgerDB's own logging.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults for production use.
func DefaultConfig() Config {
	return Config{
		SyncWrites: true,
		Retention:  24 * time.Hour,
	}
}

// InMemoryConfig returns configuration optimized for testing.
func InMemoryConfig() Config {
	return Config{
		InMemory:  true,
		Retention: 24 * time.Hour,
	}
}

// Tracker records submissions and answers velocity queries.
//
// Keys are "sub:<userID>:<unixnano>" with a retention TTL, so counting
// a window is a bounded prefix scan and expiry is handled by Badger.
//
// Thread Safety: safe for concurrent use.
type Tracker struct {
	db  *badger.DB
	cfg Config

	// now is swapped in tests to pin timestamps.
	now func() time.Time
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open creates and opens the tracker.
//
// Inputs:
//
//	cfg - Tracker configuration. Path is required unless InMemory is true.
//
// Outputs:
//
//	*Tracker - The opened tracker. Caller must Close() when done.
//	error - Non-nil if the database cannot be opened.
func Open(cfg Config) (*Tracker, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultConfig().Retention
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open submission history database: %w", err)
	}
	return &Tracker{db: db, cfg: cfg, now: time.Now}, nil
}

// Close closes the underlying database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Record stores one submission event for a user.
func (t *Tracker) Record(userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	ts := t.now().UnixNano()
	key := submissionKey(userID, ts)
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, uint64(ts))

	return t.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, value).WithTTL(t.cfg.Retention)
		return txn.SetEntry(entry)
	})
}

// CountSince returns the number of submissions for a user within the
// window ending now.
func (t *Tracker) CountSince(userID string, window time.Duration) (int, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}
	if window <= 0 || window > t.cfg.Retention {
		window = t.cfg.Retention
	}
	cutoff := t.now().Add(-window).UnixNano()
	prefix := []byte("sub:" + userID + ":")

	count := 0
	err := t.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			Prefix:         prefix,
			PrefetchValues: false,
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ts, ok := parseSubmissionKey(it.Item().Key(), len(prefix))
			if ok && ts >= cutoff {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count submissions for %s: %w", userID, err)
	}
	return count, nil
}

// SubmissionsLastHour is the convenience form the gaming scanner's
// velocity signal expects.
func (t *Tracker) SubmissionsLastHour(userID string) (int, error) {
	return t.CountSince(userID, time.Hour)
}

func submissionKey(userID string, ts int64) []byte {
	return []byte("sub:" + userID + ":" + strconv.FormatInt(ts, 10))
}

func parseSubmissionKey(key []byte, prefixLen int) (int64, bool) {
	if len(key) <= prefixLen {
		return 0, false
	}
	ts, err := strconv.ParseInt(string(key[prefixLen:]), 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
