// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog stores the known answer templates that the gaming
// scanner compares submissions against.
//
// Templates are curated by content reviewers: when a canned answer
// starts circulating for a game, a reviewer adds it here and every
// subsequent submission is checked against it.
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates the requested template does not exist.
var ErrNotFound = errors.New("template not found")

// Template is one known answer template.
type Template struct {
	ID           int64   `db:"id" json:"id"`
	GameID       string  `db:"game_id" json:"game_id"`
	Type         string  `db:"type" json:"type"`
	Text         string  `db:"text" json:"text"`
	MinThreshold float64 `db:"min_threshold" json:"min_threshold"`
	Active       bool    `db:"active" json:"active"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	UpdatedAt    string  `db:"updated_at" json:"updated_at"`
}

// TemplateCatalog is the read surface the scanner depends on.
type TemplateCatalog interface {
	// ListActiveTemplates returns the active templates for a game,
	// including global templates registered under the empty game ID.
	ListActiveTemplates(ctx context.Context, gameID string) ([]Template, error)
}

// Config holds catalog store configuration.
type Config struct {
	// DataDir is the directory holding the catalog database.
	DataDir string

	// BusyTimeout bounds lock waits on the SQLite file.
	BusyTimeout time.Duration
}

// DefaultConfig returns the default catalog configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:     filepath.Join(home, ".talentforge"),
		BusyTimeout: 5 * time.Second,
	}
}

// Store is a SQLite-backed template catalog.
//
// Thread Safety: safe for concurrent use; SQLite serializes writers.
type Store struct {
	db  *sqlx.DB
	cfg Config
}

// New opens (creating if necessary) the catalog database and runs
// migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, errors.Wrap(err, "catalog: create data dir")
	}

	db, err := sqlx.Open("sqlite", filepath.Join(cfg.DataDir, "catalog.db"))
	if err != nil {
		return nil, errors.Wrap(err, "catalog: open database")
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = " + strconv.Itoa(int(busy/time.Millisecond)),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, errors.Wrapf(err, "catalog: pragma %q", p)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, errors.Wrap(err, "catalog: migration")
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS templates (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id       TEXT    NOT NULL DEFAULT '',
			type          TEXT    NOT NULL,
			text          TEXT    NOT NULL,
			min_threshold REAL    NOT NULL DEFAULT 0,
			active        INTEGER NOT NULL DEFAULT 1,
			created_at    TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at    TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_templates_game   ON templates(game_id, active);
		CREATE INDEX IF NOT EXISTS idx_templates_active ON templates(active);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ListActiveTemplates implements TemplateCatalog.
func (s *Store) ListActiveTemplates(ctx context.Context, gameID string) ([]Template, error) {
	var out []Template
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, game_id, type, text, min_threshold, active, created_at, updated_at
		 FROM templates
		 WHERE active = 1 AND (game_id = ? OR game_id = '')
		 ORDER BY id`, gameID)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: list active templates")
	}
	return out, nil
}

// AddTemplate registers a new template and returns its ID.
func (s *Store) AddTemplate(ctx context.Context, t Template) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO templates (game_id, type, text, min_threshold, active)
		 VALUES (?, ?, ?, ?, 1)`,
		t.GameID, t.Type, t.Text, t.MinThreshold)
	if err != nil {
		return 0, errors.Wrap(err, "catalog: add template")
	}
	return res.LastInsertId()
}

// DeactivateTemplate retires a template without deleting its history.
func (s *Store) DeactivateTemplate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE templates SET active = 0, updated_at = datetime('now') WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "catalog: deactivate template")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return nil
}
