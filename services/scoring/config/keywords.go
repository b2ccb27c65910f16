// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/scoring/gaming"
)

// KeywordTables is the reviewer-curated detection vocabulary: the
// per-game keyword sets and the weighted machine-text phrase table.
type KeywordTables struct {
	// Games maps a game ID to its rubric keyword set.
	Games map[string]gaming.KeywordSet `yaml:"games"`

	// AIPhrases overrides the built-in machine-text phrase table when
	// non-empty.
	AIPhrases map[string]gaming.PhraseWeight `yaml:"ai_phrases"`
}

// KeywordWatcher serves the current keyword tables and hot-reloads
// them when the backing file changes.
//
// Reviewers edit the file in place; the next scan picks the change up
// without a service restart. A malformed edit keeps the previous
// tables and logs the parse failure.
//
// Thread Safety: safe for concurrent use.
type KeywordWatcher struct {
	path   string
	logger *logging.Logger

	mu     sync.RWMutex
	tables KeywordTables
}

// NewKeywordWatcher loads the file once and returns the watcher.
//
// Inputs:
//
//	path - The keyword YAML file.
//	logger - Structured logger. Defaults to logging.Default() when nil.
//
// Outputs:
//
//	*KeywordWatcher - The watcher; call Watch to start hot reload.
//	error - Non-nil when the initial load fails.
func NewKeywordWatcher(path string, logger *logging.Logger) (*KeywordWatcher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	w := &KeywordWatcher{path: path, logger: logger}
	if err := w.reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// KeywordsFor returns the keyword set for a game, or nil when the
// game has none configured.
func (w *KeywordWatcher) KeywordsFor(gameID string) *gaming.KeywordSet {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ks, ok := w.tables.Games[gameID]
	if !ok {
		return nil
	}
	out := ks
	return &out
}

// AIPhrases returns the phrase table override, or nil to use the
// built-in table.
func (w *KeywordWatcher) AIPhrases() map[string]gaming.PhraseWeight {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.tables.AIPhrases) == 0 {
		return nil
	}
	out := make(map[string]gaming.PhraseWeight, len(w.tables.AIPhrases))
	for k, v := range w.tables.AIPhrases {
		out[k] = v
	}
	return out
}

// Watch blocks reloading the file on change until the context ends.
//
// The parent directory is watched rather than the file itself so
// editor rename-and-replace saves keep working.
func (w *KeywordWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.reload(); err != nil {
				w.logger.Warn("keyword table reload failed, keeping previous tables",
					"path", w.path, "error", err.Error())
				continue
			}
			w.logger.Info("keyword tables reloaded", "path", w.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("keyword watcher error", "error", err.Error())
		}
	}
}

func (w *KeywordWatcher) reload() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("read keyword file: %w", err)
	}
	var tables KeywordTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("parse keyword file: %w", err)
	}
	w.mu.Lock()
	w.tables = tables
	w.mu.Unlock()
	return nil
}
