// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8086", cfg.Service.ListenAddr)
	assert.Equal(t, 3, cfg.Consistency.MultiSample.SampleCount)
	assert.Equal(t, 85.0, cfg.Consistency.CrossValidation.StakesThreshold)
	assert.Equal(t, 0.25, cfg.Gaming.KeywordStuffing.CriticalDensity)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  listen_addr: ":9000"
consistency:
  cross_validation:
    stakes_threshold: 90
gaming:
  keyword_stuffing:
    warning_density: 0.2
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Service.ListenAddr)
	assert.Equal(t, 90.0, cfg.Consistency.CrossValidation.StakesThreshold)
	assert.Equal(t, 0.2, cfg.Gaming.KeywordStuffing.WarningDensity)
	// Untouched values keep their defaults.
	assert.Equal(t, 15.0, cfg.Consistency.CrossValidation.DivergenceCeiling)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service: [not a map"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestKeywordWatcher_LoadAndLookup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
games:
  game-1:
    primary: [sourcing, pipeline]
    secondary: [outreach]
ai_phrases:
  "in the realm of":
    weight: 0.12
    confidence: 0.8
`), 0600))

	w, err := NewKeywordWatcher(path, nil)
	require.NoError(t, err)

	ks := w.KeywordsFor("game-1")
	require.NotNil(t, ks)
	assert.Equal(t, []string{"sourcing", "pipeline"}, ks.Primary)
	assert.Nil(t, w.KeywordsFor("unknown-game"))

	phrases := w.AIPhrases()
	require.NotNil(t, phrases)
	assert.Equal(t, 0.12, phrases["in the realm of"].Weight)
}

func TestKeywordWatcher_ReloadReplacesTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("games:\n  game-1:\n    primary: [a]\n"), 0600))

	w, err := NewKeywordWatcher(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("games:\n  game-2:\n    primary: [b]\n"), 0600))
	require.NoError(t, w.reload())

	assert.Nil(t, w.KeywordsFor("game-1"))
	require.NotNil(t, w.KeywordsFor("game-2"))
}

func TestKeywordWatcher_MalformedInitialLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("games: [broken"), 0600))

	_, err := NewKeywordWatcher(path, nil)
	assert.Error(t, err)
}
