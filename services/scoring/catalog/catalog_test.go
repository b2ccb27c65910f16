// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestListActiveTemplates_GameAndGlobal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTemplate(ctx, Template{GameID: "game-1", Type: "generic_star_answer", Text: "situation task action result"})
	require.NoError(t, err)
	_, err = s.AddTemplate(ctx, Template{GameID: "", Type: "buzzword_filler", Text: "results driven team player", MinThreshold: 0.9})
	require.NoError(t, err)
	_, err = s.AddTemplate(ctx, Template{GameID: "game-2", Type: "other_game", Text: "not for this game"})
	require.NoError(t, err)

	templates, err := s.ListActiveTemplates(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "generic_star_answer", templates[0].Type)
	assert.Equal(t, "buzzword_filler", templates[1].Type)
	assert.Equal(t, 0.9, templates[1].MinThreshold)
}

func TestDeactivateTemplate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddTemplate(ctx, Template{GameID: "game-1", Type: "x", Text: "y"})
	require.NoError(t, err)
	require.NoError(t, s.DeactivateTemplate(ctx, id))

	templates, err := s.ListActiveTemplates(ctx, "game-1")
	require.NoError(t, err)
	assert.Empty(t, templates)

	err = s.DeactivateTemplate(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTemplateSourceAdapter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTemplate(ctx, Template{GameID: "game-1", Type: "generic_star_answer", Text: "situation task action result", MinThreshold: 0.8})
	require.NoError(t, err)

	entries, err := NewTemplateSource(s).ActiveTemplates(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "generic_star_answer", entries[0].Type)
	assert.Equal(t, 0.8, entries[0].MinSimilarityThreshold)
}
