// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestCountSince_WindowFilters(t *testing.T) {
	tr := newTestTracker(t)
	base := time.Now()

	// Two submissions 90 minutes ago, three within the last hour. The
	// fake clock ticks so keys never collide.
	ts := base.Add(-90 * time.Minute)
	tr.now = func() time.Time { ts = ts.Add(time.Millisecond); return ts }
	require.NoError(t, tr.Record("user-1"))
	require.NoError(t, tr.Record("user-1"))

	ts = base.Add(-10 * time.Minute)
	for i := 0; i < 3; i++ {
		require.NoError(t, tr.Record("user-1"))
	}

	tr.now = func() time.Time { return base }
	lastHour, err := tr.SubmissionsLastHour("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, lastHour)

	twoHours, err := tr.CountSince("user-1", 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 5, twoHours)
}

func TestCountSince_UsersIsolated(t *testing.T) {
	tr := newTestTracker(t)
	require.NoError(t, tr.Record("user-a"))
	require.NoError(t, tr.Record("user-b"))
	require.NoError(t, tr.Record("user-b"))

	n, err := tr.SubmissionsLastHour("user-a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCountSince_EmptyUser(t *testing.T) {
	tr := newTestTracker(t)
	_, err := tr.CountSince("", time.Hour)
	assert.True(t, errors.Is(err, ErrEmptyUserID))
	assert.True(t, errors.Is(tr.Record(""), ErrEmptyUserID))
}

func TestCountSince_UnknownUserIsZero(t *testing.T) {
	tr := newTestTracker(t)
	n, err := tr.SubmissionsLastHour("nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}
