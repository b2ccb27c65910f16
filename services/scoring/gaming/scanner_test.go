// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(templates TemplateSource) *Scanner {
	return NewScanner(DefaultConfig(), templates, nil, nil)
}

func TestDetectGaming_EmptySubmission(t *testing.T) {
	s := newTestScanner(nil)
	_, err := s.DetectGaming(context.Background(), "   \n\t ", DetectionContext{Keywords: defaultKeywords()})
	if !errors.Is(err, ErrEmptySubmission) {
		t.Errorf("err = %v, want ErrEmptySubmission", err)
	}
}

func TestDetectGaming_MissingKeywords(t *testing.T) {
	s := newTestScanner(nil)
	_, err := s.DetectGaming(context.Background(), "a real answer", DetectionContext{})
	if !errors.Is(err, ErrMissingKeywords) {
		t.Errorf("err = %v, want ErrMissingKeywords", err)
	}
}

func TestDetectGaming_HonestAnswerPassesClean(t *testing.T) {
	s := newTestScanner(nil)
	text := "I started by rebuilding the intake notes with the hiring manager because the posted requirements were stale. We agreed on three true must-haves and I re-ranked the existing applicants against them before opening any new channels."

	result, err := s.DetectGaming(context.Background(), text, DetectionContext{
		GameID:   "game-1",
		Keywords: defaultKeywords(),
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, RiskNone, result.Assessment.OverallRisk)
	assert.Equal(t, ActionAllow, result.Assessment.RecommendedAction)
	assert.Equal(t, 0, result.Assessment.ScorePenalty)
	assert.NotEmpty(t, result.EvaluationID)
	assert.Positive(t, result.Signals.TotalWords)
}

func TestDetectGaming_ExactCopyRejected(t *testing.T) {
	s := newTestScanner(nil)
	ref := "A strong answer explains the intake conversation the sourcing channels and the close plan in concrete terms."

	result, err := s.DetectGaming(context.Background(), ref, DetectionContext{
		Keywords:          defaultKeywords(),
		ReferenceSolution: ref,
	})
	require.NoError(t, err)

	assert.True(t, result.Signals.ExactCopy)
	assert.Equal(t, 100.0, result.Assessment.PerDetectorScores[DetectorCopyPaste])
	assert.Equal(t, RiskCritical, result.Assessment.OverallRisk)
	assert.Equal(t, ActionReject, result.Assessment.RecommendedAction)
	assert.Equal(t, 30, result.Assessment.ScorePenalty)
}

func TestDetectGaming_AllDetectorCategoriesReported(t *testing.T) {
	s := newTestScanner(&fakeTemplateSource{})
	text := "I shortlisted candidates after a structured review of their sourcing experience and shared written feedback with the hiring manager the following morning so nobody waited."

	result, err := s.DetectGaming(context.Background(), text, DetectionContext{
		GameID:   "game-1",
		Keywords: defaultKeywords(),
	})
	require.NoError(t, err)

	for _, name := range []DetectorName{
		DetectorKeywordStuffing, DetectorAIGenerated,
		DetectorLowEffort, DetectorCopyPaste, DetectorTemplateMatch,
	} {
		_, ok := result.Assessment.PerDetectorScores[name]
		assert.True(t, ok, "missing category %s", name)
	}
}

func TestDetectGaming_VelocitySignalCarried(t *testing.T) {
	s := newTestScanner(nil)
	text := "I always write a short calibration summary after the first five screens so the hiring manager can correct course early instead of at the offer stage."

	result, err := s.DetectGaming(context.Background(), text, DetectionContext{
		Keywords:            defaultKeywords(),
		SubmissionsLastHour: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Signals.SubmissionsLastHour)
}
