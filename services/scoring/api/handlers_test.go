// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/TalentForge/services/llm"
	"github.com/talentforge/TalentForge/services/scoring/consistency"
	"github.com/talentforge/TalentForge/services/scoring/gaming"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedKeywords struct {
	set *gaming.KeywordSet
}

func (f fixedKeywords) KeywordsFor(string) *gaming.KeywordSet { return f.set }

type fixedVelocity struct {
	n int
}

func (f fixedVelocity) CountSince(string, time.Duration) (int, error) { return f.n, nil }

func newTestRouter(t *testing.T, opts ...func(*Handlers)) *gin.Engine {
	t.Helper()
	evaluator := consistency.NewEvaluator(llm.NewRegistry(), consistency.DefaultConfig(), nil, nil)
	scanner := gaming.NewScanner(gaming.DefaultConfig(), nil, nil, nil)
	h := NewHandlers(evaluator, scanner, nil)
	for _, opt := range opts {
		opt(h)
	}
	return NewRouter(h, "scoringd-test")
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleConsistency_OK(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/v1/score/consistency", ConsistencyRequest{
		Prompt:             "score this answer",
		InitialScore:       72,
		EnsembleConfidence: 88,
		BaseWeight:         0.7,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result consistency.ConsistencyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 72, result.OriginalScore)
	assert.Equal(t, 72, result.AdjustedScore)
	assert.Equal(t, 0.7, result.AdjustedWeight)
	assert.NotEmpty(t, result.EvaluationID)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandleConsistency_MissingPrompt(t *testing.T) {
	router := newTestRouter(t)
	w := postJSON(t, router, "/v1/score/consistency", map[string]any{"initial_score": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGaming_InlineKeywords(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/v1/score/gaming", GamingRequest{
		Text:   "I rebuilt the intake notes with the hiring manager and re-ranked the existing applicants against the three must-haves we agreed on before opening new channels.",
		GameID: "game-1",
		Keywords: &gaming.KeywordSet{
			Primary: []string{"sourcing"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result gaming.GamingDetectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, gaming.RiskNone, result.Assessment.OverallRisk)
	assert.Equal(t, gaming.ActionAllow, result.Assessment.RecommendedAction)
}

func TestHandleGaming_KeywordSourceFallback(t *testing.T) {
	router := newTestRouter(t, func(h *Handlers) {
		h.WithKeywords(fixedKeywords{set: &gaming.KeywordSet{Primary: []string{"pipeline"}}})
		h.WithVelocity(fixedVelocity{n: 4})
	})

	w := postJSON(t, router, "/v1/score/gaming", GamingRequest{
		Text:   "A short but real answer about building a steady candidate pipeline from referrals and past silver medalists.",
		GameID: "game-1",
		UserID: "user-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result gaming.GamingDetectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 4, result.Signals.SubmissionsLastHour)
}

func TestHandleGaming_MissingKeywords(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/v1/score/gaming", GamingRequest{
		Text:   "an answer with no keyword configuration anywhere",
		GameID: "game-unknown",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_KEYWORDS", resp.Code)
}

func TestHandleHealthz(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}
