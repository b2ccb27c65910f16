// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package api exposes the scoring-integrity pipeline over HTTP.
//
// Two operations are exposed: consistency evaluation for an already
// obtained AI score, and gaming detection for a raw submission.
package api

import "github.com/talentforge/TalentForge/services/scoring/gaming"

// ConsistencyRequest is the body of POST /v1/score/consistency.
type ConsistencyRequest struct {
	// Prompt is the scoring prompt used for the initial score.
	Prompt string `json:"prompt" binding:"required"`

	// InitialScore is the primary model's score (0-100).
	InitialScore float64 `json:"initial_score"`

	// InitialFeedback is the primary model's feedback text.
	InitialFeedback string `json:"initial_feedback,omitempty"`

	// EnsembleConfidence is the agreement percentage (0-100) between
	// the model's judgment and an independent validation signal.
	EnsembleConfidence float64 `json:"ensemble_confidence"`

	// BaseWeight is the base AI weight in [0,1] the caller blends with.
	BaseWeight float64 `json:"base_weight"`
}

// GamingRequest is the body of POST /v1/score/gaming.
type GamingRequest struct {
	// Text is the raw submission text.
	Text string `json:"text" binding:"required"`

	// GameID selects the keyword set and template catalog entries.
	GameID string `json:"game_id"`

	// UserID enables the submission-velocity signal when a history
	// tracker is configured.
	UserID string `json:"user_id,omitempty"`

	// Keywords overrides the configured keyword set for this call.
	Keywords *gaming.KeywordSet `json:"keywords,omitempty"`

	// ReferenceSolution is the exemplar answer for copy detection.
	ReferenceSolution string `json:"reference_solution,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
