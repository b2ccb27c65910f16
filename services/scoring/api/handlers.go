// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/scoring/consistency"
	"github.com/talentforge/TalentForge/services/scoring/gaming"
)

// ServiceVersion is the scoring service version.
const ServiceVersion = "0.1.0"

// KeywordSource resolves the configured keyword set for a game.
//
// The config package's KeywordWatcher implements it.
type KeywordSource interface {
	KeywordsFor(gameID string) *gaming.KeywordSet
}

// VelocitySource answers submission-velocity queries.
//
// The history package's Tracker implements it.
type VelocitySource interface {
	CountSince(userID string, window time.Duration) (int, error)
}

// Handlers contains the HTTP handlers for the scoring service.
type Handlers struct {
	evaluator *consistency.Evaluator
	scanner   *gaming.Scanner
	keywords  KeywordSource
	velocity  VelocitySource
	logger    *logging.Logger
}

// NewHandlers creates handlers for the given pipeline components.
func NewHandlers(evaluator *consistency.Evaluator, scanner *gaming.Scanner, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handlers{evaluator: evaluator, scanner: scanner, logger: logger}
}

// WithKeywords sets the keyword source for games that don't pass
// keywords inline.
func (h *Handlers) WithKeywords(src KeywordSource) *Handlers {
	h.keywords = src
	return h
}

// WithVelocity sets the submission-velocity source.
func (h *Handlers) WithVelocity(src VelocitySource) *Handlers {
	h.velocity = src
	return h
}

// HandleConsistency handles POST /v1/score/consistency.
//
// Description:
//
//	Runs the consistency branch for an already obtained AI score:
//	confidence approximation, conditional cross-model validation,
//	and AI-weight adjustment.
//
// Response:
//
//	200 OK: consistency.ConsistencyResult
//	400 Bad Request: Validation error
func (h *Handlers) HandleConsistency(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleConsistency")

	var req ConsistencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	result := h.evaluator.EvaluateConsistency(c.Request.Context(), consistency.EvaluateRequest{
		Prompt:             req.Prompt,
		InitialScore:       req.InitialScore,
		InitialFeedback:    req.InitialFeedback,
		Parser:             consistency.DefaultScoreParser,
		EnsembleConfidence: req.EnsembleConfidence,
		BaseWeight:         req.BaseWeight,
	})

	logger.Info("consistency evaluated",
		"evaluation_id", result.EvaluationID,
		"original_score", result.OriginalScore,
		"adjusted_score", result.AdjustedScore,
		"confidence", string(result.ConfidenceLevel))
	c.JSON(http.StatusOK, result)
}

// HandleGaming handles POST /v1/score/gaming.
//
// Description:
//
//	Runs the gaming detectors over a submission and returns the risk
//	verdict. Keywords come from the request when present, otherwise
//	from the configured keyword source for the game.
//
// Response:
//
//	200 OK: gaming.GamingDetectionResult
//	400 Bad Request: Validation error or missing keyword configuration
func (h *Handlers) HandleGaming(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleGaming")

	var req GamingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	keywords := req.Keywords
	if keywords == nil && h.keywords != nil {
		keywords = h.keywords.KeywordsFor(req.GameID)
	}

	velocity := 0
	if req.UserID != "" && h.velocity != nil {
		n, err := h.velocity.CountSince(req.UserID, time.Hour)
		if err != nil {
			logger.Warn("velocity lookup failed", "user_id", req.UserID, "error", err.Error())
		} else {
			velocity = n
		}
	}

	result, err := h.scanner.DetectGaming(c.Request.Context(), req.Text, gaming.DetectionContext{
		GameID:              req.GameID,
		Keywords:            keywords,
		ReferenceSolution:   req.ReferenceSolution,
		SubmissionsLastHour: velocity,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		errCode := "SCAN_FAILED"
		if errors.Is(err, gaming.ErrEmptySubmission) {
			statusCode = http.StatusBadRequest
			errCode = "EMPTY_SUBMISSION"
		} else if errors.Is(err, gaming.ErrMissingKeywords) {
			statusCode = http.StatusBadRequest
			errCode = "MISSING_KEYWORDS"
		}
		logger.Warn("gaming scan failed", "error", err.Error())
		c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: errCode})
		return
	}

	logger.Info("gaming scan complete",
		"evaluation_id", result.EvaluationID,
		"risk_level", string(result.Assessment.OverallRisk),
		"action", string(result.Assessment.RecommendedAction))
	c.JSON(http.StatusOK, result)
}

// HandleHealthz handles GET /healthz.
func (h *Handlers) HandleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: "scoringd",
		Version: ServiceVersion,
	})
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
