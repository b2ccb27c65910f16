// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package gaming detects attempts to game the scoring model.
//
// Four independent detectors (keyword stuffing, AI-generated text,
// low effort, copy/template) each produce a 0-100 sub-score plus
// explanatory flags; the risk classifier blends the sub-scores into
// one risk level, a recommended action, and a score penalty.
package gaming

import (
	"context"
	"time"
)

// DetectorName identifies a detection category.
type DetectorName string

const (
	// DetectorKeywordStuffing flags answers packed with rubric keywords.
	DetectorKeywordStuffing DetectorName = "keyword_stuffing"

	// DetectorAIGenerated flags answers that look machine-written.
	DetectorAIGenerated DetectorName = "ai_generated"

	// DetectorLowEffort flags minimal or unfinished answers.
	DetectorLowEffort DetectorName = "low_effort"

	// DetectorCopyPaste flags answers copied from the reference solution.
	DetectorCopyPaste DetectorName = "copy_paste"

	// DetectorTemplateMatch flags answers matching a known template.
	DetectorTemplateMatch DetectorName = "template_match"

	// DetectorPatternGaming is reserved for future cross-submission
	// signals; no detector produces it today.
	DetectorPatternGaming DetectorName = "pattern_gaming"
)

// RiskLevel classifies how likely a submission is gaming the scorer.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Action is the recommended handling for a submission.
type Action string

const (
	ActionAllow      Action = "allow"
	ActionWarn       Action = "warn"
	ActionPenalize   Action = "penalize"
	ActionFlagReview Action = "flag_review"
	ActionReject     Action = "reject"
)

// KeywordSet is the per-category keyword configuration supplied by
// game content authoring.
type KeywordSet struct {
	// Primary keywords carry the core rubric concepts.
	Primary []string `json:"primary"`

	// Secondary keywords are supporting vocabulary.
	Secondary []string `json:"secondary"`
}

// GamingSignals is a flat record of the measurements the detectors
// extracted from one submission.
//
// Populated incrementally by the detectors during a scan (each
// detector writes only its own fields); read-only once assembled.
type GamingSignals struct {
	// --- Text shape ---
	TotalWords        int     `json:"total_words"`
	SentenceCount     int     `json:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	UniqueWordRatio   float64 `json:"unique_word_ratio"`

	// --- Keyword stuffing ---
	KeywordOccurrences   int     `json:"keyword_occurrences"`
	KeywordDensity       float64 `json:"keyword_density"`
	MaxKeywordRepetition int     `json:"max_keyword_repetition"`

	// --- AI-generated text ---
	AIPhraseCount  int     `json:"ai_phrase_count"`
	AIPhraseScore  float64 `json:"ai_phrase_score"`
	Burstiness     float64 `json:"burstiness"`
	UniformPattern bool    `json:"uniform_pattern"`
	FormalityScore float64 `json:"formality_score"`

	// --- Low effort ---
	HasPlaceholders      bool `json:"has_placeholders"`
	HasIncompleteMarkers bool `json:"has_incomplete_markers"`

	// --- Copy / template ---
	ExampleSimilarity  float64 `json:"example_similarity"`
	ExactCopy          bool    `json:"exact_copy"`
	TemplateSimilarity float64 `json:"template_similarity"`
	TemplateType       string  `json:"template_type,omitempty"`

	// --- Velocity (caller-supplied, see history package) ---
	SubmissionsLastHour int `json:"submissions_last_hour"`
}

// RiskAssessment is the classifier's verdict for one submission.
//
// Immutable once computed; persisted by the caller for audit.
type RiskAssessment struct {
	// OverallRisk is the discrete risk level.
	OverallRisk RiskLevel `json:"overall_risk"`

	// RiskScore is the blended 0-100 risk score.
	RiskScore int `json:"risk_score"`

	// PerDetectorScores holds each category's sub-score (0-100).
	PerDetectorScores map[DetectorName]float64 `json:"per_detector_scores"`

	// Flags lists human-readable detector findings.
	Flags []string `json:"flags"`

	// RecommendedAction is the handling the caller should apply.
	RecommendedAction Action `json:"recommended_action"`

	// ScorePenalty is the points to subtract from the final score.
	ScorePenalty int `json:"score_penalty"`
}

// GamingDetectionResult is the scanner's final artifact for one submission.
type GamingDetectionResult struct {
	// EvaluationID correlates this result with audit logs.
	EvaluationID string `json:"evaluation_id"`

	// Signals are the raw measurements behind the assessment.
	Signals GamingSignals `json:"signals"`

	// Assessment is the classified risk verdict.
	Assessment RiskAssessment `json:"assessment"`

	// Elapsed is the wall-clock scan time.
	Elapsed time.Duration `json:"elapsed"`
}

// DetectionContext carries the per-game collaborator inputs for a scan.
type DetectionContext struct {
	// GameID selects the template catalog entries to compare against.
	GameID string `json:"game_id"`

	// Keywords is the category keyword configuration. Required by the
	// keyword-stuffing detector; its absence is a contract violation.
	Keywords *KeywordSet `json:"keywords"`

	// ReferenceSolution is the optional exemplar answer used by the
	// copy detector.
	ReferenceSolution string `json:"reference_solution,omitempty"`

	// SubmissionsLastHour is the caller-supplied velocity signal.
	SubmissionsLastHour int `json:"submissions_last_hour"`
}

// DetectionInput is the shared input handed to every detector.
type DetectionInput struct {
	// Text is the raw submission text.
	Text string

	// Normalized is Text lower-cased with collapsed whitespace.
	Normalized string

	// Words are the whitespace tokens of Normalized.
	Words []string

	// Context carries the per-game collaborator inputs.
	Context DetectionContext

	// Signals is the shared measurement record. Each detector writes
	// only its own fields, so concurrent detectors never collide.
	Signals *GamingSignals
}

// DetectorResult is one detector's contribution to the assessment.
type DetectorResult struct {
	// Scores maps each category the detector measures to its
	// sub-score in [0,100]. Most detectors emit a single category;
	// the copy detector emits copy_paste and template_match.
	Scores map[DetectorName]float64

	// Flags are human-readable findings.
	Flags []string
}

// Detector is a single gaming check.
//
// Detectors are stateless pure computations over the same input text;
// the scanner runs them concurrently.
//
// Thread Safety: implementations must be safe for concurrent use.
type Detector interface {
	// Name returns the detector name for logging and metrics.
	Name() DetectorName

	// Scan runs the check. It must not fail: missing optional inputs
	// degrade to zero scores.
	Scan(ctx context.Context, input *DetectionInput) DetectorResult
}
