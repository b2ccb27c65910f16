// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package consistency turns one or more noisy scoring-model judgments
// into a single trustworthy score with an auditable confidence.
//
// The package contains the consistency branch of the scoring-integrity
// pipeline: multi-sample collection, statistical aggregation,
// cross-model validation for high-stakes scores, and
// confidence-weighted blending of the model's influence.
package consistency

import (
	"time"

	"github.com/talentforge/TalentForge/services/llm"
)

// ConfidenceLevel classifies how much the aggregated samples agree.
type ConfidenceLevel string

const (
	// ConfidenceHigh indicates tight sample agreement.
	ConfidenceHigh ConfidenceLevel = "high"

	// ConfidenceMedium indicates moderate sample spread.
	ConfidenceMedium ConfidenceLevel = "medium"

	// ConfidenceLow indicates wide sample spread.
	ConfidenceLow ConfidenceLevel = "low"

	// ConfidenceVeryLow indicates samples disagree badly or are absent.
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// SelectionMethod records how the selected score was derived.
type SelectionMethod string

const (
	// SelectionMedian selects the median of the samples.
	SelectionMedian SelectionMethod = "median"

	// SelectionMean selects the mean of the samples.
	SelectionMean SelectionMethod = "mean"

	// SelectionSingle marks the approximation mode: no resampling was
	// performed and the single externally supplied score was kept.
	SelectionSingle SelectionMethod = "single"
)

// Sample is one independent scoring-model invocation result.
//
// Samples are created by the collector, consumed by aggregation, and
// discarded afterwards; they are never persisted.
type Sample struct {
	// Score is the model's score for the submission (0-100).
	Score float64 `json:"score"`

	// SourceTemperature is the sampling temperature used for this call.
	SourceTemperature float32 `json:"source_temperature"`

	// RawText is the model's feedback text.
	RawText string `json:"raw_text"`

	// LatencyMs is the call latency in milliseconds.
	LatencyMs uint64 `json:"latency_ms"`
}

// AggregateStatistics is the reduction of a sample set.
//
// Derived and recomputed each call; never mutated in place.
type AggregateStatistics struct {
	// Samples are the raw samples that produced these statistics.
	Samples []Sample `json:"samples"`

	// Median of the sample scores (2 decimal places).
	Median float64 `json:"median"`

	// Mean of the sample scores (2 decimal places).
	Mean float64 `json:"mean"`

	// Variance is the population variance (2 decimal places).
	Variance float64 `json:"variance"`

	// StdDev is the population standard deviation (2 decimal places).
	StdDev float64 `json:"std_dev"`

	// ConfidenceLevel classifies the sample agreement.
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`

	// SelectedScore is the integer score chosen from the samples.
	SelectedScore int `json:"selected_score"`

	// SelectionMethod records how SelectedScore was derived.
	SelectionMethod SelectionMethod `json:"selection_method"`
}

// ValidationOutcome is the result of cross-model validation.
//
// Produced once per submission that crosses the stakes threshold;
// otherwise a pass-through value with WasValidated=false.
type ValidationOutcome struct {
	// PrimaryScore is the primary model's score.
	PrimaryScore float64 `json:"primary_score"`

	// SecondaryScore is the secondary model's score, when obtained.
	SecondaryScore *float64 `json:"secondary_score,omitempty"`

	// Divergence is |primary - secondary| when both are present.
	Divergence float64 `json:"divergence"`

	// WasValidated is true when a secondary score was obtained.
	WasValidated bool `json:"was_validated"`

	// ValidationPassed is true when divergence stayed within the ceiling.
	// A non-validated outcome passes by definition (primary assumed valid).
	ValidationPassed bool `json:"validation_passed"`

	// FinalScore is the reconciled score to carry forward.
	FinalScore float64 `json:"final_score"`

	// Reason explains a reconciliation or degradation, when one occurred.
	Reason string `json:"reason,omitempty"`
}

// ConsistencyResult is the orchestrator's final artifact for one submission.
type ConsistencyResult struct {
	// EvaluationID correlates this result with audit logs.
	EvaluationID string `json:"evaluation_id"`

	// OriginalScore is the caller-supplied initial score (0-100, integer).
	OriginalScore int `json:"original_score"`

	// AdjustedScore is the working score after validation reconciliation.
	AdjustedScore int `json:"adjusted_score"`

	// Aggregate holds the sampling statistics, when sampling ran.
	Aggregate *AggregateStatistics `json:"aggregate,omitempty"`

	// Validation holds the cross-model outcome, when validation ran.
	Validation *ValidationOutcome `json:"validation,omitempty"`

	// OriginalWeight is the caller-supplied base AI weight.
	OriginalWeight float64 `json:"original_weight"`

	// AdjustedWeight is the confidence-adjusted AI weight,
	// always within [MinWeight, OriginalWeight].
	AdjustedWeight float64 `json:"adjusted_weight"`

	// ConfidenceLevel is the effective confidence for this evaluation.
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`

	// Flags lists audit markers such as "cross_validation_divergence".
	Flags []string `json:"flags"`

	// Elapsed is the wall-clock evaluation time.
	Elapsed time.Duration `json:"elapsed"`
}

// Audit flags attached to a ConsistencyResult.
const (
	// FlagVeryLowAgreement marks ensemble agreement below the very-low threshold.
	FlagVeryLowAgreement = "very_low_agreement"

	// FlagLowAgreement marks ensemble agreement below the low threshold.
	FlagLowAgreement = "low_agreement"

	// FlagCrossValidationDivergence marks a reconciled divergent validation.
	FlagCrossValidationDivergence = "cross_validation_divergence"

	// FlagCrossValidationUnavailable marks a failed secondary call.
	FlagCrossValidationUnavailable = "cross_validation_unavailable"

	// FlagAIWeightAdjusted marks any reduction of the AI weight.
	FlagAIWeightAdjusted = "ai_weight_adjusted"
)

// ScoreParser extracts a numeric score and feedback text from a raw
// model response. Implementations must tolerate adversarial content.
type ScoreParser func(raw string) (score float64, feedback string, err error)

// CollectRequest describes one multi-sample collection run.
type CollectRequest struct {
	// Prompt is the fully constructed scoring prompt.
	Prompt string

	// Schema is the structured-output schema for the scoring call.
	Schema *llm.ResponseSchema

	// Parser converts raw model output into a score. Required.
	Parser ScoreParser
}

// ValidationRequest describes one cross-model validation run.
type ValidationRequest struct {
	// Prompt is the scoring prompt, re-used for the secondary model.
	Prompt string

	// PrimaryScore is the primary model's score being validated.
	PrimaryScore float64

	// Temperature matches the primary call's sampling temperature.
	Temperature float32

	// Schema is the structured-output schema for the scoring call.
	Schema *llm.ResponseSchema

	// Parser converts raw model output into a score. Required.
	Parser ScoreParser
}

// EvaluateRequest is the input to Evaluator.EvaluateConsistency.
type EvaluateRequest struct {
	// Prompt is the scoring prompt used for the initial score.
	Prompt string

	// InitialScore is the primary model's score (0-100).
	InitialScore float64

	// InitialFeedback is the primary model's feedback text.
	InitialFeedback string

	// Schema is the structured-output schema for any further calls.
	Schema *llm.ResponseSchema

	// Parser converts raw model output into a score. Required when
	// cross-validation is enabled.
	Parser ScoreParser

	// EnsembleConfidence is the externally computed agreement
	// percentage (0-100) between the model's judgment and an
	// independent validation signal.
	EnsembleConfidence float64

	// BaseWeight is the base AI weight in [0,1] the caller blends with.
	BaseWeight float64
}
