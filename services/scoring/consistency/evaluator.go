// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/llm"
	"github.com/talentforge/TalentForge/services/scoring/telemetry"
)

// Evaluator composes the consistency branch of the pipeline into one
// ConsistencyResult per submission.
//
// Confidence approximation: the evaluator does not re-run true
// multi-sampling for a score the caller already obtained. It derives a
// lightweight confidence level from the externally supplied
// ensemble-agreement percentage (see
// ApproximateConfidenceFromAgreement) and marks the aggregate with
// SelectionSingle. This trades statistical rigor for latency and cost
// and must not be confused with genuine resampling; callers that need
// real sampling statistics use SampleCollector.Collect directly.
//
// No step raises an uncaught error: every sub-step has a defined
// degraded fallback and the submission always receives a score.
//
// Thread Safety: safe for concurrent use after construction.
type Evaluator struct {
	registry  *llm.Registry
	validator *CrossModelValidator
	weighter  *ConfidenceWeighter
	cfg       Config
	logger    *logging.Logger
	metrics   *telemetry.Metrics
}

// NewEvaluator creates the consistency evaluator.
//
// Inputs:
//
//	registry - Model registry holding the primary and secondary clients.
//	cfg - Pipeline configuration. Use DefaultConfig() for defaults.
//	logger - Structured logger. Defaults to logging.Default() when nil.
//	metrics - Pipeline metrics. Defaults to no-op metrics when nil.
func NewEvaluator(registry *llm.Registry, cfg Config, logger *logging.Logger, metrics *telemetry.Metrics) *Evaluator {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Evaluator{
		registry:  registry,
		validator: NewCrossModelValidator(registry, cfg.CrossValidation, logger, metrics),
		weighter:  NewConfidenceWeighter(cfg.Weight),
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
	}
}

// EvaluateConsistency produces the consistency result for a submission.
//
// Description:
//
//	(1) Derives a confidence level from the ensemble-agreement
//	percentage (approximation mode, no resampling). (2) Conditionally
//	runs cross-model validation and, on divergence, replaces the
//	working score with the reconciled value. (3) Adjusts the AI
//	weight for confidence. (4) Assembles the result with full
//	provenance flags.
//
// Inputs:
//
//	ctx - Context for cancellation; an expired context abandons the
//	      cross-validation call but still yields a usable result.
//	req - The evaluation request.
//
// Outputs:
//
//	*ConsistencyResult - Always non-nil; this method never fails.
func (e *Evaluator) EvaluateConsistency(ctx context.Context, req EvaluateRequest) *ConsistencyResult {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "scoring.consistency", "Evaluator.EvaluateConsistency")
	defer span.End()

	result := &ConsistencyResult{
		EvaluationID:   uuid.NewString(),
		OriginalScore:  RoundScore(req.InitialScore),
		OriginalWeight: req.BaseWeight,
		Flags:          []string{},
	}

	// Step 1: approximate confidence from ensemble agreement.
	level := ApproximateConfidenceFromAgreement(req.EnsembleConfidence, e.cfg.Weight)
	result.ConfidenceLevel = level
	result.Aggregate = &AggregateStatistics{
		ConfidenceLevel: level,
		SelectedScore:   result.OriginalScore,
		SelectionMethod: SelectionSingle,
	}
	switch level {
	case ConfidenceVeryLow:
		result.Flags = append(result.Flags, FlagVeryLowAgreement)
	case ConfidenceLow:
		result.Flags = append(result.Flags, FlagLowAgreement)
	}

	// Step 2: conditional cross-model validation.
	workingScore := ClampScore(req.InitialScore)
	if e.validator.ShouldValidate(workingScore) {
		outcome := e.validator.Validate(ctx, ValidationRequest{
			Prompt:       req.Prompt,
			PrimaryScore: workingScore,
			Temperature:  e.primaryTemperature(),
			Schema:       req.Schema,
			Parser:       req.Parser,
		})
		result.Validation = &outcome
		if outcome.WasValidated && !outcome.ValidationPassed {
			workingScore = outcome.FinalScore
			result.Flags = append(result.Flags, FlagCrossValidationDivergence)
		} else if !outcome.WasValidated && outcome.Reason != "" {
			result.Flags = append(result.Flags, FlagCrossValidationUnavailable)
		}
	}
	result.AdjustedScore = RoundScore(workingScore)

	// Step 3: confidence-weighted blending input.
	adj := e.weighter.Adjust(req.BaseWeight, level, req.EnsembleConfidence)
	result.AdjustedWeight = adj.AdjustedWeight
	if adj.Reduced {
		result.Flags = append(result.Flags, FlagAIWeightAdjusted)
		e.logger.Info("ai weight adjusted",
			"evaluation_id", result.EvaluationID,
			"base_weight", adj.BaseWeight,
			"adjusted_weight", adj.AdjustedWeight,
			"reason", adj.Reason)
		e.metrics.WeightAdjustments.Add(ctx, 1,
			metric.WithAttributes(attribute.String("confidence", string(level))))
	}

	result.Elapsed = time.Since(start)
	span.SetAttributes(
		attribute.String("evaluation_id", result.EvaluationID),
		attribute.Int("original_score", result.OriginalScore),
		attribute.Int("adjusted_score", result.AdjustedScore),
		attribute.String("confidence", string(level)),
	)
	e.metrics.EvaluationsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("confidence", string(level))))
	e.metrics.EvaluationDuration.Record(ctx, result.Elapsed.Seconds())
	return result
}

// CollectSamples runs true multi-sampling for callers that want real
// sampling statistics instead of the approximation mode.
//
// Outputs:
//
//	AggregateStatistics - Degenerate very_low aggregate if all calls fail.
//	error - Contract violations only (nil parser, unknown primary model).
func (e *Evaluator) CollectSamples(ctx context.Context, req CollectRequest) (AggregateStatistics, error) {
	client, err := e.registry.Get(e.cfg.PrimaryModel)
	if err != nil {
		return AggregateStatistics{}, err
	}
	collector := NewSampleCollector(client, e.cfg.MultiSample, e.logger, e.metrics)
	return collector.Collect(ctx, req)
}

// primaryTemperature returns the first configured sampling temperature,
// matching the secondary call to the primary call's conditions.
func (e *Evaluator) primaryTemperature() float32 {
	if len(e.cfg.MultiSample.Temperatures) > 0 {
		return e.cfg.MultiSample.Temperatures[0]
	}
	return DefaultMultiSampleConfig().Temperatures[0]
}
