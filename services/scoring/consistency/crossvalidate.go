// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/llm"
	"github.com/talentforge/TalentForge/services/scoring/telemetry"
)

// CrossModelValidator re-scores high-stakes submissions with a second,
// independent model and reconciles divergence.
//
// Transport or parse failures degrade to "not validated, primary score
// assumed valid"; Validate never returns an error to the caller.
//
// Thread Safety: safe for concurrent use after construction.
type CrossModelValidator struct {
	registry *llm.Registry
	cfg      CrossValidationConfig
	logger   *logging.Logger
	metrics  *telemetry.Metrics
}

// NewCrossModelValidator creates a validator over a model registry.
func NewCrossModelValidator(registry *llm.Registry, cfg CrossValidationConfig, logger *logging.Logger, metrics *telemetry.Metrics) *CrossModelValidator {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &CrossModelValidator{registry: registry, cfg: cfg, logger: logger, metrics: metrics}
}

// ShouldValidate reports whether a primary score crosses the stakes
// threshold.
func (v *CrossModelValidator) ShouldValidate(primaryScore float64) bool {
	return v.cfg.Enabled && primaryScore >= v.cfg.StakesThreshold
}

// Validate runs one secondary scoring call and reconciles the result.
//
// Description:
//
//	Issues a single call to the configured secondary model at the
//	matched sampling temperature. On success, computes the divergence
//	|primary - secondary|; if it exceeds the ceiling, the outcome
//	fails validation and the final score is reconciled to either the
//	average or the minimum of the two scores, per configuration, with
//	a human-readable reason. On any failure the outcome degrades to a
//	pass-through with WasValidated=false.
//
// Inputs:
//
//	ctx - Context for cancellation.
//	req - The validation request. req.Parser is required.
//
// Outputs:
//
//	ValidationOutcome - Always usable; never accompanied by an error.
func (v *CrossModelValidator) Validate(ctx context.Context, req ValidationRequest) ValidationOutcome {
	ctx, span := telemetry.StartSpan(ctx, "scoring.consistency", "CrossModelValidator.Validate")
	defer span.End()

	outcome := ValidationOutcome{
		PrimaryScore:     req.PrimaryScore,
		ValidationPassed: true,
		FinalScore:       req.PrimaryScore,
	}

	if !v.ShouldValidate(req.PrimaryScore) {
		v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "skipped")))
		return outcome
	}
	if req.Parser == nil {
		v.logger.Warn("cross-validation skipped: nil parser")
		outcome.Reason = "validation unavailable: no parser configured"
		v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unavailable")))
		return outcome
	}

	client, err := v.registry.Get(v.cfg.SecondaryModel)
	if err != nil {
		v.logger.Warn("cross-validation unavailable: secondary model not registered",
			"model", v.cfg.SecondaryModel, "error", err)
		outcome.Reason = "validation unavailable: secondary model not registered"
		v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unavailable")))
		return outcome
	}

	temp := req.Temperature
	raw, err := client.Generate(ctx, req.Prompt, llm.GenerationParams{
		Temperature:    &temp,
		ResponseSchema: req.Schema,
	})
	if err != nil {
		v.logger.Warn("cross-validation call failed, assuming primary valid", "error", err)
		outcome.Reason = "validation unavailable: secondary call failed"
		v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unavailable")))
		return outcome
	}

	secondary, _, err := req.Parser(raw)
	if err != nil {
		v.logger.Warn("cross-validation response unparsable, assuming primary valid", "error", err)
		outcome.Reason = "validation unavailable: secondary response unparsable"
		v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unavailable")))
		return outcome
	}

	secondary = ClampScore(secondary)
	divergence := math.Abs(req.PrimaryScore - secondary)
	outcome.SecondaryScore = &secondary
	outcome.Divergence = round2(divergence)
	outcome.WasValidated = true

	span.SetAttributes(
		attribute.Float64("divergence", outcome.Divergence),
		attribute.Float64("secondary_score", secondary),
	)

	if divergence <= v.cfg.DivergenceCeiling {
		v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "passed")))
		return outcome
	}

	outcome.ValidationPassed = false
	if v.cfg.UseAverageOnDivergence {
		outcome.FinalScore = (req.PrimaryScore + secondary) / 2
		outcome.Reason = fmt.Sprintf(
			"models diverged by %.1f points (ceiling %.1f); score reconciled to the average of %.1f and %.1f",
			divergence, v.cfg.DivergenceCeiling, req.PrimaryScore, secondary)
	} else {
		outcome.FinalScore = math.Min(req.PrimaryScore, secondary)
		outcome.Reason = fmt.Sprintf(
			"models diverged by %.1f points (ceiling %.1f); score reconciled to the minimum of %.1f and %.1f",
			divergence, v.cfg.DivergenceCeiling, req.PrimaryScore, secondary)
	}
	v.logger.Info("cross-validation divergence reconciled",
		"primary", req.PrimaryScore, "secondary", secondary,
		"divergence", divergence, "final", outcome.FinalScore)
	v.metrics.ValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "diverged")))
	return outcome
}
