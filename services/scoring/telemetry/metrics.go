// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics contains pre-defined metrics for the scoring-integrity pipeline.
//
// All metrics use the "scoring_" prefix for consistent naming.
//
// Thread Safety: safe for concurrent use after creation.
type Metrics struct {
	// --- Consistency branch ---

	// SamplesTotal counts scoring samples by outcome ("ok", "failed").
	SamplesTotal metric.Int64Counter

	// SampleLatency records per-sample model latency in seconds.
	SampleLatency metric.Float64Histogram

	// ValidationsTotal counts cross-model validations by outcome
	// ("passed", "diverged", "unavailable", "skipped").
	ValidationsTotal metric.Int64Counter

	// WeightAdjustments counts AI-weight reductions by cause.
	WeightAdjustments metric.Int64Counter

	// EvaluationsTotal counts consistency evaluations by confidence level.
	EvaluationsTotal metric.Int64Counter

	// EvaluationDuration records end-to-end evaluation time in seconds.
	EvaluationDuration metric.Float64Histogram

	// --- Gaming branch ---

	// DetectorRuns counts detector executions by detector and outcome.
	DetectorRuns metric.Int64Counter

	// DetectorScore records per-detector sub-scores (0-100).
	DetectorScore metric.Float64Histogram

	// RiskLevelTotal counts assessments by resulting risk level.
	RiskLevelTotal metric.Int64Counter

	// ScansTotal counts gaming scans by status.
	ScansTotal metric.Int64Counter
}

// NewMetrics registers all pipeline metrics with the provided meter.
//
// Inputs:
//
//	meter - The OTel meter to use for metric registration.
//
// Outputs:
//
//	*Metrics - The metrics instance.
//	error - Non-nil if any metric registration fails.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.SamplesTotal, err = meter.Int64Counter("scoring_samples_total",
		metric.WithDescription("Scoring model samples by outcome")); err != nil {
		return nil, fmt.Errorf("create scoring_samples_total: %w", err)
	}
	if m.SampleLatency, err = meter.Float64Histogram("scoring_sample_latency_seconds",
		metric.WithDescription("Per-sample scoring model latency")); err != nil {
		return nil, fmt.Errorf("create scoring_sample_latency_seconds: %w", err)
	}
	if m.ValidationsTotal, err = meter.Int64Counter("scoring_cross_validations_total",
		metric.WithDescription("Cross-model validations by outcome")); err != nil {
		return nil, fmt.Errorf("create scoring_cross_validations_total: %w", err)
	}
	if m.WeightAdjustments, err = meter.Int64Counter("scoring_weight_adjustments_total",
		metric.WithDescription("AI-weight reductions by cause")); err != nil {
		return nil, fmt.Errorf("create scoring_weight_adjustments_total: %w", err)
	}
	if m.EvaluationsTotal, err = meter.Int64Counter("scoring_evaluations_total",
		metric.WithDescription("Consistency evaluations by confidence level")); err != nil {
		return nil, fmt.Errorf("create scoring_evaluations_total: %w", err)
	}
	if m.EvaluationDuration, err = meter.Float64Histogram("scoring_evaluation_duration_seconds",
		metric.WithDescription("End-to-end consistency evaluation time")); err != nil {
		return nil, fmt.Errorf("create scoring_evaluation_duration_seconds: %w", err)
	}
	if m.DetectorRuns, err = meter.Int64Counter("scoring_detector_runs_total",
		metric.WithDescription("Detector executions by detector and outcome")); err != nil {
		return nil, fmt.Errorf("create scoring_detector_runs_total: %w", err)
	}
	if m.DetectorScore, err = meter.Float64Histogram("scoring_detector_score",
		metric.WithDescription("Per-detector sub-scores")); err != nil {
		return nil, fmt.Errorf("create scoring_detector_score: %w", err)
	}
	if m.RiskLevelTotal, err = meter.Int64Counter("scoring_risk_level_total",
		metric.WithDescription("Gaming assessments by risk level")); err != nil {
		return nil, fmt.Errorf("create scoring_risk_level_total: %w", err)
	}
	if m.ScansTotal, err = meter.Int64Counter("scoring_scans_total",
		metric.WithDescription("Gaming scans by status")); err != nil {
		return nil, fmt.Errorf("create scoring_scans_total: %w", err)
	}

	return m, nil
}

// NewNoopMetrics returns metrics backed by a no-op meter.
//
// Used by library consumers and tests that don't initialize telemetry.
func NewNoopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("scoring"))
	return m
}
