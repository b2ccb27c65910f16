// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/scoring/telemetry"
)

// Scanner runs the gaming detectors over a submission and classifies
// the combined risk.
//
// Detectors run concurrently; each writes only its own fields of the
// shared GamingSignals record, so no synchronization beyond the join
// is needed.
//
// Thread Safety: safe for concurrent use after construction.
type Scanner struct {
	detectors  []Detector
	classifier *RiskClassifier
	logger     *logging.Logger
	metrics    *telemetry.Metrics
}

// NewScanner creates a scanner with the standard four detectors.
//
// Inputs:
//
//	cfg - Pipeline configuration. Use DefaultConfig() for defaults.
//	templates - Known-template source for the copy detector; may be nil.
//	logger - Structured logger. Defaults to logging.Default() when nil.
//	metrics - Pipeline metrics. Defaults to no-op metrics when nil.
func NewScanner(cfg Config, templates TemplateSource, logger *logging.Logger, metrics *telemetry.Metrics) *Scanner {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Scanner{
		detectors: []Detector{
			NewKeywordStuffingDetector(cfg.KeywordStuffing),
			NewAIGeneratedDetector(cfg.AIDetector),
			NewLowEffortDetector(cfg.LowEffort),
			NewCopyDetector(cfg.Copy, templates),
		},
		classifier: NewRiskClassifier(cfg.Risk),
		logger:     logger,
		metrics:    metrics,
	}
}

// DetectGaming scans one submission and returns the risk verdict.
//
// Description:
//
//	Pre-tokenizes the text once, fans the detectors out concurrently,
//	merges their sub-scores and flags, and hands the merged picture
//	to the risk classifier. Detection never raises transient errors:
//	the only failures are contract violations (empty text, missing
//	keyword configuration).
//
// Inputs:
//
//	ctx - Context for cancellation.
//	text - The raw submission text.
//	dctx - Per-game collaborator inputs (keywords, reference
//	       solution, template game ID, velocity signal).
//
// Outputs:
//
//	*GamingDetectionResult - The signals and assessment.
//	error - ErrEmptySubmission or ErrMissingKeywords.
func (s *Scanner) DetectGaming(ctx context.Context, text string, dctx DetectionContext) (*GamingDetectionResult, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "scoring.gaming", "Scanner.DetectGaming")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		s.metrics.ScansTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("status", "rejected_input")))
		telemetry.RecordError(span, ErrEmptySubmission)
		return nil, ErrEmptySubmission
	}
	if dctx.Keywords == nil {
		s.metrics.ScansTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("status", "rejected_input")))
		telemetry.RecordError(span, ErrMissingKeywords)
		return nil, ErrMissingKeywords
	}

	signals := &GamingSignals{SubmissionsLastHour: dctx.SubmissionsLastHour}
	normalized := Normalize(text)
	input := &DetectionInput{
		Text:       text,
		Normalized: normalized,
		Words:      strings.Fields(normalized),
		Context:    dctx,
		Signals:    signals,
	}

	results := make([]DetectorResult, len(s.detectors))
	var wg sync.WaitGroup
	for i, det := range s.detectors {
		wg.Add(1)
		go func(i int, det Detector) {
			defer wg.Done()
			results[i] = det.Scan(ctx, input)
			s.metrics.DetectorRuns.Add(ctx, 1,
				metric.WithAttributes(attribute.String("detector", string(det.Name()))))
		}(i, det)
	}
	wg.Wait()

	scores := make(map[DetectorName]float64)
	var flags []string
	for _, r := range results {
		for name, score := range r.Scores {
			scores[name] = score
			s.metrics.DetectorScore.Record(ctx, score,
				metric.WithAttributes(attribute.String("detector", string(name))))
		}
		flags = append(flags, r.Flags...)
	}
	sort.Strings(flags)

	assessment := s.classifier.Classify(scores, flags, signals)

	result := &GamingDetectionResult{
		EvaluationID: uuid.NewString(),
		Signals:      *signals,
		Assessment:   assessment,
		Elapsed:      time.Since(start),
	}

	span.SetAttributes(
		attribute.String("evaluation_id", result.EvaluationID),
		attribute.String("risk_level", string(assessment.OverallRisk)),
		attribute.Int("risk_score", assessment.RiskScore),
		attribute.String("action", string(assessment.RecommendedAction)),
	)
	s.metrics.RiskLevelTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("level", string(assessment.OverallRisk))))
	s.metrics.ScansTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", "ok")))

	if assessment.OverallRisk != RiskNone {
		s.logger.Info("gaming risk detected",
			"evaluation_id", result.EvaluationID,
			"risk_level", string(assessment.OverallRisk),
			"risk_score", assessment.RiskScore,
			"action", string(assessment.RecommendedAction),
			"flags", assessment.Flags)
	}
	return result, nil
}
