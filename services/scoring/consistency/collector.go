// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/llm"
	"github.com/talentforge/TalentForge/services/scoring/telemetry"
)

// SampleCollector fans out N independent scoring calls at varying
// temperatures and aggregates the settled results.
//
// Individual call failures are logged and dropped, never propagated:
// a missing sample is "less signal", not an error. If every call
// fails, the collector returns an empty very_low-confidence aggregate.
//
// Thread Safety: safe for concurrent use after construction.
type SampleCollector struct {
	client  llm.Client
	cfg     MultiSampleConfig
	logger  *logging.Logger
	metrics *telemetry.Metrics
}

// NewSampleCollector creates a collector for the given scoring client.
//
// Inputs:
//
//	client - The primary scoring model client.
//	cfg - Multi-sample configuration.
//	logger - Structured logger. Defaults to logging.Default() when nil.
//	metrics - Pipeline metrics. Defaults to no-op metrics when nil.
func NewSampleCollector(client llm.Client, cfg MultiSampleConfig, logger *logging.Logger, metrics *telemetry.Metrics) *SampleCollector {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &SampleCollector{client: client, cfg: cfg, logger: logger, metrics: metrics}
}

// Collect runs the fan-out and returns the aggregated statistics.
//
// Description:
//
//	Issues cfg.SampleCount concurrent scoring calls, one per
//	configured temperature (cycled when fewer temperatures than
//	samples are configured). Waits for all calls to settle before
//	aggregating, so cancellation can never corrupt the aggregate.
//
//	Disabled configuration returns a placeholder aggregate with high
//	confidence and zero score, which callers interpret as "skip".
//	All calls failing returns an empty aggregate with very_low
//	confidence. Neither case is an error.
//
// Inputs:
//
//	ctx - Context for cancellation; in-flight calls are abandoned on cancel.
//	req - The collection request. req.Parser is required.
//
// Outputs:
//
//	AggregateStatistics - The aggregate. Never nil-equivalent.
//	error - ErrNilParser only; transient model failures never surface.
func (c *SampleCollector) Collect(ctx context.Context, req CollectRequest) (AggregateStatistics, error) {
	if !c.cfg.Enabled {
		return AggregateStatistics{
			ConfidenceLevel: ConfidenceHigh,
			SelectionMethod: SelectionSingle,
		}, nil
	}
	if req.Parser == nil {
		return AggregateStatistics{}, ErrNilParser
	}

	ctx, span := telemetry.StartSpan(ctx, "scoring.consistency", "SampleCollector.Collect")
	defer span.End()

	count := c.cfg.SampleCount
	if count < 2 {
		count = 2
	}
	if count > 3 {
		count = 3
	}
	temps := c.cfg.Temperatures
	if len(temps) == 0 {
		temps = DefaultMultiSampleConfig().Temperatures
	}

	results := make([]*Sample, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			temp := temps[idx%len(temps)]
			sample, err := c.collectOne(ctx, req, temp)
			if err != nil {
				c.logger.Warn("sample call failed, dropping sample",
					"index", idx, "temperature", temp, "error", err)
				c.metrics.SamplesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
				return
			}
			c.metrics.SamplesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
			c.metrics.SampleLatency.Record(ctx, float64(sample.LatencyMs)/1000)
			results[idx] = sample
		}(i)
	}
	wg.Wait()

	samples := make([]Sample, 0, count)
	for _, s := range results {
		if s != nil {
			samples = append(samples, *s)
		}
	}

	if len(samples) == 0 {
		c.logger.Warn("all sample calls failed, returning degenerate aggregate")
		span.SetAttributes(attribute.Int("samples.collected", 0))
		return AggregateStatistics{
			Samples:         []Sample{},
			ConfidenceLevel: ConfidenceVeryLow,
			SelectionMethod: SelectionSingle,
		}, nil
	}

	stats, err := Aggregate(samples, c.cfg)
	if err != nil {
		// Unreachable with a non-empty set; degrade anyway.
		return AggregateStatistics{
			Samples:         []Sample{},
			ConfidenceLevel: ConfidenceVeryLow,
			SelectionMethod: SelectionSingle,
		}, nil
	}
	span.SetAttributes(
		attribute.Int("samples.collected", len(samples)),
		attribute.String("confidence", string(stats.ConfidenceLevel)),
		attribute.Float64("variance", stats.Variance),
	)
	return stats, nil
}

// collectOne issues a single scoring call and parses the result.
func (c *SampleCollector) collectOne(ctx context.Context, req CollectRequest, temperature float32) (*Sample, error) {
	temp := temperature
	start := time.Now()
	raw, err := c.client.Generate(ctx, req.Prompt, llm.GenerationParams{
		Temperature:    &temp,
		ResponseSchema: req.Schema,
	})
	latency := time.Since(start)
	if err != nil {
		return nil, err
	}
	score, feedback, err := req.Parser(raw)
	if err != nil {
		return nil, err
	}
	return &Sample{
		Score:             ClampScore(score),
		SourceTemperature: temperature,
		RawText:           feedback,
		LatencyMs:         uint64(latency.Milliseconds()),
	}, nil
}
