// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"fmt"
	"strings"
)

// ConfidenceWeighter adjusts how much weight the model's score carries
// in the caller's final blended score.
//
// The weighter applies multiplicative reductions for low sampling
// confidence and low ensemble agreement, then clamps to a floor so the
// model's contribution is never eliminated entirely.
type ConfidenceWeighter struct {
	cfg WeightConfig
}

// NewConfidenceWeighter creates a weighter with the given configuration.
func NewConfidenceWeighter(cfg WeightConfig) *ConfidenceWeighter {
	return &ConfidenceWeighter{cfg: cfg}
}

// WeightAdjustment is the result of one weight computation.
type WeightAdjustment struct {
	// BaseWeight is the caller-supplied weight before adjustment.
	BaseWeight float64 `json:"base_weight"`

	// AdjustedWeight is the final weight in [MinWeight, BaseWeight].
	AdjustedWeight float64 `json:"adjusted_weight"`

	// Reduced is true when any reduction applied.
	Reduced bool `json:"reduced"`

	// Reason is a composed human-readable explanation of the
	// reductions, empty when none applied.
	Reason string `json:"reason,omitempty"`
}

// Adjust computes the adjusted AI weight.
//
// Description:
//
//	Applies, in order: the low multiplier for "low" sampling
//	confidence or the very-low multiplier for "very_low"; then a
//	second multiplier keyed on the ensemble-agreement percentage
//	(very-low threshold first, then low). The result is clamped to
//	[MinWeight, baseWeight].
//
// Inputs:
//
//	baseWeight - The base AI weight, a fraction in [0,1].
//	level - The sampling confidence level.
//	ensembleConfidence - The external agreement percentage (0-100).
//
// Outputs:
//
//	WeightAdjustment - Adjusted weight plus an audit reason.
func (w *ConfidenceWeighter) Adjust(baseWeight float64, level ConfidenceLevel, ensembleConfidence float64) WeightAdjustment {
	adjusted := baseWeight
	var reasons []string

	switch level {
	case ConfidenceLow:
		adjusted *= w.cfg.LowMultiplier
		reasons = append(reasons, fmt.Sprintf("sampling confidence low (x%.2f)", w.cfg.LowMultiplier))
	case ConfidenceVeryLow:
		adjusted *= w.cfg.VeryLowMultiplier
		reasons = append(reasons, fmt.Sprintf("sampling confidence very low (x%.2f)", w.cfg.VeryLowMultiplier))
	}

	switch {
	case ensembleConfidence < w.cfg.VeryLowAgreementThreshold:
		adjusted *= w.cfg.VeryLowMultiplier
		reasons = append(reasons, fmt.Sprintf("ensemble agreement %.0f%% below %.0f%% (x%.2f)",
			ensembleConfidence, w.cfg.VeryLowAgreementThreshold, w.cfg.VeryLowMultiplier))
	case ensembleConfidence < w.cfg.LowAgreementThreshold:
		adjusted *= w.cfg.LowMultiplier
		reasons = append(reasons, fmt.Sprintf("ensemble agreement %.0f%% below %.0f%% (x%.2f)",
			ensembleConfidence, w.cfg.LowAgreementThreshold, w.cfg.LowMultiplier))
	}

	// Floor before ceiling: a base weight below the floor stays put.
	if adjusted < w.cfg.MinWeight {
		adjusted = w.cfg.MinWeight
	}
	if adjusted > baseWeight {
		adjusted = baseWeight
	}

	adj := WeightAdjustment{
		BaseWeight:     baseWeight,
		AdjustedWeight: round2(adjusted),
		Reduced:        adjusted < baseWeight,
	}
	if adj.Reduced {
		adj.Reason = "ai weight reduced: " + strings.Join(reasons, "; ")
	}
	return adj
}
