// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

// MultiSampleConfig configures the sample collector and aggregator.
type MultiSampleConfig struct {
	// Enabled determines if multi-sampling is active. When false the
	// collector returns a placeholder aggregate that callers treat as
	// "skip".
	Enabled bool `json:"enabled"`

	// SampleCount is the number of samples to collect (2 or 3).
	SampleCount int `json:"sample_count"`

	// Temperatures are the per-sample temperatures. Shorter lists are
	// cycled; the default pairs low and moderate temperatures so that
	// agreement is informative.
	Temperatures []float32 `json:"temperatures"`

	// UseMedian selects the median as the aggregate score; otherwise
	// the mean is used.
	UseMedian bool `json:"use_median"`

	// VarianceConfidenceCeiling is the variance C at which confidence
	// degrades to "low" (2C degrades to "very_low"). Default 100,
	// i.e. roughly a 10-point standard deviation.
	VarianceConfidenceCeiling float64 `json:"variance_confidence_ceiling"`
}

// DefaultMultiSampleConfig returns sensible defaults.
func DefaultMultiSampleConfig() MultiSampleConfig {
	return MultiSampleConfig{
		Enabled:                   true,
		SampleCount:               3,
		Temperatures:              []float32{0.2, 0.5, 0.8},
		UseMedian:                 true,
		VarianceConfidenceCeiling: 100,
	}
}

// CrossValidationConfig configures the cross-model validator.
type CrossValidationConfig struct {
	// Enabled determines if cross-validation is active.
	Enabled bool `json:"enabled"`

	// SecondaryModel is the registry ID of the independent model.
	SecondaryModel string `json:"secondary_model"`

	// StakesThreshold is the primary score at or above which the
	// secondary model is consulted. Default 85.
	StakesThreshold float64 `json:"stakes_threshold"`

	// DivergenceCeiling is the maximum tolerated |primary - secondary|.
	// Default 15.
	DivergenceCeiling float64 `json:"divergence_ceiling"`

	// UseAverageOnDivergence reconciles divergence with the average of
	// the two scores; when false the minimum is used.
	UseAverageOnDivergence bool `json:"use_average_on_divergence"`
}

// DefaultCrossValidationConfig returns sensible defaults.
func DefaultCrossValidationConfig() CrossValidationConfig {
	return CrossValidationConfig{
		Enabled:                true,
		SecondaryModel:         "secondary",
		StakesThreshold:        85,
		DivergenceCeiling:      15,
		UseAverageOnDivergence: true,
	}
}

// WeightConfig configures the confidence weighter.
type WeightConfig struct {
	// LowMultiplier is applied for "low" confidence. Default 0.8.
	LowMultiplier float64 `json:"low_multiplier"`

	// VeryLowMultiplier is applied for "very_low" confidence. Default 0.6.
	VeryLowMultiplier float64 `json:"very_low_multiplier"`

	// LowAgreementThreshold is the ensemble-confidence percentage below
	// which the low multiplier applies. Default 60.
	LowAgreementThreshold float64 `json:"low_agreement_threshold"`

	// VeryLowAgreementThreshold is the ensemble-confidence percentage
	// below which the very-low multiplier applies. Default 40.
	VeryLowAgreementThreshold float64 `json:"very_low_agreement_threshold"`

	// MinWeight is the floor on the adjusted AI weight so that low
	// confidence can never eliminate the model's contribution. Default 0.2.
	MinWeight float64 `json:"min_weight"`
}

// DefaultWeightConfig returns sensible defaults.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		LowMultiplier:             0.8,
		VeryLowMultiplier:         0.6,
		LowAgreementThreshold:     60,
		VeryLowAgreementThreshold: 40,
		MinWeight:                 0.2,
	}
}

// Config bundles the consistency pipeline configuration.
type Config struct {
	MultiSample     MultiSampleConfig     `json:"multi_sample"`
	CrossValidation CrossValidationConfig `json:"cross_validation"`
	Weight          WeightConfig          `json:"weight"`

	// PrimaryModel is the registry ID of the primary scoring model.
	PrimaryModel string `json:"primary_model"`
}

// DefaultConfig returns defaults for the whole consistency pipeline.
func DefaultConfig() Config {
	return Config{
		MultiSample:     DefaultMultiSampleConfig(),
		CrossValidation: DefaultCrossValidationConfig(),
		Weight:          DefaultWeightConfig(),
		PrimaryModel:    "primary",
	}
}
