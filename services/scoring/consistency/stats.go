// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"math"
	"sort"
)

// Aggregate reduces a non-empty sample set to its statistics.
//
// Description:
//
//	Computes median (average of the two central values for even
//	counts), mean, population variance (divide by N), standard
//	deviation, and the confidence level implied by the variance.
//	The selected score is the rounded median when cfg.UseMedian is
//	set, otherwise the rounded mean. All float outputs are rounded
//	to 2 decimal places.
//
// Inputs:
//
//	samples - The samples to reduce. Must be non-empty.
//	cfg - Aggregation configuration (selection method, variance ceiling).
//
// Outputs:
//
//	AggregateStatistics - The derived statistics.
//	error - ErrEmptySamples if the sample set is empty.
func Aggregate(samples []Sample, cfg MultiSampleConfig) (AggregateStatistics, error) {
	if len(samples) == 0 {
		return AggregateStatistics{}, ErrEmptySamples
	}

	scores := make([]float64, len(samples))
	for i, s := range samples {
		scores[i] = s.Score
	}
	sort.Float64s(scores)

	med := median(scores)
	mn := mean(scores)
	variance := populationVariance(scores, mn)

	ceiling := cfg.VarianceConfidenceCeiling
	if ceiling <= 0 {
		ceiling = DefaultMultiSampleConfig().VarianceConfidenceCeiling
	}

	stats := AggregateStatistics{
		Samples:         samples,
		Median:          round2(med),
		Mean:            round2(mn),
		Variance:        round2(variance),
		StdDev:          round2(math.Sqrt(variance)),
		ConfidenceLevel: confidenceFromVariance(variance, ceiling),
	}
	if cfg.UseMedian {
		stats.SelectedScore = RoundScore(med)
		stats.SelectionMethod = SelectionMedian
	} else {
		stats.SelectedScore = RoundScore(mn)
		stats.SelectionMethod = SelectionMean
	}
	return stats, nil
}

// confidenceFromVariance maps population variance to a confidence level
// given the configured ceiling C: >2C very_low, >C low, >C/2 medium,
// otherwise high.
func confidenceFromVariance(variance, ceiling float64) ConfidenceLevel {
	switch {
	case variance > 2*ceiling:
		return ConfidenceVeryLow
	case variance > ceiling:
		return ConfidenceLow
	case variance > ceiling/2:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// ApproximateConfidenceFromAgreement derives a confidence level from an
// ensemble-agreement percentage without resampling.
//
// This is the pipeline's named approximation mode: when true
// multi-sampling is not re-run, the orchestrator maps the externally
// supplied agreement percentage onto the same confidence scale. It is
// a latency/cost trade-off, not genuine statistical resampling.
func ApproximateConfidenceFromAgreement(agreementPct float64, cfg WeightConfig) ConfidenceLevel {
	switch {
	case agreementPct < cfg.VeryLowAgreementThreshold:
		return ConfidenceVeryLow
	case agreementPct < cfg.LowAgreementThreshold:
		return ConfidenceLow
	case agreementPct < 80:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// RoundScore clamps a score into [0,100] and rounds to the nearest
// integer. Applied at every externalization point.
func RoundScore(score float64) int {
	return int(math.Round(ClampScore(score)))
}

// ClampScore clamps a score into [0,100] without rounding.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// populationVariance divides by N, not N-1; the samples are the whole
// population of calls made for this submission.
func populationVariance(scores []float64, mean float64) float64 {
	var sum float64
	for _, s := range scores {
		d := s - mean
		sum += d * d
	}
	return sum / float64(len(scores))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
