// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"errors"
	"testing"
)

func samplesFrom(scores ...float64) []Sample {
	out := make([]Sample, len(scores))
	for i, s := range scores {
		out[i] = Sample{Score: s}
	}
	return out
}

func TestAggregate_EmptySet(t *testing.T) {
	_, err := Aggregate(nil, DefaultMultiSampleConfig())
	if !errors.Is(err, ErrEmptySamples) {
		t.Fatalf("expected ErrEmptySamples, got %v", err)
	}
}

func TestAggregate_MedianOddEven(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"single", []float64{70}, 70},
		{"odd", []float64{60, 90, 70}, 70},
		{"even", []float64{60, 70, 80, 90}, 75},
		{"even_two", []float64{80, 90}, 85},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats, err := Aggregate(samplesFrom(tc.scores...), DefaultMultiSampleConfig())
			if err != nil {
				t.Fatalf("Aggregate: %v", err)
			}
			if stats.Median != tc.want {
				t.Errorf("median = %v, want %v", stats.Median, tc.want)
			}
		})
	}
}

func TestAggregate_PopulationVariance(t *testing.T) {
	// Population variance of {70, 80, 90} around mean 80 is 200/3.
	stats, err := Aggregate(samplesFrom(70, 80, 90), DefaultMultiSampleConfig())
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if stats.Mean != 80 {
		t.Errorf("mean = %v, want 80", stats.Mean)
	}
	if stats.Variance != 66.67 {
		t.Errorf("variance = %v, want 66.67", stats.Variance)
	}
	if stats.Variance < 0 {
		t.Error("variance must be non-negative")
	}
}

func TestAggregate_ConfidenceMonotonic(t *testing.T) {
	cfg := DefaultMultiSampleConfig() // ceiling 100
	cases := []struct {
		variance float64
		want     ConfidenceLevel
	}{
		{0, ConfidenceHigh},
		{50, ConfidenceHigh},
		{50.01, ConfidenceMedium},
		{100, ConfidenceMedium},
		{100.01, ConfidenceLow},
		{200, ConfidenceLow},
		{200.01, ConfidenceVeryLow},
	}
	for _, tc := range cases {
		got := confidenceFromVariance(tc.variance, cfg.VarianceConfidenceCeiling)
		if got != tc.want {
			t.Errorf("confidence(variance=%v) = %v, want %v", tc.variance, got, tc.want)
		}
	}
}

func TestAggregate_SelectionMethod(t *testing.T) {
	cfg := DefaultMultiSampleConfig()
	cfg.UseMedian = true
	stats, _ := Aggregate(samplesFrom(60, 70, 95), cfg)
	if stats.SelectionMethod != SelectionMedian || stats.SelectedScore != 70 {
		t.Errorf("median selection: got %v/%d", stats.SelectionMethod, stats.SelectedScore)
	}

	cfg.UseMedian = false
	stats, _ = Aggregate(samplesFrom(60, 70, 95), cfg)
	if stats.SelectionMethod != SelectionMean || stats.SelectedScore != 75 {
		t.Errorf("mean selection: got %v/%d", stats.SelectionMethod, stats.SelectedScore)
	}
}

func TestRoundScore_Clamping(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{49.5, 50},
		{49.4, 49},
		{100, 100},
		{104.2, 100},
	}
	for _, tc := range cases {
		if got := RoundScore(tc.in); got != tc.want {
			t.Errorf("RoundScore(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestApproximateConfidenceFromAgreement(t *testing.T) {
	cfg := DefaultWeightConfig()
	cases := []struct {
		pct  float64
		want ConfidenceLevel
	}{
		{10, ConfidenceVeryLow},
		{39.9, ConfidenceVeryLow},
		{40, ConfidenceLow},
		{59.9, ConfidenceLow},
		{60, ConfidenceMedium},
		{79.9, ConfidenceMedium},
		{80, ConfidenceHigh},
		{100, ConfidenceHigh},
	}
	for _, tc := range cases {
		if got := ApproximateConfidenceFromAgreement(tc.pct, cfg); got != tc.want {
			t.Errorf("approx(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}
