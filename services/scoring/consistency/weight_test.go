// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"strings"
	"testing"
)

func TestAdjust_NoReduction(t *testing.T) {
	w := NewConfidenceWeighter(DefaultWeightConfig())
	adj := w.Adjust(0.7, ConfidenceHigh, 90)
	if adj.Reduced {
		t.Error("expected no reduction for high confidence and high agreement")
	}
	if adj.AdjustedWeight != 0.7 {
		t.Errorf("adjusted = %v, want 0.7", adj.AdjustedWeight)
	}
	if adj.Reason != "" {
		t.Errorf("unexpected reason: %q", adj.Reason)
	}
}

func TestAdjust_LowConfidence(t *testing.T) {
	w := NewConfidenceWeighter(DefaultWeightConfig())
	adj := w.Adjust(0.7, ConfidenceLow, 90)
	if !adj.Reduced {
		t.Fatal("expected reduction")
	}
	if adj.AdjustedWeight != 0.56 {
		t.Errorf("adjusted = %v, want 0.56", adj.AdjustedWeight)
	}
	if !strings.Contains(adj.Reason, "sampling confidence low") {
		t.Errorf("reason missing cause: %q", adj.Reason)
	}
}

func TestAdjust_StackedReductions(t *testing.T) {
	// very_low confidence (x0.6) plus agreement below 40 (x0.6) on 0.7
	// gives 0.252.
	w := NewConfidenceWeighter(DefaultWeightConfig())
	adj := w.Adjust(0.7, ConfidenceVeryLow, 30)
	if adj.AdjustedWeight != 0.25 {
		t.Errorf("adjusted = %v, want 0.25", adj.AdjustedWeight)
	}
	if !strings.Contains(adj.Reason, "; ") {
		t.Errorf("expected composed reason, got %q", adj.Reason)
	}
}

func TestAdjust_FloorBounds(t *testing.T) {
	w := NewConfidenceWeighter(DefaultWeightConfig())
	// Exhaustive sweep: the invariant [0.2, base] must hold for any
	// level/agreement combination with base >= floor.
	levels := []ConfidenceLevel{ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceVeryLow}
	for _, level := range levels {
		for pct := 0.0; pct <= 100; pct += 5 {
			for _, base := range []float64{0.2, 0.4, 0.7, 1.0} {
				adj := w.Adjust(base, level, pct)
				if adj.AdjustedWeight < 0.2 || adj.AdjustedWeight > base {
					t.Fatalf("Adjust(%v, %v, %v) = %v outside [0.2, %v]",
						base, level, pct, adj.AdjustedWeight, base)
				}
			}
		}
	}
}

func TestAdjust_FloorClampReported(t *testing.T) {
	w := NewConfidenceWeighter(DefaultWeightConfig())
	// 0.25 * 0.6 * 0.6 = 0.09, clamped to the 0.2 floor.
	adj := w.Adjust(0.25, ConfidenceVeryLow, 10)
	if adj.AdjustedWeight != 0.2 {
		t.Errorf("adjusted = %v, want floor 0.2", adj.AdjustedWeight)
	}
	if !adj.Reduced {
		t.Error("floor-clamped weight below base must still report reduction")
	}
}
