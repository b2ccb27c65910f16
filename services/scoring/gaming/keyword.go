// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"context"
	"fmt"
)

// KeywordStuffingDetector flags answers that pack rubric keywords
// without substance.
//
// Description:
//
//	Counts occurrences of the category's primary and secondary
//	keywords, computes keyword density (occurrences / total words),
//	and scores on a linear ramp between the warning and critical
//	densities. Repeating any single keyword past the repetition cap
//	and a collapsed unique-word ratio on longer answers each add a
//	fixed surcharge. The score is capped at 100.
//
// Thread Safety: stateless; safe for concurrent use.
type KeywordStuffingDetector struct {
	cfg KeywordStuffingConfig
}

// NewKeywordStuffingDetector constructs the detector.
func NewKeywordStuffingDetector(cfg KeywordStuffingConfig) *KeywordStuffingDetector {
	return &KeywordStuffingDetector{cfg: cfg}
}

// Name implements Detector.
func (d *KeywordStuffingDetector) Name() DetectorName { return DetectorKeywordStuffing }

// Scan implements Detector. The scanner guarantees Context.Keywords is
// non-nil before dispatch; an empty keyword list simply scores zero.
func (d *KeywordStuffingDetector) Scan(_ context.Context, input *DetectionInput) DetectorResult {
	result := DetectorResult{Scores: map[DetectorName]float64{DetectorKeywordStuffing: 0}}

	totalWords := len(input.Words)
	input.Signals.TotalWords = totalWords
	input.Signals.UniqueWordRatio = round4(uniqueWordRatio(input.Words))
	if totalWords == 0 || input.Context.Keywords == nil {
		return result
	}

	keywords := append(append([]string{}, input.Context.Keywords.Primary...),
		input.Context.Keywords.Secondary...)

	occurrences := 0
	maxRepetition := 0
	var topKeyword string
	for _, kw := range keywords {
		n := countPhrase(input.Normalized, input.Words, kw)
		occurrences += n
		if n > maxRepetition {
			maxRepetition = n
			topKeyword = kw
		}
	}

	density := float64(occurrences) / float64(totalWords)
	input.Signals.KeywordOccurrences = occurrences
	input.Signals.KeywordDensity = round4(density)
	input.Signals.MaxKeywordRepetition = maxRepetition

	score := d.densityScore(density)
	if score > 0 {
		result.Flags = append(result.Flags,
			fmt.Sprintf("keyword density %.2f exceeds warning threshold %.2f",
				density, d.cfg.WarningDensity))
	}
	if d.cfg.RepetitionCap > 0 && maxRepetition > d.cfg.RepetitionCap {
		score += 20
		result.Flags = append(result.Flags,
			fmt.Sprintf("keyword %q repeated %d times (cap %d)",
				topKeyword, maxRepetition, d.cfg.RepetitionCap))
	}
	if totalWords > d.cfg.UniqueRatioMinWords && input.Signals.UniqueWordRatio < d.cfg.UniqueRatioFloor {
		score += 15
		result.Flags = append(result.Flags,
			fmt.Sprintf("unique word ratio %.2f below %.2f",
				input.Signals.UniqueWordRatio, d.cfg.UniqueRatioFloor))
	}

	result.Scores[DetectorKeywordStuffing] = clamp100(score)
	return result
}

// densityScore ramps from just above 0 at the warning density to 80 at
// the critical density, then climbs linearly toward 100 beyond it.
// Density exactly at the warning threshold must already score positive.
func (d *KeywordStuffingDetector) densityScore(density float64) float64 {
	if density < d.cfg.WarningDensity {
		return 0
	}
	if density >= d.cfg.CriticalDensity {
		return 80 + (density-d.cfg.CriticalDensity)*400
	}
	span := d.cfg.CriticalDensity - d.cfg.WarningDensity
	if span <= 0 {
		return 80
	}
	return 10 + 70*(density-d.cfg.WarningDensity)/span
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round4(v float64) float64 {
	return float64(int(v*10000+0.5)) / 10000
}
