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
	"regexp"
)

var (
	// placeholderPattern matches unfilled template slots like [insert
	// answer here], {company}, <your name>, or "lorem ipsum" filler.
	placeholderPattern = regexp.MustCompile(
		`(?i)(\[[^\]]{0,60}\]|\{[^}]{0,60}\}|<[^>]{0,60}>|lorem ipsum|xxx+|placeholder)`)

	// incompletePattern matches trailing-off and unfinished markers.
	incompletePattern = regexp.MustCompile(
		`(?i)\b(tbd|todo|wip|to be continued|to be completed|etc etc|and so on and so on)\b|\.\.\.\s*$`)
)

// LowEffortDetector flags minimal or unfinished answers.
//
// Description:
//
//	Very short answers take a penalty proportional to the shortfall
//	against the minimum word count; a collapsed average sentence
//	length, unfilled placeholders, and incompleteness markers each
//	add a fixed surcharge.
//
// Thread Safety: stateless; safe for concurrent use.
type LowEffortDetector struct {
	cfg LowEffortConfig
}

// NewLowEffortDetector constructs the detector.
func NewLowEffortDetector(cfg LowEffortConfig) *LowEffortDetector {
	return &LowEffortDetector{cfg: cfg}
}

// Name implements Detector.
func (d *LowEffortDetector) Name() DetectorName { return DetectorLowEffort }

// Scan implements Detector.
func (d *LowEffortDetector) Scan(_ context.Context, input *DetectionInput) DetectorResult {
	result := DetectorResult{Scores: map[DetectorName]float64{DetectorLowEffort: 0}}

	totalWords := len(input.Words)
	score := 0.0
	if totalWords < d.cfg.MinWords {
		shortfall := float64(d.cfg.MinWords-totalWords) / float64(d.cfg.MinWords)
		score += d.cfg.ShortfallMaxPenalty * shortfall
		result.Flags = append(result.Flags,
			fmt.Sprintf("only %d words (minimum %d)", totalWords, d.cfg.MinWords))
	}

	sentences := splitSentences(input.Text)
	if len(sentences) > 1 && totalWords > 0 {
		avg := float64(totalWords) / float64(len(sentences))
		if avg < d.cfg.ShortSentenceAvg {
			score += d.cfg.ShortSentencePenalty
			result.Flags = append(result.Flags,
				fmt.Sprintf("average sentence length %.1f words", avg))
		}
	}

	if placeholderPattern.MatchString(input.Text) {
		input.Signals.HasPlaceholders = true
		score += 30
		result.Flags = append(result.Flags, "unfilled placeholder text present")
	}
	if incompletePattern.MatchString(input.Text) {
		input.Signals.HasIncompleteMarkers = true
		score += 40
		result.Flags = append(result.Flags, "incompleteness markers present")
	}

	result.Scores[DetectorLowEffort] = clamp100(score)
	return result
}
