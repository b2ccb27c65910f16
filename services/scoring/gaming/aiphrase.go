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
	"math"
)

// AIGeneratedDetector flags text that looks machine-written.
//
// Description:
//
//	Three independent signals feed the sub-score: occurrences of
//	weighted telltale phrases, sentence-length burstiness (the
//	coefficient of variation of sentence word counts, which machine
//	text keeps suspiciously low), and the density of formal
//	connectives per fifty words. The phrase signal accumulates into a
//	0-100 phrase score but only contributes once enough distinct
//	occurrences are matched: three take a base of 40, six a base of
//	70, each plus a 30% share of the phrase score. The structural
//	signals add fixed surcharges.
//
// Thread Safety: stateless; safe for concurrent use.
type AIGeneratedDetector struct {
	cfg AIDetectorConfig
}

// NewAIGeneratedDetector constructs the detector.
func NewAIGeneratedDetector(cfg AIDetectorConfig) *AIGeneratedDetector {
	return &AIGeneratedDetector{cfg: cfg}
}

// Name implements Detector.
func (d *AIGeneratedDetector) Name() DetectorName { return DetectorAIGenerated }

// Scan implements Detector.
func (d *AIGeneratedDetector) Scan(_ context.Context, input *DetectionInput) DetectorResult {
	result := DetectorResult{Scores: map[DetectorName]float64{DetectorAIGenerated: 0}}
	if len(input.Words) == 0 {
		return result
	}

	phraseCount, phraseScore := d.phraseSignal(input)
	input.Signals.AIPhraseCount = phraseCount
	input.Signals.AIPhraseScore = round4(phraseScore)

	sentences := splitSentences(input.Text)
	input.Signals.SentenceCount = len(sentences)
	if len(sentences) > 0 {
		input.Signals.AvgSentenceLength = round4(float64(len(input.Words)) / float64(len(sentences)))
	}

	burstiness, measured := d.burstiness(sentences)
	if measured {
		input.Signals.Burstiness = round4(burstiness)
		input.Signals.UniformPattern = len(sentences) >= d.cfg.UniformPatternMinSentences &&
			burstiness < d.cfg.BurstinessThreshold
	}

	formality := d.formality(input.Words)
	input.Signals.FormalityScore = round4(formality)

	score := 0.0
	switch {
	case phraseCount >= d.cfg.ManyPhrasesCount:
		score = 70 + 0.3*phraseScore
	case phraseCount >= d.cfg.SomePhrasesCount:
		score = 40 + 0.3*phraseScore
	}
	if phraseCount > 0 {
		result.Flags = append(result.Flags,
			fmt.Sprintf("%d known machine-text phrases found", phraseCount))
	}
	if input.Signals.UniformPattern {
		score += 15
		result.Flags = append(result.Flags,
			fmt.Sprintf("uniform sentence lengths (burstiness %.2f)", burstiness))
	}
	if formality > d.cfg.FormalityThreshold {
		score += 10
		result.Flags = append(result.Flags,
			fmt.Sprintf("high formal-connective density (%.2f per 50 words)", formality))
	}

	result.Scores[DetectorAIGenerated] = clamp100(score)
	return result
}

// phraseSignal accumulates weight*confidence*100 per phrase
// occurrence, capped at 100.
func (d *AIGeneratedDetector) phraseSignal(input *DetectionInput) (int, float64) {
	count := 0
	score := 0.0
	for phrase, w := range d.cfg.Phrases {
		n := countPhrase(input.Normalized, input.Words, phrase)
		if n == 0 {
			continue
		}
		count += n
		score += float64(n) * w.Weight * w.Confidence * 100
	}
	return count, math.Min(100, score)
}

// burstiness returns the coefficient of variation of sentence word
// counts. Too few sentences means the signal cannot be measured.
func (d *AIGeneratedDetector) burstiness(sentences []string) (float64, bool) {
	if len(sentences) < d.cfg.BurstinessMinSentences {
		return 0, false
	}
	counts := sentenceWordCounts(sentences)
	sum := 0
	for _, c := range counts {
		sum += c
	}
	mean := float64(sum) / float64(len(counts))
	if mean == 0 {
		return 0, false
	}
	variance := 0.0
	for _, c := range counts {
		diff := float64(c) - mean
		variance += diff * diff
	}
	variance /= float64(len(counts))
	return math.Sqrt(variance) / mean, true
}

// formality counts formal connectives per fifty words.
func (d *AIGeneratedDetector) formality(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	formal := make(map[string]bool, len(d.cfg.FormalWords))
	for _, w := range d.cfg.FormalWords {
		formal[Normalize(w)] = true
	}
	count := 0
	for _, w := range words {
		if formal[trimWordPunct(w)] {
			count++
		}
	}
	return float64(count) * 50 / float64(len(words))
}
