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

// TemplateSource supplies the known-template entries for a game.
//
// The catalog package provides a SQLite-backed implementation; tests
// use in-memory fakes. A nil source disables template matching.
type TemplateSource interface {
	// ActiveTemplates returns the active template entries for a game.
	ActiveTemplates(ctx context.Context, gameID string) ([]TemplateEntry, error)
}

// CopyDetector flags answers lifted from the reference solution or
// from a known answer template.
//
// Description:
//
//	Compares the submission against the game's reference solution
//	with word-trigram Jaccard similarity and against the template
//	catalog. An exact normalized match of the reference scores 100;
//	similarity ramps linearly to 90 at the critical threshold and on
//	to 100 at identity. The detector emits two categories: copy_paste
//	for the reference comparison and template_match for the catalog
//	comparison.
//
//	Missing optional inputs degrade: no reference solution means a
//	zero copy score, and a nil or failing template source means a
//	zero template score.
//
// Thread Safety: stateless; safe for concurrent use.
type CopyDetector struct {
	cfg       CopyDetectorConfig
	templates TemplateSource
}

// NewCopyDetector constructs the detector. templates may be nil.
func NewCopyDetector(cfg CopyDetectorConfig, templates TemplateSource) *CopyDetector {
	return &CopyDetector{cfg: cfg, templates: templates}
}

// Name implements Detector.
func (d *CopyDetector) Name() DetectorName { return DetectorCopyPaste }

// Scan implements Detector.
func (d *CopyDetector) Scan(ctx context.Context, input *DetectionInput) DetectorResult {
	result := DetectorResult{Scores: map[DetectorName]float64{
		DetectorCopyPaste:     0,
		DetectorTemplateMatch: 0,
	}}
	if len(input.Words) == 0 {
		return result
	}

	if ref := input.Context.ReferenceSolution; ref != "" {
		sim := Similarity(input.Text, ref, d.cfg.NGramSize)
		input.Signals.ExampleSimilarity = round4(sim)
		if Normalize(input.Text) == Normalize(ref) {
			input.Signals.ExactCopy = true
			result.Scores[DetectorCopyPaste] = 100
			result.Flags = append(result.Flags, "exact copy of reference solution")
		} else if score := d.similarityScore(sim); score > 0 {
			result.Scores[DetectorCopyPaste] = score
			result.Flags = append(result.Flags,
				fmt.Sprintf("%.0f%% similar to reference solution", sim*100))
		}
	}

	if d.templates != nil && input.Context.GameID != "" {
		entries, err := d.templates.ActiveTemplates(ctx, input.Context.GameID)
		if err != nil {
			// Degrade: catalog unavailability must not fail the scan.
			return result
		}
		match := BestTemplateMatch(input.Text, entries, d.cfg.NGramSize, d.cfg.DefaultTemplateThreshold)
		if match != nil {
			input.Signals.TemplateSimilarity = round4(match.Similarity)
			input.Signals.TemplateType = match.Type
			result.Scores[DetectorTemplateMatch] = d.templateScore(match.Similarity)
			result.Flags = append(result.Flags,
				fmt.Sprintf("matches known template %q (%.0f%% similar)",
					match.Type, match.Similarity*100))
		}
	}

	return result
}

// similarityScore ramps from 40 at the warning similarity to 90 at the
// critical similarity, then on to 100 at identity.
func (d *CopyDetector) similarityScore(sim float64) float64 {
	if sim < d.cfg.WarningSimilarity {
		return 0
	}
	if sim >= d.cfg.CriticalSimilarity {
		span := 1 - d.cfg.CriticalSimilarity
		if span <= 0 {
			return 90
		}
		return clamp100(90 + 10*(sim-d.cfg.CriticalSimilarity)/span)
	}
	span := d.cfg.CriticalSimilarity - d.cfg.WarningSimilarity
	if span <= 0 {
		return 90
	}
	return 40 + 50*(sim-d.cfg.WarningSimilarity)/span
}

// templateScore maps a matched template similarity to 60..100.
func (d *CopyDetector) templateScore(sim float64) float64 {
	threshold := d.cfg.DefaultTemplateThreshold
	span := 1 - threshold
	if span <= 0 {
		return 60
	}
	return clamp100(60 + 40*(sim-threshold)/span)
}
