// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"strings"
)

// DefaultNGramSize is the n-gram length used when callers pass n <= 0.
const DefaultNGramSize = 3

// Similarity computes the Jaccard similarity of two texts over their
// word n-gram sets.
//
// Description:
//
//	Both strings are normalized (lower-cased, whitespace collapsed)
//	and tokenized on whitespace; the contiguous n-gram sets are
//	compared as |intersection| / |union|. Exact equality after
//	normalization short-circuits to 1.0. Texts shorter than n words
//	fall back to unigram comparison so short answers still compare.
//
// Inputs:
//
//	a, b - The texts to compare.
//	n - The n-gram length. Values <= 0 use DefaultNGramSize.
//
// Outputs:
//
//	float64 - Similarity in [0,1]; symmetric in a and b.
func Similarity(a, b string, n int) float64 {
	if n <= 0 {
		n = DefaultNGramSize
	}
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	setA := ngramSet(strings.Fields(na), n)
	setB := ngramSet(strings.Fields(nb), n)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for g := range setA {
		if setB[g] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// Normalize lower-cases a text and collapses runs of whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ngramSet builds the set of contiguous n-grams over the tokens.
// Token lists shorter than n degrade to unigrams.
func ngramSet(tokens []string, n int) map[string]bool {
	set := make(map[string]bool)
	if len(tokens) < n {
		for _, t := range tokens {
			set[t] = true
		}
		return set
	}
	for i := 0; i+n <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+n], " ")] = true
	}
	return set
}

// TemplateEntry is one known-template catalog row as seen by the
// similarity engine.
type TemplateEntry struct {
	// Text is the template body.
	Text string

	// Type labels the template (e.g. "generic_star_answer").
	Type string

	// MinSimilarityThreshold is the per-entry match threshold; values
	// <= 0 fall back to the detector's default.
	MinSimilarityThreshold float64
}

// TemplateMatch is the best catalog match above threshold.
type TemplateMatch struct {
	// Similarity is the winning Jaccard similarity.
	Similarity float64

	// Type is the winning entry's type label.
	Type string
}

// BestTemplateMatch scans a template catalog and returns the maximum
// similarity above each entry's threshold, carrying that entry's type.
//
// Outputs:
//
//	*TemplateMatch - The best match, or nil when nothing clears its threshold.
func BestTemplateMatch(text string, entries []TemplateEntry, n int, defaultThreshold float64) *TemplateMatch {
	var best *TemplateMatch
	for _, entry := range entries {
		threshold := entry.MinSimilarityThreshold
		if threshold <= 0 {
			threshold = defaultThreshold
		}
		sim := Similarity(text, entry.Text, n)
		if sim < threshold {
			continue
		}
		if best == nil || sim > best.Similarity {
			best = &TemplateMatch{Similarity: sim, Type: entry.Type}
		}
	}
	return best
}
