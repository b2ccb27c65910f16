// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"math"
	"testing"
)

func TestSimilarity_Identity(t *testing.T) {
	texts := []string{
		"I organized a sourcing sprint and filled the role in two weeks.",
		"short answer",
		"ONE",
	}
	for _, s := range texts {
		if got := Similarity(s, s, 3); got != 1.0 {
			t.Errorf("Similarity(%q, same) = %v, want 1.0", s, got)
		}
	}
}

func TestSimilarity_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := "We  Screened   Forty Candidates."
	b := "we screened forty candidates."
	if got := Similarity(a, b, 3); got != 1.0 {
		t.Errorf("Similarity = %v, want 1.0 after normalization", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "the hiring manager approved the shortlist after the debrief"
	b := "the shortlist was approved by the hiring manager yesterday"
	if Similarity(a, b, 3) != Similarity(b, a, 3) {
		t.Error("similarity must be symmetric")
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"alpha beta gamma delta", "alpha beta gamma delta epsilon"},
		{"completely different words here", "nothing shared at all whatsoever"},
		{"", "anything"},
		{"one two", "one two three four"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1], 3)
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v outside [0,1]", p[0], p[1], got)
		}
	}
}

func TestSimilarity_DisjointIsZero(t *testing.T) {
	got := Similarity("alpha beta gamma delta", "epsilon zeta eta theta", 3)
	if got != 0 {
		t.Errorf("Similarity = %v, want 0 for disjoint texts", got)
	}
}

func TestSimilarity_KnownValue(t *testing.T) {
	// "a b c d" vs "a b c e": trigrams {abc, bcd} vs {abc, bce},
	// intersection 1, union 3.
	got := Similarity("a b c d", "a b c e", 3)
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("Similarity = %v, want 1/3", got)
	}
}

func TestSimilarity_ShortTextUnigramFallback(t *testing.T) {
	// Both texts shorter than n compare on unigrams instead of
	// returning a meaningless 0.
	got := Similarity("strong pipeline", "pipeline strong", 3)
	if got != 1.0 {
		t.Errorf("Similarity = %v, want 1.0 for same unigram sets", got)
	}
}

func TestBestTemplateMatch(t *testing.T) {
	entries := []TemplateEntry{
		{Text: "in my previous role i was responsible for many things and learned a lot", Type: "generic_star_answer"},
		{Text: "i am a hard worker and a team player who goes above and beyond", Type: "buzzword_filler", MinSimilarityThreshold: 0.5},
	}

	match := BestTemplateMatch(
		"i am a hard worker and a team player who goes above and beyond always",
		entries, 3, 0.85)
	if match == nil {
		t.Fatal("expected a template match")
	}
	if match.Type != "buzzword_filler" {
		t.Errorf("match type = %q, want buzzword_filler", match.Type)
	}

	if m := BestTemplateMatch("an original answer describing a concrete sourcing strategy", entries, 3, 0.85); m != nil {
		t.Errorf("expected no match, got %+v", m)
	}
}
