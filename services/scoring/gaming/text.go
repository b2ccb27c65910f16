// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"regexp"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// splitSentences splits a text on terminal punctuation, dropping
// fragments with no words.
func splitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

// sentenceWordCounts returns the word count of each sentence.
func sentenceWordCounts(sentences []string) []int {
	counts := make([]int, len(sentences))
	for i, s := range sentences {
		counts[i] = len(strings.Fields(s))
	}
	return counts
}

// uniqueWordRatio is |distinct words| / |words| over normalized tokens.
func uniqueWordRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	return float64(len(seen)) / float64(len(words))
}

// countPhrase counts non-overlapping occurrences of a normalized
// phrase in a normalized text, on word boundaries for single words.
func countPhrase(normalizedText string, words []string, phrase string) int {
	phrase = Normalize(phrase)
	if phrase == "" {
		return 0
	}
	if !strings.Contains(phrase, " ") {
		n := 0
		for _, w := range words {
			if trimWordPunct(w) == phrase {
				n++
			}
		}
		return n
	}
	return strings.Count(normalizedText, phrase)
}

// trimWordPunct strips surrounding punctuation from a token.
func trimWordPunct(w string) string {
	return strings.Trim(w, ".,;:!?\"'()")
}
