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

func TestDefaultScoreParser(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantScore float64
		wantErr   bool
	}{
		{"strict_json", `{"score": 85, "feedback": "solid"}`, 85, false},
		{"fenced_json", "```json\n{\"score\": 42, \"feedback\": \"weak\"}\n```", 42, false},
		{"loose_text", "Overall I'd give this a score: 77 out of 100.", 77, false},
		{"clamped_high", `{"score": 250, "feedback": ""}`, 100, false},
		{"clamped_negative", `{"score": -10, "feedback": ""}`, 0, false},
		{"no_score", "this answer shows strong empathy", 0, true},
		{"empty", "", 0, true},
		{"null_score", `{"score": null, "feedback": "hm"}`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _, err := DefaultScoreParser(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrNoScoreFound) {
					t.Fatalf("expected ErrNoScoreFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != tc.wantScore {
				t.Errorf("score = %v, want %v", score, tc.wantScore)
			}
		})
	}
}

func TestDefaultScoreParser_FeedbackPassthrough(t *testing.T) {
	_, feedback, err := DefaultScoreParser(`{"score": 61, "feedback": "needs specifics"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feedback != "needs specifics" {
		t.Errorf("feedback = %q", feedback)
	}
}
