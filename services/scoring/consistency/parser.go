// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// scorePayload is the JSON shape requested from scoring models.
type scorePayload struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

// fencedJSON strips a ```json ... ``` fence when a model wraps its output.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// looseScore matches a "score: N" fragment in free text as a last resort.
var looseScore = regexp.MustCompile(`(?i)"?score"?\s*[:=]\s*([0-9]+(?:\.[0-9]+)?)`)

// DefaultScoreParser extracts a score and feedback from a raw model
// response.
//
// Description:
//
//	Attempts strict JSON first, then JSON inside a code fence, then a
//	loose "score: N" match. Scores outside [0,100] are clamped. The
//	parser never panics on adversarial content.
//
// Outputs:
//
//	float64 - The extracted score, clamped to [0,100].
//	string - The feedback text, possibly empty.
//	error - ErrNoScoreFound (wrapped) if no score could be extracted.
func DefaultScoreParser(raw string) (float64, string, error) {
	trimmed := strings.TrimSpace(raw)

	if s, fb, ok := tryJSONScore(trimmed); ok {
		return ClampScore(s), fb, nil
	}
	if m := fencedJSON.FindStringSubmatch(trimmed); len(m) == 2 {
		if s, fb, ok := tryJSONScore(m[1]); ok {
			return ClampScore(s), fb, nil
		}
	}
	if m := looseScore.FindStringSubmatch(trimmed); len(m) == 2 {
		s, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return ClampScore(s), "", nil
		}
	}
	return 0, "", fmt.Errorf("%w: %.80q", ErrNoScoreFound, raw)
}

func tryJSONScore(s string) (float64, string, bool) {
	var payload scorePayload
	if err := json.Unmarshal([]byte(s), &payload); err != nil || payload.Score == nil {
		return 0, "", false
	}
	return *payload.Score, payload.Feedback, true
}
