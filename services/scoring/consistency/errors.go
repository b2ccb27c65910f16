// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import "errors"

// Sentinel errors for the consistency package.
var (
	// ErrEmptySamples indicates aggregation was called without samples.
	ErrEmptySamples = errors.New("empty sample set")

	// ErrNilParser indicates a required score parser was not supplied.
	ErrNilParser = errors.New("nil score parser")

	// ErrNoScoreFound indicates no numeric score could be extracted
	// from a model response.
	ErrNoScoreFound = errors.New("no score found in response")
)
