// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import "errors"

// Sentinel errors for the gaming package.
var (
	// ErrMissingKeywords indicates the caller supplied no category
	// keyword configuration. This is a contract violation: the
	// keyword-stuffing detector has no safe default keyword set.
	ErrMissingKeywords = errors.New("missing category keywords")

	// ErrEmptySubmission indicates an empty submission text.
	ErrEmptySubmission = errors.New("empty submission text")
)
