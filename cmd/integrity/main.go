// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// integrity is the offline companion CLI for the scoring service:
// reviewers scan suspicious submissions and manage the template
// catalog without going through the HTTP API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
