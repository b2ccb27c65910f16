// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"context"

	"github.com/talentforge/TalentForge/services/scoring/gaming"
)

// TemplateSource adapts a TemplateCatalog to the scanner's narrower
// view of template entries.
type TemplateSource struct {
	catalog TemplateCatalog
}

// NewTemplateSource wraps a catalog for the gaming scanner.
func NewTemplateSource(c TemplateCatalog) *TemplateSource {
	return &TemplateSource{catalog: c}
}

// ActiveTemplates implements gaming.TemplateSource.
func (s *TemplateSource) ActiveTemplates(ctx context.Context, gameID string) ([]gaming.TemplateEntry, error) {
	templates, err := s.catalog.ListActiveTemplates(ctx, gameID)
	if err != nil {
		return nil, err
	}
	entries := make([]gaming.TemplateEntry, 0, len(templates))
	for _, t := range templates {
		entries = append(entries, gaming.TemplateEntry{
			Text:                   t.Text,
			Type:                   t.Type,
			MinSimilarityThreshold: t.MinThreshold,
		})
	}
	return entries, nil
}
