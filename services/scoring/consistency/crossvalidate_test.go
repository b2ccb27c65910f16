// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package consistency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/TalentForge/services/llm"
)

func newValidatorWith(t *testing.T, secondary llm.Client, cfg CrossValidationConfig) *CrossModelValidator {
	t.Helper()
	reg := llm.NewRegistry()
	if secondary != nil {
		reg.Register(cfg.SecondaryModel, secondary)
	}
	return NewCrossModelValidator(reg, cfg, nil, nil)
}

func TestValidate_BelowStakesThreshold(t *testing.T) {
	v := newValidatorWith(t, &stubClient{responses: []string{scoreJSON(50)}}, DefaultCrossValidationConfig())

	out := v.Validate(context.Background(), ValidationRequest{
		PrimaryScore: 70,
		Parser:       DefaultScoreParser,
	})
	assert.False(t, out.WasValidated)
	assert.True(t, out.ValidationPassed)
	assert.Equal(t, 70.0, out.FinalScore)
}

func TestValidate_AgreementWithinCeiling(t *testing.T) {
	v := newValidatorWith(t, &stubClient{responses: []string{scoreJSON(88)}}, DefaultCrossValidationConfig())

	out := v.Validate(context.Background(), ValidationRequest{
		PrimaryScore: 90,
		Parser:       DefaultScoreParser,
	})
	require.True(t, out.WasValidated)
	assert.True(t, out.ValidationPassed)
	assert.Equal(t, 90.0, out.FinalScore)
	assert.Equal(t, 2.0, out.Divergence)
}

func TestValidate_DivergenceAverages(t *testing.T) {
	// primary=90, secondary=70, ceiling=15, average mode => final 80.
	v := newValidatorWith(t, &stubClient{responses: []string{scoreJSON(70)}}, DefaultCrossValidationConfig())

	out := v.Validate(context.Background(), ValidationRequest{
		PrimaryScore: 90,
		Parser:       DefaultScoreParser,
	})
	require.True(t, out.WasValidated)
	assert.False(t, out.ValidationPassed)
	assert.Equal(t, 80.0, out.FinalScore)
	assert.Equal(t, 20.0, out.Divergence)
	assert.Contains(t, out.Reason, "diverged")
}

func TestValidate_DivergenceTakesMinimum(t *testing.T) {
	cfg := DefaultCrossValidationConfig()
	cfg.UseAverageOnDivergence = false
	v := newValidatorWith(t, &stubClient{responses: []string{scoreJSON(70)}}, cfg)

	out := v.Validate(context.Background(), ValidationRequest{
		PrimaryScore: 90,
		Parser:       DefaultScoreParser,
	})
	assert.False(t, out.ValidationPassed)
	assert.Equal(t, 70.0, out.FinalScore)
}

func TestValidate_TransportFailureDegrades(t *testing.T) {
	v := newValidatorWith(t, &stubClient{responses: []string{"FAIL"}}, DefaultCrossValidationConfig())

	out := v.Validate(context.Background(), ValidationRequest{
		PrimaryScore: 92,
		Parser:       DefaultScoreParser,
	})
	assert.False(t, out.WasValidated)
	assert.True(t, out.ValidationPassed, "primary score assumed valid on failure")
	assert.Equal(t, 92.0, out.FinalScore)
	assert.NotEmpty(t, out.Reason)
}

func TestValidate_MissingSecondaryModelDegrades(t *testing.T) {
	v := newValidatorWith(t, nil, DefaultCrossValidationConfig())

	out := v.Validate(context.Background(), ValidationRequest{
		PrimaryScore: 95,
		Parser:       DefaultScoreParser,
	})
	assert.False(t, out.WasValidated)
	assert.Equal(t, 95.0, out.FinalScore)
}
