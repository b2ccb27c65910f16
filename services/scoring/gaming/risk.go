// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

import (
	"fmt"
	"math"
)

// RiskClassifier blends per-detector sub-scores into one verdict.
//
// Description:
//
//	The blended risk score is 70% the weighted average of the
//	categories that fired (renormalized over their weights) and 30%
//	the single worst sub-score, so one screaming detector cannot be
//	diluted away by quiet ones. Discrete levels, the recommended
//	action, and the score penalty all derive from the blended score,
//	with one override: a near-exact reference-solution copy is
//	rejected outright.
//
// Thread Safety: stateless; safe for concurrent use.
type RiskClassifier struct {
	cfg RiskConfig
}

// NewRiskClassifier constructs the classifier.
func NewRiskClassifier(cfg RiskConfig) *RiskClassifier {
	return &RiskClassifier{cfg: cfg}
}

// Classify computes the verdict from the detector outputs and signals.
func (c *RiskClassifier) Classify(scores map[DetectorName]float64, flags []string, signals *GamingSignals) RiskAssessment {
	assessment := RiskAssessment{
		PerDetectorScores: scores,
		Flags:             flags,
	}

	weightedSum := 0.0
	weightTotal := 0.0
	maxScore := 0.0
	for name, score := range scores {
		if score <= 0 {
			continue
		}
		w := c.cfg.Weights[name]
		weightedSum += w * score
		weightTotal += w
		if score > maxScore {
			maxScore = score
		}
	}

	if weightTotal > 0 {
		weightedAvg := weightedSum / weightTotal
		blended := c.cfg.WeightedAvgShare*weightedAvg + c.cfg.MaxShare*maxScore
		assessment.RiskScore = int(math.Round(blended))
	}

	assessment.OverallRisk = c.level(assessment.RiskScore)
	assessment.RecommendedAction = c.action(assessment.OverallRisk)

	// A near-exact copy of the reference solution is always rejected,
	// whatever the blended score says.
	if signals != nil && signals.ExampleSimilarity >= c.cfg.RejectSimilarity {
		assessment.OverallRisk = RiskCritical
		assessment.RecommendedAction = ActionReject
		assessment.Flags = append(assessment.Flags,
			fmt.Sprintf("reference similarity %.2f at or above reject threshold %.2f",
				signals.ExampleSimilarity, c.cfg.RejectSimilarity))
	}

	assessment.ScorePenalty = c.penalty(assessment.RecommendedAction)
	return assessment
}

func (c *RiskClassifier) level(score int) RiskLevel {
	switch {
	case score >= c.cfg.CriticalThreshold:
		return RiskCritical
	case score >= c.cfg.HighThreshold:
		return RiskHigh
	case score >= c.cfg.MediumThreshold:
		return RiskMedium
	case score >= c.cfg.LowThreshold:
		return RiskLow
	default:
		return RiskNone
	}
}

func (c *RiskClassifier) action(level RiskLevel) Action {
	switch level {
	case RiskCritical:
		return ActionReject
	case RiskHigh:
		return ActionFlagReview
	case RiskMedium:
		return ActionPenalize
	case RiskLow:
		return ActionWarn
	default:
		return ActionAllow
	}
}

func (c *RiskClassifier) penalty(action Action) int {
	switch action {
	case ActionReject:
		return c.cfg.RejectPenalty
	case ActionFlagReview:
		return c.cfg.FlagReviewPenalty
	case ActionPenalize:
		return c.cfg.PenalizePenalty
	default:
		return 0
	}
}
