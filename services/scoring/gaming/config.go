// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaming

// PhraseWeight weights one AI-telltale phrase.
type PhraseWeight struct {
	// Weight is the phrase's contribution strength (0-1).
	Weight float64 `json:"weight"`

	// Confidence is how reliably the phrase indicates machine text (0-1).
	Confidence float64 `json:"confidence"`
}

// KeywordStuffingConfig configures the keyword-stuffing detector.
type KeywordStuffingConfig struct {
	// WarningDensity is the keyword density where scoring begins. Default 0.15.
	WarningDensity float64 `json:"warning_density"`

	// CriticalDensity is the density scoring 80. Default 0.25.
	CriticalDensity float64 `json:"critical_density"`

	// RepetitionCap is the per-keyword occurrence limit; exceeding it
	// adds 20 points. Default 5.
	RepetitionCap int `json:"repetition_cap"`

	// UniqueRatioFloor adds 15 points when the unique-word ratio drops
	// below it on longer submissions. Default 0.4.
	UniqueRatioFloor float64 `json:"unique_ratio_floor"`

	// UniqueRatioMinWords is the submission length at which the
	// unique-ratio check applies. Default 30.
	UniqueRatioMinWords int `json:"unique_ratio_min_words"`
}

// DefaultKeywordStuffingConfig returns sensible defaults.
func DefaultKeywordStuffingConfig() KeywordStuffingConfig {
	return KeywordStuffingConfig{
		WarningDensity:      0.15,
		CriticalDensity:     0.25,
		RepetitionCap:       5,
		UniqueRatioFloor:    0.4,
		UniqueRatioMinWords: 30,
	}
}

// AIDetectorConfig configures the AI-generated-text detector.
type AIDetectorConfig struct {
	// Phrases is the weighted phrase table. Defaults to a built-in
	// table of common generative-model boilerplate.
	Phrases map[string]PhraseWeight `json:"phrases"`

	// BurstinessThreshold is the coefficient of variation below which
	// sentence lengths are suspiciously uniform. Default 0.3.
	BurstinessThreshold float64 `json:"burstiness_threshold"`

	// BurstinessMinSentences is the minimum sentence count required to
	// measure burstiness at all. Default 3.
	BurstinessMinSentences int `json:"burstiness_min_sentences"`

	// UniformPatternMinSentences is the sentence count from which low
	// burstiness is flagged as a structural pattern. Default 5.
	UniformPatternMinSentences int `json:"uniform_pattern_min_sentences"`

	// FormalWords are the connectives counted for the formality score.
	FormalWords []string `json:"formal_words"`

	// FormalityThreshold is the per-50-words connective count treated
	// as high formality. Default 1.5.
	FormalityThreshold float64 `json:"formality_threshold"`

	// ManyPhrasesCount and SomePhrasesCount gate the combined score
	// bases (70 and 40 respectively). Defaults 6 and 3.
	ManyPhrasesCount int `json:"many_phrases_count"`
	SomePhrasesCount int `json:"some_phrases_count"`
}

// DefaultAIDetectorConfig returns the built-in phrase table and thresholds.
func DefaultAIDetectorConfig() AIDetectorConfig {
	return AIDetectorConfig{
		Phrases:                    defaultAIPhrases(),
		BurstinessThreshold:        0.3,
		BurstinessMinSentences:     3,
		UniformPatternMinSentences: 5,
		FormalWords: []string{
			"furthermore", "moreover", "additionally", "consequently",
			"nevertheless", "nonetheless", "therefore", "thus", "hence",
			"accordingly", "subsequently",
		},
		FormalityThreshold: 1.5,
		ManyPhrasesCount:   6,
		SomePhrasesCount:   3,
	}
}

// defaultAIPhrases is boilerplate that generative models overproduce.
// Weights and confidences were tuned against a corpus of known
// machine-written training answers.
func defaultAIPhrases() map[string]PhraseWeight {
	return map[string]PhraseWeight{
		"as an ai language model":         {Weight: 0.30, Confidence: 0.99},
		"it is important to note":         {Weight: 0.12, Confidence: 0.80},
		"it's worth noting":               {Weight: 0.10, Confidence: 0.75},
		"in today's fast-paced world":     {Weight: 0.15, Confidence: 0.85},
		"delve into":                      {Weight: 0.10, Confidence: 0.70},
		"in conclusion":                   {Weight: 0.06, Confidence: 0.50},
		"to summarize":                    {Weight: 0.06, Confidence: 0.50},
		"first and foremost":              {Weight: 0.08, Confidence: 0.60},
		"plays a crucial role":            {Weight: 0.10, Confidence: 0.70},
		"in the realm of":                 {Weight: 0.12, Confidence: 0.80},
		"navigate the complexities":       {Weight: 0.12, Confidence: 0.80},
		"a testament to":                  {Weight: 0.10, Confidence: 0.70},
		"fosters a culture of":            {Weight: 0.10, Confidence: 0.70},
		"leverage":                        {Weight: 0.05, Confidence: 0.40},
		"holistic approach":               {Weight: 0.08, Confidence: 0.60},
		"ever-evolving landscape":         {Weight: 0.14, Confidence: 0.85},
		"i hope this helps":               {Weight: 0.15, Confidence: 0.85},
		"i'd be happy to help":            {Weight: 0.12, Confidence: 0.80},
		"it is essential to":              {Weight: 0.08, Confidence: 0.60},
		"key considerations":              {Weight: 0.08, Confidence: 0.60},
	}
}

// LowEffortConfig configures the low-effort detector.
type LowEffortConfig struct {
	// MinWords is the word count below which the shortfall penalty
	// applies. Default 20.
	MinWords int `json:"min_words"`

	// ShortfallMaxPenalty is the penalty at zero words, scaled down
	// linearly as the count approaches MinWords. Default 80.
	ShortfallMaxPenalty float64 `json:"shortfall_max_penalty"`

	// ShortSentenceAvg adds a penalty when the average sentence length
	// falls below it on multi-sentence answers. Default 5.
	ShortSentenceAvg float64 `json:"short_sentence_avg"`

	// ShortSentencePenalty is that penalty. Default 15.
	ShortSentencePenalty float64 `json:"short_sentence_penalty"`
}

// DefaultLowEffortConfig returns sensible defaults.
func DefaultLowEffortConfig() LowEffortConfig {
	return LowEffortConfig{
		MinWords:             20,
		ShortfallMaxPenalty:  80,
		ShortSentenceAvg:     5,
		ShortSentencePenalty: 15,
	}
}

// CopyDetectorConfig configures the copy/template detector.
type CopyDetectorConfig struct {
	// NGramSize is the n-gram length for similarity. Default 3.
	NGramSize int `json:"ngram_size"`

	// CriticalSimilarity maps to a score of 90. Default 0.95.
	CriticalSimilarity float64 `json:"critical_similarity"`

	// WarningSimilarity is where the linear ramp to 90 begins. Default 0.85.
	WarningSimilarity float64 `json:"warning_similarity"`

	// DefaultTemplateThreshold applies to catalog entries that carry
	// no per-entry threshold. Default 0.85.
	DefaultTemplateThreshold float64 `json:"default_template_threshold"`
}

// DefaultCopyDetectorConfig returns sensible defaults.
func DefaultCopyDetectorConfig() CopyDetectorConfig {
	return CopyDetectorConfig{
		NGramSize:                3,
		CriticalSimilarity:       0.95,
		WarningSimilarity:        0.85,
		DefaultTemplateThreshold: 0.85,
	}
}

// RiskConfig configures the risk classifier.
//
// The per-category weights and the 70/30 blend are tuning constants
// with no stated derivation; they are exposed here as configuration
// and pinned by characterization tests rather than inferred.
type RiskConfig struct {
	// Weights are the per-category blend weights.
	Weights map[DetectorName]float64 `json:"weights"`

	// WeightedAvgShare and MaxShare blend the weighted average and the
	// maximum sub-score into the final risk score. Defaults 0.7 / 0.3.
	WeightedAvgShare float64 `json:"weighted_avg_share"`
	MaxShare         float64 `json:"max_share"`

	// Level thresholds on the blended risk score.
	CriticalThreshold int `json:"critical_threshold"`
	HighThreshold     int `json:"high_threshold"`
	MediumThreshold   int `json:"medium_threshold"`
	LowThreshold      int `json:"low_threshold"`

	// RejectSimilarity forces a reject when the reference-solution
	// similarity reaches it, regardless of level. Default 0.98.
	RejectSimilarity float64 `json:"reject_similarity"`

	// Penalties per action.
	RejectPenalty     int `json:"reject_penalty"`
	FlagReviewPenalty int `json:"flag_review_penalty"`
	PenalizePenalty   int `json:"penalize_penalty"`
}

// DefaultRiskConfig returns the characterized default constants.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Weights: map[DetectorName]float64{
			DetectorKeywordStuffing: 0.15,
			DetectorTemplateMatch:   0.25,
			DetectorAIGenerated:     0.20,
			DetectorCopyPaste:       0.25,
			DetectorLowEffort:       0.10,
			DetectorPatternGaming:   0.05,
		},
		WeightedAvgShare:  0.7,
		MaxShare:          0.3,
		CriticalThreshold: 80,
		HighThreshold:     60,
		MediumThreshold:   40,
		LowThreshold:      20,
		RejectSimilarity:  0.98,
		RejectPenalty:     30,
		FlagReviewPenalty: 15,
		PenalizePenalty:   5,
	}
}

// Config bundles the gaming pipeline configuration.
type Config struct {
	KeywordStuffing KeywordStuffingConfig `json:"keyword_stuffing"`
	AIDetector      AIDetectorConfig      `json:"ai_detector"`
	LowEffort       LowEffortConfig       `json:"low_effort"`
	Copy            CopyDetectorConfig    `json:"copy"`
	Risk            RiskConfig            `json:"risk"`
}

// DefaultConfig returns defaults for the whole gaming pipeline.
func DefaultConfig() Config {
	return Config{
		KeywordStuffing: DefaultKeywordStuffingConfig(),
		AIDetector:      DefaultAIDetectorConfig(),
		LowEffort:       DefaultLowEffortConfig(),
		Copy:            DefaultCopyDetectorConfig(),
		Risk:            DefaultRiskConfig(),
	}
}
