// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// WeightFactors are the scoring constants of the keyword taxonomy.
// TitleMatch/AbstractMatch and PrimaryKeyword/SecondaryKeyword combine
// multiplicatively per hit, so title hits outrank abstract hits
// independent of keyword tier. AuthorBonus and ExclusionPenalty are flat
// and applied at most once per paper, which keeps a crowd of preferred
// co-authors or a pile of excluded terms from producing runaway swings.
type WeightFactors struct {
	TitleMatch       float64 `json:"title_match" yaml:"title_match"`
	AbstractMatch    float64 `json:"abstract_match" yaml:"abstract_match"`
	PrimaryKeyword   float64 `json:"primary_keyword_match" yaml:"primary_keyword_match"`
	SecondaryKeyword float64 `json:"secondary_keyword_match" yaml:"secondary_keyword_match"`
	AuthorBonus      float64 `json:"author_bonus" yaml:"author_bonus"`
	ExclusionPenalty float64 `json:"exclusion_penalty" yaml:"exclusion_penalty"`
}

// KeywordsConfig is the keyword taxonomy: the keyword sets, preferred
// authors, weight factors, and the acceptance threshold. Loaded once per
// run and immutable thereafter.
type KeywordsConfig struct {
	// PrimaryKeywords are the high-signal terms for the topic of interest.
	PrimaryKeywords []string `json:"primary_keywords" yaml:"primary_keywords"`

	// SecondaryKeywords are supporting terms scored at a lower tier.
	SecondaryKeywords []string `json:"secondary_keywords" yaml:"secondary_keywords"`

	// ExcludeKeywords mark off-topic papers; one or more hits applies the
	// flat exclusion penalty.
	ExcludeKeywords []string `json:"exclude_keywords" yaml:"exclude_keywords"`

	// PreferredAuthors get the flat author bonus on an exact
	// (case-insensitive) name match.
	PreferredAuthors []string `json:"author_preferences" yaml:"author_preferences"`

	// Weights are the scoring constants.
	Weights WeightFactors `json:"weight_factors" yaml:"weight_factors"`

	// MinimumMatchScore is the acceptance threshold: papers scoring below
	// it are dropped from the report.
	MinimumMatchScore float64 `json:"minimum_match_score" yaml:"minimum_match_score"`
}

// LoadKeywords reads and validates a keyword taxonomy YAML file.
func LoadKeywords(path string) (*KeywordsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}
	var kc KeywordsConfig
	if err := yaml.Unmarshal(data, &kc); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}
	if err := kc.Validate(); err != nil {
		return nil, fmt.Errorf("keywords file %s: %w", path, err)
	}
	return &kc, nil
}

// Validate checks the taxonomy and returns an error naming every problem.
func (k *KeywordsConfig) Validate() error {
	var problems []string

	if len(k.PrimaryKeywords) == 0 {
		problems = append(problems, "primary_keywords must list at least one keyword")
	}
	if k.Weights.TitleMatch <= 0 {
		problems = append(problems, "weight_factors.title_match must be > 0")
	}
	if k.Weights.AbstractMatch <= 0 {
		problems = append(problems, "weight_factors.abstract_match must be > 0")
	}
	if k.Weights.PrimaryKeyword <= 0 {
		problems = append(problems, "weight_factors.primary_keyword_match must be > 0")
	}
	if k.Weights.SecondaryKeyword <= 0 {
		problems = append(problems, "weight_factors.secondary_keyword_match must be > 0")
	}
	if k.Weights.AuthorBonus < 0 {
		problems = append(problems, "weight_factors.author_bonus must be >= 0")
	}
	if k.Weights.ExclusionPenalty < 0 {
		problems = append(problems, "weight_factors.exclusion_penalty must be >= 0")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid keyword taxonomy:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
