// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Arxiv: ArxivConfig{
			Categories: []string{"cs.CV"},
			MaxResults: 100,
			RecentDays: 3,
		},
		LLM: LLMConfig{
			Model:  "claude-sonnet-4-5",
			APIKey: "sk-test",
		},
		Report: ReportConfig{
			OutputDir: "reports",
			MaxPapers: 10,
		},
		KeywordsFile: "keywords.yaml",
	}
}

func TestConfigValidate_OK(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "arxiv.categories")
	assert.Contains(t, err.Error(), "arxiv.max_results")
	assert.Contains(t, err.Error(), "llm.model")
	assert.Contains(t, err.Error(), "llm.api_key")
	assert.Contains(t, err.Error(), "report.max_papers")
	assert.Contains(t, err.Error(), "keywords_file")
}

func TestConfigValidate_EmailFieldsOnlyWhenEnabled(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Email.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.smtp_host")
	assert.Contains(t, err.Error(), "email.sender")
	assert.Contains(t, err.Error(), "email.recipient")
	assert.Contains(t, err.Error(), "email.password")
}

func TestConfigValidate_RejectsUnknownRank(t *testing.T) {
	cfg := validConfig()
	cfg.Report.Rank = RankMode("citations")
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.rank")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "arxiv-digest/0.1", cfg.Arxiv.UserAgent)
	assert.Equal(t, 1, cfg.LLM.MaxConcurrent)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, []string{"markdown"}, cfg.Report.OutputFormat)
	assert.Equal(t, RankScore, cfg.Report.Rank)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

func TestWantsHTML(t *testing.T) {
	assert.False(t, ReportConfig{OutputFormat: []string{"markdown"}}.WantsHTML())
	assert.True(t, ReportConfig{OutputFormat: []string{"markdown", "html"}}.WantsHTML())
	assert.True(t, ReportConfig{OutputFormat: []string{"HTML"}}.WantsHTML())
	assert.False(t, ReportConfig{}.WantsHTML())
}

func TestLoadKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	data := `
primary_keywords: [SLAM]
secondary_keywords: [mapping]
exclude_keywords: [survey]
author_preferences: [Jane Doe]
weight_factors:
  title_match: 1.0
  abstract_match: 0.5
  primary_keyword_match: 2.0
  secondary_keyword_match: 1.0
  author_bonus: 1.0
  exclusion_penalty: 2.0
minimum_match_score: 1.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	kc, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SLAM"}, kc.PrimaryKeywords)
	assert.Equal(t, []string{"Jane Doe"}, kc.PreferredAuthors)
	assert.InDelta(t, 2.0, kc.Weights.PrimaryKeyword, 1e-9)
	assert.InDelta(t, 1.5, kc.MinimumMatchScore, 1e-9)
}

func TestLoadKeywords_InvalidTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("primary_keywords: []\n"), 0o644))

	_, err := LoadKeywords(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary_keywords")
}

func TestLoadKeywords_MissingFile(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestFormattedAuthors(t *testing.T) {
	assert.Equal(t, "", Paper{}.FormattedAuthors())
	assert.Equal(t, "A, B, C", Paper{Authors: []string{"A", "B", "C"}}.FormattedAuthors())
	assert.Equal(t, "A et al.", Paper{Authors: []string{"A", "B", "C", "D"}}.FormattedAuthors())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "00001", Paper{ID: "2501.00001"}.ShortID())
	assert.Equal(t, "cond-mat/9901001", Paper{ID: "cond-mat/9901001"}.ShortID())
}

func TestAbsURL(t *testing.T) {
	assert.Equal(t, "https://arxiv.org/abs/2501.00001", Paper{ID: "2501.00001"}.AbsURL())
}
