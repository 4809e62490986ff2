// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ArxivConfig holds settings for fetching candidate papers from arXiv.
type ArxivConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Categories is the allow-list of arXiv categories to query and filter by.
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// MaxResults caps the number of raw results requested from the API.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// RecentDays is the publication-date window: papers published within
	// the last RecentDays days (inclusive of the lower bound) are kept.
	RecentDays int `json:"recent_days" yaml:"recent_days" mapstructure:"recent_days"`
}

// CitationsConfig holds settings for the optional citation-count lookup.
type CitationsConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Enabled controls whether citation counts are fetched at all.
	// Disabled by default; the pipeline runs fine without citation data.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// MinCitationsForHighlight is the citation-count threshold above which
	// a paper counts as highly cited.
	MinCitationsForHighlight int `json:"min_citations_for_highlight" yaml:"min_citations_for_highlight" mapstructure:"min_citations_for_highlight"`
}

// LLMConfig holds settings for the Claude analysis collaborator.
type LLMConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-5").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key. Usually supplied via the secrets
	// directory rather than the config file.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxTokens caps the response length per call.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// SummaryWords is the target length of per-paper summaries, in words.
	SummaryWords int `json:"summary_words" yaml:"summary_words" mapstructure:"summary_words"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// MaxConcurrent bounds simultaneous in-flight analysis calls. The
	// default of 1 analyzes papers sequentially.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// RankMode selects the ordering of the final report.
type RankMode string

const (
	// RankScore orders papers by keyword match score (the default).
	RankScore RankMode = "score"
	// RankImpact re-orders the selected papers by citation impact.
	RankImpact RankMode = "impact"
)

// ReportConfig holds settings for report assembly and output.
type ReportConfig struct {
	// OutputDir is the directory report files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// MaxPapers bounds the number of papers in one report.
	MaxPapers int `json:"max_papers" yaml:"max_papers" mapstructure:"max_papers"`

	// OutputFormat lists the formats to produce: "markdown" and/or "html".
	OutputFormat []string `json:"output_format" yaml:"output_format" mapstructure:"output_format"`

	// Title is the report heading (e.g. "arXiv Computer Vision Papers").
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// Rank selects the final ordering: score or impact.
	Rank RankMode `json:"rank" yaml:"rank" mapstructure:"rank"`
}

// WantsHTML reports whether the HTML artifact should be produced.
func (r ReportConfig) WantsHTML() bool {
	for _, f := range r.OutputFormat {
		if strings.EqualFold(f, "html") {
			return true
		}
	}
	return false
}

// EmailConfig holds settings for the report notification email.
type EmailConfig struct {
	// Enabled controls whether a notification is sent after the report is saved.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// SMTPHost and SMTPPort locate the outgoing mail server.
	SMTPHost string `json:"smtp_host" yaml:"smtp_host" mapstructure:"smtp_host"`
	SMTPPort int    `json:"smtp_port" yaml:"smtp_port" mapstructure:"smtp_port"`

	// Sender and Recipient are the From and To addresses.
	Sender    string `json:"sender" yaml:"sender" mapstructure:"sender"`
	Recipient string `json:"recipient" yaml:"recipient" mapstructure:"recipient"`

	// Password authenticates the sender. Usually supplied via the secrets
	// directory rather than the config file.
	Password string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`

	// SubjectPrefix is prepended to the subject line (e.g. "[arXiv Digest]").
	SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix" mapstructure:"subject_prefix"`

	// IncludeFullReport embeds the whole Markdown report in the plain-text body.
	IncludeFullReport bool `json:"include_full_report" yaml:"include_full_report" mapstructure:"include_full_report"`
}

// Config groups all stage configurations for one pipeline run.
type Config struct {
	Arxiv     ArxivConfig     `json:"arxiv" yaml:"arxiv" mapstructure:"arxiv"`
	Citations CitationsConfig `json:"citations" yaml:"citations" mapstructure:"citations"`
	LLM       LLMConfig       `json:"llm" yaml:"llm" mapstructure:"llm"`
	Report    ReportConfig    `json:"report" yaml:"report" mapstructure:"report"`
	Email     EmailConfig     `json:"email" yaml:"email" mapstructure:"email"`

	// KeywordsFile is the path of the keyword taxonomy YAML file.
	KeywordsFile string `json:"keywords_file" yaml:"keywords_file" mapstructure:"keywords_file"`
}

// Validate checks the configuration and returns an error naming every
// missing or invalid field. The run aborts at startup on any error here;
// a run with broken configuration cannot produce a meaningful report.
func (c *Config) Validate() error {
	var problems []string

	if len(c.Arxiv.Categories) == 0 {
		problems = append(problems, "arxiv.categories must list at least one category")
	}
	if c.Arxiv.MaxResults <= 0 {
		problems = append(problems, "arxiv.max_results must be > 0")
	}
	if c.Arxiv.RecentDays < 0 {
		problems = append(problems, "arxiv.recent_days must be >= 0")
	}
	if c.LLM.Model == "" {
		problems = append(problems, "llm.model is required")
	}
	if c.LLM.APIKey == "" {
		problems = append(problems, "llm.api_key is required (set it in config or .secrets/anthropic-api-key)")
	}
	if c.Report.MaxPapers <= 0 {
		problems = append(problems, "report.max_papers must be > 0")
	}
	if c.Report.OutputDir == "" {
		problems = append(problems, "report.output_dir is required")
	}
	if c.Report.Rank != "" && c.Report.Rank != RankScore && c.Report.Rank != RankImpact {
		problems = append(problems, fmt.Sprintf("report.rank must be %q or %q", RankScore, RankImpact))
	}
	if c.KeywordsFile == "" {
		problems = append(problems, "keywords_file is required")
	}

	if c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			problems = append(problems, "email.smtp_host is required when email is enabled")
		}
		if c.Email.Sender == "" {
			problems = append(problems, "email.sender is required when email is enabled")
		}
		if c.Email.Recipient == "" {
			problems = append(problems, "email.recipient is required when email is enabled")
		}
		if c.Email.Password == "" {
			problems = append(problems, "email.password is required when email is enabled (set it in config or .secrets/smtp-password)")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// ApplyDefaults fills unset optional fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Arxiv.Timeout <= 0 {
		c.Arxiv.Timeout = 30 * time.Second
	}
	if c.Arxiv.UserAgent == "" {
		c.Arxiv.UserAgent = "arxiv-digest/0.1"
	}
	if c.Citations.Timeout <= 0 {
		c.Citations.Timeout = 15 * time.Second
	}
	if c.Citations.UserAgent == "" {
		c.Citations.UserAgent = c.Arxiv.UserAgent
	}
	if c.Citations.MinCitationsForHighlight <= 0 {
		c.Citations.MinCitationsForHighlight = 5
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 2048
	}
	if c.LLM.SummaryWords <= 0 {
		c.LLM.SummaryWords = 150
	}
	if c.LLM.MaxRetries <= 0 {
		c.LLM.MaxRetries = 3
	}
	if c.LLM.MaxConcurrent <= 0 {
		c.LLM.MaxConcurrent = 1
	}
	if len(c.Report.OutputFormat) == 0 {
		c.Report.OutputFormat = []string{"markdown"}
	}
	if c.Report.Title == "" {
		c.Report.Title = "arXiv Papers"
	}
	if c.Report.Rank == "" {
		c.Report.Rank = RankScore
	}
	if c.Email.SMTPPort <= 0 {
		c.Email.SMTPPort = 587
	}
}
