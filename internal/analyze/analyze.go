// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze produces AI-generated analysis for selected papers and
// an executive summary for the report. The Claude API sits behind the
// Backend interface so tests can supply a mock; every Backend failure is
// treated as a degraded enrichment by callers, never a run failure.
package analyze

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// Backend abstracts the language-model API.
type Backend interface {
	// AnalyzePDF analyzes a paper from its full-text PDF.
	AnalyzePDF(ctx context.Context, pdf []byte, paper types.Paper) (string, error)

	// AnalyzeAbstract analyzes a paper from its abstract and metadata only.
	AnalyzeAbstract(ctx context.Context, paper types.Paper) (string, error)

	// Summarize produces an executive summary over the selected papers.
	Summarize(ctx context.Context, papers []types.ScoredPaper, date string) (string, error)
}

// ClaudeBackend implements Backend with the Anthropic Messages API.
type ClaudeBackend struct {
	messages messager
	cfg      types.LLMConfig
}

// messager is the slice of the Anthropic client the backend uses,
// extracted so tests can substitute a fake.
type messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// NewClaudeBackend builds a backend from validated LLM configuration.
func NewClaudeBackend(cfg types.LLMConfig) *ClaudeBackend {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &ClaudeBackend{messages: &client.Messages, cfg: cfg}
}

// backoffBase controls the base duration for exponential backoff between
// API attempts. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// AnalyzePDF sends the PDF and the analysis prompt in one message.
func (b *ClaudeBackend) AnalyzePDF(ctx context.Context, pdf []byte, paper types.Paper) (string, error) {
	prompt, err := renderPDFPrompt(paper, b.cfg.SummaryWords)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	doc := anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
		Data: base64.StdEncoding.EncodeToString(pdf),
	})
	return b.generate(ctx, anthropic.NewUserMessage(doc, anthropic.NewTextBlock(prompt)))
}

// AnalyzeAbstract analyzes a paper from metadata alone, the fallback when
// the full text could not be fetched.
func (b *ClaudeBackend) AnalyzeAbstract(ctx context.Context, paper types.Paper) (string, error) {
	prompt, err := renderAbstractPrompt(paper)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return b.generate(ctx, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
}

// Summarize produces the report's executive summary from the selected set.
func (b *ClaudeBackend) Summarize(ctx context.Context, papers []types.ScoredPaper, date string) (string, error) {
	prompt, err := renderSummaryPrompt(papers, date)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return b.generate(ctx, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
}

// generate calls the Messages API with retry and returns the concatenated
// text blocks of the response.
func (b *ClaudeBackend) generate(ctx context.Context, msg anthropic.MessageParam) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(b.cfg.Model),
		MaxTokens:   int64(b.cfg.MaxTokens),
		Messages:    []anthropic.MessageParam{msg},
		Temperature: anthropic.Float(b.cfg.Temperature),
	}

	resp, err := b.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", b.cfg.Model)
	}
	return text, nil
}

// callWithRetry calls the API with exponential backoff between attempts.
func (b *ClaudeBackend) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	maxRetries := b.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := b.messages.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
