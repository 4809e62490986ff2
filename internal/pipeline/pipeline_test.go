// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

type fakeSource struct {
	papers   []types.Paper
	fetchErr error
	pdf      []byte
	pdfOK    bool
}

func (s *fakeSource) Recent(ctx context.Context) ([]types.Paper, error) {
	return s.papers, s.fetchErr
}

func (s *fakeSource) FetchPDF(ctx context.Context, pdfURL string) ([]byte, bool) {
	return s.pdf, s.pdfOK
}

type fakeCitations struct {
	counts map[string]int
	err    error
}

func (c *fakeCitations) Count(ctx context.Context, paper types.Paper) (int, string, error) {
	if c.err != nil {
		return 0, "", c.err
	}
	return c.counts[paper.ID], "https://openalex.org/works?cites=W1", nil
}

type fakeBackend struct {
	pdfErr      error
	abstractErr error
	summaryErr  error
	pdfCalls    int
	absCalls    int
}

func (b *fakeBackend) AnalyzePDF(ctx context.Context, pdf []byte, paper types.Paper) (string, error) {
	b.pdfCalls++
	if b.pdfErr != nil {
		return "", b.pdfErr
	}
	return "pdf analysis of " + paper.ID, nil
}

func (b *fakeBackend) AnalyzeAbstract(ctx context.Context, paper types.Paper) (string, error) {
	b.absCalls++
	if b.abstractErr != nil {
		return "", b.abstractErr
	}
	return "abstract analysis of " + paper.ID, nil
}

func (b *fakeBackend) Summarize(ctx context.Context, papers []types.ScoredPaper, date string) (string, error) {
	if b.summaryErr != nil {
		return "", b.summaryErr
	}
	return fmt.Sprintf("summary of %d papers", len(papers)), nil
}

type fakeNotifier struct {
	sent    bool
	date    string
	count   int
	sendErr error
}

func (n *fakeNotifier) SendReport(ctx context.Context, date string, paperCount int, summary, mdPath, htmlPath string) error {
	n.sent = true
	n.date = date
	n.count = paperCount
	return n.sendErr
}

func testKeywords() *types.KeywordsConfig {
	return &types.KeywordsConfig{
		PrimaryKeywords:   []string{"diffusion model"},
		SecondaryKeywords: []string{"benchmark"},
		Weights: types.WeightFactors{
			TitleMatch:       1.0,
			AbstractMatch:    0.5,
			PrimaryKeyword:   2.0,
			SecondaryKeyword: 1.0,
		},
		MinimumMatchScore: 1.5,
	}
}

func testConfig(dir string) *types.Config {
	cfg := &types.Config{
		Arxiv: types.ArxivConfig{
			Categories: []string{"cs.LG"},
			RecentDays: 7,
			MaxResults: 100,
		},
		Report: types.ReportConfig{
			OutputDir:    dir,
			MaxPapers:    10,
			OutputFormat: []string{"markdown"},
			Title:        "arXiv Papers Report",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func testPaper(id, title string, published time.Time) types.Paper {
	return types.Paper{
		ID:         id,
		Title:      title,
		Authors:    []string{"A. Author"},
		Abstract:   "We study things.",
		Published:  published,
		Categories: []string{"cs.LG"},
		PDFURL:     "https://arxiv.org/pdf/" + id,
	}
}

func TestSelect_BoundsToTopScoring(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	papers := []types.Paper{
		testPaper("2408.00001", "a diffusion model study", today),             // 2.0
		testPaper("2408.00002", "a diffusion model benchmark", today),         // 2.0 + 1.0
		testPaper("2408.00003", "unrelated work on optimization", today),      // no match
	}

	cfg := testConfig(t.TempDir())
	cfg.Report.MaxPapers = 1

	selected, counts := Select(papers, cfg, testKeywords(), today)

	require.Len(t, selected, 1)
	assert.Equal(t, "2408.00002", selected[0].ID)
	assert.Equal(t, 3, counts.Fetched)
	assert.Equal(t, 3, counts.InWindow)
	assert.Equal(t, 3, counts.InCategory)
	assert.Equal(t, 2, counts.Matched)
	assert.Equal(t, 1, counts.Selected)
}

func TestSelect_StageOrderDropsStaleAndOffCategory(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	stale := testPaper("2401.00001", "old diffusion model paper", today.AddDate(0, 0, -30))
	offCat := testPaper("2408.00009", "diffusion model elsewhere", today)
	offCat.Categories = []string{"math.CO"}
	fresh := testPaper("2408.00010", "fresh diffusion model paper", today)

	selected, counts := Select([]types.Paper{stale, offCat, fresh}, testConfig(t.TempDir()), testKeywords(), today)

	require.Len(t, selected, 1)
	assert.Equal(t, "2408.00010", selected[0].ID)
	assert.Equal(t, 2, counts.InWindow)
	assert.Equal(t, 1, counts.InCategory)
}

func TestRun_EndToEnd(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	src := &fakeSource{
		papers: []types.Paper{
			testPaper("2408.11111", "a diffusion model survey", today),
			testPaper("2408.22222", "plain optimization", today),
		},
		pdf:   []byte("%PDF-1.4 fake"),
		pdfOK: true,
	}
	backend := &fakeBackend{}
	notifier := &fakeNotifier{}

	cfg := testConfig(dir)
	cfg.Report.OutputFormat = []string{"markdown", "html"}
	cfg.Email.Enabled = true

	var out bytes.Buffer
	p := &Pipeline{
		Cfg:      cfg,
		Keywords: testKeywords(),
		Source:   src,
		Analyzer: backend,
		Notifier: notifier,
		Out:      &out,
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	require.Len(t, result.Papers, 1)
	assert.Equal(t, "2408.11111", result.Papers[0].ID)
	assert.Equal(t, "pdf analysis of 2408.11111", result.Papers[0].Analysis)
	assert.Equal(t, "summary of 1 papers", result.Summary)
	assert.NoError(t, result.DeliveryErr)

	md, err := os.ReadFile(result.MDPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "a diffusion model survey")

	require.NotEmpty(t, result.HTMLPath)
	assert.Equal(t, ".html", filepath.Ext(result.HTMLPath))

	assert.True(t, notifier.sent)
	assert.Equal(t, "2026-08-28", notifier.date)
	assert.Equal(t, 1, notifier.count)

	assert.Contains(t, out.String(), "Selected 1 papers for the report")
}

func TestRun_PDFFailureFallsBackToAbstract(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		papers: []types.Paper{testPaper("2408.33333", "diffusion model work", today)},
		pdfOK:  false,
	}
	backend := &fakeBackend{}

	p := &Pipeline{
		Cfg:      testConfig(t.TempDir()),
		Keywords: testKeywords(),
		Source:   src,
		Analyzer: backend,
		Out:      &bytes.Buffer{},
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	require.Len(t, result.Papers, 1)
	assert.Equal(t, "abstract analysis of 2408.33333", result.Papers[0].Analysis)
	assert.Zero(t, backend.pdfCalls)
	assert.Equal(t, 1, backend.absCalls)
}

func TestRun_AnalysisFailureDegradesToEmpty(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		papers: []types.Paper{testPaper("2408.44444", "diffusion model work", today)},
		pdf:    []byte("pdf"),
		pdfOK:  true,
	}
	backend := &fakeBackend{
		pdfErr:      errors.New("model overloaded"),
		abstractErr: errors.New("model overloaded"),
	}

	var out bytes.Buffer
	p := &Pipeline{
		Cfg:      testConfig(t.TempDir()),
		Keywords: testKeywords(),
		Source:   src,
		Analyzer: backend,
		Out:      &out,
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	require.Len(t, result.Papers, 1)
	assert.Empty(t, result.Papers[0].Analysis)
	assert.NotEmpty(t, result.MDPath)
	assert.Contains(t, out.String(), "warning: analysis unavailable for 2408.44444")
}

func TestRun_CitationEnrichmentAndImpactRank(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	older := testPaper("2408.55555", "diffusion model alpha", today.AddDate(0, 0, -5))
	newer := testPaper("2408.66666", "diffusion model beta", today)

	src := &fakeSource{papers: []types.Paper{older, newer}, pdfOK: false}
	cfg := testConfig(t.TempDir())
	cfg.Citations.Enabled = true
	cfg.Report.Rank = types.RankImpact

	var out bytes.Buffer
	p := &Pipeline{
		Cfg:       cfg,
		Keywords:  testKeywords(),
		Source:    src,
		Citations: &fakeCitations{counts: map[string]int{"2408.55555": 5, "2408.66666": 200}},
		Analyzer:  &fakeBackend{},
		Out:       &out,
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	require.Len(t, result.Papers, 2)
	assert.Equal(t, "2408.66666", result.Papers[0].ID)
	assert.Equal(t, 200, result.Papers[0].CitationCount)
	assert.Equal(t, 5, result.Papers[1].CitationCount)
	assert.Contains(t, out.String(), "2 highly cited papers")
}

func TestRun_CitationLookupFailureLeavesZero(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		papers: []types.Paper{testPaper("2408.77777", "diffusion model work", today)},
	}
	cfg := testConfig(t.TempDir())
	cfg.Citations.Enabled = true

	var out bytes.Buffer
	p := &Pipeline{
		Cfg:       cfg,
		Keywords:  testKeywords(),
		Source:    src,
		Citations: &fakeCitations{err: errors.New("openalex unavailable")},
		Analyzer:  &fakeBackend{},
		Out:       &out,
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	require.Len(t, result.Papers, 1)
	assert.Zero(t, result.Papers[0].CitationCount)
	assert.Contains(t, out.String(), "warning: citation lookup failed")
}

func TestRun_DeliveryFailureKeepsArtifacts(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		papers: []types.Paper{testPaper("2408.88888", "diffusion model work", today)},
	}
	cfg := testConfig(t.TempDir())
	cfg.Email.Enabled = true

	p := &Pipeline{
		Cfg:      cfg,
		Keywords: testKeywords(),
		Source:   src,
		Analyzer: &fakeBackend{},
		Notifier: &fakeNotifier{sendErr: errors.New("smtp refused")},
		Out:      &bytes.Buffer{},
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	assert.Error(t, result.DeliveryErr)
	_, statErr := os.Stat(result.MDPath)
	assert.NoError(t, statErr)
}

func TestRun_FetchFailureFailsRun(t *testing.T) {
	src := &fakeSource{fetchErr: errors.New("arxiv timeout")}
	p := &Pipeline{
		Cfg:      testConfig(t.TempDir()),
		Keywords: testKeywords(),
		Source:   src,
		Analyzer: &fakeBackend{},
		Out:      &bytes.Buffer{},
	}

	_, err := p.Run(context.Background(), "2026-08-28")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching papers")
}

func TestRun_EmptySelectionStillWritesReport(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{
		papers: []types.Paper{testPaper("2408.99999", "nothing relevant here", today)},
	}
	backend := &fakeBackend{}

	p := &Pipeline{
		Cfg:      testConfig(t.TempDir()),
		Keywords: testKeywords(),
		Source:   src,
		Analyzer: backend,
		Out:      &bytes.Buffer{},
	}

	result, err := p.Run(context.Background(), "2026-08-28")
	require.NoError(t, err)

	assert.Empty(t, result.Papers)
	assert.Empty(t, result.Summary)

	md, err := os.ReadFile(result.MDPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# arXiv Papers Report - 2026-08-28"))
}

func TestRun_InvalidDate(t *testing.T) {
	p := &Pipeline{
		Cfg:      testConfig(t.TempDir()),
		Keywords: testKeywords(),
		Source:   &fakeSource{},
		Analyzer: &fakeBackend{},
		Out:      &bytes.Buffer{},
	}

	_, err := p.Run(context.Background(), "28/08/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid report date")
}
