// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline composes the digest stages into one run: fetch, select,
// enrich, assemble, deliver.
//
// Selection is a fixed stage order (date window, category, keyword rank,
// dedupe, bound) and is pure: each stage takes a slice and returns
// a new one. Bounding happens last so score order decides which papers
// survive; the kept set is always the top-scoring qualifying papers.
// External collaborators (arXiv, OpenAlex, Claude, SMTP) enter only
// through interfaces, and every collaborator failure after fetch degrades
// instead of aborting the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gogojjh/everyday-my-arxiv/internal/analyze"
	"github.com/gogojjh/everyday-my-arxiv/internal/filter"
	"github.com/gogojjh/everyday-my-arxiv/internal/impact"
	"github.com/gogojjh/everyday-my-arxiv/internal/report"
	"github.com/gogojjh/everyday-my-arxiv/internal/score"
	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// Source supplies candidate papers and full-text PDFs.
type Source interface {
	Recent(ctx context.Context) ([]types.Paper, error)
	FetchPDF(ctx context.Context, pdfURL string) ([]byte, bool)
}

// CitationSource supplies citation counts for the optional impact path.
type CitationSource interface {
	Count(ctx context.Context, paper types.Paper) (count int, citedByURL string, err error)
}

// Notifier delivers the report notification.
type Notifier interface {
	SendReport(ctx context.Context, date string, paperCount int, summary, mdPath, htmlPath string) error
}

// StageCounts records how many papers survived each selection stage.
type StageCounts struct {
	Fetched    int
	InWindow   int
	InCategory int
	Matched    int
	Deduped    int
	Selected   int
}

// Select runs the selection pipeline over raw candidates. The stage order
// is fixed: reordering it changes semantics, since truncation must come
// after scoring for the top-N guarantee to hold.
func Select(papers []types.Paper, cfg *types.Config, keywords *types.KeywordsConfig, today time.Time) ([]types.ScoredPaper, StageCounts) {
	counts := StageCounts{Fetched: len(papers)}

	inWindow := filter.ByDate(papers, cfg.Arxiv.RecentDays, today)
	counts.InWindow = len(inWindow)

	inCategory := filter.ByCategory(inWindow, cfg.Arxiv.Categories)
	counts.InCategory = len(inCategory)

	matched := score.FilterAndRank(inCategory, keywords)
	counts.Matched = len(matched)

	deduped := filter.Dedupe(matched)
	counts.Deduped = len(deduped)

	selected := filter.Limit(deduped, cfg.Report.MaxPapers)
	counts.Selected = len(selected)

	return selected, counts
}

// Pipeline holds one run's collaborators and configuration.
type Pipeline struct {
	Cfg      *types.Config
	Keywords *types.KeywordsConfig

	Source    Source
	Citations CitationSource // nil when citation lookup is disabled
	Analyzer  analyze.Backend
	Notifier  Notifier

	// Out receives stage-by-stage progress and warnings.
	Out io.Writer
}

// RunResult describes the artifacts of a completed run.
type RunResult struct {
	Papers   []types.ScoredPaper
	Counts   StageCounts
	Summary  string
	MDPath   string
	HTMLPath string

	// DeliveryErr is the email failure, if any. The report artifacts are
	// already on disk when delivery runs, so the failure is carried in
	// the result instead of failing the run.
	DeliveryErr error
}

// Run executes the full daily pipeline for the given report date.
//
// The fetch is the only external call that can fail the run: without
// candidates there is nothing to report. Everything after selection
// degrades per collaborator: analysis falls back from PDF to abstract to
// nothing, citation lookups fall back to zero, and a delivery failure
// still leaves the saved report on disk.
func (p *Pipeline) Run(ctx context.Context, date string) (*RunResult, error) {
	today, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid report date %q: %w", date, err)
	}

	fmt.Fprintln(p.Out, "Fetching recent papers from arXiv...")
	raw, err := p.Source.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching papers: %w", err)
	}

	selected, counts := Select(raw, p.Cfg, p.Keywords, today)
	fmt.Fprintf(p.Out, "Fetched %d papers\n", counts.Fetched)
	fmt.Fprintf(p.Out, "%d papers published in the last %d days\n", counts.InWindow, p.Cfg.Arxiv.RecentDays)
	fmt.Fprintf(p.Out, "%d papers in the configured categories\n", counts.InCategory)
	fmt.Fprintf(p.Out, "%d papers matching keywords\n", counts.Matched)
	fmt.Fprintf(p.Out, "Selected %d papers for the report\n", counts.Selected)

	if p.Cfg.Citations.Enabled && p.Citations != nil {
		p.enrichCitations(ctx, selected)
	}

	if p.Cfg.Report.Rank == types.RankImpact {
		fmt.Fprintln(p.Out, "Re-ranking selected papers by citation impact")
		selected = impact.Rank(selected, today)
	}

	p.enrichAnalysis(ctx, selected)

	summary := ""
	if len(selected) > 0 {
		fmt.Fprintln(p.Out, "Generating report summary...")
		summary, err = p.Analyzer.Summarize(ctx, selected, date)
		if err != nil {
			fmt.Fprintf(p.Out, "warning: report summary unavailable: %v\n", err)
			summary = ""
		}
	}

	md := report.Generate(selected, summary, p.Cfg.Report.Title, date)
	mdPath, err := report.Save(md, p.Cfg.Report.OutputDir, report.Filename(date))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.Out, "Report saved to %s\n", mdPath)

	htmlPath := ""
	if p.Cfg.Report.WantsHTML() {
		htmlPath, err = report.SaveHTML(mdPath, p.Cfg.Report.Title)
		if err != nil {
			fmt.Fprintf(p.Out, "warning: HTML conversion failed: %v\n", err)
			htmlPath = ""
		} else {
			fmt.Fprintf(p.Out, "HTML report saved to %s\n", htmlPath)
		}
	}

	result := &RunResult{
		Papers:   selected,
		Counts:   counts,
		Summary:  summary,
		MDPath:   mdPath,
		HTMLPath: htmlPath,
	}

	if p.Cfg.Email.Enabled && p.Notifier != nil {
		fmt.Fprintln(p.Out, "Sending email notification...")
		if err := p.Notifier.SendReport(ctx, date, len(selected), summary, mdPath, htmlPath); err != nil {
			// The report is already on disk; record the failure and move on.
			fmt.Fprintf(p.Out, "warning: email delivery failed: %v\n", err)
			result.DeliveryErr = err
		}
	}

	return result, nil
}

// enrichCitations fills citation counts for the selected papers. Lookup
// failures leave the count at zero.
func (p *Pipeline) enrichCitations(ctx context.Context, papers []types.ScoredPaper) {
	fmt.Fprintln(p.Out, "Fetching citation data...")
	for i := range papers {
		count, citedURL, err := p.Citations.Count(ctx, papers[i].Paper)
		if err != nil {
			fmt.Fprintf(p.Out, "warning: citation lookup failed for %s: %v\n", papers[i].ID, err)
			continue
		}
		papers[i].CitationCount = count
		papers[i].CitationURL = citedURL
	}

	if hot := impact.HighlyCited(papers, p.Cfg.Citations.MinCitationsForHighlight); len(hot) > 0 {
		fmt.Fprintf(p.Out, "%d highly cited papers (%d+ citations)\n", len(hot), p.Cfg.Citations.MinCitationsForHighlight)
	}
}

// enrichAnalysis fills key findings and AI analysis for each selected
// paper. Calls fan out with at most MaxConcurrent in flight; results are
// written by index, so the final report order always equals selection
// order regardless of arrival order.
func (p *Pipeline) enrichAnalysis(ctx context.Context, papers []types.ScoredPaper) {
	if len(papers) == 0 {
		return
	}
	fmt.Fprintf(p.Out, "Analyzing %d papers...\n", len(papers))

	sem := make(chan struct{}, p.Cfg.LLM.MaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex // guards p.Out

	for i := range papers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			paper := &papers[i]
			paper.KeyFindings = analyze.KeyFindings(paper.Abstract)

			analysis, err := p.analyzeOne(ctx, paper.Paper)
			if err != nil {
				mu.Lock()
				fmt.Fprintf(p.Out, "warning: analysis unavailable for %s: %v\n", paper.ID, err)
				mu.Unlock()
				return
			}
			paper.Analysis = analysis

			mu.Lock()
			fmt.Fprintf(p.Out, "Analyzed %s\n", paper.ID)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
}

// analyzeOne prefers full-text analysis and falls back to abstract-only
// when the PDF is unavailable.
func (p *Pipeline) analyzeOne(ctx context.Context, paper types.Paper) (string, error) {
	if pdf, ok := p.Source.FetchPDF(ctx, paper.PDFURL); ok {
		analysis, err := p.Analyzer.AnalyzePDF(ctx, pdf, paper)
		if err == nil {
			return analysis, nil
		}
		// Fall through to the abstract path.
	}
	return p.Analyzer.AnalyzeAbstract(ctx, paper)
}
