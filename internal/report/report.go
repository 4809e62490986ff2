// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the daily digest as Markdown, converts it to
// HTML, and writes the artifacts to the output directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// Generate renders the full Markdown report: header, optional executive
// summary, table of contents, and one section per paper in input order.
func Generate(papers []types.ScoredPaper, summary, title, date string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", title, date)

	if summary != "" {
		b.WriteString("## Executive Summary\n\n")
		b.WriteString(summary)
		b.WriteString("\n\n---\n\n")
	}

	b.WriteString("## Table of Contents\n\n")
	for i, p := range papers {
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", i+1, p.Title, p.ID)
	}
	b.WriteString("\n---\n\n## Papers\n\n")

	for _, p := range papers {
		fmt.Fprintf(&b, "<a id='%s'></a>\n", p.ID)
		b.WriteString(paperSection(p))
	}

	return b.String()
}

// paperSection renders one paper's Markdown block.
func paperSection(p types.ScoredPaper) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## [%s](%s)\n\n", p.Title, p.AbsURL())
	fmt.Fprintf(&b, "**Authors:** %s\n\n", strings.Join(p.Authors, ", "))
	if !p.Published.IsZero() {
		fmt.Fprintf(&b, "**Published:** %s\n\n", p.Published.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "**Categories:** %s\n\n", strings.Join(p.Categories, ", "))

	if p.CitationCount > 0 {
		fmt.Fprintf(&b, "**Citations:** %d\n\n", p.CitationCount)
	}

	fmt.Fprintf(&b, "**Abstract:**\n\n%s\n\n", p.Abstract)

	if p.Analysis != "" {
		fmt.Fprintf(&b, "**Analysis:**\n\n%s\n\n", p.Analysis)
	}

	if len(p.KeyFindings) > 0 {
		b.WriteString("**Key Findings:**\n\n")
		for _, finding := range p.KeyFindings {
			fmt.Fprintf(&b, "- %s\n", finding)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Links:**\n\n")
	fmt.Fprintf(&b, "- [PDF](%s)\n", p.PDFURL)
	fmt.Fprintf(&b, "- [arXiv](%s)\n", p.AbsURL())
	if p.CitationURL != "" {
		fmt.Fprintf(&b, "- [Citations](%s)\n", p.CitationURL)
	}

	b.WriteString("\n---\n\n")
	return b.String()
}

// Save writes the Markdown report into outputDir, creating the directory
// when needed, and returns the file path.
func Save(markdown, outputDir, filename string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Filename returns the date-stamped report filename.
func Filename(date string) string {
	return fmt.Sprintf("arxiv_report_%s.md", date)
}
