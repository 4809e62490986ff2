// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

func samplePapers() []types.ScoredPaper {
	return []types.ScoredPaper{
		{
			Paper: types.Paper{
				ID:         "2501.00001",
				Title:      "Diffusion Models for Depth",
				Authors:    []string{"Jane Doe", "John Roe"},
				Abstract:   "We propose a diffusion model.",
				PDFURL:     "https://arxiv.org/pdf/2501.00001",
				Published:  time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC),
				Categories: []string{"cs.CV"},
			},
			Score:       2.0,
			Analysis:    "A solid contribution.",
			KeyFindings: []string{"We propose a diffusion model."},
		},
		{
			Paper: types.Paper{
				ID:            "2501.00002",
				Title:         "Cited Work",
				Authors:       []string{"Solo Author"},
				Abstract:      "Abstract.",
				Categories:    []string{"cs.RO"},
				CitationCount: 7,
				CitationURL:   "https://openalex.org/W123",
			},
			Score: 1.5,
		},
	}
}

func TestGenerate(t *testing.T) {
	md := Generate(samplePapers(), "Two notable papers today.", "arXiv Computer Vision Papers", "2026-01-15")

	assert.Contains(t, md, "# arXiv Computer Vision Papers - 2026-01-15")
	assert.Contains(t, md, "## Executive Summary\n\nTwo notable papers today.")
	assert.Contains(t, md, "1. [Diffusion Models for Depth](#2501.00001)")
	assert.Contains(t, md, "2. [Cited Work](#2501.00002)")
	assert.Contains(t, md, "## [Diffusion Models for Depth](https://arxiv.org/abs/2501.00001)")
	assert.Contains(t, md, "**Authors:** Jane Doe, John Roe")
	assert.Contains(t, md, "**Published:** 2026-01-14")
	assert.Contains(t, md, "**Analysis:**\n\nA solid contribution.")
	assert.Contains(t, md, "- We propose a diffusion model.")
	assert.Contains(t, md, "**Citations:** 7")
	assert.Contains(t, md, "- [Citations](https://openalex.org/W123)")

	// Papers without citation data get no citations line.
	assert.Equal(t, 1, strings.Count(md, "**Citations:**"))
}

func TestGenerateWithoutSummary(t *testing.T) {
	md := Generate(samplePapers(), "", "arXiv Papers", "2026-01-15")
	assert.NotContains(t, md, "Executive Summary")
}

func TestSaveAndConvert(t *testing.T) {
	dir := t.TempDir()
	md := Generate(samplePapers(), "Summary.", "arXiv Papers", "2026-01-15")

	path, err := Save(md, filepath.Join(dir, "reports"), Filename("2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "arxiv_report_2026-01-15.md"), path)

	htmlPath, err := SaveHTML(path, "arXiv Papers")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "arxiv_report_2026-01-15.html"), htmlPath)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<!DOCTYPE html>")
	assert.Contains(t, string(html), "<h1")
	assert.Contains(t, string(html), "Diffusion Models for Depth")
}

func TestConvertHTMLEscapesNothingImportant(t *testing.T) {
	html, err := ConvertHTML("# Title\n\nparagraph with **bold**", "t")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>bold</strong>")
}
