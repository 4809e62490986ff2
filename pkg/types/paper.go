// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// the Paper record fetched from arXiv, the MatchEvidence produced by keyword
// scoring, the ScoredPaper that flows through selection and analysis, and the
// configuration structs loaded at startup.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Paper holds the metadata of one arXiv preprint under consideration.
// Papers are produced fresh each run by the arXiv client, flow through the
// pipeline in memory, and are discarded after the report is written.
type Paper struct {
	// ID is the bare arXiv identifier (e.g. "2501.00001"), stable across
	// runs. Two papers with the same ID are the same document; the
	// later-seen one is dropped by deduplication.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PDFURL is the locator for the full-text PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the submission date. A zero value means the source
	// supplied a missing or unparseable date; the date filter excludes
	// such papers silently.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the date of the latest revision.
	Updated time.Time `json:"updated" yaml:"updated"`

	// Categories is the set of arXiv category labels (e.g. "cs.CV").
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the first category reported by arXiv.
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// Comment, JournalRef, and DOI are optional free-text fields.
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// CitationCount and CitationURL are filled by the optional citation
	// lookup. Zero / empty when the lookup is disabled or failed.
	CitationCount int    `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`
	CitationURL   string `json:"citation_url,omitempty" yaml:"citation_url,omitempty"`
}

// AbsURL returns the arXiv abstract page URL for the paper.
func (p Paper) AbsURL() string {
	return "https://arxiv.org/abs/" + p.ID
}

// ShortID returns the part of the identifier after the last dot
// (e.g. "2501.00001" → "00001"), used as a compact reference in reports.
func (p Paper) ShortID() string {
	if idx := strings.LastIndex(p.ID, "."); idx >= 0 {
		return p.ID[idx+1:]
	}
	return p.ID
}

// FormattedAuthors returns the author list for display: all names joined
// when there are three or fewer, otherwise the first author plus "et al.".
func (p Paper) FormattedAuthors() string {
	if len(p.Authors) > 3 {
		return fmt.Sprintf("%s et al.", p.Authors[0])
	}
	return strings.Join(p.Authors, ", ")
}

// MatchLocation identifies where a keyword hit was found.
type MatchLocation string

const (
	LocationTitle    MatchLocation = "title"
	LocationAbstract MatchLocation = "abstract"
)

// KeywordMatch records one keyword hit: the keyword, where it matched, and
// the weight it contributed to the score. Title is checked before abstract,
// so a keyword matches in at most one location per paper.
type KeywordMatch struct {
	Keyword  string        `json:"keyword" yaml:"keyword"`
	Location MatchLocation `json:"location" yaml:"location"`
	Weight   float64       `json:"weight" yaml:"weight"`
}

// MatchEvidence is the breakdown of one paper's score against the keyword
// taxonomy. It is owned by exactly one ScoredPaper for the duration of a
// run and is never persisted independently.
type MatchEvidence struct {
	// Primary and Secondary list keyword hits per tier in taxonomy order.
	Primary   []KeywordMatch `json:"primary_matches" yaml:"primary_matches"`
	Secondary []KeywordMatch `json:"secondary_matches" yaml:"secondary_matches"`

	// Excluded lists matched exclude keywords. Location is not tracked.
	Excluded []string `json:"excluded_matches" yaml:"excluded_matches"`

	// Authors lists matched preferred-author names.
	Authors []string `json:"author_matches" yaml:"author_matches"`
}

// ScoredPaper is a Paper plus its keyword match score and evidence.
// Created by the scorer; the selection stages never mutate it. Analysis
// and KeyFindings are filled by the enrichment step after selection.
type ScoredPaper struct {
	Paper `yaml:",inline"`

	// Score is the weighted keyword relevance score.
	Score float64 `json:"match_score" yaml:"match_score"`

	// Evidence describes which keywords and authors produced the score.
	Evidence MatchEvidence `json:"match_details" yaml:"match_details"`

	// Analysis is the AI-generated analysis text. Empty when the
	// language-model collaborator was unavailable.
	Analysis string `json:"analysis,omitempty" yaml:"analysis,omitempty"`

	// KeyFindings are sentences extracted from the abstract by heuristic.
	KeyFindings []string `json:"key_findings,omitempty" yaml:"key_findings,omitempty"`
}
