// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter provides the candidate-narrowing stages of the selection
// pipeline: date window, category membership, deduplication, and bounding.
// Every function is pure and order-preserving: it reads its input slice
// and returns a new one, never mutating the input.
package filter

import (
	"time"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// ByDate keeps papers published within [today-days, today], comparing
// calendar dates only. A paper with a zero Published date (missing or
// unparseable upstream) is silently excluded; the arXiv feed occasionally
// supplies malformed dates and dropping the record beats aborting the run.
func ByDate(papers []types.Paper, days int, today time.Time) []types.Paper {
	cutoff := truncateDate(today).AddDate(0, 0, -days)

	var kept []types.Paper
	for _, p := range papers {
		if p.Published.IsZero() {
			continue
		}
		if !truncateDate(p.Published).Before(cutoff) {
			kept = append(kept, p)
		}
	}
	return kept
}

// ByCategory keeps papers whose category set intersects the allow-list.
// A paper with no categories is excluded.
func ByCategory(papers []types.Paper, allowed []string) []types.Paper {
	allowedSet := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		allowedSet[c] = true
	}

	var kept []types.Paper
	for _, p := range papers {
		for _, c := range p.Categories {
			if allowedSet[c] {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// Dedupe removes papers that repeat an already-seen identifier, keeping
// the first occurrence in input order. Running it twice yields the same
// result as running it once.
func Dedupe(papers []types.ScoredPaper) []types.ScoredPaper {
	seen := make(map[string]bool, len(papers))
	var unique []types.ScoredPaper
	for _, p := range papers {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
	}
	return unique
}

// Limit returns the first n papers, or all of them when fewer exist.
func Limit(papers []types.ScoredPaper, n int) []types.ScoredPaper {
	if n < 0 {
		n = 0
	}
	if len(papers) <= n {
		return append([]types.ScoredPaper(nil), papers...)
	}
	return append([]types.ScoredPaper(nil), papers[:n]...)
}

// truncateDate strips the time-of-day component.
func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
