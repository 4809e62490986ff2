// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package impact ranks papers by citation metrics. It is independent of
// keyword scoring and composes after the selection pipeline: Rank
// re-orders an already-selected set, it never adds or removes papers.
package impact

import (
	"sort"
	"time"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// Weighting constants for the impact score. Velocity carries a 0.3 weight
// at a x10 scale, folded into a single multiplier.
const (
	countWeight    = 0.7
	velocityWeight = 3.0
)

// Velocity returns citations per day since publication. The divisor is
// floored at one day; papers without citation data or a publication date
// have velocity zero.
func Velocity(citationCount int, published, today time.Time) float64 {
	if citationCount <= 0 || published.IsZero() {
		return 0
	}
	days := int(today.Sub(published).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return float64(citationCount) / float64(days)
}

// ImpactScore combines raw citation count with citation velocity.
func ImpactScore(citationCount int, published, today time.Time) float64 {
	return countWeight*float64(citationCount) + velocityWeight*Velocity(citationCount, published, today)
}

// Rank returns the papers sorted by impact score descending. Papers
// lacking citation data score zero and sink to the bottom rather than
// being excluded. The input is not mutated; ties keep input order.
func Rank(papers []types.ScoredPaper, today time.Time) []types.ScoredPaper {
	ranked := append([]types.ScoredPaper(nil), papers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ImpactScore(ranked[i].CitationCount, ranked[i].Published, today) >
			ImpactScore(ranked[j].CitationCount, ranked[j].Published, today)
	})
	return ranked
}

// HighlyCited returns the papers with at least min citations, sorted by
// citation count descending.
func HighlyCited(papers []types.ScoredPaper, min int) []types.ScoredPaper {
	var cited []types.ScoredPaper
	for _, p := range papers {
		if p.CitationCount >= min {
			cited = append(cited, p)
		}
	}
	sort.SliceStable(cited, func(i, j int) bool {
		return cited[i].CitationCount > cited[j].CitationCount
	})
	return cited
}
