// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes keyword relevance for candidate papers.
//
// Each paper is scored against the configured taxonomy: primary and
// secondary keywords contribute per-hit weights (title beats abstract,
// primary beats secondary, combined multiplicatively), a preferred-author
// match adds a flat bonus once, and any exclude-keyword hit subtracts a
// flat penalty once. Scoring is a pure function: the same paper and
// taxonomy always produce the same score and evidence.
package score

import (
	"sort"
	"strings"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// Score evaluates one paper against the taxonomy and returns its score
// with the match evidence. The title is checked before the abstract, so a
// keyword counts in at most one location per paper.
func Score(paper types.Paper, kc *types.KeywordsConfig) (float64, types.MatchEvidence) {
	title := strings.ToLower(paper.Title)
	abstract := strings.ToLower(paper.Abstract)

	var ev types.MatchEvidence

	ev.Primary = matchTier(kc.PrimaryKeywords, title, abstract,
		kc.Weights.TitleMatch*kc.Weights.PrimaryKeyword,
		kc.Weights.AbstractMatch*kc.Weights.PrimaryKeyword)
	ev.Secondary = matchTier(kc.SecondaryKeywords, title, abstract,
		kc.Weights.TitleMatch*kc.Weights.SecondaryKeyword,
		kc.Weights.AbstractMatch*kc.Weights.SecondaryKeyword)

	for _, kw := range kc.ExcludeKeywords {
		lower := strings.ToLower(kw)
		if strings.Contains(title, lower) || strings.Contains(abstract, lower) {
			ev.Excluded = append(ev.Excluded, kw)
		}
	}

	for _, author := range kc.PreferredAuthors {
		for _, name := range paper.Authors {
			if strings.EqualFold(author, name) {
				ev.Authors = append(ev.Authors, author)
				break
			}
		}
	}

	total := 0.0
	for _, m := range ev.Primary {
		total += m.Weight
	}
	for _, m := range ev.Secondary {
		total += m.Weight
	}
	// Flat bonus and penalty, applied once regardless of how many
	// authors or exclude keywords matched.
	if len(ev.Authors) > 0 {
		total += kc.Weights.AuthorBonus
	}
	if len(ev.Excluded) > 0 {
		total -= kc.Weights.ExclusionPenalty
	}

	return total, ev
}

// matchTier checks one keyword tier against the lowercased title and
// abstract. A keyword found in neither produces no evidence entry.
func matchTier(keywords []string, title, abstract string, titleWeight, abstractWeight float64) []types.KeywordMatch {
	var matches []types.KeywordMatch
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		switch {
		case strings.Contains(title, lower):
			matches = append(matches, types.KeywordMatch{
				Keyword:  kw,
				Location: types.LocationTitle,
				Weight:   titleWeight,
			})
		case strings.Contains(abstract, lower):
			matches = append(matches, types.KeywordMatch{
				Keyword:  kw,
				Location: types.LocationAbstract,
				Weight:   abstractWeight,
			})
		}
	}
	return matches
}

// FilterAndRank scores every paper, keeps those at or above the taxonomy's
// minimum match score, and returns them ordered by score descending. The
// sort is stable, so equal scores keep their input order.
func FilterAndRank(papers []types.Paper, kc *types.KeywordsConfig) []types.ScoredPaper {
	var scored []types.ScoredPaper
	for _, p := range papers {
		s, ev := Score(p, kc)
		if s >= kc.MinimumMatchScore {
			scored = append(scored, types.ScoredPaper{Paper: p, Score: s, Evidence: ev})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
