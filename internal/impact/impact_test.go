// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package impact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

var today = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func TestVelocity(t *testing.T) {
	tenDaysAgo := today.AddDate(0, 0, -10)

	tests := []struct {
		name      string
		count     int
		published time.Time
		want      float64
	}{
		{"ten citations over ten days", 10, tenDaysAgo, 1.0},
		{"no citations", 0, tenDaysAgo, 0},
		{"zero publication date", 10, time.Time{}, 0},
		{"published today divides by one day", 5, today, 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Velocity(tt.count, tt.published, today))
		})
	}
}

func TestImpactScore(t *testing.T) {
	tenDaysAgo := today.AddDate(0, 0, -10)
	// 0.7*10 + 3.0*(10/10) = 10.0
	assert.InDelta(t, 10.0, ImpactScore(10, tenDaysAgo, today), 1e-9)
}

func TestRankOrdersByImpactDescending(t *testing.T) {
	papers := []types.ScoredPaper{
		{Paper: types.Paper{ID: "low", CitationCount: 1, Published: today.AddDate(0, 0, -30)}},
		{Paper: types.Paper{ID: "high", CitationCount: 40, Published: today.AddDate(0, 0, -10)}},
		{Paper: types.Paper{ID: "none"}},
	}

	ranked := Rank(papers, today)

	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "low", ranked[1].ID)
	assert.Equal(t, "none", ranked[2].ID)
	// Input order untouched.
	assert.Equal(t, "low", papers[0].ID)
}

func TestRankKeepsPapersWithoutCitations(t *testing.T) {
	papers := []types.ScoredPaper{
		{Paper: types.Paper{ID: "a"}},
		{Paper: types.Paper{ID: "b"}},
	}
	ranked := Rank(papers, today)
	assert.Len(t, ranked, 2)
	// Zero scores tie; input order is preserved.
	assert.Equal(t, "a", ranked[0].ID)
}

func TestHighlyCited(t *testing.T) {
	papers := []types.ScoredPaper{
		{Paper: types.Paper{ID: "a", CitationCount: 3}},
		{Paper: types.Paper{ID: "b", CitationCount: 12}},
		{Paper: types.Paper{ID: "c", CitationCount: 5}},
	}

	cited := HighlyCited(papers, 5)

	assert.Len(t, cited, 2)
	assert.Equal(t, "b", cited[0].ID)
	assert.Equal(t, "c", cited[1].ID)
}
