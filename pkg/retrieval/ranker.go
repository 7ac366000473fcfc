// FILE: pkg/retrieval/ranker.go
// PURPOSE: Fuse vector similarity with keyword and context signals

package retrieval

import (
	"sort"
	"strings"

	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/pkg/textnorm"
)

// RankerConfig tunes score fusion. Zero values fall back to the defaults
// used in production.
type RankerConfig struct {
	VectorWeight        float64 // share of the fused score taken by vector similarity
	SimilarityThreshold float64 // candidates below this fused score are dropped
	Limit               int     // maximum candidates returned
	ContextBoost        float64 // additive boost per candidate containing a context keyword
}

func (c RankerConfig) withDefaults() RankerConfig {
	if c.VectorWeight <= 0 || c.VectorWeight > 1 {
		c.VectorWeight = 0.7
	}
	if c.Limit <= 0 {
		c.Limit = 8
	}
	if c.ContextBoost <= 0 {
		c.ContextBoost = 0.05
	}
	return c
}

// RankedChunk is a candidate with its fused score.
type RankedChunk struct {
	Chunk *contract.ScoredContentChunk
	Score float64
}

// Ranker fuses raw retrieval scores with keyword overlap and content-type
// boosts derived from query intent.
type Ranker struct {
	cfg RankerConfig
}

func NewRanker(cfg RankerConfig) *Ranker {
	return &Ranker{cfg: cfg.withDefaults()}
}

// Rank scores candidates as
//
//	fused = vectorWeight*similarity + (1-vectorWeight)*keywordOverlap
//
// multiplied by the intent's content-type boost for the chunk's type, then
// filters by threshold and truncates to the configured limit. Sorting is
// stable so equal scores keep their retrieval order.
func (r *Ranker) Rank(candidates []*contract.ScoredContentChunk, queryKeywords []string, boosts map[string]float64) []*RankedChunk {
	return r.RankWithContext(candidates, queryKeywords, boosts, nil)
}

// RankWithContext additionally folds in conversational context keywords: a
// candidate containing any context keyword gains a small additive boost,
// which keeps follow-up turns anchored to the subject under discussion.
func (r *Ranker) RankWithContext(candidates []*contract.ScoredContentChunk, queryKeywords []string, boosts map[string]float64, contextKeywords []string) []*RankedChunk {
	ranked := make([]*RankedChunk, 0, len(candidates))

	for _, c := range candidates {
		contentNorm := textnorm.Normalize(c.Chunk.Content)

		score := r.cfg.VectorWeight*c.Similarity +
			(1-r.cfg.VectorWeight)*keywordOverlap(queryKeywords, contentNorm)

		if boost, ok := boosts[c.Chunk.ContentType]; ok && boost > 0 {
			score *= boost
		}

		for _, kw := range contextKeywords {
			if kw != "" && strings.Contains(contentNorm, kw) {
				score += r.cfg.ContextBoost
				break
			}
		}

		if score < r.cfg.SimilarityThreshold {
			continue
		}
		ranked = append(ranked, &RankedChunk{Chunk: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > r.cfg.Limit {
		ranked = ranked[:r.cfg.Limit]
	}
	return ranked
}

// keywordOverlap is the share of query keywords found in the normalized
// content. Both sides are already normalized.
func keywordOverlap(keywords []string, contentNorm string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(contentNorm, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}
