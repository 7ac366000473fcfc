package retrieval

import (
	"testing"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/repository/contract"
)

func scored(content, contentType string, similarity float64) *contract.ScoredContentChunk {
	return &contract.ScoredContentChunk{
		Chunk:      &entity.ContentChunk{Content: content, ContentType: contentType},
		Similarity: similarity,
	}
}

func TestRankFusesVectorAndKeywordScores(t *testing.T) {
	ranker := NewRanker(RankerConfig{VectorWeight: 0.7})
	candidates := []*contract.ScoredContentChunk{
		scored("nothing about the query here", "general", 0.9),
		scored("iviskin g3 battery capacity and weight", "general", 0.8),
	}

	ranked := ranker.Rank(candidates, []string{"g3", "battery"}, nil)

	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	// 0.7*0.8 + 0.3*1.0 = 0.86 beats 0.7*0.9 = 0.63.
	if ranked[0].Chunk.Chunk.Content != "iviskin g3 battery capacity and weight" {
		t.Errorf("top chunk = %q, keyword overlap should outrank raw similarity", ranked[0].Chunk.Chunk.Content)
	}
}

func TestRankAppliesContentTypeBoosts(t *testing.T) {
	ranker := NewRanker(RankerConfig{})
	candidates := []*contract.ScoredContentChunk{
		scored("top 5 ipl devices compared", "general", 0.6),
		scored("top 5 ipl devices ranked", "ranking", 0.6),
	}
	boosts := map[string]float64{"ranking": 2.5}

	ranked := ranker.Rank(candidates, nil, boosts)

	if ranked[0].Chunk.Chunk.ContentType != "ranking" {
		t.Errorf("top chunk type = %q, want boosted ranking chunk first", ranked[0].Chunk.Chunk.ContentType)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("boosted score %f not above unboosted %f", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankThresholdAndLimit(t *testing.T) {
	ranker := NewRanker(RankerConfig{SimilarityThreshold: 0.5, Limit: 2})
	candidates := []*contract.ScoredContentChunk{
		scored("a", "general", 0.9),
		scored("b", "general", 0.85),
		scored("c", "general", 0.8),
		scored("d", "general", 0.2), // below threshold after fusion
	}

	ranked := ranker.Rank(candidates, nil, nil)

	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2 after threshold+limit", len(ranked))
	}
	if ranked[0].Chunk.Chunk.Content != "a" || ranked[1].Chunk.Chunk.Content != "b" {
		t.Errorf("order = [%q %q], want the two highest-similarity chunks", ranked[0].Chunk.Chunk.Content, ranked[1].Chunk.Chunk.Content)
	}
}

func TestRankWithContextBoost(t *testing.T) {
	ranker := NewRanker(RankerConfig{ContextBoost: 0.1})
	candidates := []*contract.ScoredContentChunk{
		scored("general skincare advice", "general", 0.7),
		scored("the g3 has five intensity levels", "general", 0.7),
	}

	ranked := ranker.RankWithContext(candidates, nil, nil, []string{"g3"})

	if ranked[0].Chunk.Chunk.Content != "the g3 has five intensity levels" {
		t.Errorf("top chunk = %q, context keyword should break the tie", ranked[0].Chunk.Chunk.Content)
	}
	// The boost is additive once, not per keyword occurrence.
	wantTop := 0.7*0.7 + 0.1
	if diff := ranked[0].Score - wantTop; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("top score = %f, want %f", ranked[0].Score, wantTop)
	}
}

func TestRankStableOrderOnTies(t *testing.T) {
	ranker := NewRanker(RankerConfig{})
	candidates := []*contract.ScoredContentChunk{
		scored("first", "general", 0.5),
		scored("second", "general", 0.5),
		scored("third", "general", 0.5),
	}

	ranked := ranker.Rank(candidates, nil, nil)

	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].Chunk.Chunk.Content != want {
			t.Errorf("ranked[%d] = %q, want %q (stable order)", i, ranked[i].Chunk.Chunk.Content, want)
		}
	}
}
