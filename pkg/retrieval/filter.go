// FILE: pkg/retrieval/filter.go
// PURPOSE: Restrict retrieval context to chunks unambiguously about one offer

package retrieval

import (
	"strings"

	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/pkg/textnorm"
)

// FilterMethod names the pass that produced the filtered set.
type FilterMethod string

const (
	FilterBrandModel FilterMethod = "brand_model"
	FilterModelOnly  FilterMethod = "model_only"
)

// OfferAnchor is the minimal offer identity the filter needs.
type OfferAnchor struct {
	BrandNorm string
	ModelNorm string
}

// FilterResult carries the surviving chunks and how they were selected.
// An empty Filtered with Fallback=true means "no safe context": the caller
// must degrade gracefully, not error.
type FilterResult struct {
	Filtered []*contract.ScoredContentChunk
	Method   FilterMethod
	Fallback bool
}

// FilterChunksByOffer keeps only chunks whose normalized content is
// unambiguously about the anchored offer.
//
// Primary pass requires both brand and model to appear; if that yields
// nothing, a model-only fallback runs. A chunk that names a different model
// without also naming the target model can never survive either pass —
// that is the anti-contamination guarantee protecting near-duplicate
// variants (a g3 answer must never be built from g4-only specifications).
func FilterChunksByOffer(chunks []*contract.ScoredContentChunk, offer OfferAnchor) *FilterResult {
	normalized := make([]string, len(chunks))
	for i, c := range chunks {
		normalized[i] = textnorm.Normalize(c.Chunk.Content)
	}

	primary := make([]*contract.ScoredContentChunk, 0, len(chunks))
	if offer.BrandNorm != "" && offer.ModelNorm != "" {
		for i, c := range chunks {
			if strings.Contains(normalized[i], offer.BrandNorm) && strings.Contains(normalized[i], offer.ModelNorm) {
				primary = append(primary, c)
			}
		}
	}
	if len(primary) > 0 {
		return &FilterResult{Filtered: primary, Method: FilterBrandModel, Fallback: false}
	}

	fallback := make([]*contract.ScoredContentChunk, 0, len(chunks))
	if offer.ModelNorm != "" {
		for i, c := range chunks {
			if strings.Contains(normalized[i], offer.ModelNorm) {
				fallback = append(fallback, c)
			}
		}
	}
	return &FilterResult{Filtered: fallback, Method: FilterModelOnly, Fallback: true}
}
