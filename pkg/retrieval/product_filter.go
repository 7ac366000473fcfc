// FILE: pkg/retrieval/product_filter.go
// PURPOSE: Optional LLM relevance filter over retrieved candidates

package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/pkg/llm"
)

// ProductFilter asks an LLM which candidates are actually relevant to the
// query. It is a convenience filter, not a safety gate, so it fails open:
// any provider failure returns the full candidate set unchanged.
type ProductFilter struct {
	provider llm.LLMProvider
}

func NewProductFilter(provider llm.LLMProvider) *ProductFilter {
	return &ProductFilter{provider: provider}
}

// Policy reports the filter's failure policy. Always FailOpen.
func (f *ProductFilter) Policy() llm.FailurePolicy {
	return llm.FailOpen
}

// Filter returns the subset of candidates the model judged relevant, in the
// original order. On provider error, malformed output, or an empty verdict,
// all candidates are returned.
func (f *ProductFilter) Filter(ctx context.Context, query string, candidates []*contract.ScoredContentChunk) []*contract.ScoredContentChunk {
	if len(candidates) <= 1 {
		return candidates
	}

	raw, err := f.provider.Generate(ctx, buildFilterPrompt(query, candidates),
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(200),
	)
	if err != nil {
		return candidates
	}

	jsonStr := llm.ExtractJSON(raw)
	if jsonStr == "" {
		return candidates
	}

	var parsed struct {
		RelevantIds []int `json:"relevant_ids"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return candidates
	}
	if len(parsed.RelevantIds) == 0 {
		return candidates
	}

	keep := make(map[int]bool, len(parsed.RelevantIds))
	for _, id := range parsed.RelevantIds {
		keep[id] = true
	}

	filtered := make([]*contract.ScoredContentChunk, 0, len(parsed.RelevantIds))
	for i, c := range candidates {
		if keep[i+1] {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

func buildFilterPrompt(query string, candidates []*contract.ScoredContentChunk) string {
	var sb strings.Builder
	sb.WriteString("Select which of the numbered passages are relevant to answering the question.\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n\nPassages:\n", query))
	for i, c := range candidates {
		content := c.Chunk.Content
		if len(content) > 400 {
			content = content[:400]
		}
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, content))
	}
	sb.WriteString("\nRespond with ONLY a JSON object: {\"relevant_ids\": [1, 3, ...]}")
	return sb.String()
}
