// FILE: pkg/contextkw/extractor.go
// PURPOSE: Frequency-based context keyword extraction from retrieved chunks
// and recent conversation turns. Deliberately language-agnostic: instead of
// per-language stoplists, tokens are kept only when their corpus frequency
// falls in a mid band, which drops singleton noise and common filler alike.
package contextkw

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"ai-shopassist-be/pkg/textnorm"
)

const (
	DefaultMaxKeywords = 15

	minTokenLength = 2
	maxTokenLength = 20
	minFrequency   = 1  // exclusive
	maxFrequency   = 50 // inclusive
)

// ChunkText is the slice of a content chunk this extractor cares about.
type ChunkText struct {
	Content string
	Title   string
}

var wordPattern = regexp.MustCompile(`[\p{L}0-9]+`)

// shortTokenMarkers are single letters that make a 2-3 char token look like a
// model code (x1, g3, pro would not qualify, px would).
var shortTokenMarkers = map[rune]bool{
	'x': true, 'v': true, 'z': true, 'q': true,
}

// ExtractContextKeywords tokenizes chunk content, titles and the query,
// keeps tokens in the mid-frequency band, and returns the top max by
// descending frequency. Pass max <= 0 for the default cap.
func ExtractContextKeywords(chunks []ChunkText, query string, max int) []string {
	if max <= 0 {
		max = DefaultMaxKeywords
	}

	freq := map[string]int{}
	order := []string{}
	count := func(text string) {
		for _, token := range tokenize(text) {
			if _, seen := freq[token]; !seen {
				order = append(order, token)
			}
			freq[token]++
		}
	}
	for _, chunk := range chunks {
		count(chunk.Content)
		count(chunk.Title)
	}
	count(query)

	kept := []string{}
	for _, token := range order {
		n := freq[token]
		if n > minFrequency && n <= maxFrequency {
			kept = append(kept, token)
			continue
		}
		// Short model-code looking tokens stay even as singletons.
		if n <= maxFrequency && isShortModelCode(token) {
			kept = append(kept, token)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return freq[kept[i]] > freq[kept[j]]
	})
	if len(kept) > max {
		kept = kept[:max]
	}
	return kept
}

// ExtractQueryKeywords is the fallback when no chunks are available yet: it
// keeps every valid token of the query alone, without the frequency band.
func ExtractQueryKeywords(query string, max int) []string {
	if max <= 0 {
		max = DefaultMaxKeywords
	}
	seen := map[string]bool{}
	keywords := []string{}
	for _, token := range tokenize(query) {
		if seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		if len(keywords) >= max {
			break
		}
	}
	return keywords
}

func tokenize(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		// Length bounds are in runes: "å" is one letter, not two bytes.
		if n := utf8.RuneCountInString(t); n < minTokenLength || n > maxTokenLength {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func isShortModelCode(token string) bool {
	if n := utf8.RuneCountInString(token); n < 2 || n > 3 {
		return false
	}
	if textnorm.IsModelToken(token) {
		return true
	}
	for _, r := range token {
		if r >= '0' && r <= '9' {
			return true
		}
		if shortTokenMarkers[r] {
			return true
		}
	}
	return false
}
