// FILE: pkg/intent/classifier.go
// PURPOSE: Heuristic query-intent classification used to bias retrieval
// ranking. Intents are scored with fixed keyword sets plus a few structural
// regexes; the winning intent selects a content-type boost table.
package intent

import (
	"regexp"
	"strings"

	"ai-shopassist-be/pkg/textnorm"
)

type RetrievalIntent string

const (
	IntentComparison      RetrievalIntent = "comparison"
	IntentBestChoice      RetrievalIntent = "best_choice"
	IntentSpecificProduct RetrievalIntent = "specific_product"
	IntentPricing         RetrievalIntent = "pricing"
	IntentFeatures        RetrievalIntent = "features"
	IntentHowTo           RetrievalIntent = "how_to"
	IntentGeneral         RetrievalIntent = "general"
)

// QueryAnalysis is derived fresh per query and never persisted.
type QueryAnalysis struct {
	Intent                     RetrievalIntent    `json:"intent"`
	Keywords                   []string           `json:"keywords"`
	Products                   []string           `json:"products"`
	Confidence                 float64            `json:"confidence"`
	IsComparative              bool               `json:"is_comparative"`
	IsLookingForRecommendation bool               `json:"is_looking_for_recommendation"`
	ContentTypeBoosts          map[string]float64 `json:"content_type_boosts"`
}

const maxKeywords = 10

// intentKeywords scores one point per substring hit, two for an exact token.
var intentKeywords = map[RetrievalIntent][]string{
	IntentComparison: {
		"vs", "versus", "compare", "comparison", "difference", "differences",
		"better", "eller", "forskjell", "forskjellen", "sammenlign", "skillnad",
	},
	IntentBestChoice: {
		"best", "top", "recommend", "recommendation", "which one", "beste",
		"anbefal", "anbefaler", "anbefaling", "bäst", "bedste",
	},
	IntentSpecificProduct: {
		"spec", "specs", "specification", "model", "modell", "review of",
		"about the", "om den", "tell me about",
	},
	IntentPricing: {
		"price", "cost", "cheap", "cheapest", "expensive", "pris", "koster",
		"billig", "billigste", "kostar", "tilbud", "discount", "deal",
	},
	IntentFeatures: {
		"feature", "features", "funksjon", "funksjoner", "battery", "batteri",
		"weight", "vekt", "size", "størrelse", "capacity", "kapasitet",
	},
	IntentHowTo: {
		"how to", "how do", "hvordan", "slik", "guide", "instruction",
		"bruksanvisning", "setup", "install", "installere",
	},
}

// structuralPatterns add hand-tuned bonus weight on top of keyword hits.
var structuralPatterns = []struct {
	pattern *regexp.Regexp
	intent  RetrievalIntent
	weight  float64
}{
	{regexp.MustCompile(`\bwhich\s+(one\s+)?is\s+(the\s+)?best\b`), IntentBestChoice, 3},
	{regexp.MustCompile(`\bhvilken\s+er\s+best\b`), IntentBestChoice, 3},
	{regexp.MustCompile(`\b\w+\s+(vs\.?|versus)\s+\w+\b`), IntentComparison, 3},
	{regexp.MustCompile(`\bwhat('s| is)\s+the\s+difference\b`), IntentComparison, 3},
	{regexp.MustCompile(`\bhva\s+(er\s+)?forskjellen\b`), IntentComparison, 3},
	{regexp.MustCompile(`\bhow\s+(much|many)\b`), IntentPricing, 2},
	{regexp.MustCompile(`\bhvor\s+mye\s+koster\b`), IntentPricing, 3},
	{regexp.MustCompile(`\bhow\s+(do|to|can)\s+i?\b`), IntentHowTo, 2},
}

var comparativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(vs\.?|versus)\b`),
	regexp.MustCompile(`\bcompared?\s+(to|with)\b`),
	regexp.MustCompile(`\bdifferen(ce|t)\b`),
	regexp.MustCompile(`\bforskjell(en)?\b`),
	regexp.MustCompile(`\b\w+\s+(or|eller)\s+\w+\?`),
	regexp.MustCompile(`\bsammenlign`),
	regexp.MustCompile(`\bwhich\s+is\s+(better|best)\b`),
}

var recommendationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\brecommend`),
	regexp.MustCompile(`\bbest(e)?\b`),
	regexp.MustCompile(`\bwhich\s+(one\s+)?should\s+i\b`),
	regexp.MustCompile(`\banbefal`),
	regexp.MustCompile(`\bworth\s+(it|buying)\b`),
	regexp.MustCompile(`\bverdt\s+(det|pengene)\b`),
	regexp.MustCompile(`\btop\s+\d+\b`),
}

var keywordStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"i": true, "you": true, "it": true, "to": true, "of": true, "in": true,
	"on": true, "for": true, "and": true, "or": true, "what": true,
	"which": true, "how": true, "do": true, "does": true, "can": true,
	"about": true, "with": true, "this": true, "that": true, "my": true,
	"er": true, "en": true, "et": true, "og": true, "som": true, "hva": true,
	"hvilken": true, "hvordan": true, "kan": true, "jeg": true, "den": true,
	"det": true, "om": true, "med": true, "til": true,
}

var analysisTokenPattern = regexp.MustCompile(`[a-zæøåäöü0-9]+`)

// intentPriority fixes the order scores are compared in, so a tied top score
// always resolves to the same intent. Earlier entries win ties.
var intentPriority = []RetrievalIntent{
	IntentComparison,
	IntentBestChoice,
	IntentSpecificProduct,
	IntentPricing,
	IntentFeatures,
	IntentHowTo,
}

// AnalyzeQuery classifies a raw user query into a retrieval intent together
// with the derived boost table and signal booleans.
func AnalyzeQuery(query string) QueryAnalysis {
	lowered := strings.ToLower(strings.TrimSpace(query))
	tokens := analysisTokenPattern.FindAllString(lowered, -1)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}

	scores := map[RetrievalIntent]float64{}
	for intentName, keywords := range intentKeywords {
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				scores[intentName] += 1
				// Exact token matches weigh more than substring hits.
				if tokenSet[kw] {
					scores[intentName] += 1
				}
			}
		}
	}
	strongPattern := false
	for _, sp := range structuralPatterns {
		if sp.pattern.MatchString(lowered) {
			scores[sp.intent] += sp.weight
			strongPattern = true
		}
	}

	best := IntentGeneral
	var bestScore float64
	for _, intentName := range intentPriority {
		if score := scores[intentName]; score > bestScore {
			best = intentName
			bestScore = score
		}
	}

	isComparative := matchesAny(lowered, comparativePatterns)
	isRecommendation := matchesAny(lowered, recommendationPatterns)
	if isComparative && best == IntentGeneral {
		best = IntentComparison
	}

	return QueryAnalysis{
		Intent:                     best,
		Keywords:                   extractKeywords(tokens, lowered, best),
		Products:                   extractProducts(query),
		Confidence:                 confidence(tokens, bestScore, strongPattern),
		IsComparative:              isComparative,
		IsLookingForRecommendation: isRecommendation,
		ContentTypeBoosts:          buildContentTypeBoosts(best, isComparative, isRecommendation),
	}
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// extractKeywords keeps non-stopword query tokens plus intent keyword hits,
// deduplicated and capped.
func extractKeywords(tokens []string, lowered string, intentName RetrievalIntent) []string {
	seen := map[string]bool{}
	keywords := []string{}
	appendKeyword := func(kw string) {
		if len(keywords) >= maxKeywords || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, t := range tokens {
		if len(t) < 2 || keywordStopwords[t] {
			continue
		}
		appendKeyword(t)
	}
	for _, kw := range intentKeywords[intentName] {
		if strings.Contains(lowered, kw) && !strings.Contains(kw, " ") {
			appendKeyword(kw)
		}
	}
	return keywords
}

// extractProducts keeps the model-shaped references from the query.
func extractProducts(query string) []string {
	products := []string{}
	for _, ref := range textnorm.ExtractModelReferences(query) {
		if textnorm.IsModelToken(ref) {
			products = append(products, ref)
		}
	}
	return products
}

// confidence blends query length, keyword score and a strong-pattern bonus,
// clamped to [0,1].
func confidence(tokens []string, bestScore float64, strongPattern bool) float64 {
	c := 0.2
	if len(tokens) >= 3 {
		c += 0.1
	}
	if len(tokens) >= 6 {
		c += 0.1
	}
	c += bestScore * 0.1
	if strongPattern {
		c += 0.25
	}
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func buildContentTypeBoosts(intentName RetrievalIntent, isComparative, isRecommendation bool) map[string]float64 {
	boosts := map[string]float64{
		"ranking":      1.0,
		"comparison":   1.0,
		"product_page": 1.0,
		"review":       1.0,
		"service":      1.0,
		"tutorial":     1.0,
		"general":      1.0,
	}

	switch intentName {
	case IntentBestChoice:
		boosts["ranking"] = 2.5
		boosts["review"] = 2.0
		boosts["comparison"] = 1.8
	case IntentComparison:
		boosts["comparison"] = 2.5
		boosts["review"] = 1.8
		boosts["ranking"] = 1.5
	case IntentSpecificProduct:
		boosts["product_page"] = 2.5
		boosts["review"] = 1.8
	case IntentPricing:
		boosts["product_page"] = 2.0
		boosts["ranking"] = 1.5
	case IntentFeatures:
		boosts["product_page"] = 2.2
		boosts["review"] = 1.5
		boosts["tutorial"] = 1.3
	case IntentHowTo:
		boosts["tutorial"] = 2.5
		boosts["service"] = 1.8
	}

	if isComparative {
		boosts["comparison"] += 0.5
		boosts["ranking"] += 0.3
	}
	if isRecommendation {
		boosts["ranking"] += 0.5
		boosts["review"] += 0.3
	}
	return boosts
}
