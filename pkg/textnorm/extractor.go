// FILE: pkg/textnorm/extractor.go
// PURPOSE: Extract brand/model identifier tokens from normalized text

package textnorm

import (
	"regexp"
	"strings"
)

// modelTokenPattern matches collapsed model identifiers: a letter prefix
// followed by at least one digit ("g3", "x1", "mk2").
var modelTokenPattern = regexp.MustCompile(`^[a-z]+[0-9]+[a-z0-9]*$`)

// tokenSplitPattern splits normalized text into candidate tokens.
// Normalization has already transliterated diacritics, so ASCII suffices.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// referenceStopwords are common words that never identify an offer.
// English plus the Nordic filler words seen in widget traffic.
var referenceStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"and": true, "or": true, "vs": true, "versus": true, "of": true, "to": true,
	"in": true, "on": true, "for": true, "with": true, "what": true, "which": true,
	"how": true, "why": true, "best": true, "better": true, "good": true, "any": true,
	"between": true, "compare": true, "compared": true, "difference": true,
	"differences": true, "about": true, "it": true, "this": true, "that": true,
	"do": true, "does": true, "can": true, "should": true, "i": true, "my": true,
	"me": true, "you": true, "your": true,
	// Norwegian / Danish / Swedish
	"er": true, "og": true, "eller": true, "den": true, "det": true, "de": true,
	"en": true, "et": true, "hva": true, "hvilken": true, "hvilket": true,
	"hvordan": true, "bra": true, "god": true, "beste": true,
	"mellom": true, "forskjell": true, "forskjellen": true, "jeg": true,
	"du": true, "har": true, "om": true, "som": true, "til": true, "mot": true,
	"vad": true, "vilken": true, "baest": true, "bedst": true,
}

// ExtractModelReferences returns the identifier tokens of text that may
// anchor a catalog offer: collapsed model tokens ("g3") plus bare
// alphanumeric identifiers (brand words, generic codes) that are not
// stopwords. Input is normalized internally, so callers may pass raw text.
//
// The result is deduplicated and order-preserving. Comparison queries yield
// every referenced token ("G3 vs G4" → ["g3", "g4"]), which is what allows
// the resolver to report an ambiguous (multiple) outcome.
func ExtractModelReferences(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}

	seen := make(map[string]bool)
	refs := make([]string, 0, 4)

	for _, token := range tokenSplitPattern.Split(norm, -1) {
		if token == "" || seen[token] {
			continue
		}
		if !isReferenceToken(token) {
			continue
		}
		seen[token] = true
		refs = append(refs, token)
	}

	return refs
}

// IsModelToken reports whether a normalized token is a collapsed model
// identifier ("g3") rather than a plain brand word or generic code.
func IsModelToken(token string) bool {
	return modelTokenPattern.MatchString(token)
}

// isReferenceToken decides whether a single normalized token can identify
// an offer. Model tokens always qualify; plain words qualify when they are
// long enough to be a brand or code and not a stopword.
func isReferenceToken(token string) bool {
	if modelTokenPattern.MatchString(token) {
		return true
	}
	if referenceStopwords[token] {
		return false
	}
	// Purely numeric tokens ("2024") and single letters are too ambiguous.
	if len(token) < 2 {
		return false
	}
	if !strings.ContainsFunc(token, func(r rune) bool { return r < '0' || r > '9' }) {
		return false
	}
	return true
}
