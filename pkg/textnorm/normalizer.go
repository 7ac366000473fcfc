// FILE: pkg/textnorm/normalizer.go
// PURPOSE: Canonical text normalization shared by catalog matching and chunk filtering

package textnorm

import (
	"crypto/md5"
	"fmt"
	"regexp"
	"strings"
)

// translitTable maps accented letters common in the supported locales to
// ASCII digraphs. This table is the single source of truth: the Postgres
// normalize_text() function must apply exactly the same substitutions.
// Extending it requires updating both sides and the golden corpus.
var translitTable = map[rune]string{
	'å': "aa",
	'ø': "oe",
	'æ': "ae",
	'ä': "ae",
	'ö': "oe",
	'ü': "ue",
	'é': "e",
	'è': "e",
	'ê': "e",
	'ë': "e",
	'á': "a",
	'à': "a",
	'â': "a",
	'í': "i",
	'ì': "i",
	'î': "i",
	'ï': "i",
	'ó': "o",
	'ò': "o",
	'ô': "o",
	'ú': "u",
	'ù': "u",
	'û': "u",
	'ý': "y",
	'ÿ': "y",
	'ñ': "n",
	'ç': "c",
	'ß': "ss",
}

var (
	// "G-3", "G.3", "G 3" → "g3". Only a single separator between a letter
	// and a digit collapses; runs of whitespace are handled separately.
	modelSeparatorPattern = regexp.MustCompile(`([a-z])[\-. ]([0-9])`)
	whitespacePattern     = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes text for comparison. It is deterministic, pure and
// total: any input string (including empty) yields a stable output, and
// Normalize(Normalize(s)) == Normalize(s).
//
// Rules, applied in order:
//  1. Lowercase.
//  2. Transliterate accented letters via translitTable (aa/oe/ae digraphs).
//  3. Collapse whitespace runs to a single space and trim.
//  4. Collapse letter+separator+digit model patterns ("G-3" → "g3").
//
// Whitespace collapses first so that "G  3" reaches the separator rule as
// "g 3"; the reverse order would need a second pass to reach "g3" and break
// idempotence.
//
// All other punctuation is preserved.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if repl, ok := translitTable[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	return modelSeparatorPattern.ReplaceAllString(text, "$1$2")
}

// ContentHash returns a stable hex digest of the normalized form of text.
// Two strings hash equal iff their normalized forms are byte-identical.
func ContentHash(text string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(Normalize(text))))
}
