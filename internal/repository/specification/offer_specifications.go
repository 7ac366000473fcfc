package specification

import (
	"gorm.io/gorm"
)

// ByNormalizedTokens matches offers whose normalized brand, model or alias
// forms intersect the extracted query tokens. Aliases are stored as a JSON
// array of pre-normalized strings, so a containment probe per token suffices.
type ByNormalizedTokens struct {
	Tokens []string
}

func (s ByNormalizedTokens) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tokens) == 0 {
		// No recognizable token: match nothing, never the whole catalog.
		return db.Where("1 = 0")
	}

	matcher := db.Session(&gorm.Session{NewDB: true}).
		Where("model_norm IN ?", s.Tokens).
		Or("brand_norm IN ?", s.Tokens)
	for _, token := range s.Tokens {
		matcher = matcher.Or("aliases @> ?", `["`+token+`"]`)
	}
	return db.Where(matcher)
}
