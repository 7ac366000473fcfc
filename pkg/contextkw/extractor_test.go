package contextkw

import (
	"strings"
	"testing"
)

func TestExtractContextKeywordsFrequencyBand(t *testing.T) {
	chunks := []ChunkText{
		{Content: "laser laser laser hair removal device", Title: "IPL device guide"},
		{Content: "hair removal works on most skin types", Title: ""},
	}

	keywords := ExtractContextKeywords(chunks, "hair removal", 0)

	want := map[string]bool{"hair": true, "removal": true, "device": true, "laser": true}
	for kw := range want {
		if !contains(keywords, kw) {
			t.Errorf("keywords %v missing %q", keywords, kw)
		}
	}
	// Singletons like "guide" or "types" fall below the frequency band.
	if contains(keywords, "guide") {
		t.Errorf("keywords %v should not contain singleton %q", keywords, "guide")
	}
}

func TestExtractContextKeywordsKeepsModelCodes(t *testing.T) {
	chunks := []ChunkText{
		{Content: "The g3 has five intensity levels", Title: "Product page"},
	}
	keywords := ExtractContextKeywords(chunks, "", 0)
	if !contains(keywords, "g3") {
		t.Errorf("keywords %v missing singleton model code %q", keywords, "g3")
	}
}

func TestExtractContextKeywordsDropsVeryFrequentFiller(t *testing.T) {
	content := strings.Repeat("og produkt ", 60)
	chunks := []ChunkText{{Content: content}}
	keywords := ExtractContextKeywords(chunks, "", 0)
	if contains(keywords, "og") {
		t.Errorf("keywords %v should not contain filler appearing 60 times", keywords)
	}
}

func TestTokenLengthBoundsAreRunes(t *testing.T) {
	// "å" is a single letter despite its two-byte encoding; it falls below
	// the minimum token length. "år" (two runes) passes.
	chunks := []ChunkText{
		{Content: "å å å år år år vekt vekt"},
	}
	keywords := ExtractContextKeywords(chunks, "", 0)
	if contains(keywords, "å") {
		t.Errorf("keywords %v should not contain single-letter token %q", keywords, "å")
	}
	if !contains(keywords, "år") {
		t.Errorf("keywords %v missing two-letter token %q", keywords, "år")
	}
}

func TestExtractContextKeywordsCapped(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		word := strings.Repeat(string(rune('a'+i%26)), 4)
		sb.WriteString(word + " " + word + " ")
	}
	chunks := []ChunkText{{Content: sb.String()}}
	keywords := ExtractContextKeywords(chunks, "", 5)
	if len(keywords) > 5 {
		t.Errorf("len(keywords) = %d, want at most 5", len(keywords))
	}
}

func TestExtractQueryKeywords(t *testing.T) {
	keywords := ExtractQueryKeywords("Er IVISKIN G3 bra for sensitiv hud?", 0)
	for _, kw := range []string{"er", "iviskin", "g3", "bra"} {
		if !contains(keywords, kw) {
			t.Errorf("keywords %v missing %q", keywords, kw)
		}
	}
}

func TestBuildConversationContext(t *testing.T) {
	messages := []Message{
		{Role: "user", Content: "Tell me about the IVISKIN G3"},
		{Role: "assistant", Content: "The IVISKIN G3 is an IPL hair removal device"},
		{Role: "user", Content: "Is it good for dark skin?"},
	}

	terms := BuildConversationContext(messages, 2, 0)

	if len(terms) == 0 {
		t.Fatal("expected context terms from prior turns")
	}
	if !contains(terms, "g3") {
		t.Errorf("terms %v missing %q", terms, "g3")
	}
	if !contains(terms, "iviskin g3") {
		t.Errorf("terms %v missing bigram %q", terms, "iviskin g3")
	}
	// The current query must not leak into its own context.
	if contains(terms, "dark") {
		t.Errorf("terms %v contain token from the current query", terms)
	}
}

func TestBuildConversationContextCapped(t *testing.T) {
	messages := []Message{
		{Role: "user", Content: "alpha beta gamma delta epsilon zeta eta theta"},
		{Role: "assistant", Content: "iota kappa lambda mu nu xi omicron pi"},
		{Role: "user", Content: "current query"},
	}
	terms := BuildConversationContext(messages, 2, 6)
	if len(terms) != 6 {
		t.Errorf("len(terms) = %d, want 6", len(terms))
	}
}

func TestBuildConversationContextEmptyHistory(t *testing.T) {
	terms := BuildConversationContext([]Message{{Role: "user", Content: "first question"}}, 2, 0)
	if len(terms) != 0 {
		t.Errorf("terms = %v, want empty for a first-turn query", terms)
	}
}

func TestIsFollowUpQuery(t *testing.T) {
	testCases := []struct {
		query string
		want  bool
	}{
		{"Is it safe?", true},
		{"den?", true},
		{"what about battery", true},
		{"How long does the battery of the IVISKIN G3 last on a full charge?", false},
		{"Is this one better than the other model?", true},
		{"", false},
	}
	for _, tc := range testCases {
		if got := IsFollowUpQuery(tc.query); got != tc.want {
			t.Errorf("IsFollowUpQuery(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
