package contextkw

import (
	"strings"
)

const (
	DefaultLastTurns = 2
	DefaultMaxTerms  = 12

	followUpMaxTokens = 3
)

// Message is one conversation turn as seen by the widget.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// followUpMarkers are cross-language pronoun/demonstrative tokens that tie a
// query to the previous turn ("is it good?", "hva med den?").
var followUpMarkers = map[string]bool{
	"it": true, "this": true, "that": true, "those": true, "these": true,
	"one": true, "ones": true, "same": true,
	"den": true, "det": true, "denne": true, "dette": true, "disse": true,
	"samme": true, "då": true, "sådan": true,
}

// BuildConversationContext extracts context terms from the last lastTurns
// turns of the conversation, excluding the current query (assumed to be the
// final message). Tokens and bigrams are merged in order, deduplicated and
// capped at maxTerms. Pass 0 for either limit to use the defaults.
func BuildConversationContext(messages []Message, lastTurns, maxTerms int) []string {
	if lastTurns <= 0 {
		lastTurns = DefaultLastTurns
	}
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	if len(messages) <= 1 {
		return []string{}
	}

	// Drop the current query, then keep at most lastTurns user+assistant pairs.
	history := messages[:len(messages)-1]
	maxMessages := lastTurns * 2
	if len(history) > maxMessages {
		history = history[len(history)-maxMessages:]
	}

	seen := map[string]bool{}
	terms := []string{}
	appendTerm := func(term string) {
		if len(terms) >= maxTerms || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, msg := range history {
		tokens := tokenize(msg.Content)
		for _, token := range tokens {
			appendTerm(token)
		}
		for i := 0; i+1 < len(tokens); i++ {
			appendTerm(tokens[i] + " " + tokens[i+1])
		}
	}
	return terms
}

// IsFollowUpQuery flags queries that should inherit prior-turn context:
// very short ones, or ones leaning on a pronoun/demonstrative.
func IsFollowUpQuery(query string) bool {
	tokens := wordPattern.FindAllString(strings.ToLower(query), -1)
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) <= followUpMaxTokens {
		return true
	}
	for _, token := range tokens {
		if followUpMarkers[token] {
			return true
		}
	}
	return false
}
