package intent

import (
	"regexp"
	"strings"
)

type DisplayIntent string

const (
	DisplayTransactional DisplayIntent = "transactional"
	DisplayEvaluative    DisplayIntent = "evaluative"
	DisplayComparative   DisplayIntent = "comparative"
	DisplayTechnical     DisplayIntent = "technical"
	DisplayNavigational  DisplayIntent = "navigational"
	DisplayInformational DisplayIntent = "informational"
)

// DisplayDecision gates whether the widget may show product suggestions for
// this query.
type DisplayDecision struct {
	Intent             DisplayIntent `json:"intent"`
	ShouldShowProducts bool          `json:"should_show_products"`
}

type displayRule struct {
	intent   DisplayIntent
	show     bool
	patterns []*regexp.Regexp
}

// displayRules is evaluated strictly in order. Technical/support patterns
// come first and suppress product display regardless of any other signal, so
// a support complaint never receives commercial suggestions.
var displayRules = []displayRule{
	{
		intent: DisplayTechnical,
		show:   false,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(broken|not\s+working|doesn'?t\s+work|stopped\s+working)\b`),
			regexp.MustCompile(`\b(error|problem|issue|fault|defect|malfunction)\b`),
			regexp.MustCompile(`\b(warranty|refund|return|complaint|reklamasjon|garanti)\b`),
			regexp.MustCompile(`\b(virker\s+ikke|fungerer\s+ikke|ødelagt|feil\s+med)\b`),
			regexp.MustCompile(`\b(support|customer\s+service|kundeservice|help\s+me\s+fix)\b`),
			regexp.MustCompile(`\b(troubleshoot|repair|reparere)\b`),
		},
	},
	{
		intent: DisplayTransactional,
		show:   true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(buy|purchase|order|kjøpe?|bestille?|köpa)\b`),
			regexp.MustCompile(`\b(price|cost|pris|koster|tilbud|discount|deal)\b`),
			regexp.MustCompile(`\b(in\s+stock|på\s+lager|delivery|levering|shipping|frakt)\b`),
		},
	},
	{
		intent: DisplayEvaluative,
		show:   true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(best|beste|bäst|recommend|anbefal)\b`),
			regexp.MustCompile(`\b(worth|verdt|good|bra|quality|kvalitet)\b`),
			regexp.MustCompile(`\b(review|anmeldelse|rating|vurdering|erfaring(er)?)\b`),
		},
	},
	{
		intent: DisplayComparative,
		show:   true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(vs\.?|versus)\b`),
			regexp.MustCompile(`\bcompared?\b`),
			regexp.MustCompile(`\b(difference|forskjell|skillnad)\b`),
			regexp.MustCompile(`\b\w+\s+(or|eller)\s+\w+\?`),
		},
	},
	{
		intent: DisplayNavigational,
		show:   true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(where\s+(can|do)\s+i\s+find|hvor\s+finner\s+jeg)\b`),
			regexp.MustCompile(`\b(link|website|page|side|nettside)\b`),
			regexp.MustCompile(`\b(contact|kontakt|opening\s+hours|åpningstider)\b`),
		},
	},
}

// ClassifyDisplayIntent runs the ordered rule cascade; queries matching no
// family fall through to the permissive informational default.
func ClassifyDisplayIntent(query string) DisplayDecision {
	lowered := strings.ToLower(strings.TrimSpace(query))
	for _, rule := range displayRules {
		for _, p := range rule.patterns {
			if p.MatchString(lowered) {
				return DisplayDecision{Intent: rule.intent, ShouldShowProducts: rule.show}
			}
		}
	}
	return DisplayDecision{Intent: DisplayInformational, ShouldShowProducts: true}
}
