// FILE: pkg/assessor/assessor.go
// PURPOSE: Soft-inference safety gate. Decides whether a qualified,
// non-literal answer is permissible given weak retrieval evidence. The gate
// delegates to an LLM with a low-temperature prompt and fails closed on any
// provider failure: low confidence, no inference allowed.
package assessor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-shopassist-be/pkg/llm"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Input carries the evidence available when the gate is consulted.
type Input struct {
	Query        string
	ContextTerms []string
	OfferAnchor  string
	Chunks       []string
}

type Assessment struct {
	Confidence    Confidence `json:"confidence"`
	SafeInference bool       `json:"safe_inference"`
	Reason        string     `json:"reason,omitempty"`
}

const failedReason = "assessor_error"

// riskTerms force SafeInference=false locally, before and regardless of the
// LLM verdict. Substring matched against the lowercased query.
var riskTerms = []string{
	"pregnan", "gravid", "cancer", "kreft", "medical", "medisinsk",
	"allerg", "epilep", "diabet", "medication", "medisin",
	"invest", "loan", "lån", "insurance", "forsikring",
	"injur", "skade", "burn", "forbrenn",
}

type Assessor struct {
	provider llm.LLMProvider
}

// Policy reports the gate's failure policy. Always FailClosed.
func (a *Assessor) Policy() llm.FailurePolicy {
	return llm.FailClosed
}

func NewAssessor(provider llm.LLMProvider) *Assessor {
	return &Assessor{provider: provider}
}

// Assess never returns an error: every failure mode (provider error,
// timeout, malformed response) collapses to the conservative default. The
// provider is never retried so a flaky model cannot stall the request.
func (a *Assessor) Assess(ctx context.Context, input Input) Assessment {
	if impliesRisk(input.Query) {
		return Assessment{
			Confidence:    ConfidenceLow,
			SafeInference: false,
			Reason:        "risk_topic",
		}
	}

	raw, err := a.provider.Generate(ctx, buildPrompt(input),
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(300),
	)
	if err != nil {
		return failClosed()
	}

	jsonStr := llm.ExtractJSON(raw)
	if jsonStr == "" {
		return failClosed()
	}

	var parsed struct {
		Confidence    string `json:"confidence"`
		SafeInference bool   `json:"safe_inference"`
		Reasoning     string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return failClosed()
	}

	confidence, ok := parseConfidence(parsed.Confidence)
	if !ok {
		return failClosed()
	}

	// Low confidence never licenses inference, whatever the model said.
	safe := parsed.SafeInference && confidence != ConfidenceLow
	return Assessment{
		Confidence:    confidence,
		SafeInference: safe,
		Reason:        parsed.Reasoning,
	}
}

func failClosed() Assessment {
	return Assessment{
		Confidence:    ConfidenceLow,
		SafeInference: false,
		Reason:        failedReason,
	}
}

func impliesRisk(query string) bool {
	lowered := strings.ToLower(query)
	for _, term := range riskTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func parseConfidence(value string) (Confidence, bool) {
	switch Confidence(strings.ToLower(strings.TrimSpace(value))) {
	case ConfidenceHigh:
		return ConfidenceHigh, true
	case ConfidenceMedium:
		return ConfidenceMedium, true
	case ConfidenceLow:
		return ConfidenceLow, true
	}
	return "", false
}

func buildPrompt(input Input) string {
	var sb strings.Builder
	sb.WriteString("You assess whether a cautious, qualified inference is safe to make.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Never assume specifics the evidence does not support.\n")
	sb.WriteString("- Allow medium-confidence inference only when it generalizes from a clearly stated general principle in the evidence.\n")
	sb.WriteString("- If the question implies any safety, health or financial risk, respond with safe_inference=false.\n\n")

	sb.WriteString(fmt.Sprintf("Question: %s\n", input.Query))
	if input.OfferAnchor != "" {
		sb.WriteString(fmt.Sprintf("Product in scope: %s\n", input.OfferAnchor))
	}
	if len(input.ContextTerms) > 0 {
		sb.WriteString(fmt.Sprintf("Conversation context: %s\n", strings.Join(input.ContextTerms, ", ")))
	}
	sb.WriteString("\nEvidence:\n")
	for i, chunk := range input.Chunks {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, chunk))
	}

	sb.WriteString("\nRespond with ONLY a JSON object:\n")
	sb.WriteString(`{"confidence": "high"|"medium"|"low", "safe_inference": true|false, "reasoning": "<one sentence>"}`)
	return sb.String()
}
