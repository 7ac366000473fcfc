package factory

import (
	"fmt"

	"ai-shopassist-be/pkg/llm"
	"ai-shopassist-be/pkg/llm/gemini"
	"ai-shopassist-be/pkg/llm/ollama"
)

// NewLLMProvider selects a backend by name. ollamaBaseURL applies only to
// the ollama backend; gemini always talks to the Google endpoint.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(apiKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
