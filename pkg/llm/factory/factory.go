package factory

import (
	"fmt"
	"strings"
	"time"

	"mailreply-be/pkg/llm"
	"mailreply-be/pkg/llm/gemini"
	"mailreply-be/pkg/llm/ollama"
	"mailreply-be/pkg/llm/openai"
)

// Settings selects and configures one LLM backend.
type Settings struct {
	Provider string // "openai" (default), "gemini", "ollama"
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// NewLLMProvider builds the provider named by s.Provider. A missing API key
// is not an error here; the provider reports it from CheckCredentials so the
// server can still start and answer with a configuration error.
func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", openai.ProviderName:
		return openai.NewOpenAIProvider(openai.Config{
			APIKey:  s.APIKey,
			Model:   s.Model,
			BaseURL: s.BaseURL,
			Timeout: s.Timeout,
		}), nil
	case gemini.ProviderName:
		return gemini.NewGeminiProvider(s.APIKey, s.Model), nil
	case ollama.ProviderName:
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		model := s.Model
		if model == "" {
			model = "llama3"
		}
		return ollama.NewOllamaProvider(baseURL, model, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
