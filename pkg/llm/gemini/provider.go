package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"mailreply-be/pkg/llm"

	genai "google.golang.org/genai"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-2.0-flash"
)

// GeminiProvider is a thin wrapper around the official genai client. The
// client is created on first use so a missing key is reported per request
// instead of at startup.
type GeminiProvider struct {
	apiKey string
	model  string

	once    sync.Once
	cli     *genai.Client
	initErr error
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (g *GeminiProvider) Name() string { return ProviderName }

func (g *GeminiProvider) CheckCredentials() error {
	if strings.TrimSpace(g.apiKey) == "" {
		return fmt.Errorf("%w: Gemini API key is not set", llm.ErrMissingCredentials)
	}
	return nil
}

func (g *GeminiProvider) client(ctx context.Context) (*genai.Client, error) {
	g.once.Do(func() {
		g.cli, g.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return g.cli, g.initErr
}

// Chat maps system messages onto the system instruction and the rest onto
// user/model turns.
func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: g.model}, opts...)

	cli, err := g.client(ctx)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	var system []string
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)
		case llm.RoleAssistant, "model":
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: msg.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: msg.Content}}})
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}}}
	}
	if options.JSONSchema != nil {
		config.ResponseMIMEType = "application/json"
	}
	if options.Temperature > 0 {
		t := float32(options.Temperature)
		config.Temperature = &t
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	resp, err := cli.Models.GenerateContent(ctx, options.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
