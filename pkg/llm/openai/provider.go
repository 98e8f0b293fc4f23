package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mailreply-be/pkg/llm"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	ProviderName = "openai"
	DefaultModel = "gpt-4o-mini"
)

// Config holds configuration for the OpenAI chat provider.
type Config struct {
	APIKey     string
	Model      string        // default model when a call does not override it
	BaseURL    string        // optional, any OpenAI-compatible host
	Timeout    time.Duration // HTTP timeout
	HTTPClient *http.Client  // optional (tests)
}

// OpenAIProvider implements llm.LLMProvider on the official SDK.
type OpenAIProvider struct {
	apiKey string
	model  string
	client oai.Client
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Failures surface to the operator once; the SDK must not retry on its own.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIProvider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: oai.NewClient(opts...),
	}
}

func (p *OpenAIProvider) Name() string { return ProviderName }

func (p *OpenAIProvider) CheckCredentials() error {
	if strings.TrimSpace(p.apiKey) == "" {
		return fmt.Errorf("%w: OpenAI API key is not set", llm.ErrMissingCredentials)
	}
	return nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Model: p.model}, opts...)

	messages := make([]oai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			messages = append(messages, oai.SystemMessage(msg.Content))
		case llm.RoleAssistant, "model":
			messages = append(messages, oai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, oai.UserMessage(msg.Content))
		}
	}

	params := oai.ChatCompletionNewParams{
		Model:    oai.ChatModel(options.Model),
		Messages: messages,
	}
	if options.Temperature > 0 {
		params.Temperature = oai.Float(options.Temperature)
	}
	if options.MaxTokens > 0 {
		params.MaxCompletionTokens = oai.Int(int64(options.MaxTokens))
	}
	if options.JSONSchema != nil {
		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   options.JSONSchema.Name,
					Schema: options.JSONSchema.Schema,
					Strict: oai.Bool(true),
				},
			},
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
