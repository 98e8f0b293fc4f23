package llm

import (
	"context"
	"errors"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// JSONSchema asks the provider for a response constrained to Schema.
// Providers without native support fall back to plain text, so callers
// still parse defensively.
type JSONSchema struct {
	Name   string
	Schema map[string]any
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	JSONSchema  *JSONSchema
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithModel overrides the provider's default model. An empty name keeps the default.
func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithJSONSchema(schema *JSONSchema) Option {
	return func(o *Options) {
		o.JSONSchema = schema
	}
}

// ApplyOptions folds opts over defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// ErrMissingCredentials is returned by CheckCredentials when the provider
// cannot possibly authenticate.
var ErrMissingCredentials = errors.New("llm: missing credentials")

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// CheckCredentials fails fast, without network I/O, when the provider is
	// not configured well enough to make a call.
	CheckCredentials() error

	// Name returns the provider identifier, e.g. "openai".
	Name() string
}
