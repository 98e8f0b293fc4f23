package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mailreply-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "{\"language\":\"English\",\"translatedText\":\"朝食は含まれていますか？\"}"}
  }]
}`

func TestChatRequestsJSONSchema(t *testing.T) {
	var body map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	require.NoError(t, p.CheckCredentials())

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "translate"},
		{Role: llm.RoleUser, Content: "Is breakfast included?"},
	},
		llm.WithModel("gpt-4.1-mini"),
		llm.WithJSONSchema(&llm.JSONSchema{Name: "translation", Schema: map[string]any{"type": "object"}}),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "朝食")

	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "gpt-4.1-mini", body["model"])
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)

	rf, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "response_format missing: %v", body)
	assert.Equal(t, "json_schema", rf["type"])
}

func TestChatWithoutSchemaOmitsResponseFormat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	_, err := p.Generate(context.Background(), "hello")
	require.NoError(t, err)

	_, has := body["response_format"]
	assert.False(t, has)
	assert.Equal(t, DefaultModel, body["model"])
}

func TestChatDoesNotRetryServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	_, err := p.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestCheckCredentials(t *testing.T) {
	err := NewOpenAIProvider(Config{APIKey: "  "}).CheckCredentials()
	assert.True(t, errors.Is(err, llm.ErrMissingCredentials))
}
