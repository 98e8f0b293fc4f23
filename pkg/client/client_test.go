package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mailreply-be/internal/dto"
	"mailreply-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientActions(t *testing.T) {
	var received []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/reply", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received = append(received, body)

		w.Header().Set("Content-Type", "application/json")
		switch body["action"] {
		case "translate":
			w.Write([]byte(`{"translatedText":"こんにちは","detectedLanguage":"English"}`))
		case "translate-to-english":
			w.Write([]byte(`{"translatedText":"Hello"}`))
		case "generate":
			w.Write([]byte(`{"reply":"承知しました。","englishTranslation":"Understood."}`))
		}
	}))
	defer server.Close()

	c := New(server.URL+"/", time.Second)
	ctx := context.Background()

	tr, err := c.Translate(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "English", tr.DetectedLanguage)

	en, err := c.TranslateToEnglish(ctx, "こんにちは")
	require.NoError(t, err)
	assert.Equal(t, "Hello", en.TranslatedText)

	gen, err := c.Generate(ctx, &dto.GenerateRequest{CustomerText: "Hi", Tone: catalog.ToneLight})
	require.NoError(t, err)
	assert.Equal(t, "承知しました。", gen.Reply)
	assert.Equal(t, "Understood.", gen.EnglishTranslation)

	require.Len(t, received, 3)
	assert.Equal(t, "Hello", received[0]["customerText"])
	assert.Equal(t, "こんにちは", received[1]["text"])
	assert.Equal(t, "generate", received[2]["action"])
	assert.Equal(t, "light", received[2]["tone"])
	assert.NotContains(t, received[2], "length")
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid request","details":[{"field":"tone","rule":"required","message":"tone is required"}]}`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).Generate(context.Background(), &dto.GenerateRequest{CustomerText: "Hi"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid request", apiErr.Message)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "tone", apiErr.Details[0].Field)
	assert.Contains(t, apiErr.Error(), "tone is required")
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestClientNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).TranslateToEnglish(context.Background(), "テスト")

	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestClientCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/catalog", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"code":200,"message":"ok","data":{"blocks":[{"type":"breakfast","label":"朝食","icon":"","defaultFields":["料金"],"presets":[]}],"tones":[],"lengths":[],"addPolicy":"toggle"}}`))
	}))
	defer server.Close()

	res, err := New(server.URL, time.Second).Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Blocks, 1)
	assert.Equal(t, catalog.BlockBreakfast, res.Blocks[0].Type)
	assert.Equal(t, []string{"料金"}, res.Blocks[0].DefaultFields)
}
