package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerhq/career-platform/shared/logger"
)

func quietLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewOpenAIProvider(&OpenAIConfig{
		APIKey:           "test-key",
		BaseURL:          srv.URL,
		Model:            "gpt-4o-mini",
		EmbeddingModel:   "text-embedding-ada-002",
		MaxSummaryTokens: 150,
	}, quietLogger())
	require.NoError(t, err)

	return provider
}

func writeOpenAIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    "api_error",
		},
	})
}

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	provider, err := NewOpenAIProvider(&OpenAIConfig{}, quietLogger())
	require.Error(t, err)
	assert.Nil(t, provider)
}

func TestOpenAIProvider_Summarize(t *testing.T) {
	var gotBody map[string]any

	provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": "  An experienced backend developer from Hanoi.  ",
					},
					"finish_reason": "stop",
				},
			},
		})
	})

	summary, err := provider.Summarize(context.Background(), Profile{
		Name:       "Linh Tran",
		Location:   "Hanoi",
		Experience: "3 years of Go services",
		ResumeText: "Worked on payment systems.",
	})
	require.NoError(t, err)
	assert.Equal(t, "An experienced backend developer from Hanoi.", summary)

	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	userMsg := messages[1].(map[string]any)["content"].(string)
	assert.Contains(t, userMsg, "Linh Tran")
	assert.Contains(t, userMsg, "payment systems")
}

func TestOpenAIProvider_Embed(t *testing.T) {
	provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-ada-002",
			"data": []map[string]any{
				{
					"object":    "embedding",
					"index":     0,
					"embedding": []float32{0.25, -0.5, 0.75},
				},
			},
		})
	})

	vec, err := provider.Embed(context.Background(), "summary text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 0.75}, vec)
}

func TestOpenAIProvider_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    error
		passesThru bool
	}{
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			wantErr: ErrRateLimited,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			wantErr: ErrProviderUnavailable,
		},
		{
			name:    "bad gateway",
			status:  http.StatusBadGateway,
			wantErr: ErrProviderUnavailable,
		},
		{
			name:       "unauthorized passes through",
			status:     http.StatusUnauthorized,
			passesThru: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeOpenAIError(w, tt.status, "upstream says no")
			})

			_, err := provider.Embed(context.Background(), "text")
			require.Error(t, err)

			if tt.passesThru {
				assert.NotErrorIs(t, err, ErrRateLimited)
				assert.NotErrorIs(t, err, ErrProviderUnavailable)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpenAIProvider_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	provider, err := NewOpenAIProvider(&OpenAIConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		Model:          "gpt-4o-mini",
		EmbeddingModel: "text-embedding-ada-002",
	}, quietLogger())
	require.NoError(t, err)

	_, err = provider.Embed(context.Background(), "text")
	require.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = provider.Summarize(context.Background(), Profile{Name: "x"})
	require.ErrorIs(t, err, ErrProviderUnavailable)
}
