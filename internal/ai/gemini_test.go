package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGeminiProvider_RequiresAPIKey(t *testing.T) {
	provider, err := NewGeminiProvider(context.Background(), &GeminiConfig{}, quietLogger())
	require.Error(t, err)
	assert.Nil(t, provider)
}

func TestGeminiProvider_Classify(t *testing.T) {
	provider := &GeminiProvider{
		config: &GeminiConfig{Model: "gemini-2.0-flash"},
		logger: quietLogger(),
	}

	tests := []struct {
		name       string
		err        error
		wantErr    error
		passesThru bool
	}{
		{
			name:    "rate limited",
			err:     genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"},
			wantErr: ErrRateLimited,
		},
		{
			name:    "internal error",
			err:     genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"},
			wantErr: ErrProviderUnavailable,
		},
		{
			name:    "service unavailable",
			err:     genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"},
			wantErr: ErrProviderUnavailable,
		},
		{
			name:       "invalid argument passes through",
			err:        genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"},
			passesThru: true,
		},
		{
			name:    "transport failure",
			err:     errors.New("dial tcp: connection refused"),
			wantErr: ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := provider.classify("test", tt.err)
			require.Error(t, got)

			if tt.passesThru {
				assert.NotErrorIs(t, got, ErrRateLimited)
				assert.NotErrorIs(t, got, ErrProviderUnavailable)
				return
			}
			assert.ErrorIs(t, got, tt.wantErr)
		})
	}
}

func TestProfile_Prompt(t *testing.T) {
	withResume := Profile{
		Name:       "Mai Pham",
		Location:   "Da Nang",
		Experience: "Internship at a fintech startup",
		ResumeText: "Built dashboards in React.",
	}

	prompt := withResume.prompt()
	assert.Contains(t, prompt, "Mai Pham")
	assert.Contains(t, prompt, "Da Nang")
	assert.Contains(t, prompt, "fintech")
	assert.Contains(t, prompt, "Built dashboards in React.")

	withoutResume := Profile{Name: "Mai Pham", Location: "Da Nang", Experience: "None yet"}
	assert.NotContains(t, withoutResume.prompt(), "Resume:")
}
