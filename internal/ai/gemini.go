package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/careerhq/career-platform/shared/logger"
)

// GeminiConfig holds Gemini provider settings
type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

// GeminiProvider implements Provider on the Gemini API
type GeminiProvider struct {
	client *genai.Client
	config *GeminiConfig
	logger *logger.Logger
}

// NewGeminiProvider creates a Gemini-backed provider
func NewGeminiProvider(ctx context.Context, config *GeminiConfig, log *logger.Logger) (*GeminiProvider, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
		logger: log,
	}, nil
}

// Summarize implements Provider
func (p *GeminiProvider) Summarize(ctx context.Context, profile Profile) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: summaryInstruction}},
		},
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, genai.Text(profile.prompt()), cfg)
	if err != nil {
		return "", p.classify("generate content", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.TrimSpace(part.Text))
		}
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", fmt.Errorf("%w: empty completion response", ErrProviderUnavailable)
	}

	return summary, nil
}

// Embed implements Provider
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: text}},
	}}

	resp, err := p.client.Models.EmbedContent(ctx, p.config.EmbeddingModel, contents, nil)
	if err != nil {
		return nil, p.classify("embed content", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrProviderUnavailable)
	}

	return resp.Embeddings[0].Values, nil
}

// classify maps Gemini API failures onto the provider error taxonomy
func (p *GeminiProvider) classify(operation string, err error) error {
	p.logger.Warn("Gemini call failed",
		slog.String("operation", operation),
		slog.Any("error", err),
	)

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		default:
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
