package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/careerhq/career-platform/shared/logger"
)

// OpenAIConfig holds OpenAI provider settings. BaseURL is optional and only
// used to point the client at a compatible endpoint.
type OpenAIConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	EmbeddingModel   string
	MaxSummaryTokens int
}

// OpenAIProvider implements Provider on the OpenAI API
type OpenAIProvider struct {
	client *openai.Client
	config *OpenAIConfig
	logger *logger.Logger
}

// NewOpenAIProvider creates an OpenAI-backed provider
func NewOpenAIProvider(config *OpenAIConfig, log *logger.Logger) (*OpenAIProvider, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: log,
	}, nil
}

// Summarize implements Provider
func (p *OpenAIProvider) Summarize(ctx context.Context, profile Profile) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summaryInstruction},
			{Role: openai.ChatMessageRoleUser, Content: profile.prompt()},
		},
		MaxTokens: p.config.MaxSummaryTokens,
	})
	if err != nil {
		return "", p.classify("chat completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion response", ErrProviderUnavailable)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%w: blank completion content", ErrProviderUnavailable)
	}

	return summary, nil
}

// Embed implements Provider
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.config.EmbeddingModel),
	})
	if err != nil {
		return nil, p.classify("embeddings", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrProviderUnavailable)
	}

	return resp.Data[0].Embedding, nil
}

// classify maps OpenAI API failures onto the provider error taxonomy.
// Client-side errors (bad key, bad request) pass through unwrapped so they
// are not mistaken for retryable outages.
func (p *OpenAIProvider) classify(operation string, err error) error {
	p.logger.Warn("OpenAI call failed",
		slog.String("operation", operation),
		slog.Any("error", err),
	)

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		default:
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
