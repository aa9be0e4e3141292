// Package ai is the boundary to the external summarization/embedding
// provider. Failures are classified into ErrRateLimited and
// ErrProviderUnavailable so callers can decide whether to retry; nothing is
// retried or swallowed inside this package.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProviderUnavailable indicates the provider failed or could not be reached
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates the provider rejected the call due to rate limiting
	ErrRateLimited = errors.New("provider rate limited")
)

// Provider generates profile summaries and text embeddings. A deployment
// must stick to one provider: vectors from different embedding models have
// different dimensions and do not compare.
type Provider interface {
	// Summarize produces a short professional summary of a student profile.
	Summarize(ctx context.Context, profile Profile) (string, error)

	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Profile carries the student fields a summary is generated from
type Profile struct {
	Name       string
	Location   string
	Experience string
	ResumeText string
}

const summaryInstruction = "You summarize student career profiles for placement staff. " +
	"Reply with a concise professional summary of two to three sentences, " +
	"covering the strongest skills and the kind of role the student fits."

func (p Profile) prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Experience: %s\n", p.Experience)
	if p.ResumeText != "" {
		fmt.Fprintf(&b, "\nResume:\n%s\n", p.ResumeText)
	}
	return b.String()
}
