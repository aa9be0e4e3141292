package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/careerhq/career-platform/internal/ai"
	"github.com/careerhq/career-platform/internal/worker/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "rate limited",
			err:  fmt.Errorf("embed: %w", ai.ErrRateLimited),
			want: true,
		},
		{
			name: "provider unavailable",
			err:  fmt.Errorf("summarize: %w", ai.ErrProviderUnavailable),
			want: true,
		},
		{
			name: "timeout",
			err:  fmt.Errorf("task canceled: %w", context.DeadlineExceeded),
			want: true,
		},
		{
			name: "entity missing",
			err:  fmt.Errorf("student x: %w", domain.ErrEntityNotFound),
			want: false,
		},
		{
			name: "unknown kind",
			err:  fmt.Errorf("%w: mystery.kind", domain.ErrUnknownTaskKind),
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("something else"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestShouldRequeueTask(t *testing.T) {
	w := &Worker{}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "already claimed",
			err:  fmt.Errorf("task already claimed: %w", domain.ErrTaskAlreadyClaimed),
			want: false,
		},
		{
			name: "max retries exceeded",
			err:  fmt.Errorf("%w: provider down", domain.ErrMaxRetriesExceeded),
			want: false,
		},
		{
			name: "unknown task kind",
			err:  fmt.Errorf("%w: mystery.kind", domain.ErrUnknownTaskKind),
			want: false,
		},
		{
			name: "entity missing",
			err:  fmt.Errorf("job x: %w", domain.ErrEntityNotFound),
			want: false,
		},
		{
			name: "retryable error",
			err:  domain.NewRetryableError(errors.New("provider hiccup")),
			want: true,
		},
		{
			name: "wrapped retryable error",
			err:  fmt.Errorf("outer: %w", domain.NewRetryableError(errors.New("inner"))),
			want: true,
		},
		{
			name: "unclassified error",
			err:  errors.New("mystery failure"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldRequeueTask(tt.err))
		})
	}
}
