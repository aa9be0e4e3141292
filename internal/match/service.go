package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/careerhq/career-platform/internal/similarity"
	"github.com/careerhq/career-platform/shared/logger"
)

// Service orchestrates candidate-match creation and admin review. All state
// lives behind the Repository; the service computes scores and enforces the
// create/list/transition contracts.
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a match queue service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
	}
}

// Create scores a single (student, job) pair from their stored embeddings and
// persists a queued match. It fails with ErrNotFound when either entity or
// its embedding is missing and with ErrDuplicateMatch when a queued match for
// the pair already exists.
func (s *Service) Create(ctx context.Context, studentID, jobID string) (*Match, error) {
	studentVec, err := s.repo.StudentEmbedding(ctx, studentID)
	if err != nil {
		return nil, err
	}

	jobVec, err := s.repo.JobEmbedding(ctx, jobID)
	if err != nil {
		return nil, err
	}

	score, err := similarity.Cosine(studentVec, jobVec)
	if err != nil {
		return nil, fmt.Errorf("failed to score student %s against job %s: %w", studentID, jobID, err)
	}

	created, err := s.repo.InsertMatchIfAbsent(ctx, &Match{
		StudentID: studentID,
		JobID:     jobID,
		Score:     score,
		Status:    StatusQueued,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Match queued",
		slog.String("match_id", created.ID),
		slog.String("student_id", studentID),
		slog.String("job_id", jobID),
		slog.Float64("score", score),
	)

	return created, nil
}

// CreateForJob queues a match between the given job and every student whose
// embedding is present. Pairs that already hold a queued match are skipped
// and counted; any scoring failure aborts the whole operation.
func (s *Service) CreateForJob(ctx context.Context, jobID string) ([]Match, int, error) {
	jobVec, err := s.repo.JobEmbedding(ctx, jobID)
	if err != nil {
		return nil, 0, err
	}

	students, err := s.repo.StudentsWithEmbeddings(ctx)
	if err != nil {
		return nil, 0, err
	}

	var created []Match
	var skipped int

	for _, sv := range students {
		score, err := similarity.Cosine(sv.Embedding, jobVec)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to score student %s against job %s: %w", sv.StudentID, jobID, err)
		}

		m, err := s.repo.InsertMatchIfAbsent(ctx, &Match{
			StudentID: sv.StudentID,
			JobID:     jobID,
			Score:     score,
			Status:    StatusQueued,
		})
		if errors.Is(err, ErrDuplicateMatch) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		created = append(created, *m)
	}

	s.logger.Info("Bulk match creation finished",
		slog.String("job_id", jobID),
		slog.Int("created", len(created)),
		slog.Int("skipped", skipped),
	)

	return created, skipped, nil
}

// ListQueued returns all queued matches sorted by score descending, with
// earlier-created matches first among equal scores.
func (s *Service) ListQueued(ctx context.Context) ([]Match, error) {
	return s.repo.ListMatchesByStatus(ctx, StatusQueued)
}

// ListQueuedForJob returns the queued matches for one job, preserving the
// queue ordering.
func (s *Service) ListQueuedForJob(ctx context.Context, jobID string) ([]Match, error) {
	all, err := s.repo.ListMatchesByStatus(ctx, StatusQueued)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(all))
	for _, m := range all {
		if m.JobID == jobID {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// Finalize moves a queued match to the finalized terminal status
func (s *Service) Finalize(ctx context.Context, matchID string) (*Match, error) {
	return s.transition(ctx, matchID, StatusFinalized)
}

// Archive moves a queued match to the archived terminal status
func (s *Service) Archive(ctx context.Context, matchID string) (*Match, error) {
	return s.transition(ctx, matchID, StatusArchived)
}

func (s *Service) transition(ctx context.Context, matchID string, target Status) (*Match, error) {
	m, err := s.repo.UpdateMatchStatus(ctx, matchID, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Match status updated",
		slog.String("match_id", m.ID),
		slog.String("status", string(m.Status)),
	)

	return m, nil
}
