package match

import (
	"context"
	"errors"
	"time"
)

// Status represents the review state of a candidate match
type Status string

const (
	StatusQueued    Status = "queued"
	StatusFinalized Status = "finalized"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is a known match status
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusFinalized, StatusArchived:
		return true
	default:
		return false
	}
}

// Terminal reports whether s is a terminal status
func (s Status) Terminal() bool {
	return s == StatusFinalized || s == StatusArchived
}

// CanBecome reports whether a match in status s may transition to target.
// Queued matches may move to either terminal status; re-issuing the
// transition a match already took is permitted as an idempotent no-op.
// No transition leaves a terminal status for a different one.
func (s Status) CanBecome(target Status) bool {
	switch {
	case s == StatusQueued && target.Terminal():
		return true
	case s.Terminal() && s == target:
		return true
	default:
		return false
	}
}

var (
	// ErrNotFound indicates a referenced entity or its embedding does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMatch indicates a queued match already exists for the pair
	ErrDuplicateMatch = errors.New("a queued match for this student and job already exists")

	// ErrInvalidTransition indicates a transition out of a terminal status
	ErrInvalidTransition = errors.New("match is already in a different terminal status")
)

// Match is a candidate pairing of a student and a job awaiting admin review.
// Score is fixed at creation from the embeddings current at that time; later
// embedding updates never rescore an existing match.
type Match struct {
	ID        string     `json:"id"`
	StudentID string     `json:"student_id"`
	JobID     string     `json:"job_id"`
	Score     float64    `json:"score"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// StudentVector pairs a student id with its stored embedding
type StudentVector struct {
	StudentID string
	Embedding []float32
}

// Repository is the persistence boundary for candidate matches and the
// embeddings they are scored from. Implementations must provide atomic
// check-and-insert semantics for the one-queued-match-per-pair rule; an
// application-level existence check is not acceptable.
type Repository interface {
	// InsertMatchIfAbsent persists a new match, returning ErrDuplicateMatch
	// when a queued match for the same (student, job) pair already exists.
	// The implementation assigns the id and creation timestamp.
	InsertMatchIfAbsent(ctx context.Context, m *Match) (*Match, error)

	// ListMatchesByStatus returns matches in the given status ordered by
	// score descending, then creation time ascending, then id ascending.
	ListMatchesByStatus(ctx context.Context, status Status) ([]Match, error)

	// UpdateMatchStatus transitions a match to target, returning
	// ErrInvalidTransition when the match sits in a different terminal
	// status and ErrNotFound for unknown ids. Re-issuing the transition a
	// match already took returns the match unchanged.
	UpdateMatchStatus(ctx context.Context, matchID string, target Status) (*Match, error)

	// StudentEmbedding returns the stored embedding for a student, or an
	// error wrapping ErrNotFound when the student or its embedding is missing.
	StudentEmbedding(ctx context.Context, studentID string) ([]float32, error)

	// JobEmbedding returns the stored embedding for a job, or an error
	// wrapping ErrNotFound when the job or its embedding is missing.
	JobEmbedding(ctx context.Context, jobID string) ([]float32, error)

	// StudentsWithEmbeddings returns every student whose embedding is present.
	StudentsWithEmbeddings(ctx context.Context) ([]StudentVector, error)
}
