package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/careerhq/career-platform/internal/match"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// InsertMatchIfAbsent creates a match row. The partial unique index on
// (student_id, job_id) WHERE status = 'queued' makes the existence check and
// the insert a single atomic step, so two racing creations cannot both land
// in the queue.
func (s *Storage) InsertMatchIfAbsent(ctx context.Context, m *match.Match) (*match.Match, error) {
	query := `
		INSERT INTO matches (match_id, student_id, job_id, score, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	created := *m
	created.ID = uuid.New().String()

	err := s.db.QueryRowContext(
		ctx,
		query,
		created.ID,
		created.StudentID,
		created.JobID,
		created.Score,
		string(created.Status),
	).Scan(&created.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return nil, match.ErrDuplicateMatch
			case "23503":
				return nil, match.ErrNotFound
			}
		}
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListMatchesByStatus(ctx context.Context, status match.Status) ([]match.Match, error) {
	query := `
		SELECT match_id, student_id, job_id, score, status, created_at, decided_at
		FROM matches
		WHERE status = $1
		ORDER BY score DESC, created_at ASC, match_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []match.Match
	for rows.Next() {
		var m match.Match
		if err := rows.Scan(&m.ID, &m.StudentID, &m.JobID, &m.Score, &m.Status, &m.CreatedAt, &m.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

// UpdateMatchStatus moves a queued match to the target terminal status in one
// guarded UPDATE. Re-issuing the same decision matches the status IN clause
// and leaves decided_at untouched, which keeps the operation idempotent.
func (s *Storage) UpdateMatchStatus(ctx context.Context, matchID string, target match.Status) (*match.Match, error) {
	query := `
		UPDATE matches
		SET status = $2,
		    decided_at = CASE WHEN status = 'queued' THEN NOW() ELSE decided_at END
		WHERE match_id = $1 AND status IN ('queued', $2)
		RETURNING match_id, student_id, job_id, score, status, created_at, decided_at
	`

	var m match.Match
	err := s.db.QueryRowContext(ctx, query, matchID, string(target)).Scan(
		&m.ID, &m.StudentID, &m.JobID, &m.Score, &m.Status, &m.CreatedAt, &m.DecidedAt,
	)
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	// No row matched: the match is missing or sits in the other terminal status.
	var current string
	err = s.db.QueryRowContext(ctx, `SELECT status FROM matches WHERE match_id = $1`, matchID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, match.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check match status: %w", err)
	}

	return nil, match.ErrInvalidTransition
}

func (s *Storage) StudentEmbedding(ctx context.Context, studentID string) ([]float32, error) {
	var embedding *pgvector.Vector
	query := `SELECT embedding FROM students WHERE student_id = $1`

	err := s.db.QueryRowContext(ctx, query, studentID).Scan(&embedding)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student %s: %w", studentID, match.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get student embedding: %w", err)
	}

	if embedding == nil {
		return nil, fmt.Errorf("student %s has no embedding: %w", studentID, match.ErrNotFound)
	}

	return embedding.Slice(), nil
}

func (s *Storage) JobEmbedding(ctx context.Context, jobID string) ([]float32, error) {
	var embedding *pgvector.Vector
	query := `SELECT embedding FROM jobs WHERE job_id = $1`

	err := s.db.QueryRowContext(ctx, query, jobID).Scan(&embedding)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job %s: %w", jobID, match.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job embedding: %w", err)
	}

	if embedding == nil {
		return nil, fmt.Errorf("job %s has no embedding: %w", jobID, match.ErrNotFound)
	}

	return embedding.Slice(), nil
}

func (s *Storage) StudentsWithEmbeddings(ctx context.Context) ([]match.StudentVector, error) {
	query := `
		SELECT student_id, embedding
		FROM students
		WHERE embedding IS NOT NULL
		ORDER BY created_at ASC, student_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list student embeddings: %w", err)
	}
	defer rows.Close()

	var vectors []match.StudentVector
	for rows.Next() {
		var sv match.StudentVector
		var embedding pgvector.Vector
		if err := rows.Scan(&sv.StudentID, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan student embedding: %w", err)
		}
		sv.Embedding = embedding.Slice()
		vectors = append(vectors, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list student embeddings: %w", err)
	}

	return vectors, nil
}

// StudentNames resolves display names for the queue view.
func (s *Storage) StudentNames(ctx context.Context, studentIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(studentIDs))
	if len(studentIDs) == 0 {
		return names, nil
	}

	query := `SELECT student_id, name FROM students WHERE student_id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(studentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get student names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan student name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get student names: %w", err)
	}

	return names, nil
}

// JobTitles resolves display titles for the queue view.
func (s *Storage) JobTitles(ctx context.Context, jobIDs []string) (map[string]string, error) {
	titles := make(map[string]string, len(jobIDs))
	if len(jobIDs) == 0 {
		return titles, nil
	}

	query := `SELECT job_id, title FROM jobs WHERE job_id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(jobIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get job titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("failed to scan job title: %w", err)
		}
		titles[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get job titles: %w", err)
	}

	return titles, nil
}
