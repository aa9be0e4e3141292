package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/careerhq/career-platform/internal/worker/domain"
	"github.com/careerhq/career-platform/shared/postgresql"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

// Storage handles all database operations for the worker
type Storage struct {
	client *postgresql.Client
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		client: pg,
		db:     pg.GetDB(),
		logger: logger,
	}
}

// ClaimTask attempts to claim a task using optimistic locking
// Returns full task details on success, error if the task is already claimed or doesn't exist
func (s *Storage) ClaimTask(ctx context.Context, taskID, workerID string) (*domain.Task, error) {
	query := `
		UPDATE enrichment_tasks
		SET status = $1,
		    worker_id = $2,
		    started_at = NOW(),
		    last_heartbeat_at = NOW(),
		    updated_at = NOW()
		WHERE task_id = $3
		  AND status = $4
		RETURNING task_id, kind, entity_id, retry_count, max_retries
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, domain.TaskStatusRunning, workerID, taskID, domain.TaskStatusPending).Scan(
		&task.TaskID,
		&task.Kind,
		&task.EntityID,
		&task.RetryCount,
		&task.MaxRetries,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			s.logger.Warn("Failed to claim task - already claimed or not found",
				slog.String("task_id", taskID),
				slog.String("worker_id", workerID),
			)
			return nil, domain.ErrTaskAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	task.Status = domain.TaskStatusRunning
	task.WorkerID = workerID

	s.logger.Info("Task claimed successfully",
		slog.String("task_id", taskID),
		slog.String("worker_id", workerID),
		slog.String("kind", task.Kind),
	)

	return &task, nil
}

// UpdateTaskHeartbeat updates the last_heartbeat_at timestamp for a running task
func (s *Storage) UpdateTaskHeartbeat(ctx context.Context, taskID string) error {
	query := `
		UPDATE enrichment_tasks
		SET last_heartbeat_at = NOW(),
		    updated_at = NOW()
		WHERE task_id = $1 AND status = $2
	`

	result, err := s.db.ExecContext(ctx, query, taskID, domain.TaskStatusRunning)
	if err != nil {
		return fmt.Errorf("failed to update task heartbeat: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Task heartbeat update - no rows affected (task may not be running)",
			slog.String("task_id", taskID),
		)
	}

	return nil
}

// ReleaseTaskForRetry puts a failed task back in the queue for another attempt:
// status returns to PENDING, the claim is dropped, and the retry counter advances
func (s *Storage) ReleaseTaskForRetry(ctx context.Context, taskID string) error {
	query := `
		UPDATE enrichment_tasks
		SET status = $2,
		    worker_id = NULL,
		    retry_count = retry_count + 1,
		    updated_at = NOW()
		WHERE task_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, taskID, domain.TaskStatusPending)
	if err != nil {
		return fmt.Errorf("failed to release task for retry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	s.logger.Info("Task released for retry",
		slog.String("task_id", taskID),
	)

	return nil
}

// MarkTaskFailed records a permanent failure on both the task and the entity
// it was enriching, in one transaction
func (s *Storage) MarkTaskFailed(ctx context.Context, task *domain.Task, errorMsg string) error {
	return s.client.WithinTx(ctx, func(tx *sqlx.Tx) error {
		taskQuery := `
			UPDATE enrichment_tasks
			SET status = $2,
			    error_message = $3,
			    completed_at = NOW(),
			    updated_at = NOW()
			WHERE task_id = $1
		`
		if _, err := tx.ExecContext(ctx, taskQuery, task.TaskID, domain.TaskStatusFailed, errorMsg); err != nil {
			return fmt.Errorf("failed to mark task failed: %w", err)
		}

		var entityQuery string
		switch task.Kind {
		case domain.TaskKindStudentEnrich:
			entityQuery = `UPDATE students SET enrichment_status = $2, enrichment_error = $3, updated_at = NOW() WHERE student_id = $1`
		case domain.TaskKindJobEmbed:
			entityQuery = `UPDATE jobs SET enrichment_status = $2, enrichment_error = $3, updated_at = NOW() WHERE job_id = $1`
		default:
			// Unknown kinds have no entity row to update
			return nil
		}

		if _, err := tx.ExecContext(ctx, entityQuery, task.EntityID, domain.EnrichmentFailed, errorMsg); err != nil {
			return fmt.Errorf("failed to mark entity failed: %w", err)
		}

		return nil
	})
}

// CompleteStudentEnrichment stores the summary and embedding on the student
// and marks the task completed, in one transaction
func (s *Storage) CompleteStudentEnrichment(ctx context.Context, taskID, studentID, summary string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)

	err := s.client.WithinTx(ctx, func(tx *sqlx.Tx) error {
		studentQuery := `
			UPDATE students
			SET summary = $2,
			    embedding = $3,
			    enrichment_status = $4,
			    enrichment_error = '',
			    updated_at = NOW()
			WHERE student_id = $1
		`
		result, err := tx.ExecContext(ctx, studentQuery, studentID, summary, vec, domain.EnrichmentReady)
		if err != nil {
			return fmt.Errorf("failed to store student enrichment: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("student %s: %w", studentID, domain.ErrEntityNotFound)
		}

		return completeTask(ctx, tx, taskID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student enrichment stored",
		slog.String("student_id", studentID),
		slog.String("task_id", taskID),
	)

	return nil
}

// CompleteJobEmbedding stores the embedding on the job and marks the task
// completed, in one transaction
func (s *Storage) CompleteJobEmbedding(ctx context.Context, taskID, jobID string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)

	err := s.client.WithinTx(ctx, func(tx *sqlx.Tx) error {
		jobQuery := `
			UPDATE jobs
			SET embedding = $2,
			    enrichment_status = $3,
			    enrichment_error = '',
			    updated_at = NOW()
			WHERE job_id = $1
		`
		result, err := tx.ExecContext(ctx, jobQuery, jobID, vec, domain.EnrichmentReady)
		if err != nil {
			return fmt.Errorf("failed to store job embedding: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("job %s: %w", jobID, domain.ErrEntityNotFound)
		}

		return completeTask(ctx, tx, taskID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Job embedding stored",
		slog.String("job_id", jobID),
		slog.String("task_id", taskID),
	)

	return nil
}

func completeTask(ctx context.Context, tx *sqlx.Tx, taskID string) error {
	query := `
		UPDATE enrichment_tasks
		SET status = $2,
		    error_message = '',
		    completed_at = NOW(),
		    updated_at = NOW()
		WHERE task_id = $1
	`

	if _, err := tx.ExecContext(ctx, query, taskID, domain.TaskStatusCompleted); err != nil {
		return fmt.Errorf("failed to mark task completed: %w", err)
	}

	return nil
}

// MarkEntityProcessing flips the entity's enrichment status to processing so
// its state is visible while the task runs
func (s *Storage) MarkEntityProcessing(ctx context.Context, kind, entityID string) error {
	var query string
	switch kind {
	case domain.TaskKindStudentEnrich:
		query = `UPDATE students SET enrichment_status = $2, updated_at = NOW() WHERE student_id = $1`
	case domain.TaskKindJobEmbed:
		query = `UPDATE jobs SET enrichment_status = $2, updated_at = NOW() WHERE job_id = $1`
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownTaskKind, kind)
	}

	if _, err := s.db.ExecContext(ctx, query, entityID, domain.EnrichmentProcessing); err != nil {
		return fmt.Errorf("failed to mark entity processing: %w", err)
	}

	return nil
}

// StudentProfile retrieves the student fields enrichment works from
func (s *Storage) StudentProfile(ctx context.Context, studentID string) (*domain.StudentProfile, error) {
	query := `
		SELECT student_id, name, location, experience, resume_key
		FROM students
		WHERE student_id = $1
	`

	var profile domain.StudentProfile
	err := s.db.QueryRowContext(ctx, query, studentID).Scan(
		&profile.StudentID,
		&profile.Name,
		&profile.Location,
		&profile.Experience,
		&profile.ResumeKey,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student %s: %w", studentID, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return &profile, nil
}

// JobPosting retrieves the job fields embedding works from
func (s *Storage) JobPosting(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	query := `
		SELECT job_id, title, description
		FROM jobs
		WHERE job_id = $1
	`

	var posting domain.JobPosting
	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&posting.JobID,
		&posting.Title,
		&posting.Description,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &posting, nil
}
