package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/careerhq/career-platform/internal/api/domain"
	"github.com/careerhq/career-platform/internal/api/model"
)

func (s *Storage) CreateStudent(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (
			student_id, name, location, experience, school,
			resume_key, summary, enrichment_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		student.StudentID,
		student.Name,
		student.Location,
		student.Experience,
		student.School,
		student.ResumeKey,
		student.Summary,
		student.EnrichmentStatus,
		student.CreatedAt,
		student.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

func (s *Storage) GetStudentByID(ctx context.Context, studentID string) (*model.Student, error) {
	var student model.Student
	query := `
		SELECT
			student_id, name, location, experience, school,
			resume_key, summary, embedding, enrichment_status, enrichment_error,
			created_at, updated_at
		FROM students
		WHERE student_id = $1
	`

	err := s.db.GetContext(ctx, &student, query, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return &student, nil
}

type StudentFilter struct {
	School   string
	Status   string
	Search   string
	PageSize int
	Cursor   *Cursor
}

func (s *Storage) ListStudents(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	query := `
        SELECT
            student_id, name, location, experience, school,
            resume_key, summary, embedding, enrichment_status, enrichment_error,
            created_at, updated_at
        FROM students
        WHERE 1=1
    `
	args := []interface{}{}
	argIdx := 1

	// Filters
	if filter.School != "" {
		query += fmt.Sprintf(" AND school = $%d", argIdx)
		args = append(args, filter.School)
		argIdx++
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND enrichment_status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, student_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.ID)
		argIdx += 2
	}

	// Order by created_at DESC, student_id DESC for consistent pagination
	query += " ORDER BY created_at DESC, student_id DESC"

	// Fetch one extra to determine if there are more results
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var students []model.Student
	err := s.db.SelectContext(ctx, &students, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

// UpdateStudentResume stores the new resume key and resets the enrichment
// lifecycle so the worker re-summarizes from the fresh document. The old
// embedding stays in place until enrichment overwrites it.
func (s *Storage) UpdateStudentResume(ctx context.Context, studentID, resumeKey string) error {
	query := `
		UPDATE students
		SET resume_key = $2,
		    enrichment_status = $3,
		    enrichment_error = '',
		    updated_at = NOW()
		WHERE student_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, studentID, resumeKey, domain.EnrichmentPending)
	if err != nil {
		return fmt.Errorf("failed to update student resume: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}

func (s *Storage) MarkStudentEnrichmentPending(ctx context.Context, studentID string) error {
	query := `
		UPDATE students
		SET enrichment_status = $2,
		    enrichment_error = '',
		    updated_at = NOW()
		WHERE student_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, studentID, domain.EnrichmentPending)
	if err != nil {
		return fmt.Errorf("failed to mark student enrichment pending: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrStudentNotFound
	}

	return nil
}
