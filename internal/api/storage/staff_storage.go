package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/careerhq/career-platform/internal/api/domain"
	"github.com/careerhq/career-platform/internal/api/model"
	"github.com/lib/pq"
)

func (s *Storage) CreateStaff(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (
			staff_id, username, email, password_hash, first_name, last_name,
			school, is_admin, must_change_password, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		staff.StaffID,
		staff.Username,
		staff.Email,
		staff.PasswordHash,
		staff.FirstName,
		staff.LastName,
		staff.School,
		staff.IsAdmin,
		staff.MustChangePassword,
		staff.CreatedAt,
		staff.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrStaffExists
		}
		return fmt.Errorf("failed to create staff: %w", err)
	}

	return nil
}

// GetStaffByLogin looks up a staff account by username or email.
func (s *Storage) GetStaffByLogin(ctx context.Context, login string) (*model.Staff, error) {
	var staff model.Staff
	query := `
		SELECT
			staff_id, username, email, password_hash, first_name, last_name,
			school, is_admin, must_change_password, created_at, updated_at
		FROM staff
		WHERE username = $1 OR email = $1
	`

	err := s.db.GetContext(ctx, &staff, query, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	return &staff, nil
}

func (s *Storage) GetStaffByID(ctx context.Context, staffID string) (*model.Staff, error) {
	var staff model.Staff
	query := `
		SELECT
			staff_id, username, email, password_hash, first_name, last_name,
			school, is_admin, must_change_password, created_at, updated_at
		FROM staff
		WHERE staff_id = $1
	`

	err := s.db.GetContext(ctx, &staff, query, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	return &staff, nil
}

func (s *Storage) UpdateStaffPassword(ctx context.Context, staffID, passwordHash string, mustChange bool) error {
	query := `
		UPDATE staff
		SET password_hash = $2,
		    must_change_password = $3,
		    updated_at = NOW()
		WHERE staff_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, staffID, passwordHash, mustChange)
	if err != nil {
		return fmt.Errorf("failed to update staff password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrStaffNotFound
	}

	return nil
}

// PromoteStaffToAdmin grants the admin role. Only reachable from the
// promote-admin command, never from an HTTP route.
func (s *Storage) PromoteStaffToAdmin(ctx context.Context, login string) error {
	query := `
		UPDATE staff
		SET is_admin = TRUE,
		    updated_at = NOW()
		WHERE username = $1 OR email = $1
	`

	result, err := s.db.ExecContext(ctx, query, login)
	if err != nil {
		return fmt.Errorf("failed to promote staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrStaffNotFound
	}

	return nil
}
