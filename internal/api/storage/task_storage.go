package storage

import (
	"context"
	"fmt"

	"github.com/careerhq/career-platform/internal/api/model"
)

func (s *Storage) CreateEnrichmentTask(ctx context.Context, task *model.EnrichmentTask) error {
	query := `
		INSERT INTO enrichment_tasks (
			task_id, kind, entity_id, status, max_retries
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		task.TaskID,
		task.Kind,
		task.EntityID,
		task.Status,
		task.MaxRetries,
	)

	if err != nil {
		return fmt.Errorf("failed to create enrichment task: %w", err)
	}

	return nil
}
