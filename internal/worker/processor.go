package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/careerhq/career-platform/internal/ai"
	"github.com/careerhq/career-platform/internal/worker/domain"
)

// processTask processes a single task with timeout, heartbeat, and status updates
func (w *Worker) processTask(ctx context.Context, msg *domain.TaskMessage) error {
	w.logger.Info("Processing task",
		slog.String("task_id", msg.TaskID),
		slog.String("worker_id", w.workerID),
	)

	// Step 1: Claim task from database (PENDING → RUNNING)
	task, err := w.storage.ClaimTask(ctx, msg.TaskID, w.workerID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskAlreadyClaimed) {
			// Task already claimed by another worker - don't requeue
			w.logger.Warn("Task already claimed, skipping",
				slog.String("task_id", msg.TaskID),
			)
			return fmt.Errorf("task already claimed: %w", err)
		}
		// Database error - could be transient
		w.logger.Error("Failed to claim task",
			slog.String("task_id", msg.TaskID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to claim task: %w", err)
	}

	// Step 2: Surface the in-progress state on the entity. Best effort: the
	// task row already carries the authoritative status.
	if err := w.storage.MarkEntityProcessing(ctx, task.Kind, task.EntityID); err != nil {
		w.logger.Warn("Failed to mark entity processing",
			slog.String("task_id", task.TaskID),
			slog.String("entity_id", task.EntityID),
			slog.String("error", err.Error()),
		)
	}

	// Step 3: Create timeout context for the task
	taskCtx, cancel := context.WithTimeout(ctx, w.taskTimeout)
	defer cancel()

	// Step 4: Start heartbeat goroutine
	heartbeatDone := make(chan struct{})
	go w.sendTaskHeartbeat(taskCtx, task.TaskID, heartbeatDone)
	defer close(heartbeatDone) // Signal heartbeat goroutine to stop

	// Step 5: Execute the task based on its kind
	execErr := w.executeTask(taskCtx, task)
	if execErr == nil {
		// The enricher has already persisted the result and completed the
		// task row.
		w.logger.Info("Task executed successfully",
			slog.String("task_id", task.TaskID),
			slog.String("kind", task.Kind),
		)
		return nil
	}

	w.logger.Error("Task execution failed",
		slog.String("task_id", task.TaskID),
		slog.String("kind", task.Kind),
		slog.String("error", execErr.Error()),
	)

	// Step 6: Retry or fail permanently
	if isRetryable(execErr) && task.RetryCount < task.MaxRetries {
		if relErr := w.storage.ReleaseTaskForRetry(ctx, task.TaskID); relErr != nil {
			w.logger.Error("Failed to release task for retry",
				slog.String("task_id", task.TaskID),
				slog.String("error", relErr.Error()),
			)
			// Fall through to a permanent failure: the broker redelivery
			// would find the task still RUNNING and refuse the claim.
		} else {
			w.logger.Info("Task will be retried",
				slog.String("task_id", task.TaskID),
				slog.Int("retry_count", task.RetryCount+1),
				slog.Int("max_retries", task.MaxRetries),
			)
			// Return retryable error to trigger NACK with requeue
			return domain.NewRetryableError(fmt.Errorf("task execution failed: %w", execErr))
		}
	}

	// Record the failure on the task and the entity it was enriching
	if failErr := w.storage.MarkTaskFailed(ctx, task, execErr.Error()); failErr != nil {
		w.logger.Error("Failed to mark task as FAILED",
			slog.String("task_id", task.TaskID),
			slog.String("error", failErr.Error()),
		)
	}

	if isRetryable(execErr) {
		w.logger.Warn("Task exceeded max retries",
			slog.String("task_id", task.TaskID),
			slog.Int("retry_count", task.RetryCount),
			slog.Int("max_retries", task.MaxRetries),
		)
		// Don't requeue - exceeded max retries
		return fmt.Errorf("%w: %v", domain.ErrMaxRetriesExceeded, execErr)
	}

	// Permanent error - the requeue decision inspects the error chain
	return execErr
}

// executeTask dispatches the task to the enricher based on its kind
func (w *Worker) executeTask(ctx context.Context, task *domain.Task) error {
	switch task.Kind {
	case domain.TaskKindStudentEnrich:
		return w.enricher.EnrichStudent(ctx, task.TaskID, task.EntityID)
	case domain.TaskKindJobEmbed:
		return w.enricher.EmbedJob(ctx, task.TaskID, task.EntityID)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownTaskKind, task.Kind)
	}
}

// isRetryable reports whether a failure is worth another attempt. Provider
// throttling and outages pass, as do timeouts; bad input never does.
func isRetryable(err error) bool {
	if errors.Is(err, ai.ErrRateLimited) {
		return true
	}
	if errors.Is(err, ai.ErrProviderUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return false
}

// sendTaskHeartbeat periodically updates the task's heartbeat timestamp
func (w *Worker) sendTaskHeartbeat(ctx context.Context, taskID string, done <-chan struct{}) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	w.logger.Debug("Task heartbeat started",
		slog.String("task_id", taskID),
	)

	for {
		select {
		case <-done:
			w.logger.Debug("Task heartbeat stopped",
				slog.String("task_id", taskID),
			)
			return

		case <-ctx.Done():
			w.logger.Debug("Task heartbeat stopped - context canceled",
				slog.String("task_id", taskID),
			)
			return

		case <-ticker.C:
			if err := w.storage.UpdateTaskHeartbeat(ctx, taskID); err != nil {
				w.logger.Warn("Failed to update task heartbeat",
					slog.String("task_id", taskID),
					slog.String("error", err.Error()),
				)
			} else {
				w.logger.Debug("Task heartbeat updated",
					slog.String("task_id", taskID),
				)
			}
		}
	}
}
