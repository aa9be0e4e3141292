package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/careerhq/career-platform/internal/api/dto"
	"github.com/careerhq/career-platform/internal/match"
	"github.com/careerhq/career-platform/internal/similarity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateMatch handles POST /api/v1/matches
// Scores one student against one job from their stored embeddings and queues
// the pair for review.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req dto.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	m, err := h.matches.Create(c.Request.Context(), req.StudentID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Student or job not found, or not enriched yet",
			})
		case errors.Is(err, match.ErrDuplicateMatch):
			c.JSON(http.StatusConflict, gin.H{
				"error": "A queued match for this student and job already exists",
			})
		case errors.Is(err, similarity.ErrDimensionMismatch), errors.Is(err, similarity.ErrDegenerateVector):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stored embeddings cannot be compared",
			})
		default:
			h.logger.Error("Failed to create match", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create match",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, matchToDTO(m))
}

// CreateMatchesForJob handles POST /api/v1/jobs/:job_id/matches
// Scores every embedded student against the job in one pass. Pairs that are
// already queued are skipped, so re-running is safe.
func (h *MatchHandler) CreateMatchesForJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id must be a valid UUID",
		})
		return
	}

	created, skipped, err := h.matches.CreateForJob(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found, or not enriched yet",
			})
		case errors.Is(err, similarity.ErrDimensionMismatch), errors.Is(err, similarity.ErrDegenerateVector):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stored embeddings cannot be compared",
			})
		default:
			h.logger.Error("Failed to create matches", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create matches",
			})
		}
		return
	}

	matches := make([]dto.MatchDTO, len(created))
	for i := range created {
		matches[i] = matchToDTO(&created[i])
	}

	c.JSON(http.StatusOK, dto.BulkMatchResponse{
		JobID:   jobID,
		Created: len(created),
		Skipped: skipped,
		Matches: matches,
	})
}

// ListQueue handles GET /api/v1/matches/queue
// Returns pending matches best-first, decorated with the student and job
// names reviewers need. Decided matches never appear here.
func (h *MatchHandler) ListQueue(c *gin.Context) {
	var req dto.ListQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	var (
		queued []match.Match
		err    error
	)
	if req.JobID != "" {
		queued, err = h.matches.ListQueuedForJob(c.Request.Context(), req.JobID)
	} else {
		queued, err = h.matches.ListQueued(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list match queue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list match queue",
		})
		return
	}

	studentIDs := make([]string, 0, len(queued))
	jobIDs := make([]string, 0, len(queued))
	for _, m := range queued {
		studentIDs = append(studentIDs, m.StudentID)
		jobIDs = append(jobIDs, m.JobID)
	}

	names, err := h.storage.StudentNames(c.Request.Context(), studentIDs)
	if err != nil {
		h.logger.Error("Failed to resolve student names", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list match queue",
		})
		return
	}

	titles, err := h.storage.JobTitles(c.Request.Context(), jobIDs)
	if err != nil {
		h.logger.Error("Failed to resolve job titles", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list match queue",
		})
		return
	}

	entries := make([]dto.QueueEntryDTO, len(queued))
	for i := range queued {
		entries[i] = dto.QueueEntryDTO{
			MatchDTO:    matchToDTO(&queued[i]),
			StudentName: names[queued[i].StudentID],
			JobTitle:    titles[queued[i].JobID],
		}
	}

	c.JSON(http.StatusOK, dto.ListQueueResponse{
		Matches: entries,
	})
}

// FinalizeMatch handles POST /api/v1/matches/:match_id/finalize
func (h *MatchHandler) FinalizeMatch(c *gin.Context) {
	h.decide(c, h.matches.Finalize)
}

// ArchiveMatch handles POST /api/v1/matches/:match_id/archive
func (h *MatchHandler) ArchiveMatch(c *gin.Context) {
	h.decide(c, h.matches.Archive)
}

func (h *MatchHandler) decide(c *gin.Context, decision func(ctx context.Context, matchID string) (*match.Match, error)) {
	matchID := c.Param("match_id")
	if _, err := uuid.Parse(matchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "match_id must be a valid UUID",
		})
		return
	}

	m, err := decision(c.Request.Context(), matchID)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Match not found",
			})
		case errors.Is(err, match.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Match has already been decided differently",
			})
		default:
			h.logger.Error("Failed to update match", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update match",
			})
		}
		return
	}

	c.JSON(http.StatusOK, matchToDTO(m))
}

func matchToDTO(m *match.Match) dto.MatchDTO {
	d := dto.MatchDTO{
		MatchID:   m.ID,
		StudentID: m.StudentID,
		JobID:     m.JobID,
		Score:     m.Score,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.DecidedAt != nil {
		d.DecidedAt = m.DecidedAt.Format(time.RFC3339)
	}
	return d
}
