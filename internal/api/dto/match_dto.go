package dto

type CreateMatchRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	JobID     string `json:"job_id" binding:"required"`
}

type MatchDTO struct {
	MatchID   string  `json:"match_id"`
	StudentID string  `json:"student_id"`
	JobID     string  `json:"job_id"`
	Score     float64 `json:"score"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	DecidedAt string  `json:"decided_at,omitempty"`
}

// QueueEntryDTO decorates a queued match with the names reviewers act on.
type QueueEntryDTO struct {
	MatchDTO
	StudentName string `json:"student_name"`
	JobTitle    string `json:"job_title"`
}

type ListQueueRequest struct {
	JobID string `form:"job_id"`
}

type ListQueueResponse struct {
	Matches []QueueEntryDTO `json:"matches"`
}

type BulkMatchResponse struct {
	JobID   string     `json:"job_id"`
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Matches []MatchDTO `json:"matches"`
}
