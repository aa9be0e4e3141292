package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type Staff struct {
	StaffID            string    `db:"staff_id"`
	Username           string    `db:"username"`
	Email              string    `db:"email"`
	PasswordHash       string    `db:"password_hash"`
	FirstName          string    `db:"first_name"`
	LastName           string    `db:"last_name"`
	School             string    `db:"school"`
	IsAdmin            bool      `db:"is_admin"`
	MustChangePassword bool      `db:"must_change_password"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// Student is a candidate profile. Embedding is nil until the worker has
// enriched the profile.
type Student struct {
	StudentID        string           `db:"student_id"`
	Name             string           `db:"name"`
	Location         string           `db:"location"`
	Experience       string           `db:"experience"`
	School           string           `db:"school"`
	ResumeKey        string           `db:"resume_key"`
	Summary          string           `db:"summary"`
	Embedding        *pgvector.Vector `db:"embedding"`
	EnrichmentStatus string           `db:"enrichment_status"`
	EnrichmentError  string           `db:"enrichment_error"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}

type Job struct {
	JobID            string           `db:"job_id"`
	Title            string           `db:"title"`
	Company          string           `db:"company"`
	Location         string           `db:"location"`
	Description      string           `db:"description"`
	Embedding        *pgvector.Vector `db:"embedding"`
	EnrichmentStatus string           `db:"enrichment_status"`
	EnrichmentError  string           `db:"enrichment_error"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}

type EnrichmentTask struct {
	TaskID     string    `db:"task_id"`
	Kind       string    `db:"kind"`
	EntityID   string    `db:"entity_id"`
	Status     string    `db:"status"`
	MaxRetries int       `db:"max_retries"`
	CreatedAt  time.Time `db:"created_at"`
}

// SchoolMetrics aggregates placement outcomes for a single school.
type SchoolMetrics struct {
	TotalStudents      int     `db:"total_students"`
	PlacedStudents     int     `db:"placed_students"`
	AvgDaysToPlacement float64 `db:"avg_days_to_placement"`
}

// DashboardCounts is the operator overview of the whole platform.
type DashboardCounts struct {
	Students            int `db:"students"`
	Jobs                int `db:"jobs"`
	QueuedMatches       int `db:"queued_matches"`
	FinalizedMatches    int `db:"finalized_matches"`
	EnrichmentsInFlight int `db:"enrichments_in_flight"`
	FailedTasks         int `db:"failed_tasks"`
}
