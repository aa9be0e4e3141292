package domain

// Task status constants
const (
	TaskStatusPending   = "PENDING"
	TaskStatusRunning   = "RUNNING"
	TaskStatusCompleted = "COMPLETED"
	TaskStatusFailed    = "FAILED"
)

// Task kinds the worker knows how to execute
const (
	TaskKindStudentEnrich = "student.enrich"
	TaskKindJobEmbed      = "job.embed"
)

// Enrichment status values written back to the students and jobs tables
const (
	EnrichmentProcessing = "processing"
	EnrichmentReady      = "ready"
	EnrichmentFailed     = "failed"
)
