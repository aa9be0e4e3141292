package domain

// Enrichment task kinds published to the worker queue
const (
	TaskKindStudentEnrich = "student.enrich"
	TaskKindJobEmbed      = "job.embed"
)

const (
	TaskStatusPending = "PENDING"

	// DefaultMaxRetries bounds how many times the worker re-attempts a task
	DefaultMaxRetries = 3
)
