package domain

import (
	"errors"
)

// Enrichment lifecycle of a student profile or job posting. The worker moves
// entities from pending to ready (or failed) as tasks complete.
const (
	EnrichmentPending    = "pending"
	EnrichmentProcessing = "processing"
	EnrichmentReady      = "ready"
	EnrichmentFailed     = "failed"
)

var (
	ErrStudentNotFound = errors.New("student not found")
)
