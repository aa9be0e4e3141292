package storage

import (
	"context"
	"fmt"

	"github.com/careerhq/career-platform/internal/api/model"
)

// SchoolMetrics computes placement outcomes for one school. A student counts
// as placed once they have at least one finalized match; time to placement is
// measured from profile creation to the first finalize decision.
func (s *Storage) SchoolMetrics(ctx context.Context, school string) (*model.SchoolMetrics, error) {
	query := `
		SELECT
			COUNT(*) AS total_students,
			COUNT(*) FILTER (WHERE p.first_placed_at IS NOT NULL) AS placed_students,
			COALESCE(AVG(EXTRACT(EPOCH FROM (p.first_placed_at - s.created_at)) / 86400.0), 0) AS avg_days_to_placement
		FROM students s
		LEFT JOIN (
			SELECT student_id, MIN(decided_at) AS first_placed_at
			FROM matches
			WHERE status = 'finalized'
			GROUP BY student_id
		) p ON p.student_id = s.student_id
		WHERE s.school = $1
	`

	var metrics model.SchoolMetrics
	if err := s.db.GetContext(ctx, &metrics, query, school); err != nil {
		return nil, fmt.Errorf("failed to compute school metrics: %w", err)
	}

	return &metrics, nil
}

func (s *Storage) DashboardCounts(ctx context.Context) (*model.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM students) AS students,
			(SELECT COUNT(*) FROM jobs) AS jobs,
			(SELECT COUNT(*) FROM matches WHERE status = 'queued') AS queued_matches,
			(SELECT COUNT(*) FROM matches WHERE status = 'finalized') AS finalized_matches,
			(SELECT COUNT(*) FROM students WHERE enrichment_status IN ('pending', 'processing'))
				+ (SELECT COUNT(*) FROM jobs WHERE enrichment_status IN ('pending', 'processing')) AS enrichments_in_flight,
			(SELECT COUNT(*) FROM enrichment_tasks WHERE status = 'FAILED') AS failed_tasks
	`

	var counts model.DashboardCounts
	if err := s.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard counts: %w", err)
	}

	return &counts, nil
}
