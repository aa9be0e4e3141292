package dto

type SchoolMetricsResponse struct {
	School             string  `json:"school"`
	TotalStudents      int     `json:"total_students"`
	PlacedStudents     int     `json:"placed_students"`
	PlacementRate      float64 `json:"placement_rate"`
	AvgDaysToPlacement float64 `json:"avg_days_to_placement"`
}

type DashboardResponse struct {
	Students            int `json:"students"`
	Jobs                int `json:"jobs"`
	QueuedMatches       int `json:"queued_matches"`
	FinalizedMatches    int `json:"finalized_matches"`
	EnrichmentsInFlight int `json:"enrichments_in_flight"`
	FailedTasks         int `json:"failed_tasks"`
}
