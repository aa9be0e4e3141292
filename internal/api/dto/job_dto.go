package dto

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description" binding:"required"`
}

type ListJobsRequest struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type JobDTO struct {
	JobID            string `json:"job_id"`
	Title            string `json:"title"`
	Company          string `json:"company"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	EnrichmentStatus string `json:"enrichment_status"`
	EnrichmentError  string `json:"enrichment_error,omitempty"`
	HasEmbedding     bool   `json:"has_embedding"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}
