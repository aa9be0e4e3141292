package dto

// CreateStudentRequest is bound from multipart form fields; the resume file
// itself arrives as the optional "resume" form file.
type CreateStudentRequest struct {
	Name       string `form:"name" binding:"required"`
	Location   string `form:"location"`
	Experience string `form:"experience"`
}

type ListStudentsRequest struct {
	School   string `form:"school"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListStudentsResponse struct {
	Students   []StudentDTO `json:"students"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type StudentDTO struct {
	StudentID        string `json:"student_id"`
	Name             string `json:"name"`
	Location         string `json:"location"`
	Experience       string `json:"experience"`
	School           string `json:"school"`
	Summary          string `json:"summary"`
	EnrichmentStatus string `json:"enrichment_status"`
	EnrichmentError  string `json:"enrichment_error,omitempty"`
	HasResume        bool   `json:"has_resume"`
	HasEmbedding     bool   `json:"has_embedding"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}
