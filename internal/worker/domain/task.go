package domain

// Task represents an enrichment task claimed from the database
type Task struct {
	TaskID     string
	Kind       string
	EntityID   string
	Status     string
	WorkerID   string
	RetryCount int
	MaxRetries int
}

// TaskMessage represents a task message from RabbitMQ
type TaskMessage struct {
	TaskID      string `json:"task_id"`
	DeliveryTag uint64 `json:"-"`
}

// StudentProfile is the student data enrichment works from
type StudentProfile struct {
	StudentID  string
	Name       string
	Location   string
	Experience string
	ResumeKey  string
}

// JobPosting is the job data embedding works from
type JobPosting struct {
	JobID       string
	Title       string
	Description string
}
