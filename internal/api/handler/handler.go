package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/careerhq/career-platform/internal/api/domain"
	"github.com/careerhq/career-platform/internal/api/model"
	"github.com/careerhq/career-platform/internal/api/storage"
	"github.com/careerhq/career-platform/internal/auth"
	"github.com/careerhq/career-platform/internal/filestore"
	"github.com/careerhq/career-platform/internal/match"
	"github.com/careerhq/career-platform/shared/rabbitmq"
	"github.com/google/uuid"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger         *slog.Logger
	Storage        *storage.Storage
	RabbitClient   *rabbitmq.Client
	Matches        *match.Service
	Tokens         *auth.TokenService
	Passwords      auth.PasswordConfig
	Files          filestore.Store
	MaxUploadBytes int64
}

// AuthHandler handles staff registration, login and password management
type AuthHandler struct {
	logger    *slog.Logger
	storage   *storage.Storage
	tokens    *auth.TokenService
	passwords auth.PasswordConfig
}

func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger:    deps.Logger,
		storage:   deps.Storage,
		tokens:    deps.Tokens,
		passwords: deps.Passwords,
	}
}

// StudentHandler handles student intake and resume HTTP requests
type StudentHandler struct {
	logger         *slog.Logger
	storage        *storage.Storage
	rabbitClient   *rabbitmq.Client
	files          filestore.Store
	maxUploadBytes int64
}

func NewStudentHandler(deps *Dependencies) *StudentHandler {
	return &StudentHandler{
		logger:         deps.Logger,
		storage:        deps.Storage,
		rabbitClient:   deps.RabbitClient,
		files:          deps.Files,
		maxUploadBytes: deps.MaxUploadBytes,
	}
}

// JobHandler handles job posting HTTP requests
type JobHandler struct {
	logger       *slog.Logger
	storage      *storage.Storage
	rabbitClient *rabbitmq.Client
}

func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:       deps.Logger,
		storage:      deps.Storage,
		rabbitClient: deps.RabbitClient,
	}
}

// MatchHandler handles the match queue HTTP requests
type MatchHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
	matches *match.Service
}

func NewMatchHandler(deps *Dependencies) *MatchHandler {
	return &MatchHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
		matches: deps.Matches,
	}
}

// MetricsHandler handles placement metrics and the operator dashboard
type MetricsHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

func NewMetricsHandler(deps *Dependencies) *MetricsHandler {
	return &MetricsHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// enqueueEnrichment records an enrichment task and publishes it to the worker
// queue. Failures are logged rather than failing the request: the entity row
// already exists in pending state and the task can be re-issued through the
// resummarize endpoint.
func enqueueEnrichment(ctx context.Context, logger *slog.Logger, store *storage.Storage, rabbit *rabbitmq.Client, kind, entityID string) {
	task := &model.EnrichmentTask{
		TaskID:     uuid.New().String(),
		Kind:       kind,
		EntityID:   entityID,
		Status:     domain.TaskStatusPending,
		MaxRetries: domain.DefaultMaxRetries,
	}

	if err := store.CreateEnrichmentTask(ctx, task); err != nil {
		logger.Error("Failed to record enrichment task",
			slog.String("kind", kind),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
		return
	}

	body, err := json.Marshal(struct {
		TaskID string `json:"task_id"`
	}{TaskID: task.TaskID})
	if err != nil {
		logger.Error("Failed to marshal task message",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := rabbit.PublishWithRetry(ctx, body, "application/json"); err != nil {
		logger.Error("Failed to publish enrichment task",
			slog.String("task_id", task.TaskID),
			slog.String("kind", kind),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
		return
	}

	logger.Info("Enrichment task queued",
		slog.String("task_id", task.TaskID),
		slog.String("kind", kind),
		slog.String("entity_id", entityID),
	)
}
