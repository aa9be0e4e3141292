package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/careerhq/career-platform/internal/ai"
	"github.com/careerhq/career-platform/internal/filestore"
	"github.com/careerhq/career-platform/internal/worker/domain"
	"github.com/careerhq/career-platform/internal/worker/storage"
	"github.com/careerhq/career-platform/shared/postgresql"
	"github.com/careerhq/career-platform/shared/rabbitmq"
	"github.com/google/uuid"
)

// Config holds worker configuration
type Config struct {
	Logger            *slog.Logger
	DBClient          *postgresql.Client
	RabbitClient      *rabbitmq.Client
	Files             filestore.Store
	Provider          ai.Provider
	Concurrency       int
	MaxTasks          int
	PrefetchCount     int
	QueueName         string
	TaskTimeout       time.Duration
	HeartbeatInterval time.Duration
}

// Worker consumes enrichment tasks from RabbitMQ and processes them
// concurrently
type Worker struct {
	logger            *slog.Logger
	storage           *storage.Storage
	rabbitClient      *rabbitmq.Client
	enricher          *Enricher
	workerID          string
	concurrency       int
	prefetchCount     int
	rabbitMQQueueName string
	taskTimeout       time.Duration
	heartbeatInterval time.Duration
	tasksChan         chan *domain.TaskMessage
	wg                sync.WaitGroup
	stopChan          chan struct{}
}

// NewWorker creates a new worker instance with a unique worker ID
func NewWorker(cfg *Config) *Worker {
	store := storage.NewStorage(cfg.DBClient, cfg.Logger)

	return &Worker{
		logger:            cfg.Logger,
		storage:           store,
		rabbitClient:      cfg.RabbitClient,
		enricher:          NewEnricher(store, cfg.Files, cfg.Provider, cfg.Logger),
		workerID:          "worker-" + uuid.New().String()[:8],
		concurrency:       cfg.Concurrency,
		prefetchCount:     cfg.PrefetchCount,
		rabbitMQQueueName: cfg.QueueName,
		taskTimeout:       cfg.TaskTimeout,
		heartbeatInterval: cfg.HeartbeatInterval,
		tasksChan:         make(chan *domain.TaskMessage, cfg.MaxTasks),
		stopChan:          make(chan struct{}),
	}
}

// Start begins consuming and processing tasks. It blocks until the context is
// canceled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("task_timeout", w.taskTimeout),
		slog.Duration("heartbeat_interval", w.heartbeatInterval),
	)

	deliveries, err := w.setupConsumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)

	w.startMessageDispatcher(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
