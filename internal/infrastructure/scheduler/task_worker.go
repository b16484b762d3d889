// Package scheduler drains the trajectory task queue in the background.
// Services enqueue deferred work (PDF archive, success attestation) and
// return immediately; the worker polls for pending tasks and hands each
// one to the processor registered for its kind.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/trajectory"
)

// TaskProcessor handles every task of one kind. The processor owns the
// task's terminal state: it marks the task DONE or ERROR itself.
type TaskProcessor interface {
	Process(ctx context.Context, task trajectory.Task) error
}

// TaskProcessorFunc adapts a function to the TaskProcessor interface
type TaskProcessorFunc func(ctx context.Context, task trajectory.Task) error

// Process calls the underlying function
func (f TaskProcessorFunc) Process(ctx context.Context, task trajectory.Task) error {
	return f(ctx, task)
}

// PendingTaskSource lists queued work and updates task state. Implemented
// by the persistence task queue.
type PendingTaskSource interface {
	FindPending(ctx context.Context, limit int) ([]trajectory.Task, error)
	SetState(ctx context.Context, taskID uuid.UUID, state string) error
}

// TaskWorkerConfig holds configuration for the task worker
type TaskWorkerConfig struct {
	// PollInterval is how often the worker looks for pending tasks
	PollInterval time.Duration
	// JobTimeout is the maximum time one task may run
	JobTimeout time.Duration
	// BatchSize is the maximum number of tasks drained per poll
	BatchSize int
}

// DefaultTaskWorkerConfig returns default worker configuration
func DefaultTaskWorkerConfig() TaskWorkerConfig {
	return TaskWorkerConfig{
		PollInterval: 10 * time.Second,
		JobTimeout:   5 * time.Minute,
		BatchSize:    10,
	}
}

// TaskWorker polls the task queue and dispatches tasks by kind
type TaskWorker struct {
	config     TaskWorkerConfig
	source     PendingTaskSource
	processors map[string]TaskProcessor
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewTaskWorker creates a new task worker
func NewTaskWorker(config TaskWorkerConfig, source PendingTaskSource, logger *zap.Logger) *TaskWorker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultTaskWorkerConfig().PollInterval
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultTaskWorkerConfig().JobTimeout
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultTaskWorkerConfig().BatchSize
	}
	return &TaskWorker{
		config:     config,
		source:     source,
		processors: make(map[string]TaskProcessor),
		logger:     logger,
	}
}

// Register binds a processor to a task kind. Registering the same kind
// twice replaces the previous processor.
func (w *TaskWorker) Register(kind string, processor TaskProcessor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.processors[kind] = processor
}

// Start starts the polling loop
func (w *TaskWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = true
	w.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.runLoop(ctx)

	w.logger.Info("Task worker started",
		zap.Duration("poll_interval", w.config.PollInterval),
		zap.Duration("job_timeout", w.config.JobTimeout),
		zap.Int("batch_size", w.config.BatchSize),
	)
	return nil
}

// Stop stops the worker and waits for in-flight tasks to finish
func (w *TaskWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = false
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("Task worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop polls until the context is cancelled
func (w *TaskWorker) runLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain processes one batch of pending tasks. Exported so tests and the
// startup path can trigger a pass without waiting for the ticker.
func (w *TaskWorker) Drain(ctx context.Context) {
	tasks, err := w.source.FindPending(ctx, w.config.BatchSize)
	if err != nil {
		w.logger.Error("pending tasks not listed", zap.Error(err))
		return
	}

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.process(ctx, task)
	}
}

func (w *TaskWorker) process(ctx context.Context, task trajectory.Task) {
	w.mu.Lock()
	processor, ok := w.processors[task.Kind]
	w.mu.Unlock()

	if !ok {
		w.logger.Warn("no processor for task kind",
			zap.String("task_id", task.ID.String()),
			zap.String("kind", task.Kind),
		)
		if err := w.source.SetState(ctx, task.ID, trajectory.TaskError); err != nil {
			w.logger.Error("task state not updated", zap.Error(err))
		}
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.config.JobTimeout)
	defer cancel()

	start := time.Now()
	if err := processor.Process(jobCtx, task); err != nil {
		w.logger.Error("task processing failed",
			zap.String("task_id", task.ID.String()),
			zap.String("kind", task.Kind),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	w.logger.Info("task processed",
		zap.String("task_id", task.ID.String()),
		zap.String("kind", task.Kind),
		zap.Duration("duration", time.Since(start)),
	)
}
