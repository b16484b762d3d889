// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the doctoral trajectory
// backend. It tracks trajectory creation, confirmation decisions, training
// activity decisions and asynchronous task health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	trajectoryCreatedTotal   *Counter
	confirmationDecisionsTot *Counter
	activityDecisionsTotal   *Counter
	taskProcessedTotal       *Counter

	// Gauge metrics (point-in-time values)
	pendingTaskCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	taskProvider TaskMetricsProvider
}

// TaskMetricsProvider provides task queue data for periodic metrics
// collection. This interface allows the telemetry layer to query queue
// state without depending on the persistence layer directly.
type TaskMetricsProvider interface {
	// GetPendingCountByKind returns the number of pending tasks per kind
	GetPendingCountByKind(ctx context.Context) (map[string]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 1 minute
	TaskProvider    TaskMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:        cfg.Meter,
		logger:       logger,
		stopChan:     make(chan struct{}),
		taskProvider: cfg.TaskProvider,
	}

	var err error

	bm.trajectoryCreatedTotal, err = NewCounter(
		cfg.Meter,
		"doctorate_trajectory_created_total",
		"Total number of doctoral trajectories initialised",
		"{trajectories}",
	)
	if err != nil {
		return nil, err
	}

	bm.confirmationDecisionsTot, err = NewCounter(
		cfg.Meter,
		"doctorate_confirmation_decisions_total",
		"Total number of confirmation paper decisions recorded",
		"{decisions}",
	)
	if err != nil {
		return nil, err
	}

	bm.activityDecisionsTotal, err = NewCounter(
		cfg.Meter,
		"doctorate_activity_decisions_total",
		"Total number of training activity decisions recorded",
		"{decisions}",
	)
	if err != nil {
		return nil, err
	}

	bm.taskProcessedTotal, err = NewCounter(
		cfg.Meter,
		"doctorate_task_processed_total",
		"Total number of asynchronous tasks processed",
		"{tasks}",
	)
	if err != nil {
		return nil, err
	}

	bm.pendingTaskCount, err = NewGauge(
		cfg.Meter,
		"doctorate_task_pending_count",
		"Number of asynchronous tasks waiting to be processed",
		"{tasks}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Trajectory Metrics
// =============================================================================

// RecordTrajectoryCreated records a trajectory initialisation event.
// This should be called from the application layer when an approved
// admission is turned into a trajectory.
func (bm *BusinessMetrics) RecordTrajectoryCreated(ctx context.Context, status string) {
	bm.trajectoryCreatedTotal.Inc(ctx,
		AttrTrajectoryStatus.String(status),
	)
}

// =============================================================================
// Confirmation Metrics
// =============================================================================

// Decision represents the outcome of a confirmation paper for metrics labeling.
type Decision string

const (
	DecisionSuccess Decision = "success"
	DecisionFailure Decision = "failure"
	DecisionRetake  Decision = "retake"
)

// RecordConfirmationDecision records a confirmation paper decision.
func (bm *BusinessMetrics) RecordConfirmationDecision(ctx context.Context, decision Decision) {
	bm.confirmationDecisionsTot.Inc(ctx,
		AttrDecision.String(string(decision)),
	)
}

// =============================================================================
// Training Metrics
// =============================================================================

// RecordActivityDecision records a training activity decision
// (submitted, accepted, refused).
func (bm *BusinessMetrics) RecordActivityDecision(ctx context.Context, category, decision string) {
	bm.activityDecisionsTotal.Inc(ctx,
		AttrActivityCategory.String(category),
		AttrDecision.String(decision),
	)
}

// =============================================================================
// Task Metrics
// =============================================================================

// RecordTaskProcessed records one processed asynchronous task and its
// terminal state.
func (bm *BusinessMetrics) RecordTaskProcessed(ctx context.Context, kind, state string) {
	bm.taskProcessedTotal.Inc(ctx,
		AttrTaskKind.String(kind),
		AttrTaskState.String(state),
	)
}

// RecordPendingTaskCount records the current number of pending tasks of a
// kind. This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordPendingTaskCount(ctx context.Context, kind string, count int64) {
	bm.pendingTaskCount.Record(ctx, count,
		AttrTaskKind.String(kind),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects task queue metrics every interval (default: 1 minute).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectTaskMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectTaskMetrics(ctx)
		}
	}
}

// collectTaskMetrics collects the pending task gauge.
func (bm *BusinessMetrics) collectTaskMetrics(ctx context.Context) {
	if bm.taskProvider == nil {
		bm.logger.Debug("No task provider configured, skipping task metrics collection")
		return
	}

	pendingByKind, err := bm.taskProvider.GetPendingCountByKind(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get pending task counts", zap.Error(err))
		return
	}

	for kind, count := range pendingByKind {
		bm.RecordPendingTaskCount(ctx, kind, count)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
