package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gisteam.backend/internal/usecases"
	"gisteam.backend/pkg/logger"
)

type reconcileRunner interface {
	RunAll(ctx context.Context, dryRun bool) ([]*usecases.ReconcileReport, error)
}

// ReconcileJob periodically collapses duplicate records left behind by
// concurrent writers.
type ReconcileJob struct {
	runner   reconcileRunner
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewReconcileJob(runner reconcileRunner, interval time.Duration) *ReconcileJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReconcileJob{
		runner:   runner,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (j *ReconcileJob) Start(ctx context.Context) {
	ctx = context.WithValue(ctx, logger.JobKey, "reconcile")
	logger.Info(ctx, "Starting reconcile job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Reconcile job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Reconcile job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *ReconcileJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *ReconcileJob) runOnce(ctx context.Context) {
	reports, err := j.runner.RunAll(ctx, false)
	if err != nil {
		logger.Error(ctx, "Reconcile pass failed", zap.Error(err), zap.Int("completed", len(reports)))
		return
	}

	deleted, failed := 0, 0
	for _, r := range reports {
		deleted += r.DeletedCount()
		failed += r.FailedCount()
	}
	if deleted == 0 && failed == 0 {
		return
	}
	logger.Info(ctx, "Reconciled duplicates", zap.Int("deleted", deleted), zap.Int("failed", failed))
}
