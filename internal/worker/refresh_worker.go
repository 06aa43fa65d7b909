package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/service"
)

// RefreshWorker runs the synchronization cycle on a cron schedule.
type RefreshWorker struct {
	sync     *service.SyncService
	schedule string
	cron     *cron.Cron
	log      *zap.Logger
}

// NewRefreshWorker builds a worker for the given cron expression.
func NewRefreshWorker(sync *service.SyncService, schedule string, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{sync: sync, schedule: schedule, log: logger}
}

// Start registers the schedule and begins running. An invalid
// expression is returned to the caller so startup can fail loudly.
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.cron = cron.New()
	_, err := w.cron.AddFunc(w.schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		if _, err := w.sync.Refresh(runCtx); err != nil {
			w.log.Warn("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	w.log.Info("refresh worker started", zap.String("schedule", w.schedule))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (w *RefreshWorker) Stop() {
	if w.cron == nil {
		return
	}
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.log.Info("refresh worker stopped")
}
