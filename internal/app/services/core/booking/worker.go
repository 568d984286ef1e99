package booking

import (
	"clinic-booking-service/internal/pkg/constvars"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultSweepCronSpec = "@every 1m"

// SweepWorker evicts idle booking controllers on a cron schedule.
type SweepWorker struct {
	log      *zap.Logger
	registry *Registry
	spec     string
	idleFor  time.Duration
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewSweepWorker(log *zap.Logger, registry *Registry, spec string, idleFor time.Duration) *SweepWorker {
	return &SweepWorker{log: log, registry: registry, spec: spec, idleFor: idleFor}
}

func (w *SweepWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("booking.SweepWorker invalid cron spec, falling back to default",
			zap.String(constvars.LoggingCronSpecKey, w.spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultSweepCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running sweep to finish.
func (w *SweepWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *SweepWorker) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	evicted := w.registry.Sweep(w.idleFor)
	if evicted == 0 {
		return
	}
	w.log.Info("booking.SweepWorker evicted idle controllers",
		zap.Int(constvars.LoggingEvictedCountKey, evicted),
		zap.Int(constvars.LoggingActiveControllersKey, w.registry.Len()),
	)
}
