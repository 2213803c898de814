package sync

import (
	"context"
	"time"

	"github.com/Domenick1991/planepal/pkg/logger"
)

// Scheduler runs the synchronizer once at startup and then on a fixed
// interval until the context is canceled. Each tick is independent: a failed
// run is simply retried on the next tick.
type Scheduler struct {
	syncer   CatalogSyncer
	interval time.Duration
	log      logger.Logger
}

func NewScheduler(syncer CatalogSyncer, interval time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{syncer: syncer, interval: interval, log: log}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("calling external flight service")
	s.syncer.SyncAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("catalog sync scheduler stopped")
			return
		case <-ticker.C:
			s.log.Info("calling external flight service")
			s.syncer.SyncAll(ctx)
		}
	}
}
