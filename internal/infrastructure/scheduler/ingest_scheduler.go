// Package scheduler runs ingestion on a cron schedule.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/chicpic/backend/internal/application/ingest"
	"github.com/chicpic/backend/internal/domain/catalog"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner executes one full ingestion run for a shop
type Runner interface {
	Run(ctx context.Context, shopName string, opts ingest.RunOptions) (*catalog.IngestionRun, error)
}

// IngestScheduler triggers full ingestion runs for the enabled shops on
// a cron schedule. Shops run sequentially so the sources are polled one
// at a time; a failing shop never blocks the others. At most one cycle
// runs at a time: a firing that arrives while the previous cycle is
// still going is skipped.
type IngestScheduler struct {
	runner   Runner
	shops    []string
	schedule string
	log      *zap.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	running atomic.Bool
}

// NewIngestScheduler creates a scheduler over the ingestion service
func NewIngestScheduler(runner Runner, shops []string, schedule string, log *zap.Logger) *IngestScheduler {
	return &IngestScheduler{
		runner:   runner,
		shops:    shops,
		schedule: schedule,
		log:      log.Named("scheduler"),
	}
}

// Start registers the cron entry and starts the scheduler
func (s *IngestScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.RunAll(ctx) }); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.log.Info("Ingestion scheduler started",
		zap.String("schedule", s.schedule),
		zap.Strings("shops", s.shops),
	)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *IngestScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.log.Info("Ingestion scheduler stopped")
}

// RunAll executes a full run for every enabled shop, sequentially.
// It returns false when a previous cycle is still running.
func (s *IngestScheduler) RunAll(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("Previous ingestion cycle still running, skipping")
		return false
	}
	defer s.running.Store(false)

	for _, shop := range s.shops {
		if ctx.Err() != nil {
			return true
		}

		run, err := s.runner.Run(ctx, shop, ingest.RunOptions{})
		if err != nil {
			s.log.Error("Scheduled ingestion failed",
				zap.String("shop", shop),
				zap.Error(err),
			)
			continue
		}
		s.log.Info("Scheduled ingestion finished",
			zap.String("shop", shop),
			zap.String("status", string(run.Status)),
		)
	}
	return true
}
