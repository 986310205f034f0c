package giveaway

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Leaser guards a giveaway against concurrent processing across scanner
// instances. The database close remains the authoritative at-most-once
// guard; the lease only avoids duplicate work.
type Leaser interface {
	Acquire(ctx context.Context, giveawayID int64) bool
	Release(ctx context.Context, giveawayID int64)
}

// Scanner periodically sweeps for due giveaways and invokes the draw on
// each. A failing record is logged and skipped; it stays due and is retried
// on every following sweep until it closes.
type Scanner struct {
	ctx      context.Context
	cancel   context.CancelFunc
	svc      *Service
	repo     Repository
	leases   Leaser
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewScanner(svc *Service, repo Repository, leases Leaser, interval time.Duration, logger zerolog.Logger) *Scanner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scanner{
		ctx:      ctx,
		cancel:   cancel,
		svc:      svc,
		repo:     repo,
		leases:   leases,
		interval: interval,
		logger:   logger.With().Str("component", "expiry_scanner").Logger(),
		now:      time.Now,
	}
}

// Start launches the sweep loop. Stop cancels it and waits for the current
// sweep to finish.
func (s *Scanner) Start() {
	s.logger.Info().Dur("interval", s.interval).Msg("starting expiry scanner")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(s.ctx)
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

func (s *Scanner) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info().Msg("expiry scanner stopped")
}

// Sweep draws every due giveaway once. Records are processed sequentially
// within a sweep; one record's failure never aborts the rest.
func (s *Scanner) Sweep(ctx context.Context) {
	due, err := s.repo.ListDue(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list due giveaways")
		return
	}

	for _, g := range due {
		if ctx.Err() != nil {
			return
		}
		if s.leases != nil && !s.leases.Acquire(ctx, g.ID) {
			s.logger.Debug().Int64("giveaway_id", g.ID).Msg("giveaway already being processed")
			continue
		}
		if _, err := s.svc.Draw(ctx, g.ID); err != nil {
			s.logger.Error().Err(err).Int64("giveaway_id", g.ID).Msg("draw failed, will retry next sweep")
		}
		if s.leases != nil {
			s.leases.Release(ctx, g.ID)
		}
	}
}
