package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type tokenPurger interface {
	PurgeExpiredRefreshTokens(ctx context.Context) (int64, error)
}

type pingPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler runs background maintenance: purging dead refresh tokens and
// pruning pings past the retention window.
type Scheduler struct {
	cron          *cron.Cron
	tokens        tokenPurger
	pings         pingPruner
	retentionDays int
	logger        *zap.Logger
}

func NewScheduler(tokens tokenPurger, pings pingPruner, retentionDays int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:          cron.New(),
		tokens:        tokens,
		pings:         pings,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Start registers the jobs and kicks off the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.purgeTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.prunePings); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) purgeTokens() {
	n, err := s.tokens.PurgeExpiredRefreshTokens(context.Background())
	if err != nil {
		s.logger.Error("refresh token purge failed", zap.Error(err))
		return
	}
	s.logger.Info("refresh tokens purged", zap.Int64("count", n))
}

func (s *Scheduler) prunePings() {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	n, err := s.pings.PruneOlderThan(context.Background(), cutoff)
	if err != nil {
		s.logger.Error("ping prune failed", zap.Error(err))
		return
	}
	s.logger.Info("pings pruned", zap.Int64("count", n), zap.Time("cutoff", cutoff))
}
