// Package jobs runs background housekeeping on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Vinayak2k03/NotedAI/internal/repo"
)

// IdempotencyPurger deletes expired idempotency records.
type IdempotencyPurger struct {
	DB  *gorm.DB
	Log zerolog.Logger
	Now func() time.Time

	// Timeout bounds one purge run.
	Timeout time.Duration
}

// Run performs one purge and returns the number of rows removed.
func (p *IdempotencyPurger) Run(ctx context.Context) (int64, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	n, err := repo.PurgeExpiredIdempotency(ctx, p.DB, now().UTC())
	if err != nil {
		p.Log.Error().Err(err).Msg("idempotency purge failed")
		return 0, err
	}
	if n > 0 {
		p.Log.Info().Int64("removed", n).Msg("expired idempotency records purged")
	}
	return n, nil
}

// Schedule registers Run on c using a standard cron spec or descriptor such
// as "@every 10m". The caller owns c's lifecycle.
func (p *IdempotencyPurger) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		_, _ = p.Run(context.Background())
	})
}

// NewScheduler returns a cron scheduler that recovers from job panics and
// logs through lg.
func NewScheduler(lg zerolog.Logger) *cron.Cron {
	logger := cronLogger{lg: lg}
	return cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct{ lg zerolog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.lg.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.lg.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
