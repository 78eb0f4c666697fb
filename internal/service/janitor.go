package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionJanitor periodically removes sessions idle for longer than ttl.
type SessionJanitor struct {
	purger   SessionPurger
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionJanitor creates a new session janitor.
func NewSessionJanitor(purger SessionPurger, ttl time.Duration, schedule string, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		purger:   purger,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the cleanup schedule until ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) error {
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.ttl),
	)

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		if _, err := j.purge(ctx); err != nil {
			j.logger.Error("failed to purge sessions", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}

func (j *SessionJanitor) purge(ctx context.Context) (int64, error) {
	idleSince := j.now().Add(-j.ttl)

	removed, err := j.purger.Purge(ctx, idleSince)
	if err != nil {
		return 0, err
	}

	j.logger.Info("idle sessions purged",
		zap.Int64("removed", removed),
		zap.Time("idle_since", idleSince),
	)

	return removed, nil
}
