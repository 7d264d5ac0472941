// Package jobs runs background maintenance on a schedule.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/Skotchmaster/storefront/internal/logging"
)

type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Janitor deletes expired sessions every Interval.
type Janitor struct {
	Sessions SessionPurger
	Interval time.Duration
	Logger   *slog.Logger

	scheduler gocron.Scheduler
}

func (j *Janitor) Start() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(j.Interval),
		gocron.NewTask(j.purge),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return err
	}

	s.Start()
	j.scheduler = s
	return nil
}

func (j *Janitor) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	return j.scheduler.Shutdown()
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	l := j.Logger
	if l == nil {
		l = slog.Default()
	}
	ctx = logging.IntoContext(ctx, l)

	n, err := j.Sessions.PurgeExpired(ctx)
	if err != nil {
		l.Error("session_purge_failed", "error", err)
		return
	}
	if n > 0 {
		l.Info("session_purge", "deleted", n)
	}
}
