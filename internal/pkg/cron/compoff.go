package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
)

type CompOffJobs struct {
	compOffService compoff.CompOffService
	interval       time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewCompOffJobs(compOffService compoff.CompOffService, interval time.Duration, loc *time.Location) *CompOffJobs {
	return &CompOffJobs{
		compOffService: compOffService,
		interval:       interval,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *CompOffJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("expire_comp_off", j.interval, j.ExpireCompOff)
}

// ExpireCompOff records expiry for every earned day that lapsed up to today.
// Reruns on the same day find nothing new to write.
func (j *CompOffJobs) ExpireCompOff(ctx context.Context) error {
	now := j.now().In(j.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	expired, err := j.compOffService.ExpireDue(ctx, today)
	if expired > 0 {
		slog.Info("Cron: comp-off expiry recorded", "employees", expired, "as_of", today.Format(time.DateOnly))
	}
	return err
}
