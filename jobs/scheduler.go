package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DailyScheduler fires the monitor job once per calendar date at a fixed
// local time. It checks once a minute; the per-date guard makes a restart
// inside the target minute harmless.
type DailyScheduler struct {
	Job      *IPOMonitorJob
	Location *time.Location
	Hour     int
	Minute   int

	lastRunDate string
}

// NewDailyScheduler creates a scheduler firing at hour:minute in loc
func NewDailyScheduler(job *IPOMonitorJob, loc *time.Location, hour, minute int) *DailyScheduler {
	return &DailyScheduler{
		Job:      job,
		Location: loc,
		Hour:     hour,
		Minute:   minute,
	}
}

// Start blocks until ctx is cancelled, running the job at the scheduled time.
func (s *DailyScheduler) Start(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"component": "DailyScheduler",
		"hour":      s.Hour,
		"minute":    s.Minute,
		"timezone":  s.Location.String(),
	}).Info("Daily scheduler started")

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.WithField("component", "DailyScheduler").Info("Daily scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *DailyScheduler) tick(ctx context.Context, now time.Time) {
	local := now.In(s.Location)
	if local.Hour() != s.Hour || local.Minute() != s.Minute {
		return
	}

	date := local.Format("2006-01-02")
	if date == s.lastRunDate {
		return
	}
	s.lastRunDate = date

	if _, err := s.Job.Run(ctx); err != nil {
		logrus.Errorf("Scheduled IPO monitor run failed: %v", err)
	}
}
