package jobs

import (
	"context"
	"time"

	"github.com/dxbquant/ipo-monitor/models"
	"github.com/dxbquant/ipo-monitor/services"
	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CalendarFetcher provides the day's IPO calendar.
type CalendarFetcher interface {
	FetchSameDayIPOs(ctx context.Context, dateISO string) ([]models.CalendarEntry, error)
}

// Mailer delivers the plain-text report.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// IPOMonitorJob runs the daily pipeline: compute today in the report
// timezone, fetch the same-day calendar, filter, and mail the summary.
type IPOMonitorJob struct {
	Calendar CalendarFetcher
	Analysis *services.AnalysisService
	Mailer   Mailer
	Metrics  *shared.RunMetrics

	// SendEmptyReport controls the zero-qualifying behavior: false skips
	// the email entirely, true sends the explicit "none today" notice.
	SendEmptyReport bool

	Location *time.Location
}

// NewIPOMonitorJob wires the monitor job from its services
func NewIPOMonitorJob(calendar CalendarFetcher, analysis *services.AnalysisService, mailer Mailer, metrics *shared.RunMetrics, sendEmptyReport bool, location *time.Location) *IPOMonitorJob {
	if location == nil {
		location = shared.ReportLocation()
	}
	return &IPOMonitorJob{
		Calendar:        calendar,
		Analysis:        analysis,
		Mailer:          mailer,
		Metrics:         metrics,
		SendEmptyReport: sendEmptyReport,
		Location:        location,
	}
}

// Run executes one monitor pass. Fetch and send failures are terminal for
// the run; there is no retry.
func (j *IPOMonitorJob) Run(ctx context.Context) (*models.RunResult, error) {
	started := time.Now()
	runID := uuid.New()
	dateISO := shared.DateIn(started, j.Location)

	logrus.WithFields(logrus.Fields{
		"run_id": runID,
		"date":   dateISO,
	}).Info("Starting IPO monitor run")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	entries, err := j.Calendar.FetchSameDayIPOs(ctx, dateISO)
	if err != nil {
		j.recordFailure(err)
		logrus.Errorf("IPO monitor run failed: failed to fetch IPO calendar: %v", err)
		return nil, err
	}

	qualified, stats := j.Analysis.Analyze(entries)

	result := &models.RunResult{
		RunID:     runID,
		Date:      dateISO,
		Stats:     stats,
		Qualified: qualified,
	}

	if len(qualified) == 0 && !j.SendEmptyReport {
		logrus.WithFields(logrus.Fields{
			"run_id":     runID,
			"date":       dateISO,
			"total_ipos": stats.Total,
		}).Info("No qualifying IPOs today, skipping email")
	} else {
		body := services.BuildReport(qualified, dateISO, stats, j.Analysis.MinOfferAmountUSD())
		subject := services.Subject(dateISO, len(qualified))
		if err := j.Mailer.Send(ctx, subject, body); err != nil {
			j.recordFailure(err)
			logrus.Errorf("IPO monitor run failed: failed to send report: %v", err)
			return nil, err
		}
		result.EmailSent = true
	}

	result.Duration = time.Since(started)
	result.CompletedAt = time.Now()

	if j.Metrics != nil {
		j.Metrics.RecordRun(true, stats.Qualified, result.EmailSent, result.Duration, nil)
	}

	logrus.WithFields(logrus.Fields{
		"run_id":       runID,
		"date":         dateISO,
		"total_ipos":   stats.Total,
		"us_ipos":      stats.USListings,
		"missing_data": stats.MissingData,
		"qualified":    stats.Qualified,
		"email_sent":   result.EmailSent,
		"duration":     result.Duration,
	}).Infof("IPO monitor run completed: %d qualifying IPO(s) out of %d total", stats.Qualified, stats.Total)

	return result, nil
}

// Preview fetches and analyzes today's calendar without sending mail.
// Used by the serve-mode preview endpoint.
func (j *IPOMonitorJob) Preview(ctx context.Context) (*models.RunResult, error) {
	dateISO := shared.DateIn(time.Now(), j.Location)

	entries, err := j.Calendar.FetchSameDayIPOs(ctx, dateISO)
	if err != nil {
		return nil, err
	}

	qualified, stats := j.Analysis.Analyze(entries)
	return &models.RunResult{
		RunID:       uuid.New(),
		Date:        dateISO,
		Stats:       stats,
		Qualified:   qualified,
		CompletedAt: time.Now(),
	}, nil
}

func (j *IPOMonitorJob) recordFailure(err error) {
	if j.Metrics != nil {
		j.Metrics.RecordRun(false, 0, false, 0, err)
	}
}
