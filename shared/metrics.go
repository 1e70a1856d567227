package shared

import (
	"sync"
	"time"
)

// RunMetrics tracks outcomes of monitor runs for the status endpoint.
type RunMetrics struct {
	totalRuns       int64
	successfulRuns  int64
	failedRuns      int64
	emailsSent      int64
	lastRunAt       time.Time
	lastRunDuration time.Duration
	lastQualified   int
	lastError       string
	mutex           sync.RWMutex
}

// RunSnapshot is an immutable copy of the current metrics state.
type RunSnapshot struct {
	TotalRuns       int64         `json:"total_runs"`
	SuccessfulRuns  int64         `json:"successful_runs"`
	FailedRuns      int64         `json:"failed_runs"`
	EmailsSent      int64         `json:"emails_sent"`
	LastRunAt       *time.Time    `json:"last_run_at,omitempty"`
	LastRunDuration time.Duration `json:"last_run_duration"`
	LastQualified   int           `json:"last_qualified"`
	LastError       string        `json:"last_error,omitempty"`
}

// NewRunMetrics creates a new metrics tracker
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{}
}

// RecordRun records the outcome of one monitor run
func (m *RunMetrics) RecordRun(success bool, qualified int, emailSent bool, duration time.Duration, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRuns++
	if success {
		m.successfulRuns++
	} else {
		m.failedRuns++
	}
	if emailSent {
		m.emailsSent++
	}

	m.lastRunAt = time.Now()
	m.lastRunDuration = duration
	m.lastQualified = qualified
	if err != nil {
		m.lastError = err.Error()
	} else {
		m.lastError = ""
	}
}

// GetSuccessRate returns the success rate as a percentage
func (m *RunMetrics) GetSuccessRate() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.totalRuns == 0 {
		return 0.0
	}

	return float64(m.successfulRuns) / float64(m.totalRuns) * 100.0
}

// Snapshot returns a copy of the current state
func (m *RunMetrics) Snapshot() RunSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snapshot := RunSnapshot{
		TotalRuns:       m.totalRuns,
		SuccessfulRuns:  m.successfulRuns,
		FailedRuns:      m.failedRuns,
		EmailsSent:      m.emailsSent,
		LastRunDuration: m.lastRunDuration,
		LastQualified:   m.lastQualified,
		LastError:       m.lastError,
	}
	if !m.lastRunAt.IsZero() {
		at := m.lastRunAt
		snapshot.LastRunAt = &at
	}
	return snapshot
}
