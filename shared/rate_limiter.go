package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MinimumDelayLimiter enforces a minimum delay between accepted requests.
// Used to guard the serve-mode manual trigger endpoint against hammering
// the upstream calendar API.
type MinimumDelayLimiter struct {
	minimumDelay  time.Duration // Minimum delay between accepted requests
	lastAccepted  time.Time     // Timestamp of the last accepted request
	mutex         sync.Mutex    // Ensures thread-safe access
	acceptedCount int64         // Total number of accepted requests
}

// NewMinimumDelayLimiter creates a new limiter with the specified minimum delay
func NewMinimumDelayLimiter(minimumDelay time.Duration) *MinimumDelayLimiter {
	return &MinimumDelayLimiter{
		minimumDelay: minimumDelay,
	}
}

// Allow reports whether a request may proceed, recording it when accepted
func (limiter *MinimumDelayLimiter) Allow() bool {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	if !limiter.lastAccepted.IsZero() {
		elapsedTime := time.Since(limiter.lastAccepted)
		if elapsedTime < limiter.minimumDelay {
			logrus.WithFields(logrus.Fields{
				"component":     "MinimumDelayLimiter",
				"elapsed_time":  elapsedTime,
				"minimum_delay": limiter.minimumDelay,
			}).Debug("Rejected request inside minimum delay window")
			return false
		}
	}

	limiter.lastAccepted = time.Now()
	limiter.acceptedCount++
	return true
}

// AcceptedCount returns the total number of accepted requests
func (limiter *MinimumDelayLimiter) AcceptedCount() int64 {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()
	return limiter.acceptedCount
}

// Reset resets the limiter state
func (limiter *MinimumDelayLimiter) Reset() {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	limiter.lastAccepted = time.Time{}
	limiter.acceptedCount = 0

	logrus.WithField("component", "MinimumDelayLimiter").Debug("Reset limiter state")
}
