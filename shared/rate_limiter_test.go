package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinimumDelayLimiter(t *testing.T) {
	limiter := NewMinimumDelayLimiter(50 * time.Millisecond)

	assert.True(t, limiter.Allow(), "first request should pass")
	assert.False(t, limiter.Allow(), "immediate second request should be rejected")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow(), "request after the delay window should pass")
	assert.Equal(t, int64(2), limiter.AcceptedCount())
}

func TestMinimumDelayLimiterReset(t *testing.T) {
	limiter := NewMinimumDelayLimiter(time.Hour)

	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())

	limiter.Reset()
	assert.True(t, limiter.Allow(), "reset should clear the delay window")
	assert.Equal(t, int64(1), limiter.AcceptedCount())
}
