package handlers

import (
	"github.com/dxbquant/ipo-monitor/jobs"
	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/gofiber/fiber/v2"
)

type MonitorHandler struct {
	Job            *jobs.IPOMonitorJob
	Metrics        *shared.RunMetrics
	TriggerLimiter *shared.MinimumDelayLimiter
}

func NewMonitorHandler(job *jobs.IPOMonitorJob, metrics *shared.RunMetrics, limiter *shared.MinimumDelayLimiter) *MonitorHandler {
	return &MonitorHandler{
		Job:            job,
		Metrics:        metrics,
		TriggerLimiter: limiter,
	}
}

// TriggerRun runs the monitor immediately. Rate-limited so the trigger
// endpoint cannot hammer the upstream calendar API.
func (h *MonitorHandler) TriggerRun(c *fiber.Ctx) error {
	if !h.TriggerLimiter.Allow() {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"error":   "manual trigger rate limit exceeded, try again later",
		})
	}

	result, err := h.Job.Run(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetStatus reports metrics for the most recent runs.
func (h *MonitorHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"runs":         h.Metrics.Snapshot(),
			"success_rate": h.Metrics.GetSuccessRate(),
		},
	})
}

// GetTodayIPOs fetches and analyzes today's calendar without sending mail.
func (h *MonitorHandler) GetTodayIPOs(c *fiber.Ctx) error {
	result, err := h.Job.Preview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}
