package main

import (
	"context"
	"time"

	"github.com/dxbquant/ipo-monitor/config"
	"github.com/dxbquant/ipo-monitor/handlers"
	"github.com/dxbquant/ipo-monitor/jobs"
	"github.com/dxbquant/ipo-monitor/services"
	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	configureLogging(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	location := shared.ReportLocation()

	// HTTP client factory shared by outbound calls
	factory := shared.NewHTTPClientFactory(cfg.HTTPTimeout)
	defer factory.CleanupAllClients()

	// Initialize services
	calendarConfig := services.NewDefaultCalendarServiceConfiguration()
	calendarConfig.BaseURL = cfg.FinnhubBaseURL
	calendarConfig.HTTPRequestTimeout = cfg.HTTPTimeout

	calendarService := services.NewCalendarService(calendarConfig, cfg.FinnhubAPIKey, factory)
	analysisService := services.NewAnalysisService(cfg.MinOfferAmountUSD)
	mailService := services.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailAppPassword, cfg.Recipients())

	metrics := shared.NewRunMetrics()
	monitorJob := jobs.NewIPOMonitorJob(calendarService, analysisService, mailService, metrics, cfg.SendEmptyReport, location)

	logrus.WithFields(logrus.Fields{
		"run_mode":         cfg.RunMode,
		"min_offer_amount": cfg.MinOfferAmountUSD,
		"send_empty":       cfg.SendEmptyReport,
	}).Info("IPO monitor initialized")

	if cfg.RunMode == config.RunModeServe {
		runServer(cfg, monitorJob, metrics, location)
		return
	}

	// One-shot mode: exit nonzero on any unrecovered fetch or send failure.
	result, err := monitorJob.Run(context.Background())
	if err != nil {
		logrus.Fatalf("IPO monitor run failed: %v", err)
	}
	logrus.Infof("IPO monitor finished: %d qualifying IPO(s), email sent: %t", result.Stats.Qualified, result.EmailSent)
}

func runServer(cfg *config.Config, monitorJob *jobs.IPOMonitorJob, metrics *shared.RunMetrics, location *time.Location) {
	hour, minute, err := cfg.ScheduleHourMinute()
	if err != nil {
		logrus.Fatalf("Invalid schedule: %v", err)
	}

	// Daily trigger at the configured local time
	scheduler := jobs.NewDailyScheduler(monitorJob, location, hour, minute)
	go scheduler.Start(context.Background())

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Routes
	monitorHandler := handlers.NewMonitorHandler(monitorJob, metrics, shared.NewMinimumDelayLimiter(time.Minute))

	api := app.Group("/api/v1")
	api.Post("/monitor/run", monitorHandler.TriggerRun)
	api.Get("/monitor/status", monitorHandler.GetStatus)
	api.Get("/ipos/today", monitorHandler.GetTodayIPOs)

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}

func configureLogging(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}
