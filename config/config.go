package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Run modes. Once is the CI-cron path, serve keeps the process alive with
// the daily scheduler and the HTTP surface.
const (
	RunModeOnce  = "once"
	RunModeServe = "serve"
)

type Config struct {
	FinnhubAPIKey     string
	FinnhubBaseURL    string
	SMTPHost          string
	SMTPPort          int
	EmailUser         string
	EmailAppPassword  string
	EmailTo           string
	SendEmptyReport   bool
	MinOfferAmountUSD float64
	HTTPTimeout       time.Duration
	RunMode           string
	ServerPort        string
	ScheduleAt        string
	LogLevel          string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		FinnhubAPIKey:     getEnv("FINNHUB_API_KEY", ""),
		FinnhubBaseURL:    getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		EmailUser:         getEnv("EMAIL_USER", ""),
		EmailAppPassword:  getEnv("EMAIL_APP_PASSWORD", ""),
		EmailTo:           getEnv("EMAIL_TO", ""),
		SendEmptyReport:   getEnvBool("EMAIL_SEND_EMPTY_REPORT", false),
		MinOfferAmountUSD: getEnvFloat("MIN_OFFER_AMOUNT_USD", 200_000_000),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		RunMode:           getEnv("RUN_MODE", RunModeOnce),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		ScheduleAt:        getEnv("SCHEDULE_AT", "09:00"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the required credential set before any network I/O happens.
func (c *Config) Validate() error {
	var missing []string
	if c.FinnhubAPIKey == "" {
		missing = append(missing, "FINNHUB_API_KEY")
	}
	if c.EmailUser == "" {
		missing = append(missing, "EMAIL_USER")
	}
	if c.EmailAppPassword == "" {
		missing = append(missing, "EMAIL_APP_PASSWORD")
	}
	if c.EmailTo == "" {
		missing = append(missing, "EMAIL_TO")
	}
	if len(missing) > 0 {
		return shared.NewServiceError(
			shared.ErrorCategoryConfiguration,
			"MISSING_ENV",
			shared.BuildMissingEnvMessage(missing),
			"Config",
			"Validate",
			nil,
		)
	}

	if c.RunMode != RunModeOnce && c.RunMode != RunModeServe {
		return shared.NewServiceError(
			shared.ErrorCategoryConfiguration,
			"INVALID_RUN_MODE",
			fmt.Sprintf("RUN_MODE must be %q or %q, got %q", RunModeOnce, RunModeServe, c.RunMode),
			"Config",
			"Validate",
			nil,
		)
	}

	if _, _, err := c.ScheduleHourMinute(); err != nil {
		return err
	}

	return nil
}

// Recipients splits the comma-delimited EMAIL_TO address list.
func (c *Config) Recipients() []string {
	var recipients []string
	for _, addr := range strings.Split(c.EmailTo, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// ScheduleHourMinute parses SCHEDULE_AT ("HH:MM", local to the report timezone).
func (c *Config) ScheduleHourMinute() (int, int, error) {
	parsed, err := time.Parse("15:04", c.ScheduleAt)
	if err != nil {
		return 0, 0, shared.NewServiceError(
			shared.ErrorCategoryConfiguration,
			"INVALID_SCHEDULE",
			fmt.Sprintf("SCHEDULE_AT must be HH:MM, got %q", c.ScheduleAt),
			"Config",
			"ScheduleHourMinute",
			err,
		)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %g", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %t", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %v", key, value, fallback)
		return fallback
	}
	return parsed
}
