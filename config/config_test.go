package config

import (
	"testing"

	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		FinnhubAPIKey:    "test-key",
		EmailUser:        "sender@example.com",
		EmailAppPassword: "app-password",
		EmailTo:          "alerts@example.com",
		RunMode:          RunModeOnce,
		ScheduleAt:       "09:00",
	}
}

func TestValidateReportsAllMissingVariables(t *testing.T) {
	cfg := &Config{RunMode: RunModeOnce, ScheduleAt: "09:00"}

	err := cfg.Validate()
	require.Error(t, err)

	var svcErr *shared.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, shared.ErrorCategoryConfiguration, svcErr.GetCategory())

	for _, name := range []string{"FINNHUB_API_KEY", "EMAIL_USER", "EMAIL_APP_PASSWORD", "EMAIL_TO"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsUnknownRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.RunMode = "daemon"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RUN_MODE")
}

func TestValidateRejectsMalformedSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.ScheduleAt = "9am"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULE_AT")
}

func TestRecipientsSplitsCommaDelimitedList(t *testing.T) {
	cfg := validConfig()
	cfg.EmailTo = " one@example.com, two@example.com ,,three@example.com "

	assert.Equal(t, []string{"one@example.com", "two@example.com", "three@example.com"}, cfg.Recipients())
}

func TestScheduleHourMinute(t *testing.T) {
	cfg := validConfig()
	cfg.ScheduleAt = "14:45"

	hour, minute, err := cfg.ScheduleHourMinute()
	require.NoError(t, err)
	assert.Equal(t, 14, hour)
	assert.Equal(t, 45, minute)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "test-key")
	t.Setenv("EMAIL_USER", "sender@example.com")
	t.Setenv("EMAIL_APP_PASSWORD", "app-password")
	t.Setenv("EMAIL_TO", "alerts@example.com")

	cfg := LoadConfig()

	assert.Equal(t, "https://finnhub.io/api/v1", cfg.FinnhubBaseURL)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, float64(200_000_000), cfg.MinOfferAmountUSD)
	assert.Equal(t, RunModeOnce, cfg.RunMode)
	assert.Equal(t, "09:00", cfg.ScheduleAt)
	assert.False(t, cfg.SendEmptyReport)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "test-key")
	t.Setenv("EMAIL_USER", "sender@example.com")
	t.Setenv("EMAIL_APP_PASSWORD", "app-password")
	t.Setenv("EMAIL_TO", "alerts@example.com")
	t.Setenv("MIN_OFFER_AMOUNT_USD", "250000000")
	t.Setenv("EMAIL_SEND_EMPTY_REPORT", "true")
	t.Setenv("RUN_MODE", "serve")
	t.Setenv("SMTP_PORT", "2525")

	cfg := LoadConfig()

	assert.Equal(t, float64(250_000_000), cfg.MinOfferAmountUSD)
	assert.True(t, cfg.SendEmptyReport)
	assert.Equal(t, RunModeServe, cfg.RunMode)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("MIN_OFFER_AMOUNT_USD", "lots")

	cfg := LoadConfig()

	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, float64(200_000_000), cfg.MinOfferAmountUSD)
}
