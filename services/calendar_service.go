package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dxbquant/ipo-monitor/models"
	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
)

// CalendarServiceConfiguration holds configuration parameters for the
// Finnhub IPO calendar client
type CalendarServiceConfiguration struct {
	BaseURL            string        // Finnhub API base URL
	HTTPRequestTimeout time.Duration // Maximum time to wait for HTTP responses
}

// NewDefaultCalendarServiceConfiguration returns production-ready defaults
func NewDefaultCalendarServiceConfiguration() *CalendarServiceConfiguration {
	return &CalendarServiceConfiguration{
		BaseURL:            "https://finnhub.io/api/v1",
		HTTPRequestTimeout: 30 * time.Second,
	}
}

// CalendarService fetches the daily IPO calendar from Finnhub. Each fetch is
// a single attempt: the job is cheap to re-run on the next scheduled tick,
// so a failed call fails the whole run.
type CalendarService struct {
	config     *CalendarServiceConfiguration
	apiKey     string
	httpClient *http.Client
}

// NewCalendarService creates a calendar client. A nil configuration selects
// the defaults.
func NewCalendarService(config *CalendarServiceConfiguration, apiKey string, factory *shared.HTTPClientFactory) *CalendarService {
	if config == nil {
		config = NewDefaultCalendarServiceConfiguration()
	}
	if factory == nil {
		factory = shared.NewHTTPClientFactory(config.HTTPRequestTimeout)
	}
	return &CalendarService{
		config:     config,
		apiKey:     apiKey,
		httpClient: factory.CreateOptimizedHTTPClient(config.HTTPRequestTimeout),
	}
}

// FetchSameDayIPOs requests the IPO calendar bounded to a single date.
func (s *CalendarService) FetchSameDayIPOs(ctx context.Context, dateISO string) ([]models.CalendarEntry, error) {
	endpoint := s.config.BaseURL + "/calendar/ipo"

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "REQUEST_BUILD_FAILED", "CalendarService", "FetchSameDayIPOs")
	}

	query := request.URL.Query()
	query.Set("from", dateISO)
	query.Set("to", dateISO)
	query.Set("token", s.apiKey)
	request.URL.RawQuery = query.Encode()

	logrus.WithFields(logrus.Fields{
		"component": "CalendarService",
		"date":      dateISO,
		"endpoint":  endpoint,
	}).Debug("Fetching IPO calendar")

	response, err := s.httpClient.Do(request)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "CALENDAR_FETCH_FAILED", "CalendarService", "FetchSameDayIPOs")
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return nil, shared.NewServiceError(
			shared.ErrorCategoryAuthentication,
			"INVALID_API_KEY",
			fmt.Sprintf("calendar endpoint rejected credentials with HTTP %d", response.StatusCode),
			"CalendarService",
			"FetchSameDayIPOs",
			nil,
		)
	case response.StatusCode != http.StatusOK:
		return nil, shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"UNEXPECTED_STATUS",
			fmt.Sprintf("calendar endpoint returned HTTP %d: %s", response.StatusCode, http.StatusText(response.StatusCode)),
			"CalendarService",
			"FetchSameDayIPOs",
			nil,
		)
	}

	var calendar models.CalendarResponse
	if err := json.NewDecoder(response.Body).Decode(&calendar); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryParsing, "CALENDAR_DECODE_FAILED", "CalendarService", "FetchSameDayIPOs")
	}

	logrus.WithFields(logrus.Fields{
		"component": "CalendarService",
		"date":      dateISO,
		"entries":   len(calendar.IPOCalendar),
	}).Info("Fetched IPO calendar")

	return calendar.IPOCalendar, nil
}
