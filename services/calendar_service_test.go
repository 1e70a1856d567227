package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendarService(baseURL string) *CalendarService {
	return NewCalendarService(&CalendarServiceConfiguration{
		BaseURL:            baseURL,
		HTTPRequestTimeout: 5 * time.Second,
	}, "test-token", nil)
}

func TestFetchSameDayIPOs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/ipo", r.URL.Path)
		assert.Equal(t, "2026-08-23", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-08-23", r.URL.Query().Get("to"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ipoCalendar":[
			{"date":"2026-08-23","exchange":"NASDAQ Global","name":"ABC Corp","numberOfShares":15000000,"price":"20-22","status":"expected","symbol":"ABC"},
			{"date":"2026-08-23","exchange":"LSE","name":"Foreign Plc","numberOfShares":1000000,"price":"10","status":"expected","symbol":"FPLC"}
		]}`))
	}))
	defer server.Close()

	service := newTestCalendarService(server.URL)
	entries, err := service.FetchSameDayIPOs(context.Background(), "2026-08-23")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ABC", entries[0].Symbol)
	assert.Equal(t, "20-22", entries[0].Price)
	assert.Equal(t, float64(15_000_000), entries[0].NumberOfShares)
}

func TestFetchSameDayIPOsEmptyCalendar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ipoCalendar":[]}`))
	}))
	defer server.Close()

	service := newTestCalendarService(server.URL)
	entries, err := service.FetchSameDayIPOs(context.Background(), "2026-08-23")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchSameDayIPOsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := newTestCalendarService(server.URL)
	_, err := service.FetchSameDayIPOs(context.Background(), "2026-08-23")

	require.Error(t, err)
	var svcErr *shared.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, shared.ErrorCategoryNetwork, svcErr.GetCategory())
}

func TestFetchSameDayIPOsRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	service := newTestCalendarService(server.URL)
	_, err := service.FetchSameDayIPOs(context.Background(), "2026-08-23")

	require.Error(t, err)
	var svcErr *shared.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, shared.ErrorCategoryAuthentication, svcErr.GetCategory())
}

func TestFetchSameDayIPOsMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	service := newTestCalendarService(server.URL)
	_, err := service.FetchSameDayIPOs(context.Background(), "2026-08-23")

	require.Error(t, err)
	var svcErr *shared.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, shared.ErrorCategoryParsing, svcErr.GetCategory())
}

func TestFetchSameDayIPOsUnreachableHost(t *testing.T) {
	service := newTestCalendarService("http://127.0.0.1:1")
	_, err := service.FetchSameDayIPOs(context.Background(), "2026-08-23")

	require.Error(t, err)
	var svcErr *shared.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, shared.ErrorCategoryNetwork, svcErr.GetCategory())
}
