package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEntry is a single record from the Finnhub IPO calendar.
// Price arrives as a string and is frequently a range such as "20-22".
type CalendarEntry struct {
	Date             string  `json:"date"`
	Exchange         string  `json:"exchange"`
	Name             string  `json:"name"`
	NumberOfShares   float64 `json:"numberOfShares"`
	Price            string  `json:"price"`
	Status           string  `json:"status"`
	Symbol           string  `json:"symbol"`
	TotalSharesValue float64 `json:"totalSharesValue"`
}

// CalendarResponse mirrors the envelope of GET /calendar/ipo.
type CalendarResponse struct {
	IPOCalendar []CalendarEntry `json:"ipoCalendar"`
}

// IPOEvent is a qualifying same-day IPO. OfferAmountUSD is always derived
// as Price x Shares, never taken from the API directly.
type IPOEvent struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Exchange       string  `json:"exchange"`
	Price          float64 `json:"price"`
	Shares         float64 `json:"shares"`
	OfferAmountUSD float64 `json:"offer_amount_usd"`
	Date           string  `json:"date"`
}

// CalendarStats counts how entries moved through the analysis funnel.
type CalendarStats struct {
	Total       int `json:"total_ipos"`
	USListings  int `json:"us_ipos"`
	MissingData int `json:"missing_data"`
	Qualified   int `json:"qualified"`
}

// RunResult is the outcome of one monitor run.
type RunResult struct {
	RunID       uuid.UUID     `json:"run_id"`
	Date        string        `json:"date"`
	Stats       CalendarStats `json:"stats"`
	Qualified   []IPOEvent    `json:"qualified"`
	EmailSent   bool          `json:"email_sent"`
	Duration    time.Duration `json:"duration"`
	CompletedAt time.Time     `json:"completed_at"`
}
