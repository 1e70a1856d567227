package services

import (
	"strconv"
	"strings"

	"github.com/dxbquant/ipo-monitor/models"
	"github.com/sirupsen/logrus"
)

// Canonical U.S. exchange names the monitor accepts.
const (
	ExchangeNASDAQ = "NASDAQ"
	ExchangeNYSE   = "NYSE"
	ExchangeAMEX   = "AMEX"
)

// AnalysisService filters calendar entries down to qualifying same-day IPOs.
// All methods are pure functions of their input.
type AnalysisService struct {
	minOfferAmountUSD float64
}

// NewAnalysisService creates an analysis service with the offer-size threshold
func NewAnalysisService(minOfferAmountUSD float64) *AnalysisService {
	return &AnalysisService{
		minOfferAmountUSD: minOfferAmountUSD,
	}
}

// MinOfferAmountUSD returns the configured threshold
func (s *AnalysisService) MinOfferAmountUSD() float64 {
	return s.minOfferAmountUSD
}

// NormalizeExchange maps a raw exchange name onto one of the canonical U.S.
// exchanges. Finnhub reports tiered names such as "NASDAQ Global Select" or
// "NYSE American"; matching is case-insensitive. The AMEX family must be
// checked before the generic NYSE prefix because "NYSE American" is AMEX.
func NormalizeExchange(raw string) (string, bool) {
	exchange := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case exchange == "":
		return "", false
	case strings.HasPrefix(exchange, "AMEX"),
		strings.HasPrefix(exchange, "NYSE AMERICAN"),
		strings.HasPrefix(exchange, "NYSE AMEX"),
		strings.HasPrefix(exchange, "NYSE MKT"):
		return ExchangeAMEX, true
	case strings.HasPrefix(exchange, "NASDAQ"):
		return ExchangeNASDAQ, true
	case strings.HasPrefix(exchange, "NYSE"):
		return ExchangeNYSE, true
	}
	return "", false
}

// ParsePrice parses the Finnhub price field. The field is often a range
// such as "20-22"; the upper bound is taken. Dollar signs and thousands
// separators are stripped.
func ParsePrice(field string) (float64, bool) {
	cleaned := strings.TrimSpace(field)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}

	if strings.Contains(cleaned, "-") {
		var parts []string
		for _, p := range strings.Split(cleaned, "-") {
			p = strings.TrimSpace(p)
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			return 0, false
		}
		cleaned = parts[len(parts)-1]
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// OfferAmountUSD derives price x shares for a calendar entry. Returns false
// when the entry has no usable price or a non-positive share count.
func (s *AnalysisService) OfferAmountUSD(entry models.CalendarEntry) (float64, bool) {
	price, ok := ParsePrice(entry.Price)
	if !ok {
		return 0, false
	}
	if entry.NumberOfShares <= 0 {
		return 0, false
	}
	return price * entry.NumberOfShares, true
}

// Analyze filters entries to U.S. exchanges meeting the offer-size threshold.
// Ties at exactly the threshold are included. Entries with missing or
// malformed price/shares data are counted and skipped, never fatal.
func (s *AnalysisService) Analyze(entries []models.CalendarEntry) ([]models.IPOEvent, models.CalendarStats) {
	var qualified []models.IPOEvent
	var stats models.CalendarStats

	for _, entry := range entries {
		stats.Total++

		exchange, ok := NormalizeExchange(entry.Exchange)
		if !ok {
			continue
		}
		stats.USListings++

		amount, ok := s.OfferAmountUSD(entry)
		if !ok {
			stats.MissingData++
			logrus.WithFields(logrus.Fields{
				"component": "AnalysisService",
				"symbol":    entry.Symbol,
				"price":     entry.Price,
				"shares":    entry.NumberOfShares,
			}).Debug("Skipping entry with missing price/shares data")
			continue
		}

		if amount >= s.minOfferAmountUSD {
			price, _ := ParsePrice(entry.Price)
			qualified = append(qualified, models.IPOEvent{
				Symbol:         entry.Symbol,
				Name:           entry.Name,
				Exchange:       exchange,
				Price:          price,
				Shares:         entry.NumberOfShares,
				OfferAmountUSD: amount,
				Date:           entry.Date,
			})
			stats.Qualified++
		}
	}

	return qualified, stats
}
