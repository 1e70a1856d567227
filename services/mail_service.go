package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dxbquant/ipo-monitor/models"
	"github.com/dxbquant/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// MailService sends the daily report as a single plain-text email over SMTP
// with mandatory STARTTLS.
type MailService struct {
	host       string
	port       int
	username   string
	password   string
	recipients []string
}

// NewMailService creates a mail service for the given SMTP submission account
func NewMailService(host string, port int, username, password string, recipients []string) *MailService {
	return &MailService{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		recipients: recipients,
	}
}

// Send delivers one plain-text message to all configured recipients.
func (m *MailService) Send(ctx context.Context, subject, body string) error {
	message := mail.NewMsg()
	if err := message.From(m.username); err != nil {
		return shared.WrapError(err, shared.ErrorCategoryValidation, "INVALID_FROM_ADDRESS", "MailService", "Send")
	}
	if err := message.To(m.recipients...); err != nil {
		return shared.WrapError(err, shared.ErrorCategoryValidation, "INVALID_RECIPIENT", "MailService", "Send")
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return shared.WrapError(err, shared.ErrorCategoryDelivery, "SMTP_CLIENT_FAILED", "MailService", "Send")
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return shared.WrapError(err, shared.ErrorCategoryDelivery, "SMTP_SEND_FAILED", "MailService", "Send")
	}

	logrus.WithFields(logrus.Fields{
		"component":  "MailService",
		"subject":    subject,
		"recipients": len(m.recipients),
	}).Info("Report email sent")

	return nil
}

// Subject builds the report subject line.
func Subject(dateISO string, qualified int) string {
	return fmt.Sprintf("IPO Monitor %s - %d qualifying IPO(s)", dateISO, qualified)
}

// BuildReport builds the plain-text report body: a stats header followed by
// one line per qualifying IPO, or an explicit "none today" notice.
func BuildReport(events []models.IPOEvent, dateISO string, stats models.CalendarStats, minOfferAmountUSD float64) string {
	summary := []string{
		fmt.Sprintf("Date (Dubai): %s", dateISO),
		fmt.Sprintf("Total IPOs returned: %d", stats.Total),
		fmt.Sprintf("U.S. exchanges (NASDAQ/NYSE/AMEX): %d", stats.USListings),
		fmt.Sprintf("Missing price/shares: %d", stats.MissingData),
		fmt.Sprintf("Offer >= USD %s: %d", FormatUSD(minOfferAmountUSD), stats.Qualified),
		"",
	}

	if len(events) == 0 {
		lines := []string{
			fmt.Sprintf("No U.S. same-day IPOs with offer amount above USD %s.", FormatUSD(minOfferAmountUSD)),
			"",
		}
		return strings.Join(append(lines, summary...), "\n")
	}

	lines := []string{
		fmt.Sprintf("U.S. Same-Day IPOs on %s (>= USD %s)", dateISO, FormatUSD(minOfferAmountUSD)),
		"",
	}
	lines = append(lines, summary...)

	for _, event := range events {
		symbol := event.Symbol
		if symbol == "" {
			symbol = "UNKNOWN"
		}
		name := event.Name
		if name == "" {
			name = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("- %s | %s | USD %s", symbol, name, FormatUSD(event.OfferAmountUSD)))
	}

	return strings.Join(lines, "\n")
}

// FormatUSD renders an amount with thousands separators and no decimals.
func FormatUSD(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)

	var grouped strings.Builder
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	if amount < 0 {
		return "-" + grouped.String()
	}
	return grouped.String()
}
