package shared

import (
	"time"

	"github.com/sirupsen/logrus"
)

const reportTimezone = "Asia/Dubai"

// ReportLocation resolves the timezone all report dates are computed in.
// Falls back to a fixed UTC+4 zone when the host has no tzdata, which is
// equivalent for Dubai (no daylight saving).
func ReportLocation() *time.Location {
	loc, err := time.LoadLocation(reportTimezone)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "clock",
			"timezone":  reportTimezone,
		}).Warn("Timezone database unavailable, using fixed UTC+4 offset")
		return time.FixedZone("GST", 4*60*60)
	}
	return loc
}

// DateIn truncates t to a calendar date in loc, formatted as ISO 8601.
func DateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
