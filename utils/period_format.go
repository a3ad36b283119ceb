package utils

import (
	"fmt"
	"time"

	"stat-reports-api/models"
)

// FormatReportPeriod renders a period marker the way pending and archive
// views display it: "March 2024" for monthly templates, the year-to-date
// month range for quarterly and half-yearly ones, and the bare year for
// yearly templates.
func FormatReportPeriod(period time.Time, p models.Periodicity) string {
	year := period.Year()
	month := period.Month()

	switch p {
	case models.PeriodicityMonthly:
		return fmt.Sprintf("%s %d", month.String(), year)

	case models.PeriodicityQuarterly:
		end := time.March
		switch {
		case month >= time.October:
			end = time.December
		case month >= time.July:
			end = time.September
		case month >= time.April:
			end = time.June
		}
		return fmt.Sprintf("January–%s %d", end.String(), year)

	case models.PeriodicityHalfYearly:
		end := time.June
		if month >= time.July {
			end = time.December
		}
		return fmt.Sprintf("January–%s %d", end.String(), year)

	case models.PeriodicityYearly:
		return fmt.Sprintf("%d", year)

	default:
		return period.Format("02.01.2006")
	}
}
