// Package schedule computes due dates and period markers for recurring
// reporting obligations. All functions are pure; unknown periodicities are a
// programming error and panic.
package schedule

import (
	"time"

	"stat-reports-api/models"
)

// NextDueDate advances prev by one period unit and clamps the day of month to
// min(fixedDay, days in the resulting month). Used at roll-over so the cadence
// stays regular regardless of short months (fixed day 31 in February lands on
// the 28th or 29th).
func NextDueDate(p models.Periodicity, fixedDay int, prev time.Time) time.Time {
	return addMonthsClamped(prev, p.Months(), fixedDay)
}

// FirstDueDate computes the first due date of a freshly created template from
// an arbitrary report date. Monthly and yearly templates advance a flat unit;
// quarterly and half-yearly templates snap forward to the month after the next
// quarter/half boundary. Only the seeding path uses this alignment; roll-over
// always advances a fixed increment from the previous deadline.
func FirstDueDate(p models.Periodicity, fixedDay int, reportDate time.Time) time.Time {
	month := int(reportDate.Month())
	switch p {
	case models.PeriodicityMonthly:
		return addMonthsClamped(reportDate, 1, fixedDay)
	case models.PeriodicityQuarterly:
		return addMonthsClamped(reportDate, 3-(month-1)%3, fixedDay)
	case models.PeriodicityHalfYearly:
		return addMonthsClamped(reportDate, 6-(month-1)%6, fixedDay)
	case models.PeriodicityYearly:
		return addMonthsClamped(reportDate, 12, fixedDay)
	default:
		panic("schedule: unknown periodicity " + string(p))
	}
}

// NextPeriodStart advances a period marker by one unit. Markers are always
// first-of-period, so no day clamping applies.
func NextPeriodStart(p models.Periodicity, period time.Time) time.Time {
	return addMonthsClamped(period, p.Months(), period.Day())
}

// addMonthsClamped adds months to t and sets the day to
// min(day, days in the target month). time.AddDate normalizes overflowing
// days into the next month, which is exactly the behavior we must avoid.
func addMonthsClamped(t time.Time, months, day int) time.Time {
	year := t.Year()
	month := int(t.Month()) + months
	year += (month - 1) / 12
	month = (month-1)%12 + 1

	if max := daysIn(year, time.Month(month)); day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
