package domain

import (
	"fmt"
	"time"
)

// PeriodStatus is the lifecycle state of a fiscal period.
// Transitions: OPEN -> CLOSED -> LOCKED, with CLOSED -> OPEN allowed (reopen).
// LOCKED is terminal.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod is one of the twelve posting windows in a fiscal year.
// Posting or voiding a journal entry requires its period to be OPEN.
type FiscalPeriod struct {
	Year      int          `json:"year"`
	Period    int          `json:"period"` // 1-12
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// CanTransitionTo reports whether the period may move to the target status.
func (p FiscalPeriod) CanTransitionTo(target PeriodStatus) bool {
	switch p.Status {
	case PeriodOpen:
		return target == PeriodClosed
	case PeriodClosed:
		return target == PeriodOpen || target == PeriodLocked
	case PeriodLocked:
		return false
	}
	return false
}

// Contains reports whether the date falls within the period boundaries.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// DateOnly normalizes a timestamp to midnight UTC. The ledger timeline is
// day-granular: period bounds, opening balances and snapshot deltas all
// compare against midnight-aligned dates, so an intra-day timestamp would
// fall between every inclusive boundary pair.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodRef identifies a fiscal period without its state.
type PeriodRef struct {
	Year   int `json:"year"`
	Period int `json:"period"`
}

func (r PeriodRef) String() string {
	return fmt.Sprintf("%d-%02d", r.Year, r.Period)
}

// PeriodForDate maps a calendar date to its fiscal year and period given the
// month (1-12) the fiscal year starts in. With a January start, fiscal
// year/period match the calendar. With e.g. an April start, 2026-03 is period
// 12 of fiscal year 2025.
func PeriodForDate(date time.Time, fiscalYearStartMonth int) PeriodRef {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	y, m := date.UTC().Year(), int(date.UTC().Month())
	offset := m - fiscalYearStartMonth
	if offset < 0 {
		offset += 12
		y--
	}
	return PeriodRef{Year: y, Period: offset + 1}
}

// PeriodBounds returns the inclusive start and end dates of a fiscal period
// given the fiscal-year start month.
func PeriodBounds(year, period, fiscalYearStartMonth int) (time.Time, time.Time) {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	monthIndex := fiscalYearStartMonth - 1 + period - 1
	start := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
