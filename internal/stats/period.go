package stats

import "time"

// PeriodKind selects the reporting window for a statistics computation.
type PeriodKind int

const (
	// PeriodToday keeps orders from the same calendar date as the reference
	// time.
	PeriodToday PeriodKind = iota
	// PeriodLast7Days keeps orders from the trailing 7×24h elapsed-time
	// window. Unlike the other kinds this is not a calendar filter; the
	// asymmetry with PeriodToday is intentional.
	PeriodLast7Days
	// PeriodCurrentMonth keeps orders from the reference time's calendar
	// month.
	PeriodCurrentMonth
	// PeriodSpecificDay keeps orders from one chosen calendar date.
	PeriodSpecificDay
	// PeriodAllTime keeps everything.
	PeriodAllTime
)

// Period is a pure filter criterion; it is never persisted. Day is only
// meaningful for PeriodSpecificDay.
type Period struct {
	Kind PeriodKind
	Day  time.Time
}

// Today returns the period covering the reference date.
func Today() Period { return Period{Kind: PeriodToday} }

// Last7Days returns the trailing-week period.
func Last7Days() Period { return Period{Kind: PeriodLast7Days} }

// CurrentMonth returns the period covering the reference month.
func CurrentMonth() Period { return Period{Kind: PeriodCurrentMonth} }

// SpecificDay returns the period covering the calendar date of d.
func SpecificDay(d time.Time) Period { return Period{Kind: PeriodSpecificDay, Day: d} }

// AllTime returns the unfiltered period.
func AllTime() Period { return Period{Kind: PeriodAllTime} }

// Contains reports whether an order created at t falls inside the period,
// judged against the injected reference time.
func (p Period) Contains(t, referenceNow time.Time) bool {
	switch p.Kind {
	case PeriodToday:
		return sameDay(t, referenceNow)
	case PeriodLast7Days:
		return !t.Before(referenceNow.Add(-7 * 24 * time.Hour))
	case PeriodCurrentMonth:
		local := t.In(referenceNow.Location())
		return local.Year() == referenceNow.Year() && local.Month() == referenceNow.Month()
	case PeriodSpecificDay:
		return sameDay(t, p.Day)
	case PeriodAllTime:
		return true
	}
	return false
}

// sameDay compares calendar dates in ref's location. Stored timestamps come
// back from the driver in UTC; the reference time carries the restaurant's
// calendar.
func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month() && t.Day() == ref.Day()
}
