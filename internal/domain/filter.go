package domain

import (
	"sort"
	"time"
)

// TimeRange selects the calendar window for party list views
type TimeRange string

const (
	RangeToday     TimeRange = "today"
	RangeThisWeek  TimeRange = "week"
	RangeThisMonth TimeRange = "month"
	RangeAllTime   TimeRange = "all"
)

// PartyFilter is the explicit view-model state for list views. It is passed
// into the pure filter pipeline instead of living in ambient state.
type PartyFilter struct {
	Range         TimeRange
	ShowFilled    bool
	ShowCompleted bool
}

// InRange reports whether a party date falls inside the calendar window
// containing now. Weeks run Sunday through Saturday, inclusive both ends.
func InRange(date time.Time, r TimeRange, now time.Time) bool {
	switch r {
	case RangeToday:
		return sameDay(date, now)
	case RangeThisWeek:
		sunday := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		d := startOfDay(date.In(now.Location()))
		return !d.Before(sunday) && d.Before(sunday.AddDate(0, 0, 7))
	case RangeThisMonth:
		d := date.In(now.Location())
		return d.Year() == now.Year() && d.Month() == now.Month()
	default:
		return true
	}
}

// FilterParties applies the list-view pipeline: range window, then the
// filled filter, then the completed filter, then ascending date order.
// The filled filter drops exact-fill rosters only; overfull parties stay.
// The result is freshly computed on every call.
func FilterParties(parties []Party, filter PartyFilter, now time.Time) []Party {
	filtered := make([]Party, 0, len(parties))

	for _, party := range parties {
		if !InRange(party.Date, filter.Range, now) {
			continue
		}
		if !filter.ShowFilled && party.IsExactlyFilled() {
			continue
		}
		if !filter.ShowCompleted && party.Date.Before(now) {
			continue
		}
		filtered = append(filtered, party)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	return filtered
}

// ParseTimeRange maps a query-string value to a TimeRange, defaulting to all
func ParseTimeRange(value string) TimeRange {
	switch TimeRange(value) {
	case RangeToday, RangeThisWeek, RangeThisMonth:
		return TimeRange(value)
	default:
		return RangeAllTime
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
