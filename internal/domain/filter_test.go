package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedParty(id string, date time.Time, lookingFor int, memberIDs ...string) Party {
	p := testParty(lookingFor, memberIDs...)
	p.ID = id
	p.Date = date
	return *p
}

func TestInRange(t *testing.T) {
	// Friday, March 15 2024; the containing week runs Sun 3/10 - Sat 3/16
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		date  time.Time
		r     TimeRange
		want  bool
	}{
		{"same day is today", time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC), RangeToday, true},
		{"next day is not today", time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), RangeToday, false},
		{"sunday start is in week", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), RangeThisWeek, true},
		{"saturday end is in week", time.Date(2024, 3, 16, 23, 0, 0, 0, time.UTC), RangeThisWeek, true},
		{"next sunday is out of week", time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), RangeThisWeek, false},
		{"prior saturday is out of week", time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), RangeThisWeek, false},
		{"same month matches", time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC), RangeThisMonth, true},
		{"next month does not match", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), RangeThisMonth, false},
		{"same month of another year does not match", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), RangeThisMonth, false},
		{"all time matches anything", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), RangeAllTime, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.date, tt.r, now))
		})
	}
}

func TestFilterPartiesRanges(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	parties := []Party{
		datedParty("mar15", time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC), 3, "leader"),
		datedParty("mar17", time.Date(2024, 3, 17, 19, 0, 0, 0, time.UTC), 3, "leader"),
		datedParty("apr01", time.Date(2024, 4, 1, 19, 0, 0, 0, time.UTC), 3, "leader"),
	}

	ids := func(ps []Party) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name string
		r    TimeRange
		want []string
	}{
		{"today keeps only the same day", RangeToday, []string{"mar15"}},
		{"week keeps the sunday-to-saturday window", RangeThisWeek, []string{"mar15"}},
		{"month keeps march parties", RangeThisMonth, []string{"mar15", "mar17"}},
		{"all time keeps everything", RangeAllTime, []string{"mar15", "mar17", "apr01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterParties(parties, PartyFilter{Range: tt.r, ShowFilled: true, ShowCompleted: true}, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterPartiesFilledFlag(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	date := time.Date(2024, 3, 16, 19, 0, 0, 0, time.UTC)

	open := datedParty("open", date, 1, "leader")
	filled := datedParty("filled", date, 1, "leader", "m1")
	// Overfull rosters exist only after a lookingFor edit; exact-fill
	// comparison keeps them visible.
	overfull := datedParty("overfull", date, 1, "leader", "m1", "m2")

	got := FilterParties([]Party{open, filled, overfull}, PartyFilter{Range: RangeAllTime}, now)

	require.Len(t, got, 2)
	assert.Equal(t, "open", got[0].ID)
	assert.Equal(t, "overfull", got[1].ID)

	withFilled := FilterParties([]Party{open, filled, overfull}, PartyFilter{Range: RangeAllTime, ShowFilled: true}, now)
	assert.Len(t, withFilled, 3)
}

func TestFilterPartiesCompletedFlag(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	past := datedParty("past", now.Add(-time.Hour), 3, "leader")
	upcoming := datedParty("upcoming", now.Add(time.Hour), 3, "leader")

	got := FilterParties([]Party{past, upcoming}, PartyFilter{Range: RangeAllTime}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "upcoming", got[0].ID)

	withCompleted := FilterParties([]Party{past, upcoming}, PartyFilter{Range: RangeAllTime, ShowCompleted: true}, now)
	assert.Len(t, withCompleted, 2)
}

func TestFilterPartiesOrdering(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	later := datedParty("later", now.Add(48*time.Hour), 3, "leader")
	sooner := datedParty("sooner", now.Add(2*time.Hour), 3, "leader")
	middle := datedParty("middle", now.Add(24*time.Hour), 3, "leader")

	got := FilterParties([]Party{later, sooner, middle}, PartyFilter{Range: RangeAllTime}, now)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"sooner", "middle", "later"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestParseTimeRange(t *testing.T) {
	assert.Equal(t, RangeToday, ParseTimeRange("today"))
	assert.Equal(t, RangeThisWeek, ParseTimeRange("week"))
	assert.Equal(t, RangeThisMonth, ParseTimeRange("month"))
	assert.Equal(t, RangeAllTime, ParseTimeRange("all"))
	assert.Equal(t, RangeAllTime, ParseTimeRange(""))
	assert.Equal(t, RangeAllTime, ParseTimeRange("bogus"))
}
