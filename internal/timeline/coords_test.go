package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfaulkner/tracklane/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfUnit(t *testing.T) {
	tests := []struct {
		name string
		zoom domain.ViewMode
		in   time.Time
		want time.Time
	}{
		{"day keeps the day", domain.ViewDay, date(2025, time.June, 10), date(2025, time.June, 10)},
		{"day drops clock time", domain.ViewDay, time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC), date(2025, time.June, 10)},
		{"week snaps tuesday back to sunday", domain.ViewWeek, date(2025, time.June, 10), date(2025, time.June, 8)},
		{"week keeps sunday", domain.ViewWeek, date(2025, time.June, 8), date(2025, time.June, 8)},
		{"week snaps saturday back six days", domain.ViewWeek, date(2025, time.June, 14), date(2025, time.June, 8)},
		{"month snaps to the first", domain.ViewMonth, date(2025, time.June, 10), date(2025, time.June, 1)},
		{"month keeps the first", domain.ViewMonth, date(2025, time.June, 1), date(2025, time.June, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfUnit(tt.in, tt.zoom))
		})
	}
}

func TestDateToPosition_WeekZoom(t *testing.T) {
	// Tuesday 2025-06-10; its week starts Sunday 2025-06-08.
	today := date(2025, time.June, 10)

	assert.Equal(t, 0, DateToPosition(date(2025, time.June, 14), domain.ViewWeek, WeekColumnWidth, today),
		"saturday of the same week shares the column")
	assert.Equal(t, 0, DateToPosition(date(2025, time.June, 8), domain.ViewWeek, WeekColumnWidth, today))
	assert.Equal(t, WeekColumnWidth, DateToPosition(date(2025, time.June, 15), domain.ViewWeek, WeekColumnWidth, today),
		"the following sunday starts the next column")
	assert.Equal(t, -WeekColumnWidth, DateToPosition(date(2025, time.June, 7), domain.ViewWeek, WeekColumnWidth, today),
		"the preceding saturday is one column to the left")
}

func TestDateToPosition_DayZoom(t *testing.T) {
	today := date(2025, time.June, 10)

	assert.Equal(t, 0, DateToPosition(today, domain.ViewDay, DayColumnWidth, today))
	assert.Equal(t, 3*DayColumnWidth, DateToPosition(date(2025, time.June, 13), domain.ViewDay, DayColumnWidth, today))
	assert.Equal(t, -2*DayColumnWidth, DateToPosition(date(2025, time.June, 8), domain.ViewDay, DayColumnWidth, today))
}

func TestDateToPosition_MonthZoom(t *testing.T) {
	today := date(2025, time.June, 10)

	assert.Equal(t, 0, DateToPosition(date(2025, time.June, 30), domain.ViewMonth, MonthColumnWidth, today))
	assert.Equal(t, MonthColumnWidth, DateToPosition(date(2025, time.July, 1), domain.ViewMonth, MonthColumnWidth, today))
	assert.Equal(t, -4*MonthColumnWidth, DateToPosition(date(2025, time.February, 28), domain.ViewMonth, MonthColumnWidth, today),
		"calendar months, not 30-day blocks")
	assert.Equal(t, 7*MonthColumnWidth, DateToPosition(date(2026, time.January, 15), domain.ViewMonth, MonthColumnWidth, today),
		"month distance spans year boundaries")
}

func TestPositionToDate(t *testing.T) {
	today := date(2025, time.June, 10)

	assert.Equal(t, date(2025, time.June, 8), PositionToDate(0, domain.ViewWeek, WeekColumnWidth, today))
	assert.Equal(t, date(2025, time.June, 8), PositionToDate(119, domain.ViewWeek, WeekColumnWidth, today),
		"any offset inside the column maps to its date")
	assert.Equal(t, date(2025, time.June, 15), PositionToDate(120, domain.ViewWeek, WeekColumnWidth, today))
	assert.Equal(t, date(2025, time.June, 1), PositionToDate(-1, domain.ViewWeek, WeekColumnWidth, today),
		"negative offsets resolve to the column covering them")
	assert.Equal(t, date(2025, time.May, 1), PositionToDate(-180, domain.ViewMonth, MonthColumnWidth, today))
}

func TestPositionRoundTrip(t *testing.T) {
	today := date(2025, time.June, 10)
	dates := []time.Time{
		date(2025, time.June, 10),
		date(2025, time.June, 14),
		date(2025, time.March, 1),
		date(2024, time.December, 31),
		date(2026, time.February, 14),
	}
	for _, zoom := range []domain.ViewMode{domain.ViewDay, domain.ViewWeek, domain.ViewMonth} {
		w := ColumnWidth(zoom)
		for _, d := range dates {
			x := DateToPosition(d, zoom, w, today)
			back := PositionToDate(x, zoom, w, today)
			assert.Equal(t, StartOfUnit(d, zoom), back,
				"round trip at %s zoom must land in the unit containing %s", zoom, d.Format("2006-01-02"))
		}
	}
}

func TestDateToPosition_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// July 1 is 181 days after January 1, but only 180*24+23 wall-clock
	// hours in a zone that springs forward in March. Day counting must be
	// calendar-based, not duration-based.
	ref := time.Date(2025, time.January, 1, 0, 0, 0, 0, loc)
	d := time.Date(2025, time.July, 1, 0, 0, 0, 0, loc)

	assert.Equal(t, 181*DayColumnWidth, DateToPosition(d, domain.ViewDay, DayColumnWidth, ref))

	for _, zoom := range []domain.ViewMode{domain.ViewDay, domain.ViewWeek, domain.ViewMonth} {
		w := ColumnWidth(zoom)
		x := DateToPosition(d, zoom, w, ref)
		back := PositionToDate(x, zoom, w, ref)
		assert.Equal(t, StartOfUnit(d, zoom), back,
			"round trip at %s zoom must hold for non-UTC dates", zoom)
	}
}

func TestDateToPosition_Monotonic(t *testing.T) {
	today := date(2025, time.June, 10)
	for _, zoom := range []domain.ViewMode{domain.ViewDay, domain.ViewWeek, domain.ViewMonth} {
		w := ColumnWidth(zoom)
		prev := DateToPosition(date(2025, time.January, 1), zoom, w, today)
		for d := date(2025, time.January, 2); d.Before(date(2025, time.December, 31)); d = d.AddDate(0, 0, 1) {
			cur := DateToPosition(d, zoom, w, today)
			assert.GreaterOrEqual(t, cur, prev, "position must not decrease at %s on %s", zoom, d.Format("2006-01-02"))
			prev = cur
		}
	}
}
