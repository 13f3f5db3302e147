package timeline

import (
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

// StartOfUnit snaps a date to the start of the unit containing it for the
// given zoom: midnight of the same day, the preceding Sunday, or the first
// of the month.
func StartOfUnit(date time.Time, zoom domain.ViewMode) time.Time {
	switch zoom {
	case domain.ViewWeek:
		d := startOfDay(date)
		return d.AddDate(0, 0, -int(d.Weekday()))
	case domain.ViewMonth:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	default:
		return startOfDay(date)
	}
}

// DateToPosition converts a date to a horizontal pixel offset relative to
// the unit containing the reference date. Dates before the reference unit
// yield negative positions. Sub-unit precision is discarded: every date in
// a unit maps to the left edge of that unit's column.
func DateToPosition(date time.Time, zoom domain.ViewMode, columnWidth int, reference time.Time) int {
	return UnitsBetween(reference, date, zoom) * columnWidth
}

// PositionToDate is the inverse of DateToPosition: it converts a pixel
// offset back to the start of the unit that covers it. Any offset inside a
// column maps to that column's date, including negative offsets.
func PositionToDate(x int, zoom domain.ViewMode, columnWidth int, reference time.Time) time.Time {
	return AddUnits(StartOfUnit(reference, zoom), floorDiv(x, columnWidth), zoom)
}

// UnitsBetween returns the signed number of whole units from the unit
// containing from to the unit containing to. Day and week distances are
// day-count based; month distance uses calendar months so that a position
// round-trip lands in the same unit at every zoom.
func UnitsBetween(from, to time.Time, zoom domain.ViewMode) int {
	a := StartOfUnit(from, zoom)
	b := StartOfUnit(to, zoom)
	switch zoom {
	case domain.ViewWeek:
		return daysBetween(a, b) / 7
	case domain.ViewMonth:
		return (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	default:
		return daysBetween(a, b)
	}
}

// AddUnits advances a unit-aligned date by n units of the given zoom.
func AddUnits(start time.Time, n int, zoom domain.ViewMode) time.Time {
	switch zoom {
	case domain.ViewWeek:
		return start.AddDate(0, 0, 7*n)
	case domain.ViewMonth:
		return start.AddDate(0, n, 0)
	default:
		return start.AddDate(0, 0, n)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, negative when b precedes a.
// Both dates are re-anchored to UTC midnight before subtracting so the
// count is a pure calendar difference; wall-clock subtraction would be off
// by an hour across DST transitions and truncate to the wrong day.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// floorDiv divides rounding toward negative infinity, so that negative
// pixel offsets still resolve to the column covering them.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
