package timeline

import (
	"fmt"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

// DefaultOverscan is the number of extra columns generated on each side of
// the viewport so horizontal scrolling never exposes a blank edge.
const DefaultOverscan = 5

// Column is one rendered unit of the timeline header.
type Column struct {
	Date  time.Time
	Label string
	X     int
	Width int
}

// GenerateColumns produces the contiguous run of columns covering the
// viewport [scrollX, scrollX+viewportWidth) plus overscan columns on both
// sides. Positions are relative to the unit containing the reference date.
func GenerateColumns(zoom domain.ViewMode, columnWidth int, reference time.Time, scrollX, viewportWidth, overscan int) []Column {
	first := floorDiv(scrollX, columnWidth) - overscan
	count := (viewportWidth+columnWidth-1)/columnWidth + 2*overscan + 1

	base := StartOfUnit(reference, zoom)
	cols := make([]Column, 0, count)
	for i := 0; i < count; i++ {
		n := first + i
		date := AddUnits(base, n, zoom)
		cols = append(cols, Column{
			Date:  date,
			Label: ColumnLabel(date, zoom),
			X:     n * columnWidth,
			Width: columnWidth,
		})
	}
	return cols
}

// ColumnLabel formats a unit-aligned date for the timeline header: weekday
// and day number at day zoom, the covered date range at week zoom, and
// month plus year at month zoom.
func ColumnLabel(date time.Time, zoom domain.ViewMode) string {
	switch zoom {
	case domain.ViewWeek:
		end := date.AddDate(0, 0, 6)
		return fmt.Sprintf("%s - %s", date.Format("Jan 2"), end.Format("Jan 2"))
	case domain.ViewMonth:
		return date.Format("January 2006")
	default:
		return date.Format("Mon 2")
	}
}
