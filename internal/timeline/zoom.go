package timeline

import (
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

// Column widths in pixels per zoom level.
const (
	DayColumnWidth   = 60
	WeekColumnWidth  = 120
	MonthColumnWidth = 180
)

// Span thresholds for FitZoom: the tightest zoom that keeps the whole
// range within a bounded number of day columns.
const (
	fitDayMaxDays  = 14
	fitWeekMaxDays = 90
)

// ColumnWidth returns the rendered width of one timeline column at the
// given zoom level.
func ColumnWidth(zoom domain.ViewMode) int {
	switch zoom {
	case domain.ViewDay:
		return DayColumnWidth
	case domain.ViewMonth:
		return MonthColumnWidth
	default:
		return WeekColumnWidth
	}
}

// ZoomIn moves one rank toward day zoom. Zooming in from day is a no-op.
func ZoomIn(zoom domain.ViewMode) domain.ViewMode {
	switch zoom {
	case domain.ViewMonth:
		return domain.ViewWeek
	case domain.ViewWeek:
		return domain.ViewDay
	default:
		return domain.ViewDay
	}
}

// ZoomOut moves one rank toward month zoom. Zooming out from month is a no-op.
func ZoomOut(zoom domain.ViewMode) domain.ViewMode {
	switch zoom {
	case domain.ViewDay:
		return domain.ViewWeek
	case domain.ViewWeek:
		return domain.ViewMonth
	default:
		return domain.ViewMonth
	}
}

// FitZoom returns the tightest zoom level that keeps the inclusive date
// range [start, end] within a bounded number of columns: up to 14 days at
// day zoom, up to 90 days at week zoom, month zoom beyond that.
func FitZoom(start, end time.Time) domain.ViewMode {
	if end.Before(start) {
		start, end = end, start
	}
	days := daysBetween(startOfDay(start), startOfDay(end)) + 1
	switch {
	case days <= fitDayMaxDays:
		return domain.ViewDay
	case days <= fitWeekMaxDays:
		return domain.ViewWeek
	default:
		return domain.ViewMonth
	}
}

// ItemRange returns the inclusive date range covered by the scheduled
// items in the list. ok is false when no item has a start date.
func ItemRange(items []*domain.RoadmapItem) (start, end time.Time, ok bool) {
	for _, it := range items {
		if it.StartDate == nil {
			continue
		}
		s := *it.StartDate
		e := *it.EffectiveEnd()
		if !ok {
			start, end, ok = s, e, true
			continue
		}
		if s.Before(start) {
			start = s
		}
		if e.After(end) {
			end = e
		}
	}
	return start, end, ok
}
