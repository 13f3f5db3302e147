package timeline

import (
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

// Bucket is one inclusive date interval on the timeline, the drill-down
// target behind a column. Start and End are both inside the bucket.
type Bucket struct {
	Start time.Time
	End   time.Time
	Zoom  domain.ViewMode
}

// BucketAt returns the bucket covering the given date at the given zoom:
// a single day, a Sunday-to-Saturday week, or a calendar month.
func BucketAt(date time.Time, zoom domain.ViewMode) Bucket {
	start := StartOfUnit(date, zoom)
	return Bucket{
		Start: start,
		End:   AddUnits(start, 1, zoom).AddDate(0, 0, -1),
		Zoom:  zoom,
	}
}

// Label formats the bucket's covered range for display.
func (b Bucket) Label() string {
	return ColumnLabel(b.Start, b.Zoom)
}

// ItemOverlapsBucket reports whether an item's scheduled range intersects
// the bucket. Both intervals are closed, so an item ending on the bucket's
// first day or starting on its last day still overlaps. Items with no
// start date never overlap any bucket.
func ItemOverlapsBucket(item *domain.RoadmapItem, b Bucket) bool {
	if item.StartDate == nil {
		return false
	}
	start := startOfDay(*item.StartDate)
	end := startOfDay(*item.EffectiveEnd())
	return !start.After(b.End) && !end.Before(b.Start)
}
