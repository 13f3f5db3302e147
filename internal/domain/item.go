package domain

import (
	"fmt"
	"time"
)

// RoadmapItem is a schedulable unit of work attached to exactly one track.
// StartDate and EndDate are both optional: an item may be a point-in-time
// (start only), a range (both), or unscheduled (neither, in which case it
// never appears on the timeline).
type RoadmapItem struct {
	ID          string
	TrackID     string
	Type        ItemType
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      ItemStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks invariants that must hold before an item is persisted.
// Violations are rejected here, before any mutation call is issued.
func (i *RoadmapItem) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("item title is required")
	}
	if i.TrackID == "" {
		return fmt.Errorf("item must belong to a track")
	}
	if !ValidItemTypes[string(i.Type)] {
		return fmt.Errorf("unknown item type %q", i.Type)
	}
	if !ValidItemStatuses[string(i.Status)] {
		return fmt.Errorf("unknown item status %q", i.Status)
	}
	if i.Type.RequiresStartDate() && i.StartDate == nil {
		return fmt.Errorf("%s items require a start date", i.Type)
	}
	if i.StartDate != nil && i.EndDate != nil && i.EndDate.Before(*i.StartDate) {
		return fmt.Errorf("end date %s precedes start date %s",
			i.EndDate.Format("2006-01-02"), i.StartDate.Format("2006-01-02"))
	}
	return nil
}

// IsScheduled reports whether the item occupies a place on the timeline.
func (i *RoadmapItem) IsScheduled() bool {
	return i.StartDate != nil
}

// EffectiveEnd returns the end of the item's occupied interval: the end
// date when present, otherwise the start date (point-in-time item).
// Returns nil for unscheduled items.
func (i *RoadmapItem) EffectiveEnd() *time.Time {
	if i.EndDate != nil {
		return i.EndDate
	}
	return i.StartDate
}

// SetStatus transitions the item to a new status. Any status may follow
// any other; drag-and-drop between board lanes is unordered.
func (i *RoadmapItem) SetStatus(status ItemStatus, now time.Time) error {
	if !ValidItemStatuses[string(status)] {
		return fmt.Errorf("unknown item status %q", status)
	}
	i.Status = status
	i.UpdatedAt = now
	return nil
}

// IsDone reports whether the item has reached its terminal status.
func (i *RoadmapItem) IsDone() bool {
	return i.Status == StatusCompleted
}
