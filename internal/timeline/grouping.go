package timeline

import (
	"sort"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

// MonthGroup collects the scheduled items whose start date falls inside
// one calendar month.
type MonthGroup struct {
	Month time.Time
	Items []*domain.RoadmapItem
}

// GroupByMonth partitions scheduled items into calendar-month groups,
// ordered chronologically. Items inside a group are ordered by start date,
// then title. Unscheduled items are omitted.
func GroupByMonth(items []*domain.RoadmapItem) []MonthGroup {
	byMonth := make(map[time.Time][]*domain.RoadmapItem)
	for _, it := range items {
		if it.StartDate == nil {
			continue
		}
		m := StartOfUnit(*it.StartDate, domain.ViewMonth)
		byMonth[m] = append(byMonth[m], it)
	}

	groups := make([]MonthGroup, 0, len(byMonth))
	for month, members := range byMonth {
		sort.SliceStable(members, func(i, j int) bool {
			if !members[i].StartDate.Equal(*members[j].StartDate) {
				return members[i].StartDate.Before(*members[j].StartDate)
			}
			return members[i].Title < members[j].Title
		})
		groups = append(groups, MonthGroup{Month: month, Items: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Month.Before(groups[j].Month)
	})
	return groups
}
