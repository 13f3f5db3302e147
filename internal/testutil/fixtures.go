package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rfaulkner/tracklane/internal/domain"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Track options
type TrackOption func(*domain.Track)

func WithParentTrack(id string) TrackOption {
	return func(t *domain.Track) {
		t.ParentID = &id
	}
}

func WithOrderIndex(i int) TrackOption {
	return func(t *domain.Track) {
		t.OrderIndex = i
	}
}

func WithCategory(c domain.TrackCategory) TrackOption {
	return func(t *domain.Track) {
		t.Category = c
	}
}

func WithVisibility(v domain.TrackVisibility) TrackOption {
	return func(t *domain.Track) {
		t.Visibility = v
	}
}

func WithColor(c string) TrackOption {
	return func(t *domain.Track) {
		t.Color = &c
	}
}

func ExcludedFromRoadmap() TrackOption {
	return func(t *domain.Track) {
		t.IncludeInRoadmap = false
	}
}

func TrashedAt(at time.Time) TrackOption {
	return func(t *domain.Track) {
		t.DeletedAt = &at
	}
}

func NewTestTrack(projectID, name string, opts ...TrackOption) *domain.Track {
	now := time.Now().UTC()
	t := &domain.Track{
		ID:               uuid.New().String(),
		ProjectID:        projectID,
		Name:             name,
		Category:         domain.CategoryMain,
		IncludeInRoadmap: true,
		Visibility:       domain.VisibilityVisible,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoadmapItem options
type ItemOption func(*domain.RoadmapItem)

func WithItemType(t domain.ItemType) ItemOption {
	return func(i *domain.RoadmapItem) {
		i.Type = t
	}
}

func WithItemStatus(s domain.ItemStatus) ItemOption {
	return func(i *domain.RoadmapItem) {
		i.Status = s
	}
}

func WithStartDate(d time.Time) ItemOption {
	return func(i *domain.RoadmapItem) {
		i.StartDate = &d
	}
}

func WithEndDate(d time.Time) ItemOption {
	return func(i *domain.RoadmapItem) {
		i.EndDate = &d
	}
}

func WithDescription(s string) ItemOption {
	return func(i *domain.RoadmapItem) {
		i.Description = s
	}
}

func NewTestItem(trackID, title string, opts ...ItemOption) *domain.RoadmapItem {
	now := time.Now().UTC()
	i := &domain.RoadmapItem{
		ID:        uuid.New().String(),
		TrackID:   trackID,
		Type:      domain.ItemTask,
		Title:     title,
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewTestMember creates a project membership fixture.
func NewTestMember(projectID, userID string, role domain.MemberRole) *domain.ProjectMember {
	return &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

// Date returns a UTC midnight time for compact fixture date literals.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
