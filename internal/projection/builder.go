// Package projection assembles the read-side roadmap tree: tracks and
// subtracks with their items, merged with per-viewer view state and
// permission flags. A projection is rebuilt in full after every data
// refresh; it is never patched in place.
package projection

import (
	"sort"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
)

// TrackNode is one track in the projection tree together with its items,
// subtracks, and computed counts.
type TrackNode struct {
	Track          *domain.Track
	Items          []*domain.RoadmapItem
	Subtracks      []*TrackNode
	ItemCount      int
	TotalItemCount int
	Collapsed      bool
	Highlighted    bool
	CanEdit        bool
}

// Projection is the read-only tree consumed by every roadmap view.
type Projection struct {
	ProjectID string
	Tracks    []*TrackNode
}

// IsEmpty reports whether the projection has no tracks at all. A track
// with zero items still counts as content: emptiness is about track
// existence, never about item counts.
func (p *Projection) IsEmpty() bool {
	return len(p.Tracks) == 0
}

// Input carries one consistent snapshot of a project's data plus the
// viewer's state. Tracks and Items must come from the same fetch; partial
// snapshots are not merged.
type Input struct {
	ProjectID string
	Tracks    []*domain.Track
	Items     []*domain.RoadmapItem
	View      *domain.ViewState
	CanEdit   bool
	Now       time.Time
}

type buildOptions struct {
	visibleOnly bool
}

// Option adjusts how Build assembles the tree.
type Option func(*buildOptions)

// VisibleOnly drops tracks that are excluded from the roadmap or whose
// visibility is hidden. Without it the full set is returned and the
// consumer decides what to render.
func VisibleOnly() Option {
	return func(o *buildOptions) { o.visibleOnly = true }
}

// Build assembles the projection tree from flat rows. Children are
// resolved through a single adjacency pass, so the cost is linear in the
// number of tracks and items. Trashed tracks are skipped wherever they
// appear; Build with unchanged inputs yields a structurally equal tree.
func Build(in Input, opts ...Option) *Projection {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	children := make(map[string][]*domain.Track)
	var roots []*domain.Track
	for _, tr := range in.Tracks {
		if tr.IsTrashed() {
			continue
		}
		if o.visibleOnly && (!tr.IncludeInRoadmap || tr.Visibility == domain.VisibilityHidden) {
			continue
		}
		if tr.ParentID == nil {
			roots = append(roots, tr)
		} else {
			children[*tr.ParentID] = append(children[*tr.ParentID], tr)
		}
	}
	sortTracks(roots)
	for _, group := range children {
		sortTracks(group)
	}

	itemsByTrack := make(map[string][]*domain.RoadmapItem)
	for _, it := range in.Items {
		itemsByTrack[it.TrackID] = append(itemsByTrack[it.TrackID], it)
	}

	p := &Projection{ProjectID: in.ProjectID}
	for _, root := range roots {
		p.Tracks = append(p.Tracks, buildNode(root, children, itemsByTrack, in))
	}
	return p
}

func buildNode(tr *domain.Track, children map[string][]*domain.Track, itemsByTrack map[string][]*domain.RoadmapItem, in Input) *TrackNode {
	node := &TrackNode{
		Track:     tr,
		Items:     itemsByTrack[tr.ID],
		ItemCount: len(itemsByTrack[tr.ID]),
		CanEdit:   in.CanEdit,
	}
	if in.View != nil {
		node.Collapsed = in.View.IsCollapsed(tr.ID)
		node.Highlighted = in.View.IsHighlighted(tr.ID, in.Now)
	}
	node.TotalItemCount = node.ItemCount
	for _, child := range children[tr.ID] {
		sub := buildNode(child, children, itemsByTrack, in)
		node.Subtracks = append(node.Subtracks, sub)
		node.TotalItemCount += sub.TotalItemCount
	}
	return node
}

// sortTracks orders siblings by their explicit index, falling back to
// creation time then id so the order is deterministic.
func sortTracks(tracks []*domain.Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		if tracks[i].OrderIndex != tracks[j].OrderIndex {
			return tracks[i].OrderIndex < tracks[j].OrderIndex
		}
		if !tracks[i].CreatedAt.Equal(tracks[j].CreatedAt) {
			return tracks[i].CreatedAt.Before(tracks[j].CreatedAt)
		}
		return tracks[i].ID < tracks[j].ID
	})
}
