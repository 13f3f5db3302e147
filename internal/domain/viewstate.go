package domain

import "time"

// HighlightDuration is how long a track stays highlighted after being
// selected from search before the highlight clears itself.
const HighlightDuration = 3 * time.Second

// ViewState is the per-viewer, client-local presentation state for one
// project's roadmap: which tracks are collapsed, which are transiently
// highlighted, and the active zoom level. It is threaded explicitly into
// the projection builder and timeline renderer rather than held as
// ambient global state, and it never affects what data exists — only how
// it presents.
type ViewState struct {
	CollapsedIDs map[string]bool
	// Highlights maps track ID to the instant the highlight was set.
	// Entries older than HighlightDuration are pruned on read.
	Highlights map[string]time.Time
	Zoom       ViewMode
}

// NewViewState returns an empty view state at the default zoom.
func NewViewState() *ViewState {
	return &ViewState{
		CollapsedIDs: make(map[string]bool),
		Highlights:   make(map[string]time.Time),
		Zoom:         ViewWeek,
	}
}

// IsCollapsed reports whether the given track is collapsed.
func (v *ViewState) IsCollapsed(trackID string) bool {
	return v.CollapsedIDs[trackID]
}

// ToggleCollapsed flips the collapsed flag for a track.
func (v *ViewState) ToggleCollapsed(trackID string) {
	if v.CollapsedIDs == nil {
		v.CollapsedIDs = make(map[string]bool)
	}
	if v.CollapsedIDs[trackID] {
		delete(v.CollapsedIDs, trackID)
	} else {
		v.CollapsedIDs[trackID] = true
	}
}

// Highlight marks a track highlighted as of now.
func (v *ViewState) Highlight(trackID string, now time.Time) {
	if v.Highlights == nil {
		v.Highlights = make(map[string]time.Time)
	}
	v.Highlights[trackID] = now
}

// IsHighlighted reports whether a track's highlight is still live at now.
func (v *ViewState) IsHighlighted(trackID string, now time.Time) bool {
	set, ok := v.Highlights[trackID]
	if !ok {
		return false
	}
	return now.Sub(set) < HighlightDuration
}

// PruneHighlights drops highlights older than HighlightDuration.
// The core stays synchronous: expiry is pull-based against the caller's
// clock, not timer-driven.
func (v *ViewState) PruneHighlights(now time.Time) {
	for id, set := range v.Highlights {
		if now.Sub(set) >= HighlightDuration {
			delete(v.Highlights, id)
		}
	}
}
