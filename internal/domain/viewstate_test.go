package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToggleCollapsed(t *testing.T) {
	v := NewViewState()
	assert.False(t, v.IsCollapsed("t-1"))

	v.ToggleCollapsed("t-1")
	assert.True(t, v.IsCollapsed("t-1"))

	v.ToggleCollapsed("t-1")
	assert.False(t, v.IsCollapsed("t-1"))
	assert.Empty(t, v.CollapsedIDs, "toggle off should remove the entry")
}

func TestHighlightExpiry(t *testing.T) {
	v := NewViewState()
	v.Highlight("t-1", testNow)

	assert.True(t, v.IsHighlighted("t-1", testNow))
	assert.True(t, v.IsHighlighted("t-1", testNow.Add(2*time.Second)))
	assert.False(t, v.IsHighlighted("t-1", testNow.Add(3*time.Second)))
	assert.False(t, v.IsHighlighted("t-2", testNow), "never-highlighted track")
}

func TestPruneHighlights(t *testing.T) {
	v := NewViewState()
	v.Highlight("old", testNow.Add(-time.Minute))
	v.Highlight("fresh", testNow)

	v.PruneHighlights(testNow)

	assert.NotContains(t, v.Highlights, "old")
	assert.Contains(t, v.Highlights, "fresh")
}

func TestViewStateZeroValueMaps(t *testing.T) {
	var v ViewState
	v.ToggleCollapsed("t-1")
	v.Highlight("t-2", testNow)
	assert.True(t, v.IsCollapsed("t-1"))
	assert.True(t, v.IsHighlighted("t-2", testNow))
}
