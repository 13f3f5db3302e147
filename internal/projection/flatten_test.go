package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/testutil"
)

func TestFlatten_DepthAndOrder(t *testing.T) {
	a := testutil.NewTestTrack("proj-1", "A", testutil.WithOrderIndex(0))
	b := testutil.NewTestTrack("proj-1", "B", testutil.WithParentTrack(a.ID), testutil.WithOrderIndex(0))
	c := testutil.NewTestTrack("proj-1", "C", testutil.WithParentTrack(a.ID), testutil.WithOrderIndex(1))
	d := testutil.NewTestTrack("proj-1", "D", testutil.WithOrderIndex(1))

	p := Build(Input{
		ProjectID: "proj-1",
		Tracks:    []*domain.Track{a, b, c, d},
		View:      domain.NewViewState(),
		Now:       testNow,
	})

	rows := p.Flatten()
	require.Len(t, rows, 4)

	names := make([]string, len(rows))
	depths := make([]int, len(rows))
	for i, r := range rows {
		names[i] = r.Node.Track.Name
		depths[i] = r.Depth
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
	assert.Equal(t, []int{0, 1, 1, 0}, depths)
	for _, r := range rows {
		assert.True(t, r.IsVisible)
	}
}

func TestFlatten_CollapsedParentHidesDescendants(t *testing.T) {
	a := testutil.NewTestTrack("proj-1", "A")
	b := testutil.NewTestTrack("proj-1", "B", testutil.WithParentTrack(a.ID))

	view := domain.NewViewState()
	view.ToggleCollapsed(a.ID)

	p := Build(Input{
		ProjectID: "proj-1",
		Tracks:    []*domain.Track{a, b},
		View:      view,
		Now:       testNow,
	})

	rows := p.Flatten()
	require.Len(t, rows, 2, "collapse hides rows from rendering, not from the projection")

	assert.Equal(t, "A", rows[0].Node.Track.Name)
	assert.True(t, rows[0].IsVisible, "the collapsed track itself stays visible")
	assert.Equal(t, "B", rows[1].Node.Track.Name)
	assert.False(t, rows[1].IsVisible)
}

func TestFlatten_VisibilityPropagatesPastOneLevel(t *testing.T) {
	a := testutil.NewTestTrack("proj-1", "A")
	b := testutil.NewTestTrack("proj-1", "B", testutil.WithParentTrack(a.ID))
	c := testutil.NewTestTrack("proj-1", "C", testutil.WithParentTrack(b.ID))

	view := domain.NewViewState()
	view.ToggleCollapsed(a.ID)

	p := Build(Input{
		ProjectID: "proj-1",
		Tracks:    []*domain.Track{a, b, c},
		View:      view,
		Now:       testNow,
	})

	rows := p.Flatten()
	require.Len(t, rows, 3)
	assert.False(t, rows[1].IsVisible)
	assert.False(t, rows[2].IsVisible, "a hidden parent hides its own children even when it is not collapsed itself")
}
