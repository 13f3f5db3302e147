package formatter

import (
	"strings"
	"time"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
	"github.com/rfaulkner/tracklane/internal/timeline"
)

// PxPerCell is the fixed mapping from timeline pixel space to terminal
// cells: a day column (60px) spans 6 cells, a month column (180px) 18.
const PxPerCell = 10

// trackGutter is the width of the track-name column on the left.
const trackGutter = 22

// TimelineView carries the viewport parameters for one render.
type TimelineView struct {
	Zoom          domain.ViewMode
	ColumnWidth   int // pixels
	Reference     time.Time
	ScrollX       int // pixels
	ViewportWidth int // pixels
}

func (v TimelineView) cells(px int) int {
	return px / PxPerCell
}

// RenderTimeline renders the horizontal roadmap: a column ruler on top,
// then one lane per visible track with its scheduled items drawn as bars.
// Unscheduled items never appear.
func RenderTimeline(p *projection.Projection, v TimelineView) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", trackGutter))
	b.WriteString(renderRuler(v))
	b.WriteString("\n")

	for _, row := range p.Flatten() {
		if !row.IsVisible {
			continue
		}
		name := strings.Repeat("  ", row.Depth) + row.Node.Track.Name
		if row.Node.Collapsed {
			name += " [+]"
		}
		name = Truncate(name, trackGutter-2)
		b.WriteString(name)
		b.WriteString(strings.Repeat(" ", trackGutter-len([]rune(name))))
		b.WriteString(renderLane(row.Node.Items, v))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRuler draws the column labels covering the viewport, separated by
// pipes at each unit boundary.
func renderRuler(v TimelineView) string {
	cols := timeline.GenerateColumns(v.Zoom, v.ColumnWidth, v.Reference, v.ScrollX, v.ViewportWidth, 0)
	width := v.cells(v.ViewportWidth)
	ruler := make([]rune, width)
	for i := range ruler {
		ruler[i] = ' '
	}

	colCells := v.cells(v.ColumnWidth)
	for _, col := range cols {
		at := v.cells(col.X - v.ScrollX)
		if at >= width {
			continue
		}
		label := []rune("│" + Truncate(col.Label, colCells-1))
		for i, r := range label {
			if at+i >= 0 && at+i < width {
				ruler[at+i] = r
			}
		}
	}
	return Dim(string(ruler))
}

// renderLane draws one track's scheduled items as bars positioned by the
// coordinate engine. Point-in-time items render as a single diamond.
func renderLane(items []*domain.RoadmapItem, v TimelineView) string {
	width := v.cells(v.ViewportWidth)
	lane := make([]rune, width)
	for i := range lane {
		lane[i] = ' '
	}

	for _, item := range items {
		if item.StartDate == nil {
			continue
		}
		startPx := timeline.DateToPosition(*item.StartDate, v.Zoom, v.ColumnWidth, v.Reference) - v.ScrollX
		endPx := timeline.DateToPosition(*item.EffectiveEnd(), v.Zoom, v.ColumnWidth, v.Reference) + v.ColumnWidth - v.ScrollX

		from := v.cells(startPx)
		to := v.cells(endPx)
		if to <= 0 || from >= width {
			continue
		}
		if from < 0 {
			from = 0
		}
		if to > width {
			to = width
		}
		glyph := barGlyph(item)
		for i := from; i < to; i++ {
			lane[i] = glyph
		}
	}
	return string(lane)
}

func barGlyph(item *domain.RoadmapItem) rune {
	if item.Type == domain.ItemMilestone {
		return '◆'
	}
	if item.IsDone() {
		return '░'
	}
	return '█'
}
