package formatter

import (
	"fmt"
	"strings"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FormatRoadmapTree renders a projection as an indented track tree with
// item counts. Collapsed rows show a compact marker instead of their
// hidden descendants; descendants hidden by a collapsed ancestor are
// skipped entirely.
func FormatRoadmapTree(p *projection.Projection) string {
	if p.IsEmpty() {
		return Dim("No tracks yet.")
	}

	var b strings.Builder
	rows := p.Flatten()
	for i, row := range rows {
		if !row.IsVisible {
			continue
		}
		b.WriteString(treePrefix(rows, i))
		b.WriteString(trackLine(row.Node))
		b.WriteString("\n")

		if row.Node.Collapsed {
			continue
		}
		for j, item := range row.Node.Items {
			b.WriteString(itemPrefix(rows, i, j == len(row.Node.Items)-1 && len(row.Node.Subtracks) == 0))
			b.WriteString(StatusStyle(item.Status).Render("● "))
			b.WriteString(item.Title)
			if item.StartDate != nil {
				b.WriteString(Dim("  " + DateRange(item.StartDate, item.EndDate)))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func trackLine(node *projection.TrackNode) string {
	name := Bold(node.Track.Name)
	if node.Highlighted {
		name = StylePurple.Bold(true).Render(node.Track.Name)
	}
	line := name + Dim(fmt.Sprintf("  (%d items)", node.TotalItemCount))
	if node.Collapsed {
		line += StyleYellow.Render("  [+]")
	}
	if !node.Track.IncludeInRoadmap {
		line += Dim("  off-roadmap")
	}
	if node.Track.Visibility == domain.VisibilityHidden {
		line += "  " + VisibilityBadge(node.Track.Visibility)
	}
	return line
}

// treePrefix draws the connector for a track row based on its depth and
// whether a later sibling exists at the same depth.
func treePrefix(rows []projection.Row, idx int) string {
	depth := rows[idx].Depth
	if depth == 0 {
		return ""
	}
	var prefix strings.Builder
	for i := 1; i < depth; i++ {
		prefix.WriteString(treePipe)
	}
	if hasLaterSibling(rows, idx) {
		prefix.WriteString(treeBranch)
	} else {
		prefix.WriteString(treeCorner)
	}
	return Dim(prefix.String())
}

func itemPrefix(rows []projection.Row, idx int, last bool) string {
	depth := rows[idx].Depth + 1
	var prefix strings.Builder
	for i := 1; i < depth; i++ {
		prefix.WriteString(treePipe)
	}
	if last && !hasChildRows(rows, idx) {
		prefix.WriteString(treeCorner)
	} else {
		prefix.WriteString(treeBranch)
	}
	return Dim(prefix.String())
}

func hasLaterSibling(rows []projection.Row, idx int) bool {
	depth := rows[idx].Depth
	for i := idx + 1; i < len(rows); i++ {
		if rows[i].Depth < depth {
			return false
		}
		if rows[i].Depth == depth {
			return true
		}
	}
	return false
}

func hasChildRows(rows []projection.Row, idx int) bool {
	return idx+1 < len(rows) && rows[idx+1].Depth > rows[idx].Depth
}
