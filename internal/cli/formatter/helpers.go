package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// Date formats a nullable date, dash for nil.
func Date(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02")
}

// DateRange formats an item's scheduled span: a single date for
// point-in-time items, "start → end" otherwise.
func DateRange(start, end *time.Time) string {
	if start == nil {
		return "unscheduled"
	}
	if end == nil || end.Equal(*start) {
		return start.Format("2006-01-02")
	}
	return start.Format("2006-01-02") + " → " + end.Format("2006-01-02")
}

// Truncate shortens s to max visible characters, appending an ellipsis.
func Truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
