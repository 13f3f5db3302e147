package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rfaulkner/tracklane/internal/cli/formatter"
	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
	"github.com/rfaulkner/tracklane/internal/timeline"
)

// timelineModel is the bubbletea model for the interactive roadmap view.
// Loading, error, and empty are three distinct render states; the model
// never shows a partial tree after a failed refresh.
type timelineModel struct {
	app       *App
	projectID string
	userID    string

	proj  *projection.Projection
	view  *domain.ViewState
	rows  []projection.Row
	today time.Time
	keys  timelineKeyMap

	scrollX int // pixels
	cursor  int // index into visible rows
	width   int
	height  int

	loading  bool
	err      error
	quitting bool

	// Drill-down state: non-nil while a bucket is open.
	bucket      *projection.Projection
	bucketLabel string
}

type timelineKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Fit      key.Binding
	Today    key.Binding
	Collapse key.Binding
	Bucket   key.Binding
	Refresh  key.Binding
	Close    key.Binding
	Quit     key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "scroll")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_")),
		Fit:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Collapse: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "collapse")),
		Bucket:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "bucket")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type projectionLoadedMsg struct {
	proj *projection.Projection
	view *domain.ViewState
}

type loadFailedMsg struct{ err error }

func newTimelineModel(app *App, projectID string) timelineModel {
	return timelineModel{
		app:       app,
		projectID: projectID,
		userID:    app.CurrentUser,
		today:     time.Now().UTC().Truncate(24 * time.Hour),
		keys:      defaultTimelineKeys(),
		loading:   true,
		width:     80,
		height:    24,
	}
}

func (m timelineModel) loadCmd() tea.Cmd {
	app, projectID, userID := m.app, m.projectID, m.userID
	return func() tea.Msg {
		ctx := context.Background()
		view, err := app.ViewStates.Get(ctx, projectID, userID)
		if err != nil {
			return loadFailedMsg{err}
		}
		proj, err := app.Roadmap.Load(ctx, projectID, userID)
		if err != nil {
			return loadFailedMsg{err}
		}
		return projectionLoadedMsg{proj: proj, view: view}
	}
}

func (m timelineModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case projectionLoadedMsg:
		m.loading = false
		m.err = nil
		m.proj = msg.proj
		m.view = msg.view
		m.rows = visibleRows(msg.proj)
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.bucket != nil {
		if key.Matches(msg, m.keys.Close, m.keys.Quit, m.keys.Bucket) {
			m.bucket = nil
			m.bucketLabel = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Left):
		m.scrollX -= m.columnWidth()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.scrollX += m.columnWidth()
		return m, nil

	case key.Matches(msg, m.keys.Today):
		m.scrollX = 0
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		return m.setZoom(timeline.ZoomIn(m.zoom()))

	case key.Matches(msg, m.keys.ZoomOut):
		return m.setZoom(timeline.ZoomOut(m.zoom()))

	case key.Matches(msg, m.keys.Fit):
		return m.fitToItems()

	case key.Matches(msg, m.keys.Collapse):
		return m.toggleCollapsed()

	case key.Matches(msg, m.keys.Bucket):
		m.openBucket()
		return m, nil
	}

	return m, nil
}

// setZoom recenters scroll at the new column width and persists the zoom
// preference.
func (m timelineModel) setZoom(zoom domain.ViewMode) (tea.Model, tea.Cmd) {
	if m.view == nil || zoom == m.zoom() {
		return m, nil
	}
	units := m.scrollX / m.columnWidth()
	m.view.Zoom = zoom
	m.scrollX = units * m.columnWidth()

	app, projectID, userID := m.app, m.projectID, m.userID
	return m, func() tea.Msg {
		_, err := app.ViewStates.SetZoom(context.Background(), projectID, userID, zoom)
		if err != nil {
			return loadFailedMsg{err}
		}
		return nil
	}
}

// fitToItems picks the tightest zoom holding every scheduled item and
// scrolls to the start of the range.
func (m timelineModel) fitToItems() (tea.Model, tea.Cmd) {
	if m.proj == nil {
		return m, nil
	}
	var items []*domain.RoadmapItem
	for _, row := range m.rows {
		items = append(items, row.Node.Items...)
	}
	start, end, ok := timeline.ItemRange(items)
	if !ok {
		return m, nil
	}

	model, cmd := m.setZoom(timeline.FitZoom(start, end))
	fitted := model.(timelineModel)
	fitted.scrollX = timeline.DateToPosition(start, fitted.zoom(), fitted.columnWidth(), fitted.today)
	return fitted, cmd
}

// toggleCollapsed flips the cursor row's collapse state, persists it, and
// rebuilds the visible rows from the already-loaded projection.
func (m timelineModel) toggleCollapsed() (tea.Model, tea.Cmd) {
	if m.view == nil || m.cursor >= len(m.rows) {
		return m, nil
	}
	trackID := m.rows[m.cursor].Node.Track.ID
	m.view.ToggleCollapsed(trackID)
	relinkCollapse(m.proj, m.view)
	m.rows = visibleRows(m.proj)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	app, projectID, userID := m.app, m.projectID, m.userID
	return m, func() tea.Msg {
		_, err := app.ViewStates.ToggleCollapsed(context.Background(), projectID, userID, trackID)
		if err != nil {
			return loadFailedMsg{err}
		}
		return nil
	}
}

// openBucket drills into the unit at the left edge of the viewport.
func (m *timelineModel) openBucket() {
	if m.proj == nil {
		return
	}
	date := timeline.PositionToDate(m.scrollX, m.zoom(), m.columnWidth(), m.today)
	b := timeline.BucketAt(date, m.zoom())
	m.bucket = projection.FilterByBucket(m.proj, b)
	m.bucketLabel = b.Label()
}

func (m timelineModel) zoom() domain.ViewMode {
	if m.view == nil {
		return m.app.Config.DefaultZoom()
	}
	return m.view.Zoom
}

func (m timelineModel) columnWidth() int {
	return m.app.Config.ColumnWidth(m.zoom())
}

func (m timelineModel) viewportPx() int {
	px := (m.width - 24) * formatter.PxPerCell
	if px < m.columnWidth() {
		px = m.columnWidth()
	}
	return px
}

func (m timelineModel) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return formatter.Dim("Loading roadmap…")
	}
	if m.err != nil {
		return formatter.StyleRed.Render("Load failed: ") + m.err.Error() +
			formatter.Dim("\n\nPress r to retry, q to quit.")
	}
	if m.proj.IsEmpty() {
		return formatter.Dim("No tracks yet. Add one with 'tracklane track add'.") +
			formatter.Dim("\n\nPress q to quit.")
	}

	if m.bucket != nil {
		return m.bucketView()
	}

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("roadmap · %s zoom", m.zoom())))
	b.WriteString("\n")
	b.WriteString(formatter.RenderTimeline(m.proj, formatter.TimelineView{
		Zoom:          m.zoom(),
		ColumnWidth:   m.columnWidth(),
		Reference:     m.today,
		ScrollX:       m.scrollX,
		ViewportWidth: m.viewportPx(),
	}))
	b.WriteString("\n\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m timelineModel) helpLine() string {
	bindings := []key.Binding{
		m.keys.Left, m.keys.ZoomIn, m.keys.Fit, m.keys.Collapse,
		m.keys.Bucket, m.keys.Refresh, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

func (m timelineModel) bucketView() string {
	content := formatter.FormatRoadmapTree(m.bucket)
	if m.bucket.IsEmpty() {
		content = formatter.Dim("Nothing scheduled in this window.")
	}
	return formatter.RenderBox("bucket · "+m.bucketLabel, content) +
		"\n" + formatter.Dim("esc to close")
}

// visibleRows filters the flattened projection down to renderable rows.
func visibleRows(p *projection.Projection) []projection.Row {
	var rows []projection.Row
	for _, row := range p.Flatten() {
		if row.IsVisible {
			rows = append(rows, row)
		}
	}
	return rows
}

// relinkCollapse re-applies collapse flags to an already-built tree so a
// toggle does not need a full refetch.
func relinkCollapse(p *projection.Projection, view *domain.ViewState) {
	var walk func(nodes []*projection.TrackNode)
	walk = func(nodes []*projection.TrackNode) {
		for _, n := range nodes {
			n.Collapsed = view.IsCollapsed(n.Track.ID)
			walk(n.Subtracks)
		}
	}
	walk(p.Tracks)
}
