package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rfaulkner/tracklane/internal/cli/formatter"
	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/projection"
	"github.com/rfaulkner/tracklane/internal/timeline"
)

func newRoadmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "View the project roadmap timeline",
	}

	cmd.AddCommand(
		newRoadmapViewCmd(app),
		newRoadmapBucketCmd(app),
		newRoadmapMonthsCmd(app),
	)

	return cmd
}

func newRoadmapViewCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := resolveProjectID(cmd.Context(), app, projectRef)
			if err != nil {
				return err
			}

			if !app.IsInteractive() {
				return renderStaticTimeline(app, cmd, projectID)
			}

			model := newTimelineModel(app, projectID)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or short ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// renderStaticTimeline prints one frame of the timeline for pipes and
// scripts.
func renderStaticTimeline(app *App, cmd *cobra.Command, projectID string) error {
	ctx := cmd.Context()

	view, err := app.ViewStates.Get(ctx, projectID, app.CurrentUser)
	if err != nil {
		return err
	}
	proj, err := app.Roadmap.Load(ctx, projectID, app.CurrentUser)
	if err != nil {
		return err
	}
	if proj.IsEmpty() {
		cmd.Println("No tracks yet.")
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	cmd.Println(formatter.RenderTimeline(proj, formatter.TimelineView{
		Zoom:          view.Zoom,
		ColumnWidth:   app.Config.ColumnWidth(view.Zoom),
		Reference:     today,
		ScrollX:       0,
		ViewportWidth: 80 * formatter.PxPerCell,
	}))
	return nil
}

func newRoadmapBucketCmd(app *App) *cobra.Command {
	var (
		projectRef string
		dateStr    string
		zoomStr    string
	)

	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "List what falls inside one timeline unit",
		Long:  "Show the tracks and items whose date range overlaps the day, week, or month containing the given date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}

			date := time.Now().UTC()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", dateStr)
				}
			}

			zoom := app.Config.DefaultZoom()
			if zoomStr != "" {
				zoom, err = parseZoomFlag(zoomStr)
				if err != nil {
					return err
				}
			}

			proj, err := app.Roadmap.Load(ctx, projectID, app.CurrentUser)
			if err != nil {
				return err
			}

			b := timeline.BucketAt(date, zoom)
			filtered := projection.FilterByBucket(proj, b)

			cmd.Println(formatter.Header(b.Label()))
			if filtered.IsEmpty() {
				cmd.Println("Nothing scheduled in this window.")
				return nil
			}
			cmd.Println(formatter.FormatRoadmapTree(filtered))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or short ID")
	cmd.Flags().StringVar(&dateStr, "date", "", "Date inside the bucket (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&zoomStr, "zoom", "", "Bucket size: day, week, or month (default from config)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newRoadmapMonthsCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "months",
		Short: "List scheduled items grouped by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}

			proj, err := app.Roadmap.Load(ctx, projectID, app.CurrentUser)
			if err != nil {
				return err
			}

			groups := timeline.GroupByMonth(collectItems(proj))
			if len(groups) == 0 {
				cmd.Println("No scheduled items.")
				return nil
			}

			for i, g := range groups {
				if i > 0 {
					cmd.Println()
				}
				cmd.Println(formatter.Header(g.Month.Format("January 2006")))
				for _, item := range g.Items {
					cmd.Printf("  %s  %s  %s\n",
						formatter.StatusBadge(item.Status),
						item.Title,
						formatter.Dim(formatter.DateRange(item.StartDate, item.EndDate)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectRef, "project", "p", "", "Project ID or short ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func parseZoomFlag(value string) (domain.ViewMode, error) {
	switch zoom := domain.ViewMode(value); zoom {
	case domain.ViewDay, domain.ViewWeek, domain.ViewMonth:
		return zoom, nil
	default:
		return "", fmt.Errorf("invalid --zoom %q: must be day, week, or month", value)
	}
}

// collectItems gathers every item in the tree, including those under
// collapsed tracks; grouping reports everything scheduled.
func collectItems(p *projection.Projection) []*domain.RoadmapItem {
	var items []*domain.RoadmapItem
	for _, row := range p.Flatten() {
		items = append(items, row.Node.Items...)
	}
	return items
}
