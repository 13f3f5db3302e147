package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rfaulkner/tracklane/internal/cli/formatter"
	"github.com/rfaulkner/tracklane/internal/domain"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage roadmap items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemStatusCmd(app),
		newItemMoveCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func parseDateFlag(value, flag string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
	}
	return &d, nil
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, track, itemType, desc, start, end string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a roadmap item on a track",
		Long:  "Create a roadmap item. Without a title argument on a terminal, prompts for the fields interactively.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			trackID, err := resolveTrackID(ctx, app, projectID, track, false)
			if err != nil {
				return err
			}

			title := ""
			if len(args) == 1 {
				title = args[0]
			} else {
				if !app.IsInteractive() {
					return fmt.Errorf("a title argument is required outside a terminal")
				}
				in := itemWizardInput{Type: itemType, Start: start, End: end, Desc: desc}
				if err := itemWizardForm(&in).Run(); err != nil {
					return err
				}
				title = in.Title
				itemType, start, end, desc = in.Type, in.Start, in.End, in.Desc
			}

			startDate, err := parseDateFlag(start, "start")
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(end, "end")
			if err != nil {
				return err
			}

			item := &domain.RoadmapItem{
				TrackID:   trackID,
				Type:      domain.ItemType(itemType),
				Title:     title,
				StartDate: startDate,
				EndDate:   endDate,
			}
			if desc != "" {
				item.Description = desc
			}

			if err := app.Items.Create(ctx, item); err != nil {
				return err
			}
			fmt.Printf("Created %s %q\n", item.Type, item.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&track, "track", "", "Track name or UUID")
	cmd.Flags().StringVar(&itemType, "type", string(domain.ItemTask), "Item type (task, event, milestone, goal, ...)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var project, track string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items on a track or project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			var items []*domain.RoadmapItem
			if track != "" {
				trackID, err := resolveTrackID(ctx, app, projectID, track, false)
				if err != nil {
					return err
				}
				items, err = app.Items.ListByTrack(ctx, trackID)
				if err != nil {
					return err
				}
			} else {
				items, err = app.Items.ListByProject(ctx, projectID)
				if err != nil {
					return err
				}
			}

			if len(items) == 0 {
				fmt.Println("No items found.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, []string{
					formatter.Truncate(it.Title, 40),
					string(it.Type),
					formatter.StatusBadge(it.Status),
					formatter.DateRange(it.StartDate, it.EndDate),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"TITLE", "TYPE", "STATUS", "DATES"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&track, "track", "", "Limit to one track")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newItemStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <item-id> <status>",
		Short: "Set an item's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Items.SetStatus(context.Background(), args[0], domain.ItemStatus(args[1])); err != nil {
				return err
			}
			fmt.Println("Status updated.")
			return nil
		},
	}
}

func newItemMoveCmd(app *App) *cobra.Command {
	var project, track string

	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item to a different track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			trackID, err := resolveTrackID(ctx, app, projectID, track, false)
			if err != nil {
				return err
			}
			if err := app.Items.Reassign(ctx, args[0], trackID); err != nil {
				return err
			}
			fmt.Println("Item moved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&track, "track", "", "Destination track")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Items.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Item removed.")
			return nil
		},
	}
}
