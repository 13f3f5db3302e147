package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfaulkner/tracklane/internal/cli/formatter"
	"github.com/rfaulkner/tracklane/internal/domain"
)

func newTrackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage roadmap tracks",
	}

	cmd.AddCommand(
		newTrackAddCmd(app),
		newTrackListCmd(app),
		newTrackUpdateCmd(app),
		newTrackTrashCmd(app),
		newTrackRestoreCmd(app),
		newTrackPurgeCmd(app),
	)

	return cmd
}

func newTrackAddCmd(app *App) *cobra.Command {
	var project, parent, color, category, visibility string
	var order int
	var offRoadmap bool

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a track or subtrack",
		Long:  "Create a track. Without a name argument on a terminal, prompts for the fields interactively.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			} else {
				if !app.IsInteractive() {
					return fmt.Errorf("a name argument is required outside a terminal")
				}
				in := trackWizardInput{Category: category, Visibility: visibility, Color: color}
				if err := trackWizardForm(&in).Run(); err != nil {
					return err
				}
				name = in.Name
				category, visibility, color = in.Category, in.Visibility, in.Color
			}

			t := &domain.Track{
				ProjectID:        projectID,
				Name:             name,
				OrderIndex:       order,
				Category:         domain.TrackCategory(category),
				Visibility:       domain.TrackVisibility(visibility),
				IncludeInRoadmap: !offRoadmap,
			}
			if color != "" {
				t.Color = &color
			}
			if parent != "" {
				parentID, err := resolveTrackID(ctx, app, projectID, parent, false)
				if err != nil {
					return err
				}
				t.ParentID = &parentID
			}

			if err := app.Tracks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Created track %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent track for a subtrack")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryMain), "Category: main or side_project")
	cmd.Flags().StringVar(&visibility, "visibility", string(domain.VisibilityVisible), "Visibility: visible, collapsed, or hidden")
	cmd.Flags().IntVar(&order, "order", 0, "Ordering index among siblings")
	cmd.Flags().BoolVar(&offRoadmap, "off-roadmap", false, "Exclude from the roadmap projection")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTrackListCmd(app *App) *cobra.Command {
	var project string
	var trashed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracks in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if trashed {
				tracks, err := app.Tracks.ListTrashed(ctx, projectID)
				if err != nil {
					return err
				}
				if len(tracks) == 0 {
					fmt.Println("Trash is empty.")
					return nil
				}
				rows := make([][]string, 0, len(tracks))
				for _, t := range tracks {
					rows = append(rows, []string{t.Name, formatter.Date(t.DeletedAt)})
				}
				fmt.Println(formatter.RenderTable([]string{"NAME", "TRASHED"}, rows))
				return nil
			}

			p, err := app.Roadmap.Load(ctx, projectID, app.CurrentUser)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatRoadmapTree(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	cmd.Flags().BoolVar(&trashed, "trashed", false, "List trashed tracks instead")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTrackUpdateCmd(app *App) *cobra.Command {
	var project, name, color, visibility string
	var order int

	cmd := &cobra.Command{
		Use:   "update <track>",
		Short: "Update a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			trackID, err := resolveTrackID(ctx, app, projectID, args[0], false)
			if err != nil {
				return err
			}
			t, err := app.Tracks.GetByID(ctx, trackID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("color") {
				t.Color = &color
			}
			if cmd.Flags().Changed("visibility") {
				t.Visibility = domain.TrackVisibility(visibility)
			}
			if cmd.Flags().Changed("order") {
				t.OrderIndex = order
			}

			if err := app.Tracks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Println("Track updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	cmd.Flags().StringVar(&visibility, "visibility", "", "New visibility")
	cmd.Flags().IntVar(&order, "order", 0, "New ordering index")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTrackTrashCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "trash <track>",
		Short: "Move a track and its subtracks to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			trackID, err := resolveTrackID(ctx, app, projectID, args[0], false)
			if err != nil {
				return err
			}
			if err := app.Tracks.MoveToTrash(ctx, trackID); err != nil {
				return err
			}
			fmt.Printf("Track trashed. Restore within %d days with 'tracklane track restore'.\n",
				app.Config.Trash.RetentionDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTrackRestoreCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "restore <track>",
		Short: "Restore a track from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			trackID, err := resolveTrackID(ctx, app, projectID, args[0], true)
			if err != nil {
				return err
			}
			if err := app.Tracks.Restore(ctx, trackID); err != nil {
				return err
			}
			fmt.Println("Track restored.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTrackPurgeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Permanently delete tracks past their trash retention",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Tracks.PurgeExpired(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Purged %d expired track(s).\n", n)
			return nil
		},
	}
}
