package cli

import (
	"github.com/spf13/cobra"

	"github.com/rfaulkner/tracklane/internal/config"
	"github.com/rfaulkner/tracklane/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects   service.ProjectService
	Tracks     service.TrackService
	Items      service.ItemService
	Roadmap    service.RoadmapService
	ViewStates service.ViewStateService

	Config config.Config

	// CurrentUser identifies the viewer for permission checks and view
	// state. Defaults to the OS user when unset.
	CurrentUser string

	// IsInteractive reports whether stdin is attached to a terminal; the
	// roadmap TUI refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tracklane" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tracklane",
		Short: "Roadmap timeline planner for tracks and items",
	}

	root.PersistentFlags().StringVar(&app.CurrentUser, "as", app.CurrentUser, "Act as this user")

	root.AddCommand(
		newProjectCmd(app),
		newTrackCmd(app),
		newItemCmd(app),
		newRoadmapCmd(app),
	)

	return root
}
