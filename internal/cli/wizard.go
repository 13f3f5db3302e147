package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfaulkner/tracklane/internal/cli/formatter"
	"github.com/rfaulkner/tracklane/internal/domain"
)

func tracklaneHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2025-06-30"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalDate)
}

// itemWizardInput collects the fields of a new roadmap item interactively.
type itemWizardInput struct {
	Title string
	Type  string
	Start string
	End   string
	Desc  string
}

func itemWizardForm(in *itemWizardInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Task", string(domain.ItemTask)),
					huh.NewOption("Event", string(domain.ItemEvent)),
					huh.NewOption("Milestone", string(domain.ItemMilestone)),
					huh.NewOption("Goal", string(domain.ItemGoal)),
				).
				Value(&in.Type),
			dateInput("Start Date (blank to leave unscheduled)", "", &in.Start),
			dateInput("End Date (blank for single day)", "", &in.End),
			huh.NewInput().
				Title("Description (optional)").
				Value(&in.Desc),
		),
	).WithTheme(tracklaneHuhTheme()).WithShowHelp(false)
}

// trackWizardInput collects the fields of a new track interactively.
type trackWizardInput struct {
	Name       string
	Category   string
	Visibility string
	Color      string
}

func trackWizardForm(in *trackWizardInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("Main", string(domain.CategoryMain)),
					huh.NewOption("Side project", string(domain.CategorySideProject)),
				).
				Value(&in.Category),
			huh.NewSelect[string]().
				Title("Visibility").
				Options(
					huh.NewOption("Visible to members", string(domain.VisibilityVisible)),
					huh.NewOption("Hidden from roadmap viewers", string(domain.VisibilityHidden)),
				).
				Value(&in.Visibility),
			huh.NewInput().
				Title("Color (hex, optional)").
				Placeholder("#8ec07c").
				Value(&in.Color),
		),
	).WithTheme(tracklaneHuhTheme()).WithShowHelp(false)
}
