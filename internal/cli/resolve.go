package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID turns user input into a project UUID, accepting a
// short ID (case-insensitive), a full UUID, or a unique UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTrackID matches a track within a project by name
// (case-insensitive), UUID, or unique UUID prefix. Trashed tracks only
// match when includeTrashed is set.
func resolveTrackID(ctx context.Context, app *App, projectID, input string, includeTrashed bool) (string, error) {
	if input == "" {
		return "", fmt.Errorf("track is required")
	}

	tracks, err := app.Tracks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	if includeTrashed {
		trashed, err := app.Tracks.ListTrashed(ctx, projectID)
		if err != nil {
			return "", err
		}
		tracks = append(tracks, trashed...)
	}

	for _, t := range tracks {
		if strings.EqualFold(t.Name, input) || t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tracks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("track not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("track %q is ambiguous (%d matches)", input, len(matches))
	}
}
