package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lvitali/cronosheet/internal/auth"
	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/domain"
)

// requireUser resolves the signed-in profile and enforces the approval
// gate: unapproved accounts can sign in but cannot reach their data.
func requireUser(ctx context.Context, app *App) (*domain.UserProfile, error) {
	p, err := app.Auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !p.IsApproved {
		return nil, fmt.Errorf("%s: %w", p.Email, auth.ErrPendingApproval)
	}
	return p, nil
}

// requireAdmin is requireUser plus the admin role.
func requireAdmin(ctx context.Context, app *App) (*domain.UserProfile, error) {
	p, err := requireUser(ctx, app)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, fmt.Errorf("this command requires the admin role")
	}
	return p, nil
}

// resolveProject matches user input against the caller's projects by exact
// name (case-insensitive), exact id, then id prefix.
func resolveProject(ctx context.Context, app *App, userID, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project name or ID is required")
	}

	projects, err := app.Projects.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if strings.EqualFold(projects[i].Name, input) {
			return &projects[i], nil
		}
	}
	for i := range projects {
		if projects[i].ID == input {
			return &projects[i], nil
		}
	}

	var matches []*domain.Project
	for i := range projects {
		if strings.HasPrefix(projects[i].ID, input) {
			matches = append(matches, &projects[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parseDay parses a YYYY-MM-DD argument in the local time zone, defaulting
// to today when empty.
func parseDay(input string) (time.Time, error) {
	if input == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", input)
	}
	return t, nil
}

// parseMonths validates a list of YYYY-MM keys into a selection set.
func parseMonths(inputs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(inputs))
	for _, m := range inputs {
		if _, err := time.Parse("2006-01", m); err != nil {
			return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", m)
		}
		set[m] = true
	}
	return set, nil
}

func cronosheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

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

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
