package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/timecalc"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their shift presets",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectEditCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

// parseShiftSpec parses "Name=HH:MM-HH:MM" into a shift preset.
func parseShiftSpec(spec string) (domain.Shift, error) {
	name, window, ok := strings.Cut(spec, "=")
	if !ok {
		return domain.Shift{}, fmt.Errorf("invalid shift %q, expected Name=HH:MM-HH:MM", spec)
	}
	start, end, ok := strings.Cut(window, "-")
	if !ok {
		return domain.Shift{}, fmt.Errorf("invalid shift window %q, expected HH:MM-HH:MM", window)
	}
	if err := validateClock(start); err != nil {
		return domain.Shift{}, fmt.Errorf("shift %q start: %w", name, err)
	}
	if err := validateClock(end); err != nil {
		return domain.Shift{}, fmt.Errorf("shift %q end: %w", name, err)
	}
	return domain.Shift{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		StartTime: start,
		EndTime:   end,
	}, nil
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			projects, err := app.Projects.List(ctx, user.ID)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects yet. Create one with `cronosheet project add`.")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for i := range projects {
				p := &projects[i]
				shifts := make([]string, len(p.Shifts))
				for j, s := range p.Shifts {
					shifts[j] = fmt.Sprintf("%s %s-%s", s.Name, s.StartTime, s.EndTime)
				}
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					formatter.ProjectDot(*p) + " " + p.Name,
					timecalc.FormatCurrency(p.DefaultHourlyRate) + "/h",
					strings.Join(shifts, ", "),
				})
			}

			fmt.Println(formatter.RenderTable([]string{"ID", "NAME", "RATE", "SHIFTS"}, rows))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, rateStr string
	var shiftSpecs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			if name == "" && app.Interactive {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Project name").Value(&name).Validate(validateNonEmpty),
						huh.NewInput().Title("Default hourly rate (€)").Placeholder("10.00").Value(&rateStr),
					),
				).WithTheme(cronosheetHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			var rate float64
			if rateStr != "" {
				rate, err = strconv.ParseFloat(strings.ReplaceAll(rateStr, ",", "."), 64)
				if err != nil || rate < 0 {
					return fmt.Errorf("invalid rate %q", rateStr)
				}
			}

			p := &domain.Project{Name: name, DefaultHourlyRate: rate}
			for _, spec := range shiftSpecs {
				shift, err := parseShiftSpec(spec)
				if err != nil {
					return err
				}
				p.Shifts = append(p.Shifts, shift)
			}

			if err := app.Projects.Save(ctx, user.ID, p); err != nil {
				return err
			}

			fmt.Printf("Created project %s %s\n", formatter.ProjectDot(*p), p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&rateStr, "rate", "", "Default hourly rate")
	cmd.Flags().StringArrayVar(&shiftSpecs, "shift", nil, "Shift preset (Name=HH:MM-HH:MM), repeatable")

	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	var name, rateStr, color string
	var shiftSpecs []string

	cmd := &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			p, err := resolveProject(ctx, app, user.ID, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("rate") {
				rate, err := strconv.ParseFloat(strings.ReplaceAll(rateStr, ",", "."), 64)
				if err != nil || rate < 0 {
					return fmt.Errorf("invalid rate %q", rateStr)
				}
				p.DefaultHourlyRate = rate
			}
			if cmd.Flags().Changed("color") {
				p.Color = color
			}
			if cmd.Flags().Changed("shift") {
				p.Shifts = nil
				for _, spec := range shiftSpecs {
					shift, err := parseShiftSpec(spec)
					if err != nil {
						return err
					}
					p.Shifts = append(p.Shifts, shift)
				}
			}

			if err := app.Projects.Save(ctx, user.ID, p); err != nil {
				return err
			}

			fmt.Printf("Updated project %s. Existing entries keep their original rate.\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&rateStr, "rate", "", "Default hourly rate")
	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #3B82F6")
	cmd.Flags().StringArrayVar(&shiftSpecs, "shift", nil, "Replace shift presets (Name=HH:MM-HH:MM)")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Remove a project and all of its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			p, err := resolveProject(ctx, app, user.ID, args[0])
			if err != nil {
				return err
			}

			if !force {
				if !app.Interactive {
					return fmt.Errorf("removing %q deletes all of its time entries; pass --force to confirm", p.Name)
				}
				var confirmed bool
				confirm := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete %q and all of its time entries?", p.Name)).
						Value(&confirmed),
				)).WithTheme(cronosheetHuhTheme()).WithShowHelp(false)
				if err := confirm.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, user.ID, p.ID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
