package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/report"
	"github.com/lvitali/cronosheet/internal/timecalc"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Log and browse time entries",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

// parseExpenseSpec parses "description=amount" into an expense.
func parseExpenseSpec(spec string) (domain.Expense, error) {
	desc, amountStr, ok := strings.Cut(spec, "=")
	if !ok {
		return domain.Expense{}, fmt.Errorf("invalid expense %q, expected description=amount", spec)
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(amountStr, ",", "."), 64)
	if err != nil || amount < 0 {
		return domain.Expense{}, fmt.Errorf("invalid expense amount %q", amountStr)
	}
	return domain.Expense{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(desc),
		Amount:      amount,
	}, nil
}

func newEntryAddCmd(app *App) *cobra.Command {
	var projectArg, dayStr, startClock, endClock, shiftName, description string
	var expenseSpecs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a finished shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			if projectArg == "" && app.Interactive {
				if err := entryForm(ctx, app, user.ID, &projectArg, &dayStr, &startClock, &endClock, &shiftName, &description); err != nil {
					return err
				}
			}

			project, err := resolveProject(ctx, app, user.ID, projectArg)
			if err != nil {
				return err
			}

			// A named shift preset prefills the clocks.
			if shiftName != "" {
				shift := project.FindShift(shiftName)
				if shift == nil {
					return fmt.Errorf("project %s has no shift named %q", project.Name, shiftName)
				}
				if startClock == "" {
					startClock = shift.StartTime
				}
				if endClock == "" {
					endClock = shift.EndTime
				}
			}
			if startClock == "" || endClock == "" {
				return fmt.Errorf("--from and --to (or --preset) are required")
			}

			day, err := parseDay(dayStr)
			if err != nil {
				return err
			}
			startMs, endMs, err := domain.ResolveShiftTimes(day, startClock, endClock)
			if err != nil {
				return err
			}

			entry := &domain.TimeEntry{
				Description: description,
				ProjectID:   project.ID,
				StartTime:   startMs,
				EndTime:     &endMs,
			}
			for _, spec := range expenseSpecs {
				exp, err := parseExpenseSpec(spec)
				if err != nil {
					return err
				}
				entry.Expenses = append(entry.Expenses, exp)
			}

			if err := app.Entries.Save(ctx, user.ID, entry); err != nil {
				return err
			}

			badge := ""
			if entry.IsNightShift {
				badge = " " + formatter.NightBadge(true)
			}
			fmt.Printf("Logged %s on %s (%s)%s\n",
				timecalc.FormatDurationHuman(entry.Duration),
				project.Name,
				timecalc.FormatCurrency(entry.Earnings()),
				badge)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectArg, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&dayStr, "day", "", "Shift date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&startClock, "from", "", "Start clock (HH:MM)")
	cmd.Flags().StringVar(&endClock, "to", "", "End clock (HH:MM); earlier than --from means past midnight")
	cmd.Flags().StringVar(&shiftName, "preset", "", "Use one of the project's shift presets")
	cmd.Flags().StringVar(&description, "note", "", "Entry description")
	cmd.Flags().StringArrayVar(&expenseSpecs, "expense", nil, "Attached expense (description=amount), repeatable")

	return cmd
}

// entryForm walks the interactive entry flow: project select, optional
// preset select with clock prefill, then the details.
func entryForm(ctx context.Context, app *App, userID string, projectArg, dayStr, startClock, endClock, shiftName, description *string) error {
	projects, err := app.Projects.List(ctx, userID)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return fmt.Errorf("no projects yet; create one with `cronosheet project add`")
	}

	projectOpts := make([]huh.Option[string], len(projects))
	for i, p := range projects {
		projectOpts[i] = huh.NewOption(p.Name, p.ID)
	}

	pick := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Project").Options(projectOpts...).Value(projectArg),
	)).WithTheme(cronosheetHuhTheme()).WithShowHelp(false)
	if err := pick.Run(); err != nil {
		return err
	}

	var project *domain.Project
	for i := range projects {
		if projects[i].ID == *projectArg {
			project = &projects[i]
		}
	}

	if project != nil && len(project.Shifts) > 0 {
		opts := []huh.Option[string]{huh.NewOption("(manual times)", "")}
		for _, s := range project.Shifts {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s-%s)", s.Name, s.StartTime, s.EndTime), s.Name))
		}
		preset := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Shift preset").Options(opts...).Value(shiftName),
		)).WithTheme(cronosheetHuhTheme()).WithShowHelp(false)
		if err := preset.Run(); err != nil {
			return err
		}
		if shift := project.FindShift(*shiftName); shift != nil {
			*startClock = shift.StartTime
			*endClock = shift.EndTime
		}
	}

	details := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Date (YYYY-MM-DD, blank for today)").Value(dayStr),
		huh.NewInput().Title("Start (HH:MM)").Value(startClock).Validate(validateClock),
		huh.NewInput().Title("End (HH:MM)").Value(endClock).Validate(validateClock),
		huh.NewInput().Title("Note").Value(description),
	)).WithTheme(cronosheetHuhTheme()).WithShowHelp(false)
	return details.Run()
}

func newEntryListCmd(app *App) *cobra.Command {
	var year string
	var months, projectArgs []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the timesheet, newest day first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			ws, err := app.Workspace.LoadAll(ctx, user.ID)
			if err != nil {
				return err
			}

			now := time.Now()
			filter := report.Filter{
				SelectedYear:     now.Format("2006"),
				SelectedProjects: report.AllProjects(ws.Projects),
			}
			if year != "" {
				filter.SelectedYear = year
			}
			if filter.SelectedMonths, err = parseMonths(months); err != nil {
				return err
			}
			if len(projectArgs) > 0 {
				filter.SelectedProjects = map[string]bool{}
				for _, arg := range projectArgs {
					p, err := resolveProject(ctx, app, user.ID, arg)
					if err != nil {
						return err
					}
					filter.SelectedProjects[p.ID] = true
				}
			}

			filtered := filter.Apply(ws.Entries)
			if len(filtered) == 0 {
				fmt.Println("No entries match the current filters.")
				return nil
			}

			names := make(map[string]string, len(ws.Projects))
			colors := make(map[string]domain.Project, len(ws.Projects))
			for _, p := range ws.Projects {
				names[p.ID] = p.Name
				colors[p.ID] = p
			}

			groups := timecalc.GroupByDay(filtered, now)
			for _, g := range groups {
				fmt.Println(formatter.Header(timecalc.FormatDayHeading(g.Date)))
				rows := make([][]string, 0, len(g.Entries))
				for i := range g.Entries {
					e := &g.Entries[i]
					window := timecalc.FormatClock(e.StartTime) + "-"
					badge := formatter.NightBadge(e.IsNightShift)
					if e.Running() {
						window += "…"
						badge = formatter.RunningBadge()
					} else {
						window += timecalc.FormatClock(*e.EndTime)
					}
					rows = append(rows, []string{
						formatter.TruncID(e.ID),
						formatter.ProjectDot(colors[e.ProjectID]) + " " + names[e.ProjectID],
						window,
						timecalc.FormatDuration(e.ComputedDuration(now)),
						timecalc.FormatCurrency(e.Earnings()),
						badge,
					})
				}
				fmt.Println(formatter.RenderTable([]string{"ID", "PROJECT", "TIME", "DURATION", "EARNED", ""}, rows))
				fmt.Printf("%s\n\n", formatter.Dim("Day total: "+timecalc.FormatDuration(g.TotalDuration)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "Filter by year (default: current year)")
	cmd.Flags().StringArrayVar(&months, "month", nil, "Filter by month (YYYY-MM), repeatable; overrides --year")
	cmd.Flags().StringArrayVar(&projectArgs, "project", nil, "Filter by project, repeatable (default: all)")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			id := args[0]
			if len(id) < 36 {
				// Allow the truncated ids shown in the list.
				entries, err := app.Entries.List(ctx, user.ID)
				if err != nil {
					return err
				}
				var matches []string
				for i := range entries {
					if strings.HasPrefix(entries[i].ID, id) {
						matches = append(matches, entries[i].ID)
					}
				}
				switch len(matches) {
				case 0:
					return fmt.Errorf("entry not found: %q", id)
				case 1:
					id = matches[0]
				default:
					return fmt.Errorf("entry ID prefix %q is ambiguous (%d matches)", id, len(matches))
				}
			}

			if err := app.Entries.Delete(ctx, user.ID, id); err != nil {
				return err
			}
			fmt.Printf("Removed entry %s\n", id)
			return nil
		},
	}
}
