package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/domain"
	"github.com/lvitali/cronosheet/internal/timecalc"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Track a shift live",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
	)

	return cmd
}

// timerModel is the live stopwatch view shown while a shift is running.
type timerModel struct {
	sw          stopwatch.Model
	projectName string
	note        string
	startedAt   time.Time
	cancelled   bool
}

func newTimerModel(projectName, note string, startedAt time.Time) timerModel {
	return timerModel{
		sw:          stopwatch.NewWithInterval(time.Second),
		projectName: projectName,
		note:        note,
		startedAt:   startedAt,
	}
}

func (m timerModel) Init() tea.Cmd {
	return m.sw.Init()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter", "s":
			return m, tea.Quit
		case "x", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.sw, cmd = m.sw.Update(msg)
	return m, cmd
}

func (m timerModel) View() string {
	elapsed := time.Since(m.startedAt).Seconds()
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		formatter.Bold(m.projectName),
		formatter.StyleGreen.Render(timecalc.FormatDuration(elapsed)),
		formatter.Dim("s/enter save · x/esc discard"))
	if m.note != "" {
		content = formatter.Dim(m.note) + "\n\n" + content
	}
	return formatter.RenderBox("tracking", content) + "\n"
}

func newTimerStartCmd(app *App) *cobra.Command {
	var projectArg, note string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start tracking a shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			if running, err := app.Entries.Running(ctx, user.ID); err != nil {
				return err
			} else if running != nil {
				return fmt.Errorf("a shift is already running (started %s); stop it first", timecalc.FormatClock(running.StartTime))
			}

			project, err := resolveProject(ctx, app, user.ID, projectArg)
			if err != nil {
				return err
			}

			entry := &domain.TimeEntry{
				Description: note,
				ProjectID:   project.ID,
				StartTime:   time.Now().UnixMilli(),
			}
			if err := app.Entries.Save(ctx, user.ID, entry); err != nil {
				return err
			}

			if !app.Interactive {
				fmt.Printf("Tracking %s since %s. Stop with `cronosheet timer stop`.\n",
					project.Name, timecalc.FormatClock(entry.StartTime))
				return nil
			}

			model := newTimerModel(project.Name, note, entry.StartAt())
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			if final.(timerModel).cancelled {
				if err := app.Entries.Delete(ctx, user.ID, entry.ID); err != nil {
					return err
				}
				fmt.Println("Discarded.")
				return nil
			}
			return stopRunning(ctx, app, user.ID)
		},
	}

	cmd.Flags().StringVar(&projectArg, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&note, "note", "", "Entry description")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// stopRunning closes the user's open entry at the current instant.
func stopRunning(ctx context.Context, app *App, userID string) error {
	entry, err := app.Entries.Running(ctx, userID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("no shift is running")
	}

	end := time.Now().UnixMilli()
	entry.EndTime = &end
	entry.Duration = 0 // recomputed from the timestamps on save
	if err := app.Entries.Save(ctx, userID, entry); err != nil {
		return err
	}

	badge := ""
	if entry.IsNightShift {
		badge = " " + formatter.NightBadge(true)
	}
	fmt.Printf("Stopped: %s (%s)%s\n",
		timecalc.FormatDurationHuman(entry.Duration),
		timecalc.FormatCurrency(entry.Earnings()),
		badge)
	return nil
}

func newTimerStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}
			return stopRunning(ctx, app, user.ID)
		},
	}
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running shift, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			entry, err := app.Entries.Running(ctx, user.ID)
			if err != nil {
				return err
			}
			if entry == nil {
				fmt.Println("No shift is running.")
				return nil
			}

			project, err := app.Projects.GetByID(ctx, user.ID, entry.ProjectID)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s since %s (%s elapsed)\n",
				formatter.RunningBadge(),
				project.Name,
				timecalc.FormatClock(entry.StartTime),
				timecalc.FormatDurationHuman(entry.ComputedDuration(time.Now())))
			return nil
		},
	}
}
