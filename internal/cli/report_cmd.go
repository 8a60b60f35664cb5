package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/report"
)

const reportBarWidth = 24

func newReportCmd(app *App) *cobra.Command {
	var windowStr string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Hours per project and per day over a lookback window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := requireUser(ctx, app)
			if err != nil {
				return err
			}

			var window report.Window
			switch windowStr {
			case "7d", "":
				window = report.Last7Days
			case "14d":
				window = report.Last14Days
			case "month":
				window = report.MonthToDate
			default:
				return fmt.Errorf("invalid window %q, expected 7d, 14d or month", windowStr)
			}

			ws, err := app.Workspace.LoadAll(ctx, user.ID)
			if err != nil {
				return err
			}

			now := time.Now()
			shares := report.ProjectBreakdown(ws.Entries, ws.Projects, window, now)
			series := report.DailySeries(ws.Entries, window, now)

			fmt.Println(formatter.Header(fmt.Sprintf("Report · last %s", window)))

			if len(shares) == 0 {
				fmt.Println("No tracked time in this window.")
				return nil
			}

			var total, maxShare float64
			for _, s := range shares {
				total += s.Hours
				if s.Hours > maxShare {
					maxShare = s.Hours
				}
			}

			fmt.Println(formatter.Bold("By project"))
			for _, s := range shares {
				label := fmt.Sprintf("%.1fh", s.Hours)
				fmt.Printf("  %-24s %s %s\n",
					s.Name,
					formatter.RenderBar(s.Hours, maxShare, reportBarWidth, label),
					formatter.RenderShare(s.Hours/total, 10))
			}

			var maxDay float64
			for _, d := range series {
				if d.Hours > maxDay {
					maxDay = d.Hours
				}
			}

			fmt.Println()
			fmt.Println(formatter.Bold("By day"))
			for _, d := range series {
				label := fmt.Sprintf("%.1fh", d.Hours)
				fmt.Printf("  %s %s\n", formatter.Dim(d.Date), formatter.RenderBar(d.Hours, maxDay, reportBarWidth, label))
			}

			fmt.Printf("\n%s\n", formatter.Bold(fmt.Sprintf("Total: %.1f hours", total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&windowStr, "window", "7d", "Lookback window: 7d, 14d or month")

	return cmd
}
