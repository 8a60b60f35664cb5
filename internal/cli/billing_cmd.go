package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/report"
	"github.com/lvitali/cronosheet/internal/timecalc"
)

func newBillingCmd(app *App) *cobra.Command {
	var months, projectArgs []string
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Build a billing statement over selected projects and months",
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

			monthSet, err := parseMonths(months)
			if err != nil {
				return err
			}
			if len(monthSet) == 0 {
				monthSet = map[string]bool{time.Now().Format("2006-01"): true}
			}

			projectSet := report.AllProjects(ws.Projects)
			if len(projectArgs) > 0 {
				projectSet = map[string]bool{}
				for _, arg := range projectArgs {
					p, err := resolveProject(ctx, app, user.ID, arg)
					if err != nil {
						return err
					}
					projectSet[p.ID] = true
				}
			}

			st := report.BuildStatement(ws.Entries, projectSet, monthSet)

			names := make(map[string]string, len(ws.Projects))
			for _, p := range ws.Projects {
				names[p.ID] = p.Name
			}

			fmt.Println(formatter.Header("Billing · " + st.PeriodLabel))
			if st.EntryCount == 0 {
				fmt.Println("No billable entries in the selected period.")
				return nil
			}

			rows := make([][]string, 0, st.EntryCount)
			for i := range st.Entries {
				e := &st.Entries[i]
				rate := "-"
				if e.HourlyRate != nil {
					rate = timecalc.FormatCurrency(*e.HourlyRate)
				}
				rows = append(rows, []string{
					timecalc.FormatDate(e.StartTime),
					names[e.ProjectID],
					e.Description,
					timecalc.FormatDurationHuman(e.Duration),
					rate,
					timecalc.FormatCurrency(e.ExpenseTotal()),
					timecalc.FormatCurrency(e.Earnings()),
				})
			}
			fmt.Println(formatter.RenderTable(
				[]string{"DATE", "PROJECT", "NOTE", "HOURS", "RATE", "EXPENSES", "EARNED"}, rows))

			summary := fmt.Sprintf("%d entries · %.2f hours · %s",
				st.EntryCount, st.TotalHours, timecalc.FormatCurrency(st.TotalEarnings))
			fmt.Println(formatter.Bold(summary))

			if xlsxPath != "" {
				if err := report.WriteStatementXLSX(st, names, xlsxPath); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&months, "month", nil, "Billing month (YYYY-MM), repeatable (default: current month)")
	cmd.Flags().StringArrayVar(&projectArgs, "project", nil, "Project to bill, repeatable (default: all)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the statement to an Excel file")

	return cmd
}
