package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/intelligence"
)

func newInsightsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Model-assisted summaries and suggestions",
	}

	cmd.AddCommand(
		newInsightsWeekCmd(app),
		newInsightsSuggestCmd(app),
	)

	return cmd
}

func newInsightsWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Summarize the last seven days of tracked work",
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

			insights, err := app.Insights.AnalyzeWeek(ctx, ws.Entries, ws.Projects, time.Now())
			if err != nil {
				return err
			}

			content := insights.Summary
			if insights.Source == intelligence.SourceDeterministic {
				content += "\n\n" + formatter.Dim("(computed locally; model unavailable or disabled)")
			}
			fmt.Println(formatter.RenderBox("your week", content))
			return nil
		},
	}
}

func newInsightsSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest DESCRIPTION",
		Short: "Guess which project a work description belongs to",
		Args:  cobra.MinimumNArgs(1),
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

			description := strings.Join(args, " ")
			suggestion, err := app.Insights.SuggestProject(ctx, description, projects)
			if err != nil {
				return err
			}

			fmt.Printf("Suggested project: %s %s\n",
				formatter.Bold(suggestion.ProjectName),
				formatter.Dim("("+suggestion.Source+")"))
			return nil
		},
	}
}
