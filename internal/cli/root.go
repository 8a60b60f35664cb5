package cli

import (
	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/auth"
	"github.com/lvitali/cronosheet/internal/intelligence"
	"github.com/lvitali/cronosheet/internal/service"
)

// App holds references to everything CLI commands need.
type App struct {
	Auth      *auth.Manager
	Projects  service.ProjectService
	Entries   service.EntryService
	Profiles  service.ProfileService
	Admin     service.AdminService
	Workspace service.WorkspaceService
	Insights  intelligence.InsightsService

	// Interactive enables forms and the live timer UI; batch callers get
	// flag-only behavior.
	Interactive bool

	// DemoMode is surfaced in the whoami output so users know their data
	// lives in local JSON files.
	DemoMode bool
}

// NewRootCmd creates the top-level "cronosheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cronosheet",
		Short:         "Time tracking and billing for shift work",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newAuthCmd(app),
		newProjectCmd(app),
		newEntryCmd(app),
		newTimerCmd(app),
		newBillingCmd(app),
		newReportCmd(app),
		newInsightsCmd(app),
		newAdminCmd(app),
	)

	return root
}
