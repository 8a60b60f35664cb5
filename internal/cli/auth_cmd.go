package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and manage the session",
	}

	cmd.AddCommand(
		newSignupCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
	)

	return cmd
}

// promptCredentials collects email and password via a form when flags were
// not given and the terminal is interactive.
func promptCredentials(app *App, email, password *string, confirm bool) error {
	if !app.Interactive {
		return fmt.Errorf("--email and --password are required in non-interactive mode")
	}

	fields := []huh.Field{
		huh.NewInput().Title("Email").Value(email).Validate(validateNonEmpty),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password).Validate(validateNonEmpty),
	}
	if confirm {
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s != *password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(cronosheetHuhTheme()).WithShowHelp(false)
	return form.Run()
}

func newSignupCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if email == "" || password == "" {
				if err := promptCredentials(app, &email, &password, true); err != nil {
					return err
				}
			}

			p, err := app.Auth.SignUp(ctx, email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s.\n", p.Email)
			if p.IsApproved {
				fmt.Println("Your account is ready; sign in with `cronosheet auth login`.")
			} else {
				fmt.Println("Your account is awaiting admin approval.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (min 8 characters)")

	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if email == "" || password == "" {
				if err := promptCredentials(app, &email, &password, false); err != nil {
					return err
				}
			}

			p, err := app.Auth.SignIn(ctx, email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Signed in as %s %s\n", p.Email, formatter.SubscriptionPill(p.SubscriptionStatus))
			if !p.IsApproved {
				fmt.Println(formatter.Dim("Account pending approval; data commands are locked until an admin approves it."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(context.Background()); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Auth.Current(context.Background())
			if err != nil {
				return err
			}

			now := time.Now()
			rows := [][]string{
				{"Email", p.Email},
				{"Role", formatter.RolePill(p.Role)},
				{"Tier", formatter.SubscriptionPill(p.SubscriptionStatus)},
				{"Approval", formatter.ApprovalPill(p.IsApproved)},
				{"Trial ends", p.EffectiveTrialEnd(now).Format("2006-01-02")},
			}
			if left := p.TrialDaysLeft(now); left > 0 {
				rows = append(rows, []string{"Trial days left", fmt.Sprintf("%d", left)})
			}
			if app.DemoMode {
				rows = append(rows, []string{"Mode", formatter.StyleYellow.Render("demo (local JSON store)")})
			}

			fmt.Println(formatter.RenderTable([]string{"FIELD", "VALUE"}, rows))
			return nil
		},
	}
}
