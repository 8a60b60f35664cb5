package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvitali/cronosheet/internal/cli/formatter"
	"github.com/lvitali/cronosheet/internal/domain"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage user accounts (admin role required)",
	}

	cmd.AddCommand(
		newAdminUsersCmd(app),
		newAdminApproveCmd(app),
		newAdminTierCmd(app),
		newAdminRoleCmd(app),
		newAdminRemoveCmd(app),
	)

	return cmd
}

// resolveProfile matches input against all profiles by email or id prefix.
func resolveProfile(ctx context.Context, app *App, actingID, input string) (*domain.UserProfile, error) {
	profiles, err := app.Admin.ListProfiles(ctx, actingID)
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if strings.EqualFold(profiles[i].Email, input) {
			return &profiles[i], nil
		}
	}
	var matches []*domain.UserProfile
	for i := range profiles {
		if strings.HasPrefix(profiles[i].ID, input) {
			matches = append(matches, &profiles[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("user not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("user %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newAdminUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			acting, err := requireAdmin(ctx, app)
			if err != nil {
				return err
			}

			profiles, err := app.Admin.ListProfiles(ctx, acting.ID)
			if err != nil {
				return err
			}

			now := time.Now()
			rows := make([][]string, 0, len(profiles))
			for i := range profiles {
				p := &profiles[i]
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					p.Email,
					formatter.RolePill(p.Role),
					formatter.SubscriptionPill(p.SubscriptionStatus),
					formatter.ApprovalPill(p.IsApproved),
					p.EffectiveTrialEnd(now).Format("2006-01-02"),
				})
			}

			fmt.Println(formatter.RenderTable(
				[]string{"ID", "EMAIL", "ROLE", "TIER", "APPROVAL", "TRIAL ENDS"}, rows))
			return nil
		},
	}
}

func newAdminApproveCmd(app *App) *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "approve USER",
		Short: "Approve (or revoke) an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			acting, err := requireAdmin(ctx, app)
			if err != nil {
				return err
			}

			target, err := resolveProfile(ctx, app, acting.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Admin.SetApproval(ctx, acting.ID, target.ID, !revoke); err != nil {
				return err
			}

			if revoke {
				fmt.Printf("Revoked approval for %s\n", target.Email)
			} else {
				fmt.Printf("Approved %s\n", target.Email)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "Revoke approval instead of granting it")

	return cmd
}

func newAdminTierCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-tier USER TIER",
		Short: "Change an account's subscription tier",
		Long:  "TIER is one of: trial, active, pro, elite, expired.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			acting, err := requireAdmin(ctx, app)
			if err != nil {
				return err
			}

			target, err := resolveProfile(ctx, app, acting.ID, args[0])
			if err != nil {
				return err
			}
			status := domain.SubscriptionStatus(args[1])
			if err := app.Admin.SetSubscription(ctx, acting.ID, target.ID, status); err != nil {
				return err
			}

			fmt.Printf("%s is now %s\n", target.Email, formatter.SubscriptionPill(status))
			return nil
		},
	}
}

func newAdminRoleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role USER ROLE",
		Short: "Change an account's role (admin or user)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			acting, err := requireAdmin(ctx, app)
			if err != nil {
				return err
			}

			target, err := resolveProfile(ctx, app, acting.ID, args[0])
			if err != nil {
				return err
			}
			role := domain.Role(args[1])
			if err := app.Admin.SetRole(ctx, acting.ID, target.ID, role); err != nil {
				return err
			}

			fmt.Printf("%s is now %s\n", target.Email, formatter.RolePill(role))
			return nil
		},
	}
}

func newAdminRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove USER",
		Short: "Delete an account and all of its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			acting, err := requireAdmin(ctx, app)
			if err != nil {
				return err
			}

			target, err := resolveProfile(ctx, app, acting.ID, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("removing %s deletes all of their projects and entries; pass --force to confirm", target.Email)
			}

			if err := app.Admin.DeleteUser(ctx, acting.ID, target.ID); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", target.Email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation")

	return cmd
}
