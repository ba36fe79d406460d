package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd(g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileShow(cmd.Context(), g)
		},
	}

	cmd.AddCommand(newProfileUpdateCmd(g))
	return cmd
}

func newProfileUpdateCmd(g *Globals) *cobra.Command {
	var patch models.UserPatch
	var changePassword bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update name, email or password",
		Example: `  $ burgerctl profile update --name "Space Cook"
  $ burgerctl profile update --password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileUpdate(cmd.Context(), g, patch, changePassword)
		},
	}

	cmd.Flags().StringVar(&patch.Name, "name", "", "New display name")
	cmd.Flags().StringVar(&patch.Email, "email", "", "New email address")
	cmd.Flags().BoolVar(&changePassword, "password", false, "Prompt for a new password")

	return cmd
}

func runProfileShow(ctx context.Context, g *Globals, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	if _, err := r.actions.GetUserAuth(ctx); err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	r.router().Navigate(screens.RouteProfile)
	return nil
}

func runProfileUpdate(ctx context.Context, g *Globals, patch models.UserPatch, changePassword bool, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	if changePassword {
		if patch.Password, err = r.picker.Password("New password"); err != nil {
			return err
		}
		if patch.Password == "" {
			return fmt.Errorf("password must not be empty")
		}
	}

	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update (use --name, --email or --password)")
	}

	if err := screens.ValidateForm(patch); err != nil {
		return err
	}

	if _, err := r.actions.UpdateUserData(ctx, patch); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	r.status("✓ Profile updated\n")
	r.router().Navigate(screens.RouteProfile)
	return nil
}
