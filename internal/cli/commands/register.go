package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/cli/userconfig"
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd(g *Globals) *cobra.Command {
	var data models.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a Stellar Burgers account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), g, data)
		},
	}

	cmd.Flags().StringVar(&data.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&data.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&data.Password, "password", "", "Password (will prompt if not provided)")

	return cmd
}

func runRegister(ctx context.Context, g *Globals, data models.RegisterData, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	if data.Password == "" {
		data.Password, err = r.picker.Password("Choose a password")
		if err != nil && !errors.Is(err, ErrNotInteractive) {
			return err
		}
	}

	if err := screens.ValidateForm(data); err != nil {
		return err
	}

	r.status("Registering %s on %s...\n", data.Email, r.serverLabel())

	resp, err := r.actions.RegisterUser(ctx, data)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := userconfig.SetLastEmail(resp.User.Email); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to remember email")
	}

	r.router().Navigate(screens.RouteHome)
	return nil
}
