package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/cli/userconfig"
	"github.com/stellar-burgers/burgerctl/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd(g *Globals) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a Stellar Burgers server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), g, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set BURGERCTL_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set BURGERCTL_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, g *Globals, email, password string, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = r.env.Credentials.Email
	}
	if password == "" {
		password = r.env.Credentials.Password
	}

	if email == "" {
		lastEmail, _ := userconfig.GetLastEmail()
		email, err = r.picker.Email(lastEmail)
		if errors.Is(err, ErrNotInteractive) {
			return fmt.Errorf("email is required (use --email flag or BURGERCTL_EMAIL env var)")
		}
		if err != nil {
			return err
		}
	}

	if password == "" {
		password, err = r.picker.Password("Password")
		if errors.Is(err, ErrNotInteractive) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or BURGERCTL_PASSWORD env var)")
		}
		if err != nil {
			return err
		}
	}

	screen := screens.NewLoginScreen(r.actions, r.router())
	defer screen.Close()

	screen.SetEmail(email)
	screen.SetPassword(password)

	r.status("Logging in to %s...\n", r.serverLabel())

	if err := screen.Submit(ctx); err != nil {
		var rejected *session.RejectedError
		if errors.As(err, &rejected) {
			return fmt.Errorf("login failed: %s", screen.ErrorText())
		}
		return fmt.Errorf("login failed: %w", err)
	}

	state := r.actions.Store().State()
	if !session.GetUserAuthStatus(state) {
		return fmt.Errorf("login failed: the server did not return a user")
	}

	if err := userconfig.SetLastEmail(session.GetUser(state).Email); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to remember email")
	}

	return nil
}
