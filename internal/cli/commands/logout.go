package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/auth"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), g)
		},
	}
}

func runLogout(ctx context.Context, g *Globals, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	if err := r.actions.UserLogout(ctx); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			r.status("Not logged in to %s\n", r.serverLabel())
			return nil
		}
		return fmt.Errorf("logout failed: %w", err)
	}

	r.status("✓ Logged out of %s\n", r.serverLabel())
	return nil
}
