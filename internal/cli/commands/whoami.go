package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context(), g)
		},
	}
}

func runWhoami(ctx context.Context, g *Globals, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	if _, err := r.actions.GetUserAuth(ctx); err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	r.router().Navigate(screens.RouteHome)
	return nil
}
