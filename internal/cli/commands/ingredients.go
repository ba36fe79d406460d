package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
)

// NewIngredientsCmd creates the ingredients command
func NewIngredientsCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:     "ingredients",
		Aliases: []string{"menu"},
		Short:   "List the ingredient catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngredients(cmd.Context(), g)
		},
	}
}

func runIngredients(ctx context.Context, g *Globals, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	catalog, err := r.api.GetIngredients(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}

	return screens.RenderIngredients(r.out, r.format, catalog)
}
