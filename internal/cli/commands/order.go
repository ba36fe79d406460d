package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/models"
	"github.com/stellar-burgers/burgerctl/internal/session"
)

// NewOrderCmd creates the order command
func NewOrderCmd(g *Globals) *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "order [ingredient-ids...]",
		Short: "Place a burger order",
		Long: `Place a burger order.

Ingredients can be given as IDs, taken from a preset in burgerctl.json,
or picked interactively when neither is provided.

Examples:
  $ burgerctl order                      # Interactive picker
  $ burgerctl order --preset classic     # Preset from burgerctl.json
  $ burgerctl order BUN MAIN SAUCE BUN   # Explicit ingredient IDs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd.Context(), g, args, preset)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Name of a preset from burgerctl.json")

	return cmd
}

func runOrder(ctx context.Context, g *Globals, ids []string, preset string, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	if len(ids) > 0 && preset != "" {
		return fmt.Errorf("use either ingredient IDs or --preset, not both")
	}

	catalog, err := r.api.GetIngredients(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}

	switch {
	case preset != "":
		p, err := r.project.GetPreset(preset)
		if err != nil {
			return err
		}
		if ids, err = p.Ingredients(); err != nil {
			return err
		}
	case len(ids) == 0:
		if ids, err = r.picker.Burger(catalog); err != nil {
			return err
		}
	}

	if err := checkIngredients(catalog, ids); err != nil {
		return err
	}

	r.status("Placing order on %s...\n", r.serverLabel())

	if _, err := r.actions.NewUserOrder(ctx, ids); err != nil {
		return fmt.Errorf("order failed: %w", err)
	}

	return screens.RenderOrderPlaced(r.out, r.format, session.GetLastOrder(r.actions.Store().State()), catalog)
}

// checkIngredients rejects unknown IDs and burgers without a bun
func checkIngredients(catalog []models.Ingredient, ids []string) error {
	byID := make(map[string]models.Ingredient, len(catalog))
	for _, ing := range catalog {
		byID[ing.ID] = ing
	}

	hasBun := false
	for _, id := range ids {
		ing, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown ingredient '%s' (see 'burgerctl ingredients')", id)
		}
		if ing.Type == models.IngredientBun {
			hasBun = true
		}
	}

	if !hasBun {
		return fmt.Errorf("a burger needs a bun")
	}
	return nil
}
