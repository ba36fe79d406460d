package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// NewOrdersCmd creates the orders command
func NewOrdersCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:     "orders",
		Aliases: []string{"history"},
		Short:   "List your order history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrders(cmd.Context(), g)
		},
	}
}

func runOrders(ctx context.Context, g *Globals, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	// The catalog only adds prices, so its failure is not fatal
	var catalog []models.Ingredient
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		ingredients, err := r.api.GetIngredients(egCtx)
		if err != nil {
			r.logger.Warn().Err(err).Msg("Failed to load ingredient catalog, prices omitted")
			return nil
		}
		catalog = ingredients
		return nil
	})
	eg.Go(func() error {
		_, err := r.actions.GetUserOrders(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("failed to get orders: %w", err)
	}

	router := r.router()
	router.Handle(screens.RouteOrders, screens.OrdersView(r.format, catalog))
	router.Navigate(screens.RouteOrders)
	return nil
}
