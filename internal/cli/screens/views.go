package screens

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/stellar-burgers/burgerctl/internal/models"
	"github.com/stellar-burgers/burgerctl/internal/session"
)

const timeLayout = "2006-01-02 15:04"

// HomeView greets the logged in user
func HomeView(format Format) View {
	return func(w io.Writer, state session.State) error {
		user := session.GetUser(state)
		if ok, err := encode(w, format, user); ok {
			return err
		}

		if !session.GetUserAuthStatus(state) {
			fmt.Fprintln(w, "Not logged in.")
			fmt.Fprintln(w, "\nLog in with: burgerctl login")
			return nil
		}

		name := user.Name
		if name == "" {
			name = user.Email
		}
		fmt.Fprintf(w, "Welcome, %s!\n", name)
		fmt.Fprintf(w, "Logged in as %s\n", user.Email)
		return nil
	}
}

// ProfileView prints the profile fields
func ProfileView(format Format) View {
	return func(w io.Writer, state session.State) error {
		user := session.GetUser(state)
		if ok, err := encode(w, format, user); ok {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Name:\t%s\n", user.Name)
		fmt.Fprintf(tw, "Email:\t%s\n", user.Email)
		return tw.Flush()
	}
}

// OrdersView prints the order history. Prices need the ingredient catalog; without one the column is omitted.
func OrdersView(format Format, catalog []models.Ingredient) View {
	return func(w io.Writer, state session.State) error {
		orders := session.GetOrders(state)
		if ok, err := encode(w, format, orders); ok {
			return err
		}
		return writeOrders(w, orders, catalog)
	}
}

func writeOrders(w io.Writer, orders []models.Order, catalog []models.Ingredient) error {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders found.")
		fmt.Fprintln(w, "\nPlace one with: burgerctl order")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if catalog != nil {
		fmt.Fprintln(tw, "NUMBER\tNAME\tSTATUS\tCREATED AT\tPRICE")
		fmt.Fprintln(tw, "──────\t────\t──────\t──────────\t─────")
	} else {
		fmt.Fprintln(tw, "NUMBER\tNAME\tSTATUS\tCREATED AT")
		fmt.Fprintln(tw, "──────\t────\t──────\t──────────")
	}

	for _, order := range orders {
		if catalog != nil {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n",
				order.Number,
				order.Name,
				order.StatusLabel(),
				formatTime(order.CreatedAt),
				models.TotalPrice(catalog, order.Ingredients),
			)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			order.Number,
			order.Name,
			order.StatusLabel(),
			formatTime(order.CreatedAt),
		)
	}

	return tw.Flush()
}

// RenderOrderPlaced prints the confirmation for a new order
func RenderOrderPlaced(w io.Writer, format Format, order *models.Order, catalog []models.Ingredient) error {
	if order == nil {
		return fmt.Errorf("no order was placed")
	}
	if ok, err := encode(w, format, order); ok {
		return err
	}

	fmt.Fprintf(w, "✓ Order %d accepted: %s\n", order.Number, order.Name)
	if catalog != nil {
		fmt.Fprintf(w, "  Total: %d\n", models.TotalPrice(catalog, order.Ingredients))
	}
	fmt.Fprintln(w, "  Your burger is being prepared.")
	return nil
}

// RenderIngredients prints the catalog as buns, then mains, then sauces
func RenderIngredients(w io.Writer, format Format, catalog []models.Ingredient) error {
	if ok, err := encode(w, format, catalog); ok {
		return err
	}

	if len(catalog) == 0 {
		fmt.Fprintln(w, "No ingredients available.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tPRICE\tKCAL")
	fmt.Fprintln(tw, "──\t────\t────\t─────\t────")
	for _, kind := range []string{models.IngredientBun, models.IngredientMain, models.IngredientSauce} {
		for _, ing := range catalog {
			if ing.Type != kind {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", ing.ID, ing.Type, ing.Name, ing.Price, ing.Calories)
		}
	}
	return tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
