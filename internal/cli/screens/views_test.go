package screens

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stellar-burgers/burgerctl/internal/models"
	"github.com/stellar-burgers/burgerctl/internal/session"
)

var testCatalog = []models.Ingredient{
	{ID: "bun", Name: "Crater bun", Type: models.IngredientBun, Price: 1255, Calories: 420},
	{ID: "patty", Name: "Meteorite patty", Type: models.IngredientMain, Price: 3000, Calories: 2674},
	{ID: "spicy", Name: "Spicy-X sauce", Type: models.IngredientSauce, Price: 90, Calories: 30},
}

func loggedInState(orders ...models.Order) session.State {
	state := session.InitialState()
	state.Success = true
	state.User = models.User{Email: "cook@example.com", Name: "Cook"}
	state.Orders = orders
	return state
}

func TestRouter_NavigateRendersView(t *testing.T) {
	var out bytes.Buffer
	store := session.NewStoreWithState(loggedInState())
	router := NewRouter(&out, store, FormatTable, zerolog.Nop())

	assert.Equal(t, "", router.Current())

	router.Navigate(RouteHome)

	assert.Equal(t, RouteHome, router.Current())
	assert.Contains(t, out.String(), "Welcome, Cook!")
	assert.Contains(t, out.String(), "cook@example.com")
}

func TestRouter_UnknownRoute(t *testing.T) {
	var out bytes.Buffer
	router := NewRouter(&out, session.NewStore(), FormatTable, zerolog.Nop())

	router.Navigate("/feed")
	router.Navigate(RouteProfile)

	assert.Equal(t, []string{"/feed", RouteProfile}, router.History())
	assert.Equal(t, RouteProfile, router.Current())
	assert.Contains(t, out.String(), "Email:")
}

func TestRouter_HandleReplacesView(t *testing.T) {
	var out bytes.Buffer
	router := NewRouter(&out, session.NewStore(), FormatTable, zerolog.Nop())
	router.Handle(RouteHome, func(w io.Writer, state session.State) error {
		_, err := w.Write([]byte("custom home\n"))
		return err
	})

	router.Navigate(RouteHome)
	assert.Equal(t, "custom home\n", out.String())
}

func TestHomeView_LoggedOut(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HomeView(FormatTable)(&out, session.InitialState()))
	assert.Contains(t, out.String(), "Not logged in.")
}

func TestOrdersView_Table(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	state := loggedInState(
		models.Order{ID: "2", Number: 1002, Name: "Space burger", Status: models.OrderStatusDone,
			Ingredients: models.IngredientIDs{"bun", "patty", "bun"}, CreatedAt: created},
		models.Order{ID: "1", Number: 1001, Name: "Spicy burger", Status: models.OrderStatusPending,
			Ingredients: models.IngredientIDs{"bun", "spicy", "bun"}},
	)

	var out bytes.Buffer
	require.NoError(t, OrdersView(FormatTable, testCatalog)(&out, state))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PRICE")
	assert.Contains(t, lines[2], "1002")
	assert.Contains(t, lines[2], "Done")
	assert.Contains(t, lines[2], "5510")
	assert.Contains(t, lines[3], "Cooking")
	assert.Contains(t, lines[3], "-")

	out.Reset()
	require.NoError(t, OrdersView(FormatTable, nil)(&out, state))
	assert.NotContains(t, out.String(), "PRICE")
}

func TestOrdersView_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, OrdersView(FormatTable, nil)(&out, loggedInState()))
	assert.Contains(t, out.String(), "No orders found.")
}

func TestOrdersView_JSONAndYAML(t *testing.T) {
	state := loggedInState(models.Order{ID: "1", Number: 1001, Name: "Space burger", Ingredients: models.IngredientIDs{"bun"}})

	var out bytes.Buffer
	require.NoError(t, OrdersView(FormatJSON, nil)(&out, state))

	var decoded []models.Order
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 1001, decoded[0].Number)

	out.Reset()
	require.NoError(t, OrdersView(FormatYAML, nil)(&out, state))

	var generic []map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &generic))
	require.Len(t, generic, 1)
	assert.Equal(t, "1", generic[0]["id"])
	assert.Equal(t, 1001, generic[0]["number"])
}

func TestRenderOrderPlaced(t *testing.T) {
	order := &models.Order{ID: "9", Number: 9999, Name: "Space burger", Ingredients: models.IngredientIDs{"bun", "patty", "bun"}}

	var out bytes.Buffer
	require.NoError(t, RenderOrderPlaced(&out, FormatTable, order, testCatalog))
	assert.Contains(t, out.String(), "Order 9999 accepted: Space burger")
	assert.Contains(t, out.String(), "Total: 5510")

	assert.Error(t, RenderOrderPlaced(&out, FormatTable, nil, nil))
}

func TestRenderIngredients_GroupsByType(t *testing.T) {
	catalog := []models.Ingredient{testCatalog[2], testCatalog[1], testCatalog[0]}

	var out bytes.Buffer
	require.NoError(t, RenderIngredients(&out, FormatTable, catalog))

	text := out.String()
	assert.Less(t, strings.Index(text, "Crater bun"), strings.Index(text, "Meteorite patty"))
	assert.Less(t, strings.Index(text, "Meteorite patty"), strings.Index(text, "Spicy-X sauce"))
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatTable, "table": FormatTable, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
