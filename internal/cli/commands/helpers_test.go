package commands

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stellar-burgers/burgerctl/internal/cli/auth"
	"github.com/stellar-burgers/burgerctl/internal/cli/client"
	"github.com/stellar-burgers/burgerctl/internal/cli/config"
	appconfig "github.com/stellar-burgers/burgerctl/internal/config"
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// mockAPIClient is an in-memory burger API
type mockAPIClient struct {
	mu sync.Mutex

	email, password string
	user            models.User
	orders          []models.Order
	catalog         []models.Ingredient
	catalogErr      error
	loggedOut       bool
	lastPatch       models.UserPatch
	lastOrder       []string
	nextNumber      int
}

func newMockAPIClient() *mockAPIClient {
	return &mockAPIClient{
		email:    "cook@example.com",
		password: "password123",
		user:     models.User{Email: "cook@example.com", Name: "Space Cook"},
		catalog: []models.Ingredient{
			{ID: "bun-1", Name: "Crater bun", Type: models.IngredientBun, Price: 1255},
			{ID: "main-1", Name: "Meteorite patty", Type: models.IngredientMain, Price: 3000},
			{ID: "sauce-1", Name: "Spicy-X sauce", Type: models.IngredientSauce, Price: 90},
		},
		nextNumber: 5001,
	}
}

func (m *mockAPIClient) GetIngredients(ctx context.Context) ([]models.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog, m.catalogErr
}

func (m *mockAPIClient) GetUser(ctx context.Context) (models.UserResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loggedOut {
		return models.UserResponse{}, auth.ErrNotFound
	}
	return models.UserResponse{Success: true, User: m.user}, nil
}

func (m *mockAPIClient) Login(ctx context.Context, data models.LoginData) (models.AuthResponse, error) {
	if data.Email != m.email || data.Password != m.password {
		return models.AuthResponse{}, &client.APIError{Status: 401, Message: "email or password are incorrect"}
	}
	return models.AuthResponse{Success: true, AccessToken: "Bearer access", RefreshToken: "refresh", User: m.user}, nil
}

func (m *mockAPIClient) Register(ctx context.Context, data models.RegisterData) (models.AuthResponse, error) {
	if data.Email == m.email {
		return models.AuthResponse{}, &client.APIError{Status: 403, Message: "User already exists"}
	}
	user := models.User{Email: data.Email, Name: data.Name}
	return models.AuthResponse{Success: true, AccessToken: "Bearer new", RefreshToken: "new-refresh", User: user}, nil
}

func (m *mockAPIClient) UpdateUser(ctx context.Context, patch models.UserPatch) (models.UserResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPatch = patch
	if patch.Name != "" {
		m.user.Name = patch.Name
	}
	if patch.Email != "" {
		m.user.Email = patch.Email
	}
	return models.UserResponse{Success: true, User: m.user}, nil
}

func (m *mockAPIClient) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loggedOut {
		return auth.ErrNotFound
	}
	m.loggedOut = true
	return nil
}

func (m *mockAPIClient) GetOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders, nil
}

func (m *mockAPIClient) OrderBurger(ctx context.Context, ingredients []string) (models.NewOrderResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOrder = ingredients
	order := models.Order{
		ID:          "order-" + time.Now().Format("150405.000"),
		Number:      m.nextNumber,
		Name:        "Space burger",
		Status:      models.OrderStatusDone,
		Ingredients: models.IngredientIDs(ingredients),
	}
	m.nextNumber++
	m.orders = append([]models.Order{order}, m.orders...)
	return models.NewOrderResponse{Success: true, Name: order.Name, Order: order}, nil
}

// mockTokens is an in-memory token source
type mockTokens struct {
	access, refresh string
}

func (m *mockTokens) AccessToken() (string, error)       { return m.access, nil }
func (m *mockTokens) RefreshToken() (string, error)      { return m.refresh, nil }
func (m *mockTokens) SetAccessToken(token string) error  { m.access = token; return nil }
func (m *mockTokens) SetRefreshToken(token string) error { m.refresh = token; return nil }
func (m *mockTokens) Clear() error                       { m.access, m.refresh = "", ""; return nil }

// mockPicker answers prompts with canned values
type mockPicker struct {
	email    string
	password string
	burger   []string
	err      error
}

func (p *mockPicker) Email(string) (string, error)                 { return p.email, p.err }
func (p *mockPicker) Password(string) (string, error)              { return p.password, p.err }
func (p *mockPicker) Burger([]models.Ingredient) ([]string, error) { return p.burger, p.err }

// nonInteractive behaves like a piped stdin
var nonInteractive = &mockPicker{err: ErrNotInteractive}

var errPickerUsed = errors.New("picker must not be used")

// testRun bundles the fakes of one command run
type testRun struct {
	api    *mockAPIClient
	tokens *mockTokens
	out    *bytes.Buffer
	server *config.Server
}

func newTestRun(t *testing.T) *testRun {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	return &testRun{
		api:    newMockAPIClient(),
		tokens: &mockTokens{},
		out:    &bytes.Buffer{},
		server: &config.Server{Alias: "test", URL: "http://burgers.test/api", WebURL: "http://burgers.test"},
	}
}

func (tr *testRun) globals(output string) *Globals {
	return &Globals{
		Output: output,
		Config: &appconfig.Config{
			API: appconfig.APIConfig{Timeout: time.Second},
		},
	}
}

func (tr *testRun) options(extra ...Option) []Option {
	return append([]Option{
		WithServer(tr.server),
		WithAPIClient(tr.api),
		WithTokens(tr.tokens),
		WithOutput(tr.out),
		WithPicker(&mockPicker{err: errPickerUsed}),
		WithProjectConfig(config.DefaultConfig()),
	}, extra...)
}
