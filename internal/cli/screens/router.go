package screens

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stellar-burgers/burgerctl/internal/session"
)

// Routes
const (
	RouteHome    = "/"
	RouteLogin   = "/login"
	RouteProfile = "/profile"
	RouteOrders  = "/profile/orders"
)

// View renders one route from the current session state
type View func(w io.Writer, state session.State) error

// Router renders the view registered for a path whenever it navigates
type Router struct {
	out    io.Writer
	store  *session.Store
	logger zerolog.Logger

	mu      sync.Mutex
	views   map[string]View
	history []string
}

// NewRouter creates a router with the home, profile and order history views
func NewRouter(out io.Writer, store *session.Store, format Format, logger zerolog.Logger) *Router {
	r := &Router{
		out:    out,
		store:  store,
		logger: logger,
		views:  make(map[string]View),
	}

	r.Handle(RouteHome, HomeView(format))
	r.Handle(RouteProfile, ProfileView(format))
	r.Handle(RouteOrders, OrdersView(format, nil))
	return r
}

// Handle registers or replaces the view for path
func (r *Router) Handle(path string, view View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[path] = view
}

// Navigate records the path and renders its view. Unknown paths are recorded but render nothing.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.history = append(r.history, path)
	view, ok := r.views[path]
	r.mu.Unlock()

	if !ok {
		r.logger.Warn().Str("path", path).Msg("No view registered for route")
		return
	}

	if err := view(r.out, r.store.State()); err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to render view")
	}
}

// Current returns the last navigated path, or "" before the first navigation
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return r.history[len(r.history)-1]
}

// History returns every navigated path in order
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}
