package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/stellar-burgers/burgerctl/internal/cli/auth"
	"github.com/stellar-burgers/burgerctl/internal/cli/client"
	"github.com/stellar-burgers/burgerctl/internal/cli/config"
	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/cli/serverselect"
	appconfig "github.com/stellar-burgers/burgerctl/internal/config"
	"github.com/stellar-burgers/burgerctl/internal/logger"
	"github.com/stellar-burgers/burgerctl/internal/models"
	"github.com/stellar-burgers/burgerctl/internal/session"
)

// Globals holds the persistent flags and the environment config shared by every command
type Globals struct {
	Server string
	Output string
	Config *appconfig.Config
}

// APIClient is the burger API surface commands use
type APIClient interface {
	session.API
	GetIngredients(ctx context.Context) ([]models.Ingredient, error)
}

// Option configures a command run. Tests use options to inject fakes.
type Option func(*runtime)

// WithServer skips server resolution
func WithServer(server *config.Server) Option {
	return func(r *runtime) { r.server = server }
}

// WithAPIClient replaces the HTTP client
func WithAPIClient(api APIClient) Option {
	return func(r *runtime) { r.api = api }
}

// WithTokens replaces the keyring and cookie backed token store
func WithTokens(tokens client.TokenSource) Option {
	return func(r *runtime) { r.tokens = tokens }
}

// WithOutput redirects command output
func WithOutput(w io.Writer) Option {
	return func(r *runtime) { r.out = w }
}

// WithPicker replaces the interactive prompts
func WithPicker(p Picker) Option {
	return func(r *runtime) { r.picker = p }
}

// WithProjectConfig replaces the burgerctl.json lookup
func WithProjectConfig(cfg *config.Config) Option {
	return func(r *runtime) { r.project = cfg }
}

// runtime is everything a command needs to talk to one server
type runtime struct {
	out     io.Writer
	format  screens.Format
	logger  zerolog.Logger
	env     *appconfig.Config
	project *config.Config
	server  *config.Server
	tokens  client.TokenSource
	api     APIClient
	picker  Picker
	actions *session.Actions
}

// newRuntime applies opts and fills in the production defaults for anything not injected
func newRuntime(g *Globals, opts ...Option) (*runtime, error) {
	r := &runtime{
		out:    os.Stdout,
		logger: logger.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	if g == nil {
		g = &Globals{}
	}

	format, err := screens.ParseFormat(g.Output)
	if err != nil {
		return nil, err
	}
	r.format = format

	r.env = g.Config
	if r.env == nil {
		if r.env, err = appconfig.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if r.project == nil {
		if r.project, err = config.LoadFromCurrentDir(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w\nRun 'burgerctl init' to create a configuration file", err)
		}
	}

	if r.server == nil {
		if r.server, err = serverselect.ResolveServer(r.project, g.Server, r.env.API.URL); err != nil {
			return nil, err
		}
	}

	if r.tokens == nil {
		jarPath, err := auth.DefaultCookieJarPath()
		if err != nil {
			return nil, err
		}
		r.tokens = auth.ForServer(auth.NewDefaultStore(auth.NewCookieJar(jarPath)), r.server.URL)
	}

	if r.api == nil {
		apiClient := client.New(r.server.URL, r.tokens)
		apiClient.SetTimeout(r.env.API.Timeout)
		apiClient.SetRateLimit(r.env.API.RateLimit)
		apiClient.SetLogger(r.logger)
		r.api = apiClient
	}

	if r.picker == nil {
		r.picker = promptPicker{}
	}

	store := session.NewStore(session.LoggingMiddleware(r.logger))
	r.actions = session.NewActions(store, r.api, r.tokens, r.logger)

	r.logger.Debug().
		Str("server", r.server.URL).
		Str("output", string(r.format)).
		Msg("Command runtime ready")

	return r, nil
}

// router returns a router that renders to the command output
func (r *runtime) router() *screens.Router {
	return screens.NewRouter(r.out, r.actions.Store(), r.format, r.logger)
}

// serverLabel names the resolved server for status lines
func (r *runtime) serverLabel() string {
	return serverselect.Label(r.server)
}

// status prints a human status line. Structured formats stay clean for piping.
func (r *runtime) status(format string, args ...any) {
	if r.format != screens.FormatTable {
		return
	}
	fmt.Fprintf(r.out, format, args...)
}
