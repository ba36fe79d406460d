package commands

import (
	"fmt"
	"net/url"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/spf13/cobra"
)

// browser is swapped in tests
var browser = openBrowser

// webPages maps `burgerctl open` targets to storefront paths
var webPages = map[string]string{
	"":        "/",
	"feed":    "/feed",
	"profile": "/profile",
	"orders":  "/profile/orders",
	"login":   "/login",
}

// NewOpenCmd creates the open command
func NewOpenCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:       "open [feed|profile|orders|login]",
		Short:     "Open the storefront in the browser",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"feed", "profile", "orders", "login"},
		RunE: func(cmd *cobra.Command, args []string) error {
			page := ""
			if len(args) > 0 {
				page = args[0]
			}
			return runOpen(g, page)
		},
	}
}

func runOpen(g *Globals, page string, opts ...Option) error {
	r, err := newRuntime(g, opts...)
	if err != nil {
		return err
	}

	path, ok := webPages[page]
	if !ok {
		return fmt.Errorf("unknown page '%s' (use feed, profile, orders or login)", page)
	}

	if r.server.WebURL == "" {
		return fmt.Errorf("server %s has no webUrl. Please add one to burgerctl.json", r.serverLabel())
	}

	base, err := url.Parse(r.server.WebURL)
	if err != nil {
		return fmt.Errorf("invalid webUrl '%s': %w", r.server.WebURL, err)
	}
	pageURL := strings.TrimRight(base.String(), "/") + path

	r.status("Opening %s...\n", pageURL)

	if err := browser(pageURL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, pageURL)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch goruntime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", goruntime.GOOS)
	}

	return cmd.Start()
}
