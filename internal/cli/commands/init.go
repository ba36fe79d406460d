package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/config"
)

// initOptions holds the init flags
type initOptions struct {
	alias  string
	webURL string
	out    io.Writer
}

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [api-url]",
		Short: "Create or extend burgerctl.json in the current directory",
		Long: `Create or extend burgerctl.json in the current directory.

Without an argument the public Stellar Burgers API is added.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return runInitWithOptions(args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.alias, "alias", "", "Alias for the server (default: server-N)")
	cmd.Flags().StringVar(&opts.webURL, "web-url", "", "Storefront URL opened by 'burgerctl open'")

	return cmd
}

func runInitWithOptions(args []string, opts *initOptions) error {
	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	apiURL := config.DefaultServerURL
	webURL := opts.webURL
	if len(args) > 0 {
		apiURL = args[0]
	} else if webURL == "" {
		webURL = config.DefaultConfig().Servers[0].WebURL
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintf(out, "Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{
			Servers: []config.Server{},
		}
		isNewConfig = true
	}

	if existing, err := cfg.GetServerByURLOrAlias(apiURL); err == nil {
		fmt.Fprintf(out, "Server %s already exists in %s (%s)\n", apiURL, config.ConfigFileName, existing.Alias)
		return nil
	}

	alias := opts.alias
	if alias == "" {
		alias = fmt.Sprintf("server-%d", len(cfg.Servers)+1)
	}

	cfg.Servers = append(cfg.Servers, config.Server{
		Alias:  alias,
		URL:    apiURL,
		WebURL: webURL,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(out, "✓ Created ./%s with server %s (%s)\n", config.ConfigFileName, apiURL, alias)
	} else {
		fmt.Fprintf(out, "✓ Added server %s (%s) to ./%s\n", apiURL, alias, config.ConfigFileName)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'burgerctl register' or 'burgerctl login' to authenticate")
	fmt.Fprintln(out, "  2. Run 'burgerctl order' to place your first order")

	return nil
}
