package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stellar-burgers/burgerctl/internal/cli/commands"
	"github.com/stellar-burgers/burgerctl/internal/config"
	"github.com/stellar-burgers/burgerctl/internal/logger"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	globals := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "burgerctl",
		Short: "burgerctl - Stellar Burgers from the terminal",
		Long: `burgerctl - Order space burgers from the terminal.

Log in to a Stellar Burgers server, manage your profile,
browse the ingredient catalog and place or review orders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.Logging.Level, cfg.Logging.Format)
			globals.Config = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&globals.Server, "server", "", "Server alias or API URL (overrides the selected server)")
	rootCmd.PersistentFlags().StringVarP(&globals.Output, "output", "o", "table", "Output format: table, json or yaml")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "burgerctl version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
	rootCmd.AddCommand(commands.NewLoginCmd(globals))
	rootCmd.AddCommand(commands.NewRegisterCmd(globals))
	rootCmd.AddCommand(commands.NewLogoutCmd(globals))
	rootCmd.AddCommand(commands.NewWhoamiCmd(globals))
	rootCmd.AddCommand(commands.NewProfileCmd(globals))
	rootCmd.AddCommand(commands.NewOrdersCmd(globals))
	rootCmd.AddCommand(commands.NewOrderCmd(globals))
	rootCmd.AddCommand(commands.NewIngredientsCmd(globals))
	rootCmd.AddCommand(commands.NewOpenCmd(globals))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
