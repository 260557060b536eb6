package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	remote       string
	outputFormat string
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craftchain",
		Short: "craftchain - explore production chains and size factories",
		Long: `craftchain expands crafting recipes into production chains and computes
machine counts for target output rates.

By default commands run in-process against the configured catalog. With
--remote they talk to a running craftchain-daemon instead: an http(s):// URL
uses the REST API, anything else is dialed as a gRPC address.

Examples:
  craftchain chain iron_gear --depth 3
  craftchain plan --target iron_gear=30 --target circuit=10 --ratio whole
  craftchain catalog show iron_gear
  craftchain catalog list --raw
  craftchain catalog import data/recipes.json
  craftchain --remote localhost:50061 plan --target iron_gear=30`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/craftchain)")
	rootCmd.PersistentFlags().StringVar(&remote, "remote", os.Getenv("CRAFTCHAIN_REMOTE"),
		"Daemon address: http(s)://host:port for REST, host:port for gRPC")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log requests to stderr")

	rootCmd.AddCommand(NewChainCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
