package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftchain-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after merging defaults, the config file and
CC_* environment variables. Database passwords are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			asJSON, err := jsonOutput()
			if err != nil {
				return err
			}

			masked := *cfg
			masked.Database = cfg.Database.Redacted()

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, masked)
			}
			printConfig(out, &masked)
			return nil
		},
	}
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Catalog:")
	fmt.Fprintf(out, "  Source:           %s\n", cfg.Catalog.Source)
	if cfg.Catalog.Path != "" {
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
	}

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	if cfg.Database.URL != "" {
		fmt.Fprintf(out, "  URL:              %s\n", cfg.Database.URL)
	} else if cfg.Database.Type == "sqlite" {
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	} else {
		fmt.Fprintf(out, "  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
		fmt.Fprintf(out, "  Name:             %s\n", cfg.Database.Name)
	}

	fmt.Fprintln(out, "\nPlanner:")
	fmt.Fprintf(out, "  Ratio mode:       %s\n", cfg.Planner.RatioMode)
	if cfg.Planner.MaxDepth != nil {
		fmt.Fprintf(out, "  Max depth:        %d\n", *cfg.Planner.MaxDepth)
	} else {
		fmt.Fprintln(out, "  Max depth:        unlimited")
	}
	fmt.Fprintf(out, "  Max scale factor: %d\n", cfg.Planner.MaxScaleFactor)
	fmt.Fprintf(out, "  Cache:            %d plans, %s\n", cfg.Planner.CacheSize, cfg.Planner.CacheTTL)

	fmt.Fprintln(out, "\nServer:")
	fmt.Fprintf(out, "  HTTP:             %s\n", cfg.Server.HTTPAddress)
	fmt.Fprintf(out, "  gRPC:             %s\n", cfg.Server.GRPCAddress)
	fmt.Fprintf(out, "  Rate limit:       %g/s (burst %d)\n", cfg.Server.RateLimit, cfg.Server.Burst)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
