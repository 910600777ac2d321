package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Display the current propctl configuration.

Values come from defaults, the .env file, .propctl.yaml and PROPCTL_*
environment variables, in increasing order of precedence.

Examples:
  propctl config                # Show all config
  propctl config --path         # Show config file path
  propctl config --json         # Output as JSON`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("path", false, "show config file path")
	configCmd.Flags().Bool("json", false, "output as JSON")
}

func runConfig(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	showPath, _ := cmd.Flags().GetBool("path")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if showPath {
		if cfg.Source == "" {
			printer.Info("No config file found (using defaults)")
		} else {
			printer.Info("Config file: %s", cfg.Source)
		}
		return nil
	}

	if jsonOutput {
		return printer.JSON(cfg)
	}

	printer.Header("Current Configuration")

	table := printer.Table([]string{"KEY", "VALUE"})
	table.AddRow([]string{"api.base_url", cfg.API.BaseURL})
	table.AddRow([]string{"api.timeout", cfg.API.Timeout.String()})
	table.AddRow([]string{"api.rate_limit", fmt.Sprintf("%g", cfg.API.RateLimit)})
	table.AddRow([]string{"api.burst", fmt.Sprintf("%d", cfg.API.Burst)})
	table.AddRow([]string{"api.user_agent", cfg.API.UserAgent})
	table.AddRow([]string{"session.file", cfg.Session.File})
	table.AddRow([]string{"logging.level", cfg.Logging.Level})
	table.AddRow([]string{"logging.format", cfg.Logging.Format})
	table.AddRow([]string{"output.colors", fmt.Sprintf("%v", cfg.Output.Colors)})
	return table.Render()
}
