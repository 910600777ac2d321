// Package cmd contains all CLI commands for propctl
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/api"
	"github.com/propuestas-project/propctl/internal/config"
	"github.com/propuestas-project/propctl/internal/output"
	"github.com/propuestas-project/propctl/internal/session"
)

var (
	cfgFile   string
	envFile   string
	verbose   bool
	quiet     bool
	colorMode string
	cfg       *config.Config
	logger    *slog.Logger
	version   = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "propctl",
	Short: "Command-line client for the proposals matching platform",
	Long: `propctl talks to the proposals platform backend on your behalf.

Students and professors can publish and browse proposals, keep their
knowledge areas up to date and search for each other. Administrators can
manage users, proposals and platform metrics.

Example usage:
  propctl login --email alumno@escuela.mx     # Start a session
  propctl search redes neuronales             # Find matching professors or students
  propctl proposals mine                      # List your proposals
  propctl catalog                             # Show knowledge areas and subjects
  propctl logout                              # End the session`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return newPrinter(rootCmd).FormatAPIError(err)
	}
	return output.ExitSuccess
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .propctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before the config (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command) error {
	// Bootstrap logger until the config says otherwise
	logger = newLogger(cmd.ErrOrStderr(), "text", levelFor("info"))

	var err error
	cfg, err = config.Load(cfgFile, envFile)
	if err != nil {
		return &output.CLIError{
			Summary:    "invalid configuration",
			Detail:     err.Error(),
			Suggestion: "Check .propctl.yaml syntax, PROPCTL_* variables or use --config flag",
			ExitCode:   output.ExitConfigError,
		}
	}

	if _, err := output.ParseColorMode(colorMode); err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError}
	}

	level := levelFor(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	logger = newLogger(cmd.ErrOrStderr(), cfg.Logging.Format, level)

	logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"session_file", cfg.Session.File,
		"timeout", cfg.API.Timeout,
		"rate_limit", cfg.API.RateLimit,
	)

	return nil
}

func levelFor(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newPrinter builds a printer writing to the command's streams
func newPrinter(cmd *cobra.Command) *output.Printer {
	mode, _ := output.ParseColorMode(colorMode)
	colors := true
	if cfg != nil {
		colors = cfg.Output.Colors
	}
	return output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode:    mode,
		ConfigColors: colors,
		Quiet:        quiet,
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	})
}

// openStore opens the session file named by the config
func openStore() (*session.FileStore, error) {
	store, err := session.OpenFileStore(cfg.Session.File)
	if err != nil {
		return nil, &output.CLIError{
			Summary:    "cannot read session file",
			Detail:     err.Error(),
			Suggestion: "Run 'propctl logout' to discard it, then log in again",
			ExitCode:   output.ExitConfigError,
		}
	}
	return store, nil
}

// newClient builds an API client backed by the session file
func newClient() (*api.Client, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.API.BaseURL, store, logger,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		api.WithUserAgent(fmt.Sprintf("%s/%s", cfg.API.UserAgent, version)),
	), nil
}
