package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	commit    = "unknown"
	buildTime = "unknown"
)

// SetBuildInfo sets the commit hash and build time
func SetBuildInfo(c, bt string) {
	commit = c
	buildTime = bt
}

type versionInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Built       string `json:"built"`
	GoVersion   string `json:"goVersion"`
	Platform    string `json:"platform"`
	Backend     string `json:"backend"`
	SessionFile string `json:"sessionFile"`
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   version,
		Commit:    commit,
		Built:     buildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if cfg != nil {
		info.Backend = cfg.API.BaseURL
		info.SessionFile = cfg.Session.File
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, build information, and the backend this binary talks to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if short {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}

		info := currentVersionInfo()
		if jsonOutput {
			return newPrinter(cmd).JSON(info)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "propctl version %s\n", info.Version)
		fmt.Fprintf(w, "  commit:     %s\n", info.Commit)
		fmt.Fprintf(w, "  built:      %s\n", info.Built)
		fmt.Fprintf(w, "  go version: %s\n", info.GoVersion)
		fmt.Fprintf(w, "  platform:   %s\n", info.Platform)
		fmt.Fprintf(w, "  backend:    %s\n", info.Backend)
		fmt.Fprintf(w, "  session:    %s\n", info.SessionFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print version string only")
	versionCmd.Flags().Bool("json", false, "output as JSON")
}
