package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate man pages or markdown reference",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().String("format", "man", "output format: man or markdown")
	docsCmd.Flags().StringP("output", "o", "docs", "output directory")
}

func runDocs(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	dir, _ := cmd.Flags().GetString("output")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	switch format {
	case "man":
		header := &doc.GenManHeader{Title: "PROPCTL", Section: "1", Source: "propctl " + version}
		if err := doc.GenManTree(root, header, dir); err != nil {
			return fmt.Errorf("generating man pages: %w", err)
		}
	case "markdown", "md":
		if err := doc.GenMarkdownTree(root, dir); err != nil {
			return fmt.Errorf("generating markdown: %w", err)
		}
	default:
		return usageError("unknown docs format %q (must be man or markdown)", format)
	}

	logger.Debug("docs generated", "format", format, "dir", dir)
	newPrinter(cmd).Success("Documentation written to %s", dir)
	return nil
}
