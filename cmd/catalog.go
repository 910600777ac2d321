package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/propuestas-project/propctl/internal/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show knowledge areas and subjects",
	Long: `Fetch the knowledge area and subject catalogs.

The ids shown here are the ones accepted by 'propctl register --area-id'
and 'propctl profile update'.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "output as JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newClient()
	if err != nil {
		return err
	}

	var (
		areas    []domain.Area
		subjects []domain.Subject
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		areas, err = client.ListAreas(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		subjects, err = client.ListSubjects(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOutput {
		if areas == nil {
			areas = []domain.Area{}
		}
		if subjects == nil {
			subjects = []domain.Subject{}
		}
		return printer.JSON(map[string]any{"areas": areas, "materias": subjects})
	}

	if err := printer.RenderCatalog(areas, subjects); err != nil {
		return err
	}
	printer.PrintHints("catalog")
	return nil
}
