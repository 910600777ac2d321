package cmd

import (
	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer students, professors and proposals",
	Long: `Administration commands. Require an administrator session.

Resources: alumnos, profesores, propuestas

Examples:
  propctl admin list alumnos
  propctl admin create profesores --set email=prof@escuela.mx --set nombre=Luis \
    --set apellido_paterno=Ríos --set-json is_admin=false
  propctl admin update alumnos 9 --set carrera=ISC
  propctl admin delete propuestas 12 --force
  propctl admin metrics --start 2025-01-01 --end 2025-06-30`,
}

var adminListCmd = &cobra.Command{
	Use:       "list <resource>",
	Short:     "List every row of a resource",
	Args:      cobra.ExactArgs(1),
	ValidArgs: adminKindArgs(),
	RunE:      runAdminList,
}

var adminCreateCmd = &cobra.Command{
	Use:   "create <resource>",
	Short: "Create a row",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCreate,
}

var adminUpdateCmd = &cobra.Command{
	Use:   "update <resource> <id>",
	Short: "Update a row",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminUpdate,
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Delete a row",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminDelete,
}

var adminMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show platform metrics",
	Args:  cobra.NoArgs,
	RunE:  runAdminMetrics,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminListCmd, adminCreateCmd, adminUpdateCmd, adminDeleteCmd, adminMetricsCmd)

	adminListCmd.Flags().Bool("json", false, "output as JSON")
	adminMetricsCmd.Flags().Bool("json", false, "output as JSON")

	for _, c := range []*cobra.Command{adminCreateCmd, adminUpdateCmd} {
		c.Flags().StringArray("set", nil, "field=value (repeatable)")
		c.Flags().StringArray("set-json", nil, "field=<json value> (repeatable)")
	}

	adminDeleteCmd.Flags().BoolP("force", "f", false, "delete without confirmation")

	adminMetricsCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	adminMetricsCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	adminMetricsCmd.MarkFlagsRequiredTogether("start", "end")
}

func adminKindArgs() []string {
	out := make([]string, len(domain.AdminKinds))
	for i, k := range domain.AdminKinds {
		out[i] = string(k)
	}
	return out
}

func parseAdminKind(s string) (domain.AdminKind, error) {
	kind, err := domain.ParseAdminKind(s)
	if err != nil {
		return "", usageError("%v", err)
	}
	return kind, nil
}

func adminRecord(cmd *cobra.Command) (domain.Record, error) {
	pairs, _ := cmd.Flags().GetStringArray("set")
	jsonPairs, _ := cmd.Flags().GetStringArray("set-json")
	rec, err := parseAssignments(pairs, jsonPairs)
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, usageError("no fields given: use --set or --set-json")
	}
	return rec, nil
}

func runAdminList(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	kind, err := parseAdminKind(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	records, err := client.ListAdmin(cmd.Context(), kind)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if records == nil {
			records = []domain.Record{}
		}
		return printer.JSON(records)
	}
	printer.Header(string(kind))
	if err := printer.RenderRecords(records); err != nil {
		return err
	}
	printer.PrintHints("admin list")
	return nil
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	kind, err := parseAdminKind(args[0])
	if err != nil {
		return err
	}
	rec, err := adminRecord(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	created, err := client.CreateAdmin(cmd.Context(), kind, rec)
	if err != nil {
		return err
	}

	if id, ok := created["id"]; ok {
		printer.Success("Registro creado en %s (id %v)", kind, id)
	} else {
		printer.Success("Registro creado en %s", kind)
	}
	return nil
}

func runAdminUpdate(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	kind, err := parseAdminKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	rec, err := adminRecord(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if _, err := client.UpdateAdmin(cmd.Context(), kind, id, rec); err != nil {
		return err
	}

	printer.Success("Registro %d de %s actualizado", id, kind)
	return nil
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	kind, err := parseAdminKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		printer.Warning("This will permanently delete %s %d", kind, id)
		return &output.CLIError{
			Summary:    "delete aborted",
			Suggestion: "Use --force to proceed without confirmation",
			ExitCode:   output.ExitUsageError,
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteAdmin(cmd.Context(), kind, id); err != nil {
		return err
	}

	printer.Success("Registro %d de %s eliminado", id, kind)
	return nil
}

func runAdminMetrics(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	client, err := newClient()
	if err != nil {
		return err
	}

	var metrics domain.Metrics
	if start != "" {
		metrics, err = client.AdminMetricsByDate(cmd.Context(), start, end)
	} else {
		metrics, err = client.AdminMetrics(cmd.Context())
	}
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printer.JSON(metrics)
	}
	printer.Header("Métricas")
	if err := printer.RenderKeyValues(metrics); err != nil {
		return err
	}
	printer.PrintHints("admin metrics")
	return nil
}
