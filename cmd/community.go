package cmd

import (
	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Conversations with other users",
}

var chatOpenCmd = &cobra.Command{
	Use:   "open <user-id>",
	Short: "Open (or create) the conversation with a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatOpen,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a problem with the platform",
	Long: `Send a problem report. No session is required; when you are logged in,
your email is used unless --email is given.

Examples:
  propctl report --type bug --description "La búsqueda no muestra resultados"`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(chatCmd, reportCmd)
	chatCmd.AddCommand(chatOpenCmd)

	chatOpenCmd.Flags().Bool("json", false, "output as JSON")

	reportCmd.Flags().String("type", "general", "problem type")
	reportCmd.Flags().String("description", "", "what went wrong")
	reportCmd.Flags().String("email", "", "contact email")
	_ = reportCmd.MarkFlagRequired("description")
}

func runChatOpen(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	conv, err := client.CreateOrGetConversation(cmd.Context(), id)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printer.JSON(conv)
	}
	printer.Success("Conversación abierta (id %d)", conv.ID)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	var report domain.ProblemReport
	report.Type, _ = cmd.Flags().GetString("type")
	report.Description, _ = cmd.Flags().GetString("description")
	report.Email, _ = cmd.Flags().GetString("email")

	client, err := newClient()
	if err != nil {
		return err
	}
	if report.Email == "" {
		if sess, ok := session.Load(client.Store()); ok {
			report.Email = sess.UserEmail
		}
	}

	if _, err := client.SubmitProblemReport(cmd.Context(), report); err != nil {
		return err
	}
	printer.Success("Reporte enviado. Gracias.")
	return nil
}
