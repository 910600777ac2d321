package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/api"
	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
	"github.com/propuestas-project/propctl/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Find matching professors or students",
	Long: `Search the other side of the platform. Students search professors
(ranked by recommendation confidence), professors search students.

With --interactive a prompt reads one query per line. At the prompt:
  :c N   open a conversation with result N
  :q     quit

Examples:
  propctl search aprendizaje automático
  propctl search redes --contact 1
  propctl search --interactive`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("interactive", "i", false, "read queries from stdin")
	searchCmd.Flags().Int("contact", 0, "open a conversation with result N after searching")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.MarkFlagsMutuallyExclusive("interactive", "json")
	searchCmd.MarkFlagsMutuallyExclusive("interactive", "contact")
}

func newSearchWorkflow(client *api.Client, printer *output.Printer) *search.Workflow {
	return search.New(client, client.Store(), logger,
		search.WithContactHandler(func(ctx context.Context, r domain.SearchResult) error {
			conv, err := client.CreateOrGetConversation(ctx, r.ID())
			if err != nil {
				return err
			}
			printer.Success("Conversación con %s abierta (id %d)", r.FullName(), conv.ID)
			return nil
		}),
	)
}

func runSearch(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	interactive, _ := cmd.Flags().GetBool("interactive")

	client, err := newClient()
	if err != nil {
		return err
	}
	w := newSearchWorkflow(client, printer)
	logger.Debug("search workflow ready", "target", string(w.Target()))

	if interactive {
		return runSearchPrompt(cmd, w, printer)
	}
	return runSearchOnce(cmd, w, printer, strings.Join(args, " "))
}

func runSearchOnce(cmd *cobra.Command, w *search.Workflow, printer *output.Printer, query string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	contact, _ := cmd.Flags().GetInt("contact")

	if !jsonOutput {
		// errors are returned and formatted by Execute
		w.OnChange(func(s search.State) {
			if s.Status != search.StatusError {
				printer.RenderSearch(s)
			}
		})
	}

	st := w.Submit(cmd.Context(), query)
	if st.Status == search.StatusError {
		return st.Err
	}

	if jsonOutput {
		return printer.JSON(st.Results)
	}
	if contact > 0 {
		return contactResult(cmd.Context(), w, st, contact)
	}
	printer.PrintHints("search")
	return nil
}

func runSearchPrompt(cmd *cobra.Command, w *search.Workflow, printer *output.Printer) error {
	ctx := cmd.Context()
	w.OnChange(printer.RenderSearch)

	target := "alumnos"
	if w.Target() == domain.KindProfessor {
		target = "profesores"
	}
	printer.Info("Búsqueda de %s. Escribe ':q' para salir.", target)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(printer.Out(), "> ")
		if !scanner.Scan() {
			fmt.Fprintln(printer.Out())
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == ":q" || line == ":quit":
			return nil
		case strings.HasPrefix(line, ":c"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":c")))
			if err != nil {
				printer.Warning("Uso: :c N")
				continue
			}
			if err := contactResult(ctx, w, w.State(), n); err != nil {
				printer.FormatAPIError(err)
			}
		default:
			w.Submit(ctx, line)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// contactResult contacts the n-th (1-based) result of st
func contactResult(ctx context.Context, w *search.Workflow, st search.State, n int) error {
	if st.Status != search.StatusSuccess || n < 1 || n > len(st.Results) {
		return usageError("no result number %d", n)
	}
	return w.Contact(ctx, st.Results[n-1])
}
