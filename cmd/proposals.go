package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
)

var proposalsCmd = &cobra.Command{
	Use:     "proposals",
	Aliases: []string{"proposal", "p"},
	Short:   "Publish and browse proposals",
	Long: `Publish, browse and manage research and project proposals.

Examples:
  propctl proposals list
  propctl proposals mine --json
  propctl proposals create --name "Visión por computadora" --objective "..." \
    --students 2 --professors 1 --keyword visión --area IA --contact ana@escuela.mx
  propctl proposals create --file propuesta.json
  propctl proposals visibility 12 off
  propctl proposals delete 12`,
}

var proposalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals visible to you",
	Args:  cobra.NoArgs,
	RunE:  runProposalsList,
}

var proposalsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List proposals you authored",
	Args:  cobra.NoArgs,
	RunE:  runProposalsMine,
}

var proposalsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsShow,
}

var proposalsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new proposal",
	Args:  cobra.NoArgs,
	RunE:  runProposalsCreate,
}

var proposalsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsUpdate,
}

var proposalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalsDelete,
}

var proposalsVisibilityCmd = &cobra.Command{
	Use:       "visibility <id> on|off",
	Short:     "Show or hide a proposal",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"on", "off"},
	RunE:      runProposalsVisibility,
}

func init() {
	rootCmd.AddCommand(proposalsCmd)
	proposalsCmd.AddCommand(
		proposalsListCmd,
		proposalsMineCmd,
		proposalsShowCmd,
		proposalsCreateCmd,
		proposalsUpdateCmd,
		proposalsDeleteCmd,
		proposalsVisibilityCmd,
	)

	for _, c := range []*cobra.Command{proposalsListCmd, proposalsMineCmd, proposalsShowCmd} {
		c.Flags().Bool("json", false, "output as JSON")
	}

	for _, c := range []*cobra.Command{proposalsCreateCmd, proposalsUpdateCmd} {
		f := c.Flags()
		f.String("file", "", "read the proposal from a JSON file ('-' for stdin)")
		f.String("name", "", "proposal name")
		f.String("objective", "", "proposal objective")
		f.Int("students", 0, "number of students wanted")
		f.Int("professors", 0, "number of professors wanted")
		f.StringArray("requirement", nil, "requirement line (repeatable)")
		f.StringArray("keyword", nil, "keyword (repeatable)")
		f.StringArray("area", nil, "knowledge area name (repeatable)")
		f.String("type", "", "proposal type")
		f.StringArray("contact", nil, "contact entry (repeatable)")
		f.Bool("visible", true, "publish the proposal as visible")
		c.MarkFlagsMutuallyExclusive("file", "name")
	}
}

func runProposalsList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	proposals, err := client.ListProposals(cmd.Context())
	if err != nil {
		return err
	}
	return renderProposalList(cmd, "proposals list", proposals)
}

func runProposalsMine(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	proposals, err := client.ListOwnProposals(cmd.Context())
	if err != nil {
		return err
	}
	return renderProposalList(cmd, "proposals mine", proposals)
}

func renderProposalList(cmd *cobra.Command, hint string, proposals []domain.Proposal) error {
	printer := newPrinter(cmd)
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if proposals == nil {
			proposals = []domain.Proposal{}
		}
		return printer.JSON(proposals)
	}
	if err := printer.RenderProposals(proposals); err != nil {
		return err
	}
	printer.PrintHints(hint)
	return nil
}

func runProposalsShow(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	proposals, err := client.ListProposals(cmd.Context())
	if err != nil {
		return err
	}

	for _, pr := range proposals {
		if pr.ID != id {
			continue
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printer.JSON(pr)
		}
		printer.RenderProposal(pr)
		return nil
	}
	return &output.CLIError{
		Summary:    fmt.Sprintf("proposal %d not found", id),
		Suggestion: "Run 'propctl proposals list' to see available proposals",
		ExitCode:   output.ExitGeneral,
	}
}

// proposalInput builds the write payload from --file or from the field flags
func proposalInput(cmd *cobra.Command) (domain.ProposalInput, error) {
	f := cmd.Flags()
	var in domain.ProposalInput

	if path, _ := f.GetString("file"); path != "" {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return in, usageError("cannot read %s: %v", path, err)
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return in, usageError("invalid proposal JSON in %s: %v", path, err)
		}
	} else {
		in.Name, _ = f.GetString("name")
		in.Objective, _ = f.GetString("objective")
		in.StudentCount, _ = f.GetInt("students")
		in.ProfessorCount, _ = f.GetInt("professors")
		in.Requirements, _ = f.GetStringArray("requirement")
		in.Keywords, _ = f.GetStringArray("keyword")
		in.Areas, _ = f.GetStringArray("area")
		in.Type, _ = f.GetString("type")
		in.Contacts, _ = f.GetStringArray("contact")
		if in.Name == "" {
			return in, usageError("--name or --file is required")
		}
	}

	// visibility has its own endpoint; an update leaves it alone unless asked
	if f.Changed("visible") || (in.Visible == nil && cmd.Name() == "create") {
		visible, _ := f.GetBool("visible")
		in.Visible = &visible
	}
	in.Requirements = nonNil(in.Requirements)
	in.Keywords = nonNil(in.Keywords)
	in.Areas = nonNil(in.Areas)
	in.Contacts = nonNil(in.Contacts)
	return in, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func runProposalsCreate(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	in, err := proposalInput(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	created, err := client.CreateProposal(cmd.Context(), in)
	if err != nil {
		return err
	}

	printer.Success("Propuesta creada (id %d)", created.ID)
	printer.PrintHints("proposals create")
	return nil
}

func runProposalsUpdate(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	in, err := proposalInput(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if _, err := client.UpdateProposal(cmd.Context(), id, in); err != nil {
		return err
	}

	printer.Success("Propuesta %d actualizada", id)
	return nil
}

func runProposalsDelete(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteProposal(cmd.Context(), id); err != nil {
		return err
	}

	printer.Success("Propuesta %d eliminada", id)
	return nil
}

func runProposalsVisibility(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var visible bool
	switch args[1] {
	case "on":
		visible = true
	case "off":
		visible = false
	default:
		return usageError("invalid visibility %q, expected on or off", args[1])
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.SetProposalVisibility(cmd.Context(), id, visible); err != nil {
		return err
	}

	printer.Success("Propuesta %d %s", id, printer.VisibilityBadge(visible))
	return nil
}
