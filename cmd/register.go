package cmd

import (
	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/validate"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a student account",
	Long: `Register a new student account. A verification email is sent to the
address; confirm it with 'propctl verify-email <token>' before logging in.

Examples:
  propctl register --email ana@escuela.mx --password-stdin \
    --name Ana --last-name López --boleta 2020630001 \
    --career ISC --plan 2020 --area-id 3 --area-id 7 < pass.txt`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	f := registerCmd.Flags()
	f.String("email", "", "account email")
	f.String("password", "", "account password")
	f.Bool("password-stdin", false, "read the password from stdin")
	f.String("confirm-password", "", "password confirmation (defaults to the password)")
	f.String("name", "", "first name")
	f.String("last-name", "", "first surname")
	f.String("second-last-name", "", "second surname")
	f.String("boleta", "", "student id")
	f.String("career", "", "career")
	f.String("plan", "", "study plan")
	f.Int64Slice("area-id", nil, "knowledge area id (repeatable)")
	f.StringSlice("custom-area", nil, "knowledge area not in the catalog (repeatable)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("last-name")
}

func runRegister(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	f := cmd.Flags()

	in := domain.RegistrationInput{}
	in.Email, _ = f.GetString("email")
	in.Password, _ = f.GetString("password")
	in.ConfirmPassword, _ = f.GetString("confirm-password")
	in.Name, _ = f.GetString("name")
	in.LastNamePaternal, _ = f.GetString("last-name")
	in.LastNameMaternal, _ = f.GetString("second-last-name")
	in.StudentID, _ = f.GetString("boleta")
	in.Career, _ = f.GetString("career")
	in.StudyPlan, _ = f.GetString("plan")
	in.AreaIDs, _ = f.GetInt64Slice("area-id")
	in.CustomAreas, _ = f.GetStringSlice("custom-area")

	if fromStdin, _ := f.GetBool("password-stdin"); fromStdin {
		var err error
		if in.Password, err = readSecret(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return usageError("invalid --email %q", in.Email)
	}
	if in.Password == "" {
		return usageError("a password is required (--password or --password-stdin)")
	}
	if in.ConfirmPassword == "" {
		in.ConfirmPassword = in.Password
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Register(cmd.Context(), in)
	if err != nil {
		return err
	}

	msg := resp.Message
	if msg == "" {
		msg = "Registro completado"
	}
	printer.Success("%s", msg)
	if resp.HasTokens() {
		printer.Info("Sesión iniciada como %s", in.Email)
	}
	printer.PrintHints("register")
	return nil
}
