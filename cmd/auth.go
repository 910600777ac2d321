package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
	"github.com/propuestas-project/propctl/internal/session"
	"github.com/propuestas-project/propctl/internal/validate"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	Long: `Exchange your email and password for a session.

The password is read from --password or, with --password-stdin, from the
first line of standard input. The session is stored in session.file.

Examples:
  propctl login --email alumno@escuela.mx --password-stdin < pass.txt
  propctl login --email prof@escuela.mx --password 's3creta'`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"session-clear"},
	Short:   "End the session and delete the stored tokens",
	Args:    cobra.NoArgs,
	RunE:    runLogout,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect the stored session",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show who is logged in",
	Args:  cobra.NoArgs,
	RunE:  runSessionShow,
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email <token>",
	Short: "Confirm an email address with the emailed token",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerifyEmail,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, sessionCmd, verifyEmailCmd)
	sessionCmd.AddCommand(sessionShowCmd)

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")
	_ = loginCmd.MarkFlagRequired("email")

	sessionShowCmd.Flags().Bool("json", false, "output as JSON")
}

func runLogin(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")

	if fromStdin {
		var err error
		if password, err = readSecret(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return usageError("invalid --email %q", email)
	}
	if password == "" {
		return usageError("a password is required (--password or --password-stdin)")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Login(cmd.Context(), domain.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	shown := resp.UserEmail
	if shown == "" {
		shown = email
	}
	role := domain.Role(resp.UserType)
	printer.Success("Sesión iniciada como %s (%s)", shown, role.Label())
	if resp.FirstLogin && role == domain.RoleProfessor {
		printer.Warning("Es tu primer inicio de sesión: define tu contraseña con 'propctl password set'")
	}
	if resp.IsAdmin {
		printer.Info("Cuenta con permisos de administración")
	}
	printer.PrintHints("login")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	store, err := openStore()
	if err != nil {
		// an unreadable session file is discarded as well
		if rmErr := os.Remove(cfg.Session.File); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return rmErr
		}
	} else if err := store.Clear(); err != nil {
		return err
	}

	logger.Debug("session cleared", "file", cfg.Session.File)
	printer.Success("Sesión cerrada")
	printer.PrintHints("logout")
	return nil
}

type sessionView struct {
	LoggedIn     bool   `json:"logged_in"`
	UserEmail    string `json:"user_email,omitempty"`
	UserType     string `json:"user_type,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
	IsFirstLogin bool   `json:"is_first_login"`
	File         string `json:"file"`
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openStore()
	if err != nil {
		return err
	}

	sess, ok := session.Load(store)
	view := sessionView{
		LoggedIn:     ok,
		UserEmail:    sess.UserEmail,
		UserType:     string(sess.UserType),
		IsAdmin:      sess.IsAdmin,
		IsFirstLogin: sess.IsFirstLogin,
		File:         store.Path(),
	}
	if jsonOutput {
		return printer.JSON(view)
	}

	if !ok {
		printer.Info("No hay sesión activa")
		printer.PrintHints("logout")
		return nil
	}

	printer.Header("Sesión")
	t := printer.Table([]string{"KEY", "VALUE"})
	t.AddRow([]string{"email", view.UserEmail})
	t.AddRow([]string{"tipo", sess.UserType.Label()})
	t.AddRow([]string{"admin", boolText(view.IsAdmin)})
	t.AddRow([]string{"primer inicio", boolText(view.IsFirstLogin)})
	t.AddRow([]string{"archivo", view.File})
	return t.Render()
}

func runVerifyEmail(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	client, err := newClient()
	if err != nil {
		return err
	}

	res, err := client.VerifyEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !res.Verified {
		msg := res.Error
		if msg == "" {
			msg = res.Message
		}
		return &output.CLIError{
			Summary:  "No se pudo verificar el correo",
			Detail:   fmt.Sprintf("HTTP %d: %s", res.StatusCode, msg),
			ExitCode: output.ExitAPIError,
		}
	}

	msg := res.Message
	if msg == "" {
		msg = "Correo verificado"
	}
	printer.Success("%s", msg)
	printer.PrintHints("verify-email")
	return nil
}

func boolText(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
