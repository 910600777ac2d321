package cmd

import (
	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/validate"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change or reset passwords",
	Long: `Change or reset account passwords.

Examples:
  propctl password change --current vieja --new nueva
  propctl password set --new nueva          # professors, first login
  propctl password reset-request --email ana@escuela.mx
  propctl password reset <token> --new nueva`,
}

var passwordChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Change the password of the current user",
	Args:  cobra.NoArgs,
	RunE:  runPasswordChange,
}

var passwordSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a professor's password on first login",
	Args:  cobra.NoArgs,
	RunE:  runPasswordSet,
}

var passwordResetRequestCmd = &cobra.Command{
	Use:   "reset-request",
	Short: "Email a password reset link",
	Args:  cobra.NoArgs,
	RunE:  runPasswordResetRequest,
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset <token>",
	Short: "Set a new password with an emailed reset token",
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswordReset,
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordChangeCmd, passwordSetCmd, passwordResetRequestCmd, passwordResetCmd)

	passwordChangeCmd.Flags().String("current", "", "current password")
	_ = passwordChangeCmd.MarkFlagRequired("current")

	for _, c := range []*cobra.Command{passwordChangeCmd, passwordSetCmd, passwordResetCmd} {
		c.Flags().String("new", "", "new password")
		c.Flags().String("confirm", "", "new password confirmation (defaults to --new)")
		_ = c.MarkFlagRequired("new")
	}

	passwordResetRequestCmd.Flags().String("email", "", "account email")
	_ = passwordResetRequestCmd.MarkFlagRequired("email")
}

func newPasswordPair(cmd *cobra.Command) domain.PasswordPair {
	pw, _ := cmd.Flags().GetString("new")
	confirm, _ := cmd.Flags().GetString("confirm")
	if confirm == "" {
		confirm = pw
	}
	return domain.PasswordPair{Password: pw, ConfirmPassword: confirm}
}

func runPasswordChange(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	current, _ := cmd.Flags().GetString("current")
	pair := newPasswordPair(cmd)

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ChangePassword(cmd.Context(), domain.PasswordChange{
		CurrentPassword: current,
		NewPassword:     pair.Password,
		ConfirmPassword: pair.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	printer.Success("%s", messageOr(resp.Message, "Contraseña actualizada"))
	return nil
}

func runPasswordSet(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ChangeProfessorPassword(cmd.Context(), newPasswordPair(cmd))
	if err != nil {
		return err
	}
	printer.Success("%s", messageOr(resp.Message, "Contraseña actualizada"))
	return nil
}

func runPasswordResetRequest(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	email, _ := cmd.Flags().GetString("email")
	if err := validate.Var(email, "required,email"); err != nil {
		return usageError("invalid --email %q", email)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.RequestPasswordReset(cmd.Context(), email)
	if err != nil {
		return err
	}
	printer.Success("%s", messageOr(resp.Message, "Revisa tu correo para restablecer la contraseña"))
	return nil
}

func runPasswordReset(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.ResetPassword(cmd.Context(), args[0], newPasswordPair(cmd))
	if err != nil {
		return err
	}
	printer.Success("%s", messageOr(resp.Message, "Contraseña restablecida"))
	printer.PrintHints("password reset")
	return nil
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
