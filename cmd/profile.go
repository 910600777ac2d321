package cmd

import (
	"github.com/spf13/cobra"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/session"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile of the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update knowledge areas or subjects",
	Long: `Update the knowledge areas (students and professors) or subjects
(professors) of your profile.

Examples:
  propctl profile update --area-id 3 --area-id 7
  propctl profile update --custom-area "Robótica educativa"
  propctl profile update --subject-id 12
  propctl profile update --clear-areas`,
	Args: cobra.NoArgs,
	RunE: runProfileUpdate,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)

	profileShowCmd.Flags().Bool("json", false, "output as JSON")

	f := profileUpdateCmd.Flags()
	f.Int64Slice("area-id", nil, "knowledge area id (repeatable)")
	f.Int64Slice("subject-id", nil, "subject id, professors only (repeatable)")
	f.StringSlice("custom-area", nil, "knowledge area not in the catalog (repeatable)")
	f.Bool("clear-areas", false, "remove every knowledge area, catalog and custom")
	f.Bool("clear-subjects", false, "remove every subject, professors only")
	profileUpdateCmd.MarkFlagsMutuallyExclusive("clear-areas", "area-id")
	profileUpdateCmd.MarkFlagsMutuallyExclusive("clear-areas", "custom-area")
	profileUpdateCmd.MarkFlagsMutuallyExclusive("clear-subjects", "subject-id")
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client, err := newClient()
	if err != nil {
		return err
	}

	var profile domain.Profile
	if session.Role(client.Store()) == domain.RoleProfessor {
		profile, err = client.GetProfessorProfile(cmd.Context())
	} else {
		profile, err = client.GetStudentProfile(cmd.Context())
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return printer.JSON(profile)
	}
	printer.Header("Perfil")
	if err := printer.RenderKeyValues(profile); err != nil {
		return err
	}
	printer.PrintHints("profile show")
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	f := cmd.Flags()

	var update domain.ProfileUpdate
	if f.Changed("area-id") {
		ids, _ := f.GetInt64Slice("area-id")
		update.AreaIDs = &ids
	}
	if f.Changed("subject-id") {
		ids, _ := f.GetInt64Slice("subject-id")
		update.SubjectIDs = &ids
	}
	if f.Changed("custom-area") {
		names, _ := f.GetStringSlice("custom-area")
		update.CustomAreas = &names
	}
	if ok, _ := f.GetBool("clear-areas"); ok {
		update.AreaIDs = &[]int64{}
		update.CustomAreas = &[]string{}
	}
	if ok, _ := f.GetBool("clear-subjects"); ok {
		update.SubjectIDs = &[]int64{}
	}
	if update.IsEmpty() {
		return usageError("nothing to update: pass --area-id, --subject-id, --custom-area or a --clear flag")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if session.Role(client.Store()) == domain.RoleProfessor {
		_, err = client.UpdateProfessorProfile(cmd.Context(), update)
	} else {
		if update.SubjectIDs != nil {
			return usageError("subjects are only available to professors")
		}
		_, err = client.UpdateStudentProfile(cmd.Context(), update)
	}
	if err != nil {
		return err
	}

	printer.Success("Perfil actualizado")
	return nil
}
