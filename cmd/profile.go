package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Brianali-codes/Remaya-full/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in account's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Info().Msg("Fetching profile...")
		profile, correlation, err := cli.GetProfile(cmd.Context())
		if err != nil {
			return logError(err, correlation, "failed to fetch profile")
		}

		fmt.Println(bold("\n── Profile ──"))
		fmt.Printf("  %s:    %s\n", faint("ID"), profile.ID)
		fmt.Printf("  %s: %s\n", faint("Email"), profile.Email)
		fmt.Printf("  %s:  %s\n", faint("Name"), profile.Name)
		fmt.Printf("  %s:   %s\n", faint("Bio"), profile.Bio)
		return nil
	},
}

var (
	profileSetName string
	profileSetBio  string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the signed-in account's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		_, correlation, err := cli.UpdateProfile(cmd.Context(), service.ProfileUpdate{
			Name: profileSetName,
			Bio:  profileSetBio,
		})
		if err != nil {
			return logError(err, correlation, "failed to update profile")
		}

		logSuccess("profile updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileSetName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileSetBio, "bio", "", "Short bio")
}
