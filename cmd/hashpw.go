package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// hashpwCmd generates the bcrypt hash expected by
// auth.admin_password_hash in the server configuration.
var hashpwCmd = &cobra.Command{
	Use:   "hashpw <password>",
	Short: "Generate a bcrypt hash for the server configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, _ := cmd.Flags().GetInt("cost")

		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		fmt.Println(string(hash))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashpwCmd)

	hashpwCmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
}
