package cmd

import (
	"github.com/spf13/cobra"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check the auth audit log (admin only)",
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
