package cmd

import (
	"github.com/spf13/cobra"
)

// blogsCmd represents the blogs command
var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List and manage blog posts",
}

func init() {
	rootCmd.AddCommand(blogsCmd)
}
