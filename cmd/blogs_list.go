package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

var blogsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published blog posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		mine, _ := cmd.Flags().GetBool("mine")
		author, _ := cmd.Flags().GetString("author")

		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Info().Msg("Fetching blog posts...")

		var (
			posts       []core.BlogPost
			correlation string
		)
		switch {
		case mine:
			posts, correlation, err = cli.ListMyBlogs(cmd.Context())
		case author != "":
			posts, correlation, err = cli.ListBlogsByUser(cmd.Context(), author)
		default:
			posts, correlation, err = cli.ListBlogs(cmd.Context())
		}
		if err != nil {
			return logError(err, correlation, "failed to fetch blog posts")
		}

		log.Info().Msgf("Retrieved %d posts", len(posts))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"ID", "Title", "Author", "Admin", "Created",
		})

		for _, p := range posts {
			adminMark := ""
			if p.IsAdminPost {
				adminMark = greenCheck
			}
			t.AppendRow(table.Row{
				truncate(p.ID, 12),
				truncate(p.Title, 40),
				truncate(p.AuthorEmail, 30),
				adminMark,
				p.CreatedAt.Format(time.RFC3339),
			})
		}

		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func init() {
	blogsCmd.AddCommand(blogsListCmd)

	blogsListCmd.Flags().Bool("mine", false, "Only list the signed-in account's posts")
	blogsListCmd.Flags().String("author", "", "List posts of a specific author id")
}
