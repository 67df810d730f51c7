package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Brianali-codes/Remaya-full/internal/service"
)

var blogsCreateInput service.CreateBlogInput

var blogsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new blog post",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		post, correlation, err := cli.CreateBlog(cmd.Context(), blogsCreateInput)
		if err != nil {
			return logError(err, correlation, "failed to create blog post")
		}

		logSuccess("created post %s", bold(post.ID))
		return nil
	},
}

func init() {
	blogsCmd.AddCommand(blogsCreateCmd)

	blogsCreateCmd.Flags().StringVarP(&blogsCreateInput.Title, "title", "t", "", "Post title")
	blogsCreateCmd.Flags().StringVarP(&blogsCreateInput.Content, "content", "c", "", "Post content")
	blogsCreateCmd.Flags().StringVar(&blogsCreateInput.ImageURL, "image", "", "Cover image URL (optional)")
	blogsCreateCmd.Flags().StringVar(&blogsCreateInput.TwitterHandle, "twitter", "", "Author Twitter handle (optional)")
	blogsCreateCmd.Flags().StringVar(&blogsCreateInput.LinkedinHandle, "linkedin", "", "Author LinkedIn handle (optional)")
	blogsCreateCmd.Flags().BoolVar(&blogsCreateInput.IsAdminPost, "admin-post", false, "Publish into the shared admin namespace (admin only)")

	_ = blogsCreateCmd.MarkFlagRequired("title")
	_ = blogsCreateCmd.MarkFlagRequired("content")
}
