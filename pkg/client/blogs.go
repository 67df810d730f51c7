package client

import (
	"context"

	"github.com/Brianali-codes/Remaya-full/internal/api"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/service"
)

// ListBlogs retrieves every published post, newest first. No session
// is required.
func (c *Client) ListBlogs(ctx context.Context) ([]core.BlogPost, string, error) {
	var posts []core.BlogPost
	correlation, err := c.get(ctx, c.url().
		setPath(api.BlogsRoute).
		build(), &posts)
	return posts, correlation, err
}

// GetBlog retrieves a single post by id. No session is required.
func (c *Client) GetBlog(ctx context.Context, id string) (*core.BlogPost, string, error) {
	var post core.BlogPost
	correlation, err := c.get(ctx, c.url().
		setPath(api.BlogByIDRoute).
		setPathParam("id", id).
		build(), &post)
	return &post, correlation, err
}

// ListMyBlogs retrieves the authenticated principal's own posts.
func (c *Client) ListMyBlogs(ctx context.Context) ([]core.BlogPost, string, error) {
	var posts []core.BlogPost
	correlation, err := c.get(ctx, c.url().
		setPath(api.MyBlogsRoute).
		build(), &posts)
	return posts, correlation, err
}

// ListBlogsByUser retrieves the posts of a specific author.
func (c *Client) ListBlogsByUser(ctx context.Context, userID string) ([]core.BlogPost, string, error) {
	var posts []core.BlogPost
	correlation, err := c.get(ctx, c.url().
		setPath(api.BlogsByUserRoute).
		setPathParam("userId", userID).
		build(), &posts)
	return posts, correlation, err
}

func (c *Client) CreateBlog(ctx context.Context, input service.CreateBlogInput) (*core.BlogPost, string, error) {
	var post core.BlogPost
	correlation, err := c.post(ctx, c.url().
		setPath(api.BlogsRoute).
		build(), input, &post)
	return &post, correlation, err
}

func (c *Client) UpdateBlog(ctx context.Context, id string, input service.UpdateBlogInput) (*core.BlogPost, string, error) {
	var post core.BlogPost
	correlation, err := c.put(ctx, c.url().
		setPath(api.BlogByIDRoute).
		setPathParam("id", id).
		build(), input, &post)
	return &post, correlation, err
}

func (c *Client) DeleteBlog(ctx context.Context, id string) (string, error) {
	return c.delete(ctx, c.url().
		setPath(api.BlogByIDRoute).
		setPathParam("id", id).
		build(), nil)
}
