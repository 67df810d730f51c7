package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Brianali-codes/Remaya-full/internal/authz"
	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// CreateBlogInput is the validated payload for a new post.
type CreateBlogInput struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	ImageURL       string `json:"image_url"`
	TwitterHandle  string `json:"twitter_handle"`
	LinkedinHandle string `json:"linkedin_handle"`
	IsAdminPost    bool   `json:"is_admin_post"`
}

// UpdateBlogInput carries the mutable fields of a post.
type UpdateBlogInput struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	ImageURL       string `json:"image_url"`
	TwitterHandle  string `json:"twitter_handle"`
	LinkedinHandle string `json:"linkedin_handle"`
}

// BlogService owns post CRUD. Authorization decisions are delegated
// to the authz package; the service only sequences them with the
// store.
type BlogService struct {
	blogs   core.BlogStore
	timeout time.Duration
}

func NewBlogService(blogs core.BlogStore, timeout time.Duration) *BlogService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BlogService{blogs: blogs, timeout: timeout}
}

func (s *BlogService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *BlogService) Create(ctx context.Context, principal *core.Principal, input CreateBlogInput) (*core.BlogPost, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, core.Invalid("title", "required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, core.Invalid("content", "required")
	}
	if err := authz.CanCreate(principal, input.IsAdminPost); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &core.BlogPost{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Content:        input.Content,
		ImageURL:       input.ImageURL,
		AuthorID:       principal.ID,
		AuthorEmail:    principal.Email,
		TwitterHandle:  input.TwitterHandle,
		LinkedinHandle: input.LinkedinHandle,
		IsAdminPost:    input.IsAdminPost,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.blogs.CreateBlog(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPublic returns every post, newest first. Intentionally
// unfiltered; single posts are public by id as well.
func (s *BlogService) ListPublic(ctx context.Context) ([]core.BlogPost, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.blogs.ListBlogs(ctx, core.BlogFilter{})
}

// ListMine returns the principal's own view: the shared admin
// namespace for admins, the principal's posts for users.
func (s *BlogService) ListMine(ctx context.Context, principal *core.Principal) ([]core.BlogPost, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.blogs.ListBlogs(ctx, authz.OwnListing(principal))
}

// ListByAuthor returns posts authored by the given user. Not
// owner-restricted; any authenticated caller may use it.
func (s *BlogService) ListByAuthor(ctx context.Context, authorID string) ([]core.BlogPost, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.blogs.ListBlogs(ctx, authz.ByAuthor(authorID))
}

func (s *BlogService) Get(ctx context.Context, id string) (*core.BlogPost, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.blogs.GetBlog(ctx, id)
}

func (s *BlogService) Update(ctx context.Context, principal *core.Principal, id string, input UpdateBlogInput) (*core.BlogPost, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, core.Invalid("title", "required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, core.Invalid("content", "required")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	post, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(principal, post); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Content = input.Content
	post.ImageURL = input.ImageURL
	post.TwitterHandle = input.TwitterHandle
	post.LinkedinHandle = input.LinkedinHandle
	post.UpdatedAt = time.Now().UTC()

	if err := s.blogs.UpdateBlog(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, principal *core.Principal, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	post, err := s.blogs.GetBlog(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(principal, post); err != nil {
		return err
	}
	return s.blogs.DeleteBlog(ctx, id)
}
