package core

import "context"

// IdentityProvider verifies and manages user credentials.
// Implementations: Supabase/GoTrue REST client, local bcrypt store.
type IdentityProvider interface {
	// Name returns the identifier of this provider (as used in config).
	Name() string

	// SignUp registers a new account for the given credentials.
	SignUp(ctx context.Context, email, password string) (*Account, error)

	// SignIn checks the credentials and returns the account on
	// success. Any rejection surfaces as ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (*Account, error)

	// UpdatePassword changes the password for the account identified
	// by email, after re-checking the current password.
	UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error
}

// BlogStore persists blog posts.
type BlogStore interface {
	CreateBlog(ctx context.Context, post *BlogPost) error

	// GetBlog returns the post with the given id, or ErrNotFound.
	GetBlog(ctx context.Context, id string) (*BlogPost, error)

	// ListBlogs returns posts matching the filter, newest first.
	ListBlogs(ctx context.Context, filter BlogFilter) ([]BlogPost, error)

	// UpdateBlog applies the update and returns the stored post, or
	// ErrNotFound.
	UpdateBlog(ctx context.Context, post *BlogPost) error

	DeleteBlog(ctx context.Context, id string) error
}

// ProfileStore persists user profiles keyed by principal id.
type ProfileStore interface {
	// GetProfile returns the profile for the given principal id, or
	// ErrNotFound when none has been written yet.
	GetProfile(ctx context.Context, id string) (*Profile, error)

	// UpsertProfile creates or updates the row for profile.ID.
	// Concurrent upserts resolve last-write-wins in the store; the
	// result is always exactly one row per id.
	UpsertProfile(ctx context.Context, profile *Profile) error
}

// UserStore persists local credential records. Only the "local"
// identity provider uses it.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
}
