package core

import (
	"time"
)

// Role classifies a Principal. There are exactly two roles: regular
// users created through the identity provider, and the single
// configured administrator.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AdminSentinelID is the fixed identifier embedded in admin session
// tokens. Admin identity is shared: posts in the admin namespace are
// not attributable to an individual administrator.
const AdminSentinelID = "00000000-0000-0000-0000-000000000000"

// Principal is the authenticated identity derived from a verified
// session token. It is reconstructed from token claims only and never
// re-checked against a store, so a role change does not take effect
// until the token expires.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Account is the identity-provider view of a user, returned from
// signup and signin.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// User is a locally stored credential record, used only by the
// "local" identity provider. The hosted provider keeps its own user
// table.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// BlogPost is a published article. Posts with IsAdminPost set belong
// to the shared admin namespace regardless of which admin wrote them;
// all other posts are owned by AuthorID.
type BlogPost struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"image_url,omitempty"`
	AuthorID       string    `json:"author_id"`
	AuthorEmail    string    `json:"author_email"`
	TwitterHandle  string    `json:"twitter_handle,omitempty"`
	LinkedinHandle string    `json:"linkedin_handle,omitempty"`
	IsAdminPost    bool      `json:"is_admin_post"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile is per-user presentation data. Created lazily on first
// write; there is at most one row per principal.
type Profile struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	Name            string    `json:"name,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BlogFilter narrows a blog listing. The zero value means no filter
// (the public listing). Listings are always ordered by creation time,
// newest first.
type BlogFilter struct {
	// AuthorID restricts the listing to posts authored by this
	// principal when non-empty.
	AuthorID string

	// AdminOnly restricts the listing to the admin namespace
	// (is_admin_post = true).
	AdminOnly bool
}
