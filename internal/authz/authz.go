// Package authz centralizes the role and ownership rules. Every
// function here is a pure decision over a Principal, independent of
// HTTP and of the store, so the rules are testable in isolation.
package authz

import (
	"fmt"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// CanCreate decides whether the principal may create a post with the
// given admin flag. Posting into the admin namespace requires the
// admin role.
func CanCreate(principal *core.Principal, isAdminPost bool) error {
	if isAdminPost && !principal.IsAdmin() {
		return fmt.Errorf("%w: admin role required for admin posts", core.ErrForbidden)
	}
	return nil
}

// CanMutate decides whether the principal may update or delete the
// post. Mutation is restricted to the author, or to any admin.
func CanMutate(principal *core.Principal, post *core.BlogPost) error {
	if principal.IsAdmin() {
		return nil
	}
	if post.AuthorID == principal.ID {
		return nil
	}
	return fmt.Errorf("%w: not the author of post %s", core.ErrForbidden, post.ID)
}

// OwnListing returns the filter for the principal's "my blogs" view.
// Admins see the whole shared admin namespace (admin identity is not
// scoped to an individual admin); users see their own posts.
func OwnListing(principal *core.Principal) core.BlogFilter {
	if principal.IsAdmin() {
		return core.BlogFilter{AdminOnly: true}
	}
	return core.BlogFilter{AuthorID: principal.ID}
}

// ByAuthor returns the filter for a per-user listing. It is not
// owner-restricted: any authenticated caller may list another user's
// posts, matching the public-listing rule.
func ByAuthor(authorID string) core.BlogFilter {
	return core.BlogFilter{AuthorID: authorID}
}
