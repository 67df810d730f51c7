package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Brianali-codes/Remaya-full/internal/api/presenter"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/token"
)

type principalKeyType struct{}

var principalKey principalKeyType

// PrincipalCtx retrieves the authenticated principal attached by
// RequireAuth. Nil on unprotected routes.
func PrincipalCtx(ctx context.Context) *core.Principal {
	p, _ := ctx.Value(principalKey).(*core.Principal)
	return p
}

const bearerScheme = "Bearer "

// bearerToken extracts the token from an Authorization header. Only
// the Bearer scheme is accepted; anything else counts as missing
// credentials, not as a malformed token.
func bearerToken(header string) string {
	if len(header) < len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}

// RequireAuth is the access gate: it extracts the bearer token,
// verifies it, and attaches the resolved principal to the request
// context before any handler logic runs. It reads no request body
// and mutates no state.
//
// Status classification: a missing token is 401; an expired or
// otherwise invalid token is 403.
func RequireAuth(verifier *token.Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r.Header.Get("Authorization"))

			principal, err := verifier.Verify(tokenStr)
			if err != nil {
				status := http.StatusForbidden
				if errors.Is(err, core.ErrUnauthenticated) {
					status = http.StatusUnauthorized
				}
				presenter.Error(w, r, publicAuthError(err), status)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin restricts a route to the admin role. It must run
// inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalCtx(r.Context())
		if principal == nil {
			presenter.Error(w, r, core.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}
		if !principal.IsAdmin() {
			presenter.Error(w, r, core.ErrForbidden.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// publicAuthError keeps verification failures down to their sentinel
// message; parser details stay in internal logs only.
func publicAuthError(err error) string {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return core.ErrUnauthenticated.Error()
	case errors.Is(err, core.ErrTokenExpired):
		return core.ErrTokenExpired.Error()
	default:
		return core.ErrInvalidToken.Error()
	}
}
