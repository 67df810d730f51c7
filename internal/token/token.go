package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// DefaultTTL is the fixed validity window of a session token. Tokens
// are stateless: there is no revocation list, so the only exits from
// a valid session are expiry and client-side discard.
const DefaultTTL = 24 * time.Hour

const issuerName = "remaya"

// Claims are the payload embedded in a session token. The token is
// the sole source of truth for identity and role during its lifetime.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Minter signs session tokens.
type Minter struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewMinter(signingKey []byte, ttl time.Duration) *Minter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Minter{
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Mint signs a token embedding the principal's identity and role.
// expiresAt is always issuedAt + the configured TTL.
func (m *Minter) Mint(principal *core.Principal) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	claims := &Claims{
		Email: principal.Email,
		Role:  string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, exp, nil
}

// Verifier validates session tokens and reconstructs the Principal
// from the embedded claims. No store lookup happens here.
type Verifier struct {
	signingKey []byte
	now        func() time.Time
}

func NewVerifier(signingKey []byte) *Verifier {
	return &Verifier{
		signingKey: signingKey,
		now:        time.Now,
	}
}

// Verify returns the Principal embedded in the token.
// Failure kinds:
//   - core.ErrUnauthenticated when tokenStr is empty,
//   - core.ErrTokenExpired when the expiry has passed,
//   - core.ErrInvalidToken for every other validation failure.
func (v *Verifier) Verify(tokenStr string) (*core.Principal, error) {
	if tokenStr == "" {
		return nil, core.ErrUnauthenticated
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.signingKey, nil
	}, jwt.WithTimeFunc(v.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", core.ErrTokenExpired, "expiry passed")
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, core.ErrInvalidToken
	}

	role := core.Role(claims.Role)
	if role != core.RoleUser && role != core.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", core.ErrInvalidToken, claims.Role)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", core.ErrInvalidToken)
	}

	return &core.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
	}, nil
}
