package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Brianali-codes/Remaya-full/internal/audit"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/token"
)

// AdminCredential is the single built-in administrator credential
// pair. The admin is not a row in a user table; admin identity is the
// shared sentinel principal.
type AdminCredential struct {
	Email        string
	PasswordHash []byte
}

// SessionResult is the outcome of a successful signin.
type SessionResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Account   core.Account `json:"user"`
	IsAdmin   bool         `json:"is_admin,omitempty"`
}

// SessionService is the session issuer: it authenticates a login
// attempt and mints a signed, time-limited token embedding identity
// and role.
type SessionService struct {
	provider core.IdentityProvider
	profiles core.ProfileStore
	minter   *token.Minter
	admin    AdminCredential
	auditor  core.Auditor
	timeout  time.Duration
}

func NewSessionService(
	provider core.IdentityProvider,
	profiles core.ProfileStore,
	minter *token.Minter,
	admin AdminCredential,
	auditor core.Auditor,
	timeout time.Duration,
) *SessionService {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SessionService{
		provider: provider,
		profiles: profiles,
		minter:   minter,
		admin:    admin,
		auditor:  auditor,
		timeout:  timeout,
	}
}

func (s *SessionService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// SignUp registers an account with the identity provider and lazily
// creates an empty profile for it. A profile write failure does not
// fail the signup; the profile is created again on first write.
func (s *SessionService) SignUp(ctx context.Context, email, password string) (*core.Account, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	account, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.profiles.UpsertProfile(ctx, &core.Profile{
		ID:        account.ID,
		Email:     account.Email,
		UpdatedAt: now,
	}); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("account", account.ID).
			Msg("profile creation after signup failed")
	}

	return account, nil
}

// SignIn authenticates a user against the identity provider and mints
// a session token with role=user.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*SessionResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	boundCtx, cancel := s.bound(ctx)
	defer cancel()

	account, err := s.provider.SignIn(boundCtx, email, password)
	if err != nil {
		s.auditSignin(ctx, "session.signin", email, "", "", err)
		return nil, err
	}

	principal := &core.Principal{
		ID:    account.ID,
		Email: account.Email,
		Role:  core.RoleUser,
	}
	signed, exp, err := s.minter.Mint(principal)
	if err != nil {
		return nil, err
	}
	s.auditSignin(ctx, "session.signin", email, account.ID, signed, nil)

	return &SessionResult{
		Token:     signed,
		ExpiresAt: exp,
		Account:   *account,
	}, nil
}

// AdminSignIn authenticates against the configured administrator
// credential pair and mints a session token carrying the shared admin
// sentinel identity. Failures never distinguish whether the email or
// the password was wrong.
func (s *SessionService) AdminSignIn(ctx context.Context, email, password string) (*SessionResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	// evaluate both checks unconditionally
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(s.admin.PasswordHash, []byte(password)) == nil
	if !emailOK || !passwordOK {
		s.auditSignin(ctx, "session.admin_signin", email, "", "", core.ErrInvalidCredentials)
		return nil, core.ErrInvalidCredentials
	}

	principal := &core.Principal{
		ID:    core.AdminSentinelID,
		Email: s.admin.Email,
		Role:  core.RoleAdmin,
	}
	signed, exp, err := s.minter.Mint(principal)
	if err != nil {
		return nil, err
	}
	s.auditSignin(ctx, "session.admin_signin", email, core.AdminSentinelID, signed, nil)

	return &SessionResult{
		Token:     signed,
		ExpiresAt: exp,
		Account:   core.Account{ID: core.AdminSentinelID, Email: s.admin.Email},
		IsAdmin:   true,
	}, nil
}

// ChangePassword delegates the password update to the identity
// provider for the authenticated principal.
func (s *SessionService) ChangePassword(ctx context.Context, principal *core.Principal, currentPassword, newPassword string) error {
	if newPassword == "" {
		return core.Invalid("newPassword", "required")
	}
	if principal.IsAdmin() {
		// the admin credential lives in server config, not in the
		// identity provider
		return core.ErrForbidden
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.provider.UpdatePassword(ctx, principal.Email, currentPassword, newPassword)
}

func (s *SessionService) auditSignin(ctx context.Context, action, email, principalID, signedToken string, cause error) {
	entry := core.AuditEntry{
		ID:          correlationID(ctx),
		Time:        time.Now().UTC(),
		Action:      action,
		Email:       email,
		PrincipalID: principalID,
		Granted:     cause == nil,
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if signedToken != "" {
		entry.TokenFingerprint = audit.Fingerprint(signedToken)
	}
	if err := s.auditor.Log(entry); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to write audit log")
	}
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return core.Invalid("email", "required")
	}
	if password == "" {
		return core.Invalid("password", "required")
	}
	return nil
}
