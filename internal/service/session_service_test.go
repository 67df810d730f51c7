package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Brianali-codes/Remaya-full/internal/audit"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/identity/local"
	"github.com/Brianali-codes/Remaya-full/internal/store"
	"github.com/Brianali-codes/Remaya-full/internal/token"
)

const (
	adminEmail    = "admin@remaya.org"
	adminPassword = "swordfish-swordfish"
	signingSecret = "0123456789abcdef0123456789abcdef"
)

func newSessionService(t *testing.T, auditor core.Auditor) (*SessionService, *token.Verifier) {
	t.Helper()

	mem := store.NewMemory()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing admin password: %v", err)
	}

	svc := NewSessionService(
		local.New(mem),
		mem,
		token.NewMinter([]byte(signingSecret), time.Hour),
		AdminCredential{Email: adminEmail, PasswordHash: hash},
		auditor,
		time.Second,
	)
	return svc, token.NewVerifier([]byte(signingSecret))
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, verifier := newSessionService(t, nil)
	ctx := context.Background()

	account, err := svc.SignUp(ctx, "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if account.ID == "" {
		t.Fatal("SignUp returned empty account id")
	}

	result, err := svc.SignIn(ctx, "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if result.IsAdmin {
		t.Error("regular signin flagged as admin")
	}

	principal, err := verifier.Verify(result.Token)
	if err != nil {
		t.Fatalf("verifying issued token: %v", err)
	}
	if principal.ID != account.ID {
		t.Errorf("token subject = %q, want %q", principal.ID, account.ID)
	}
	if principal.Role != core.RoleUser {
		t.Errorf("token role = %q, want %q", principal.Role, core.RoleUser)
	}
}

func TestSignInRejectionsAreGeneric(t *testing.T) {
	svc, _ := newSessionService(t, nil)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "known@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "hunter22"},
		{"wrong password", "known@example.com", "wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(ctx, tt.email, tt.password)
			if !errors.Is(err, core.ErrInvalidCredentials) {
				t.Fatalf("SignIn error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestSignInValidation(t *testing.T) {
	svc, _ := newSessionService(t, nil)
	ctx := context.Background()

	if _, err := svc.SignIn(ctx, "", "pw"); !core.IsValidation(err) {
		t.Errorf("empty email error = %v, want validation error", err)
	}
	if _, err := svc.SignIn(ctx, "a@b.c", ""); !core.IsValidation(err) {
		t.Errorf("empty password error = %v, want validation error", err)
	}
}

func TestAdminSignIn(t *testing.T) {
	svc, verifier := newSessionService(t, nil)
	ctx := context.Background()

	result, err := svc.AdminSignIn(ctx, adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("AdminSignIn: %v", err)
	}
	if !result.IsAdmin {
		t.Error("admin signin not flagged as admin")
	}

	principal, err := verifier.Verify(result.Token)
	if err != nil {
		t.Fatalf("verifying admin token: %v", err)
	}
	if principal.ID != core.AdminSentinelID {
		t.Errorf("admin subject = %q, want the sentinel id", principal.ID)
	}
	if !principal.IsAdmin() {
		t.Error("admin principal does not report IsAdmin")
	}
}

func TestAdminSignInRejections(t *testing.T) {
	svc, _ := newSessionService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", adminEmail, "wrong"},
		{"wrong email", "other@example.com", adminPassword},
		{"both wrong", "other@example.com", "wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.AdminSignIn(ctx, tt.email, tt.password)
			if !errors.Is(err, core.ErrInvalidCredentials) {
				t.Fatalf("AdminSignIn error = %v, want ErrInvalidCredentials", err)
			}
			if result != nil {
				t.Fatal("rejected admin signin returned a session")
			}
		})
	}
}

func TestSigninsAreAudited(t *testing.T) {
	auditor := audit.NewInMemoryAuditor()
	svc, _ := newSessionService(t, auditor)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "user@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := svc.SignIn(ctx, "user@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if _, err := svc.AdminSignIn(ctx, adminEmail, "wrong"); err == nil {
		t.Fatal("expected admin signin to fail")
	}

	entries, err := auditor.GetRecent(10)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d audit entries, want 2", len(entries))
	}

	var granted, denied int
	for _, e := range entries {
		if e.Granted {
			granted++
			if e.TokenFingerprint == "" {
				t.Error("granted entry missing token fingerprint")
			}
		} else {
			denied++
			if e.Error == "" {
				t.Error("denied entry missing error")
			}
		}
	}
	if granted != 1 || denied != 1 {
		t.Errorf("granted=%d denied=%d, want 1 and 1", granted, denied)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newSessionService(t, nil)
	ctx := context.Background()

	account, err := svc.SignUp(ctx, "user@example.com", "old-password")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	principal := &core.Principal{ID: account.ID, Email: account.Email, Role: core.RoleUser}

	if err := svc.ChangePassword(ctx, principal, "wrong", "next"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Fatalf("wrong current password error = %v, want ErrInvalidCredentials", err)
	}
	if err := svc.ChangePassword(ctx, principal, "old-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.SignIn(ctx, "user@example.com", "new-password"); err != nil {
		t.Fatalf("signin after rotation: %v", err)
	}

	// the admin credential is config-managed, not provider-managed
	admin := &core.Principal{ID: core.AdminSentinelID, Email: adminEmail, Role: core.RoleAdmin}
	if err := svc.ChangePassword(ctx, admin, adminPassword, "next"); !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("admin password change error = %v, want ErrForbidden", err)
	}
}
