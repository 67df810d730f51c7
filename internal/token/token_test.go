package token

import (
	"errors"
	"testing"
	"time"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMintVerify_RoundTrip(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	minter := NewMinter(testKey, 0)
	minter.now = fixedClock(issued)

	principal := &core.Principal{
		ID:    "b2f7c6be-8a4e-4a3d-9a6e-0f1f2e3d4c5b",
		Email: "writer@example.org",
		Role:  core.RoleUser,
	}

	signed, exp, err := minter.Mint(principal)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if want := issued.Add(DefaultTTL); !exp.Equal(want) {
		t.Errorf("expiry = %v, want issuedAt + 24h = %v", exp, want)
	}

	verifier := NewVerifier(testKey)
	verifier.now = fixedClock(issued.Add(23 * time.Hour))

	got, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if *got != *principal {
		t.Errorf("principal = %+v, want %+v", got, principal)
	}
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	minter := NewMinter(testKey, time.Hour)
	minter.now = fixedClock(issued)

	signed, _, err := minter.Mint(&core.Principal{
		ID: "u1", Email: "a@b.c", Role: core.RoleUser,
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	verifier := NewVerifier(testKey)
	verifier.now = fixedClock(issued.Add(2 * time.Hour))

	_, err = verifier.Verify(signed)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
	// expiry must never be classified as a generic invalid token
	if errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("expired token also classified as ErrInvalidToken")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	minter := NewMinter(testKey, 0)
	signed, _, err := minter.Mint(&core.Principal{
		ID: "u1", Email: "a@b.c", Role: core.RoleUser,
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	verifier := NewVerifier([]byte("another-key-another-key-another!"))
	if _, err := verifier.Verify(signed); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Empty(t *testing.T) {
	verifier := NewVerifier(testKey)
	if _, err := verifier.Verify(""); !errors.Is(err, core.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	verifier := NewVerifier(testKey)
	for _, tokenStr := range []string{
		"not-a-token",
		"aaaa.bbbb.cccc",
		"Bearer something",
	} {
		if _, err := verifier.Verify(tokenStr); !errors.Is(err, core.ErrInvalidToken) {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", tokenStr, err)
		}
	}
}

func TestVerify_UnknownRole(t *testing.T) {
	minter := NewMinter(testKey, 0)
	signed, _, err := minter.Mint(&core.Principal{
		ID: "u1", Email: "a@b.c", Role: core.Role("superuser"),
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	verifier := NewVerifier(testKey)
	if _, err := verifier.Verify(signed); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestMint_AdminSentinel(t *testing.T) {
	minter := NewMinter(testKey, 0)
	signed, _, err := minter.Mint(&core.Principal{
		ID:    core.AdminSentinelID,
		Email: "admin@remaya.org",
		Role:  core.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	got, err := NewVerifier(testKey).Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != core.AdminSentinelID || !got.IsAdmin() {
		t.Errorf("principal = %+v, want admin sentinel", got)
	}
}
