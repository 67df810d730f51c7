// Package local implements the identity provider against the
// service's own user table with bcrypt password hashes. Used for
// development and for deployments that do not want a hosted provider.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

const Type = "local"

var _ core.IdentityProvider = (*Provider)(nil)

type Provider struct {
	users core.UserStore
	cost  int
}

func New(users core.UserStore) *Provider {
	return &Provider{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
}

func (p *Provider) Name() string {
	return Type
}

func (p *Provider) SignUp(ctx context.Context, email, password string) (*core.Account, error) {
	email = normalizeEmail(email)

	if _, err := p.users.GetUserByEmail(ctx, email); err == nil {
		// an existing account signs up again: reject without leaking
		// more than a credential failure
		return nil, core.ErrInvalidCredentials
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &core.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &core.Account{ID: user.ID, Email: user.Email}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*core.Account, error) {
	user, err := p.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, core.ErrInvalidCredentials
	}
	return &core.Account{ID: user.ID, Email: user.Email}, nil
}

func (p *Provider) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := p.lookup(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return core.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return p.users.UpdateUserPassword(ctx, user.ID, string(hash))
}

func (p *Provider) lookup(ctx context.Context, email string) (*core.User, error) {
	user, err := p.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// unknown email and wrong password are indistinguishable
			return nil, core.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
