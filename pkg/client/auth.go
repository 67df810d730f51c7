package client

import (
	"context"

	"github.com/Brianali-codes/Remaya-full/internal/api"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/service"
)

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*core.Account, string, error) {
	var account core.Account
	correlation, err := c.post(ctx, c.url().
		setPath(api.SignupRoute).
		build(), api.CredentialsPayload{Email: email, Password: password}, &account)
	return &account, correlation, err
}

// SignIn authenticates a user and returns the issued session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*service.SessionResult, string, error) {
	var result service.SessionResult
	correlation, err := c.post(ctx, c.url().
		setPath(api.SigninRoute).
		build(), api.CredentialsPayload{Email: email, Password: password}, &result)
	return &result, correlation, err
}

// AdminSignIn authenticates against the administrator credential.
func (c *Client) AdminSignIn(ctx context.Context, email, password string) (*service.SessionResult, string, error) {
	var result service.SessionResult
	correlation, err := c.post(ctx, c.url().
		setPath(api.AdminSigninRoute).
		build(), api.CredentialsPayload{Email: email, Password: password}, &result)
	return &result, correlation, err
}

// ChangePassword rotates the authenticated account's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	return c.put(ctx, c.url().
		setPath(api.PasswordRoute).
		build(), api.PasswordPayload{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}
