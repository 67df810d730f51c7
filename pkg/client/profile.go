package client

import (
	"context"

	"github.com/Brianali-codes/Remaya-full/internal/api"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/service"
)

func (c *Client) GetProfile(ctx context.Context) (*core.Profile, string, error) {
	var profile core.Profile
	correlation, err := c.get(ctx, c.url().
		setPath(api.ProfileRoute).
		build(), &profile)
	return &profile, correlation, err
}

func (c *Client) UpdateProfile(ctx context.Context, update service.ProfileUpdate) (*core.Profile, string, error) {
	var profile core.Profile
	correlation, err := c.put(ctx, c.url().
		setPath(api.ProfileRoute).
		build(), update, &profile)
	return &profile, correlation, err
}

func (c *Client) SetProfileImage(ctx context.Context, imageURL string) (*core.Profile, string, error) {
	var profile core.Profile
	correlation, err := c.post(ctx, c.url().
		setPath(api.ProfileImageRoute).
		build(), api.ProfileImagePayload{ImageURL: imageURL}, &profile)
	return &profile, correlation, err
}
