package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// ProfileService owns per-user profiles. Reads and writes are always
// scoped to the requesting principal; there is no cross-user access.
type ProfileService struct {
	profiles core.ProfileStore
	timeout  time.Duration
}

func NewProfileService(profiles core.ProfileStore, timeout time.Duration) *ProfileService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProfileService{profiles: profiles, timeout: timeout}
}

func (s *ProfileService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Get returns the principal's profile. Before the first write there
// is no row yet; the caller gets a skeleton carrying only the id.
func (s *ProfileService) Get(ctx context.Context, principal *core.Principal) (*core.Profile, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	profile, err := s.profiles.GetProfile(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &core.Profile{ID: principal.ID, Email: principal.Email}, nil
		}
		return nil, err
	}
	return profile, nil
}

// Update upserts name and bio. Create-or-update by principal id:
// running the same update twice leaves exactly one row with the final
// values.
func (s *ProfileService) Update(ctx context.Context, principal *core.Principal, update ProfileUpdate) (*core.Profile, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	profile := s.loadOrSkeleton(ctx, principal)
	profile.Name = update.Name
	profile.Bio = update.Bio
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetImage upserts the profile image URL, creating the profile row
// lazily when absent.
func (s *ProfileService) SetImage(ctx context.Context, principal *core.Principal, imageURL string) (*core.Profile, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, core.Invalid("imageUrl", "required")
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	profile := s.loadOrSkeleton(ctx, principal)
	profile.ProfileImageURL = imageURL
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) loadOrSkeleton(ctx context.Context, principal *core.Principal) *core.Profile {
	profile, err := s.profiles.GetProfile(ctx, principal.ID)
	if err != nil {
		return &core.Profile{ID: principal.ID, Email: principal.Email}
	}
	return profile
}
