package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Brianali-codes/Remaya-full/internal/api/middleware"
	"github.com/Brianali-codes/Remaya-full/internal/api/presenter"
	"github.com/Brianali-codes/Remaya-full/internal/service"
)

type ProfileImagePayload struct {
	ImageURL string `json:"imageUrl"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalCtx(r.Context())

	profile, err := s.profiles.Get(r.Context(), principal)
	if err != nil {
		presenter.Err(w, r, err)
		return
	}
	presenter.JSON(w, r, profile, http.StatusOK)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	principal := middleware.PrincipalCtx(ctx)

	var payload service.ProfileUpdate
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode profile payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	profile, err := s.profiles.Update(ctx, principal, payload)
	if err != nil {
		logger.Warn().Err(err).Msg("profile update failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("account", principal.ID).Msg("profile updated")
	presenter.JSON(w, r, profile, http.StatusOK)
}

func (s *Server) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	principal := middleware.PrincipalCtx(ctx)

	var payload ProfileImagePayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode profile image payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	profile, err := s.profiles.SetImage(ctx, principal, payload.ImageURL)
	if err != nil {
		logger.Warn().Err(err).Msg("profile image update failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("account", principal.ID).Msg("profile image updated")
	presenter.JSON(w, r, profile, http.StatusOK)
}
