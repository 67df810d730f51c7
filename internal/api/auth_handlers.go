package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Brianali-codes/Remaya-full/internal/api/middleware"
	"github.com/Brianali-codes/Remaya-full/internal/api/presenter"
)

type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload CredentialsPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode signup payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	account, err := s.sessions.SignUp(ctx, payload.Email, payload.Password)
	if err != nil {
		logger.Warn().Err(err).Msg("signup failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("account", account.ID).Msg("account created")
	presenter.JSON(w, r, account, http.StatusCreated)
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload CredentialsPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode signin payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := s.sessions.SignIn(ctx, payload.Email, payload.Password)
	if err != nil {
		logger.Warn().Err(err).Msg("signin failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("account", result.Account.ID).Msg("session issued")
	presenter.JSON(w, r, result, http.StatusOK)
}

func (s *Server) handleAdminSignin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload CredentialsPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode admin signin payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := s.sessions.AdminSignIn(ctx, payload.Email, payload.Password)
	if err != nil {
		// no detail here: the response must not leak whether the
		// email or the password was wrong
		logger.Warn().Msg("admin signin rejected")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Msg("admin session issued")
	presenter.JSON(w, r, result, http.StatusOK)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	principal := middleware.PrincipalCtx(ctx)

	var payload PasswordPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode password payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := s.sessions.ChangePassword(ctx, principal, payload.CurrentPassword, payload.NewPassword); err != nil {
		logger.Warn().Err(err).Msg("password change failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("account", principal.ID).Msg("password updated")
	presenter.JSON(w, r, map[string]string{"message": "password updated"}, http.StatusOK)
}
