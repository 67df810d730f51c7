package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/service"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	correlationID, _ := r.Context().Value("correlation_id").(string)
	resp := ErrorResponse{
		Error:         msg,
		CorrelationID: correlationID,
	}
	JSON(w, r, resp, status)
}

// Err classifies a service error onto the HTTP taxonomy and writes
// it. Known kinds keep their sentinel message; anything unclassified
// is logged in full and reported as a generic internal error, so raw
// upstream payloads never reach the client.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var httpError service.HTTPError
	if errors.As(err, &httpError) {
		Error(w, r, err.Error(), httpError.StatusCode)
		return
	}

	var ve *core.ValidationError
	if errors.As(err, &ve) {
		Error(w, r, ve.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		Error(w, r, core.ErrUnauthenticated.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrInvalidCredentials):
		Error(w, r, core.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrTokenExpired):
		Error(w, r, core.ErrTokenExpired.Error(), http.StatusForbidden)
	case errors.Is(err, core.ErrInvalidToken):
		Error(w, r, core.ErrInvalidToken.Error(), http.StatusForbidden)
	case errors.Is(err, core.ErrForbidden):
		Error(w, r, core.ErrForbidden.Error(), http.StatusForbidden)
	case errors.Is(err, core.ErrNotFound):
		Error(w, r, core.ErrNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrUpstreamUnavailable):
		Error(w, r, core.ErrUpstreamUnavailable.Error(), http.StatusBadGateway)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("unclassified error")
		Error(w, r, "internal server error", http.StatusInternalServerError)
	}
}
