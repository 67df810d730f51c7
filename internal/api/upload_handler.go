package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Brianali-codes/Remaya-full/internal/api/presenter"
)

// handleUpload accepts a multipart image and returns the URL it is
// served from.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	if s.uploads == nil {
		presenter.Error(w, r, "uploads are not enabled", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.uploads.MaxBytes())
	if err := r.ParseMultipartForm(s.uploads.MaxBytes()); err != nil {
		logger.Warn().Err(err).Msg("failed to parse upload form")
		presenter.Error(w, r, "invalid or oversized upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		presenter.Error(w, r, "missing 'image' file field", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	url, err := s.uploads.Save(header.Filename, file)
	if err != nil {
		logger.Warn().Err(err).Msg("storing upload failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("url", url).Msg("image uploaded")
	presenter.JSON(w, r, map[string]string{"url": url}, http.StatusCreated)
}
