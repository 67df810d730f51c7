package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Brianali-codes/Remaya-full/internal/api/middleware"
	"github.com/Brianali-codes/Remaya-full/internal/api/presenter"
	"github.com/Brianali-codes/Remaya-full/internal/service"
)

func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blogs.ListPublic(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("listing blogs failed")
		presenter.Err(w, r, err)
		return
	}
	presenter.JSON(w, r, posts, http.StatusOK)
}

func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	// intentionally public: any caller may read any single post by id
	post, err := s.blogs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		presenter.Err(w, r, err)
		return
	}
	presenter.JSON(w, r, post, http.StatusOK)
}

func (s *Server) handleMyBlogs(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalCtx(r.Context())

	posts, err := s.blogs.ListMine(r.Context(), principal)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("listing own blogs failed")
		presenter.Err(w, r, err)
		return
	}
	presenter.JSON(w, r, posts, http.StatusOK)
}

func (s *Server) handleBlogsByUser(w http.ResponseWriter, r *http.Request) {
	posts, err := s.blogs.ListByAuthor(r.Context(), r.PathValue("userId"))
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("listing user blogs failed")
		presenter.Err(w, r, err)
		return
	}
	presenter.JSON(w, r, posts, http.StatusOK)
}

func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	principal := middleware.PrincipalCtx(ctx)

	var payload service.CreateBlogInput
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode blog payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	post, err := s.blogs.Create(ctx, principal, payload)
	if err != nil {
		logger.Warn().Err(err).Msg("blog creation failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("post", post.ID).Bool("admin_post", post.IsAdminPost).Msg("blog created")
	presenter.JSON(w, r, post, http.StatusCreated)
}

func (s *Server) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	principal := middleware.PrincipalCtx(ctx)

	var payload service.UpdateBlogInput
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode blog payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	post, err := s.blogs.Update(ctx, principal, r.PathValue("id"), payload)
	if err != nil {
		logger.Warn().Err(err).Msg("blog update failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("post", post.ID).Msg("blog updated")
	presenter.JSON(w, r, post, http.StatusOK)
}

func (s *Server) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	principal := middleware.PrincipalCtx(ctx)

	id := r.PathValue("id")
	if err := s.blogs.Delete(ctx, principal, id); err != nil {
		logger.Warn().Err(err).Msg("blog deletion failed")
		presenter.Err(w, r, err)
		return
	}

	logger.Info().Str("post", id).Msg("blog deleted")
	presenter.JSON(w, r, map[string]string{"message": "blog deleted"}, http.StatusOK)
}
