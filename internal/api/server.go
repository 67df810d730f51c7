package api

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/Brianali-codes/Remaya-full/internal/api/middleware"
	"github.com/Brianali-codes/Remaya-full/internal/audit"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/service"
	"github.com/Brianali-codes/Remaya-full/internal/token"
	"github.com/Brianali-codes/Remaya-full/internal/upload"
)

type Server struct {
	sessions *service.SessionService
	blogs    *service.BlogService
	profiles *service.ProfileService
	verifier *token.Verifier
	uploads  *upload.DiskStore
	auditor  core.Auditor

	allowedOrigins []string
}

func NewServer(
	sessions *service.SessionService,
	blogs *service.BlogService,
	profiles *service.ProfileService,
	verifier *token.Verifier,
	uploads *upload.DiskStore,
	auditor core.Auditor,
	allowedOrigins []string,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	return &Server{
		sessions:       sessions,
		blogs:          blogs,
		profiles:       profiles,
		verifier:       verifier,
		uploads:        uploads,
		auditor:        auditor,
		allowedOrigins: allowedOrigins,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.HandleFunc("POST "+SignupRoute, s.handleSignup)
	mux.HandleFunc("POST "+SigninRoute, s.handleSignin)
	mux.HandleFunc("POST "+AdminSigninRoute, s.handleAdminSignin)
	mux.HandleFunc("GET "+BlogsRoute, s.handleListBlogs)
	mux.HandleFunc("GET "+BlogByIDRoute, s.handleGetBlog)

	// uploaded images are public once stored
	if s.uploads != nil {
		mux.Handle("GET "+UploadsPrefix,
			http.StripPrefix(UploadsPrefix, http.FileServer(http.Dir(s.uploads.Dir()))))
	}

	// protected routes go through the access gate
	authed := middleware.RequireAuth(s.verifier)
	mux.Handle("GET "+MyBlogsRoute, authed(http.HandlerFunc(s.handleMyBlogs)))
	mux.Handle("GET "+BlogsByUserRoute, authed(http.HandlerFunc(s.handleBlogsByUser)))
	mux.Handle("POST "+BlogsRoute, authed(http.HandlerFunc(s.handleCreateBlog)))
	mux.Handle("PUT "+BlogByIDRoute, authed(http.HandlerFunc(s.handleUpdateBlog)))
	mux.Handle("DELETE "+BlogByIDRoute, authed(http.HandlerFunc(s.handleDeleteBlog)))
	mux.Handle("GET "+ProfileRoute, authed(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT "+ProfileRoute, authed(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("POST "+ProfileImageRoute, authed(http.HandlerFunc(s.handleProfileImage)))
	mux.Handle("PUT "+PasswordRoute, authed(http.HandlerFunc(s.handleChangePassword)))
	mux.Handle("POST "+UploadRoute, authed(http.HandlerFunc(s.handleUpload)))

	// admin routes
	mux.Handle("GET "+AdminAuditRoute,
		authed(middleware.RequireAdmin(http.HandlerFunc(s.handleAdminAudit))))

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.CorrelationIDHeader},
		ExposedHeaders:   []string{middleware.CorrelationIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				corsMiddleware(mux))))
}
