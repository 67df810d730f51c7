package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Brianali-codes/Remaya-full/internal/api"
	"github.com/Brianali-codes/Remaya-full/internal/audit"
	"github.com/Brianali-codes/Remaya-full/internal/config"
	"github.com/Brianali-codes/Remaya-full/internal/core"
	"github.com/Brianali-codes/Remaya-full/internal/identity"
	"github.com/Brianali-codes/Remaya-full/internal/service"
	"github.com/Brianali-codes/Remaya-full/internal/store"
	"github.com/Brianali-codes/Remaya-full/internal/token"
	"github.com/Brianali-codes/Remaya-full/internal/upload"
)

var serveConfigPath string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Remaya API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		log.Info().Str("type", cfg.Store.Type).Msg("Initializing store...")
		var (
			blogStore    core.BlogStore
			profileStore core.ProfileStore
			userStore    core.UserStore
		)
		switch cfg.Store.Type {
		case "postgres":
			dsn := cfg.Store.DSN
			if dsn == "" {
				dsn = os.Getenv("REMAYA_DATABASE_URL")
			}
			pg, err := store.NewPostgres(cmd.Context(), dsn)
			if err != nil {
				return fmt.Errorf("connecting to postgres: %w", err)
			}
			defer pg.Close()
			blogStore, profileStore, userStore = pg, pg, pg
		case "memory":
			mem := store.NewMemory()
			blogStore, profileStore, userStore = mem, mem, mem
		}

		var auditor core.Auditor = audit.NewNoopAuditor()
		if cfg.Audit.Enabled {
			switch cfg.Audit.Type {
			case "file":
				fa, err := audit.NewFileAuditor(cfg.Audit.Path)
				if err != nil {
					return fmt.Errorf("opening audit log: %w", err)
				}
				auditor = fa
			case "memory":
				auditor = audit.NewInMemoryAuditor()
			}
		}
		defer func() {
			_ = auditor.Close()
		}()

		log.Info().Str("type", cfg.Identity.Type).Msg("Initializing identity provider...")
		provider, err := identity.Build(cfg.Identity, userStore)
		if err != nil {
			return fmt.Errorf("building identity provider: %w", err)
		}

		minter := token.NewMinter([]byte(cfg.Auth.SigningSecret), cfg.Auth.SessionTTL)
		verifier := token.NewVerifier([]byte(cfg.Auth.SigningSecret))

		uploads, err := upload.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL, cfg.Uploads.MaxBytes)
		if err != nil {
			return fmt.Errorf("preparing upload directory: %w", err)
		}

		sessions := service.NewSessionService(provider, profileStore, minter, service.AdminCredential{
			Email:        cfg.Auth.AdminEmail,
			PasswordHash: []byte(cfg.Auth.AdminPasswordHash),
		}, auditor, cfg.Auth.UpstreamTimeout)
		blogs := service.NewBlogService(blogStore, cfg.Auth.UpstreamTimeout)
		profiles := service.NewProfileService(profileStore, cfg.Auth.UpstreamTimeout)

		srv := api.NewServer(sessions, blogs, profiles, verifier, uploads, auditor, cfg.Server.AllowedOrigins)

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "f", "config.yaml", "server configuration file")
	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
}
