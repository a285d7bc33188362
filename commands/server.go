package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"socialfeed/app/blobs"
	"socialfeed/app/config"
	"socialfeed/app/logging"
	"socialfeed/app/repositories"
	"socialfeed/app/routes"
	"socialfeed/app/services"
)

const shutdownTimeout = 10 * time.Second

// RunServer serves the API until ctx is done, then shuts down gracefully.
func RunServer(ctx context.Context, cfg config.Config) error {
	log := logging.GetLogger("server")

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	store, err := repositories.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	media, err := blobs.NewFilesystemStore(ctx, blobs.FilesystemConfig{
		Basedir: cfg.MediaDir,
		BaseURL: cfg.MediaBaseURL,
	})
	if err != nil {
		return fmt.Errorf("init media store: %w", err)
	}

	handler := routes.SetupRoutes(routes.NewHandlers(routes.Dependencies{
		Users:                 store.Users(),
		Posts:                 store.Posts(),
		Comments:              store.Comments(),
		Media:                 media,
		Credentials:           services.NewCredentialService(cfg.JWTSecret, cfg.TokenTTL),
		DefaultProfilePicture: cfg.DefaultProfilePicture,
		MaxUploadBytes:        cfg.MaxUploadBytes,
		CORSAllowedOrigins:    cfg.CorsAllowedOrigins,
	}))

	server := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     logging.GetLogLogger(log, logging.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "listening", "addr", server.Addr, "data_dir", cfg.DataDir)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
