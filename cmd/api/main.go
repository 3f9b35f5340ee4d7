package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/vaultpass/toolbox/internal/client"
	"github.com/vaultpass/toolbox/internal/config"
	"github.com/vaultpass/toolbox/internal/crypto"
	"github.com/vaultpass/toolbox/internal/handler"
	"github.com/vaultpass/toolbox/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel))
	if envErr != nil {
		slog.Warn("no .env file found, using environment variables")
	}
	if cfg.ConfigFile != "" {
		slog.Info("loaded config file", "path", cfg.ConfigFile)
	}

	if cfg.EphemeralSecret {
		slog.Warn("JWT_SECRET not set, using an ephemeral secret; issued tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func serve(ctx context.Context, cfg config.Config) error {
	if err := cfg.RequireSecret(); err != nil {
		return err
	}

	genService := service.NewGeneratorService(crypto.NewGenerator(), crypto.NewHasher(crypto.DefaultArgon2Params()))
	lookupService := service.NewLookupService(client.New(cfg.ClientEndpoints(), cfg.HTTPTimeout), cfg.ProfileFallback)

	router := handler.NewRouter(ctx, handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		RequireAuth:    cfg.RequireAuth,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, handler.NewGeneratorHandler(genService), handler.NewLookupHandler(lookupService))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "require_auth", cfg.RequireAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
