// Command server runs the talentgate recruitment API.
//
// Configuration is layered: built-in defaults, an optional YAML config
// file, then TALENTGATE_* environment variable overrides. See the
// config package for the full set of options. The most common ones:
//
//	TALENTGATE_SECRET_KEY   - Token signing key (required)
//	TALENTGATE_PORT         - Listen port (default: 8080)
//	TALENTGATE_STORAGE      - Storage type: "memory" or "postgres" (default: "memory")
//	TALENTGATE_POSTGRES_DSN - PostgreSQL connection string
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/talentgate/talentgate/pkg/auth/password"
	"github.com/talentgate/talentgate/pkg/auth/token"
	"github.com/talentgate/talentgate/pkg/config"
	"github.com/talentgate/talentgate/pkg/service"
	"github.com/talentgate/talentgate/pkg/storage"
	"github.com/talentgate/talentgate/pkg/storage/memory"
	"github.com/talentgate/talentgate/pkg/storage/postgres"
	transporthttp "github.com/talentgate/talentgate/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create the store.
	var store storage.Store
	switch cfg.Storage.Type {
	case "postgres":
		pg, err := postgres.New(context.Background(), postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pg.Close()
		store = pg
		logger.Info("storage configured", "type", "postgres")
	default:
		store = memory.New()
		logger.Info("storage configured", "type", "memory")
	}

	// Create auth components.
	hasher := password.New(cfg.Auth.BcryptCost)
	tokens, err := token.New([]byte(cfg.Auth.SecretKey), token.WithTTL(cfg.Auth.TokenTTL))
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// Create services.
	authSvc := service.NewAuthService(store, hasher, tokens, logger)
	userSvc := service.NewUserService(store, hasher, logger)
	positionSvc := service.NewPositionService(store, logger)
	applicantSvc := service.NewApplicantService(store, logger)

	// Assemble the HTTP transport.
	adapter := transporthttp.NewAdapter(authSvc, userSvc, positionSvc, applicantSvc, cfg.Server.MaxBodySize)
	srv := transporthttp.NewServer(adapter, tokens, transporthttp.ServerConfig{
		Addr:            fmt.Sprintf(":%d", cfg.Server.Port),
		MaxBodySize:     cfg.Server.MaxBodySize,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MetricsEnabled:  cfg.Observability.Metrics.Enabled,
		MetricsPath:     cfg.Observability.Metrics.Path,
		Logger:          logger,
	})

	logger.Info("server starting",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Type,
		"token_ttl", cfg.Auth.TokenTTL.String(),
	)
	return srv.ListenAndServe()
}
