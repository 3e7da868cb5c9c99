// Command server is the entry point of the pet clinic backend.
//
// Boot sequence:
//  1. Load .env (best effort) and environment configuration
//  2. Configure global logging (level, optional pretty console output)
//  3. Open the SQLite store and migrate the schema
//  4. Wire the per-entity services and rebuild the search index mirrors
//  5. Configure OpenTelemetry tracing (opt-in)
//  6. Start the HTTP server with graceful shutdown on SIGINT/SIGTERM
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/petstack/go-petclinic-backend/docs"
	"github.com/petstack/go-petclinic-backend/internal/config"
	httpapi "github.com/petstack/go-petclinic-backend/internal/http"
	"github.com/petstack/go-petclinic-backend/internal/observability"
	"github.com/petstack/go-petclinic-backend/internal/repo"
	"github.com/petstack/go-petclinic-backend/internal/services"
	"github.com/petstack/go-petclinic-backend/internal/sysutil"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title        Pet Clinic API
// @version      1.0
// @description  REST backend for the veterinary clinic service.
// @BasePath     /api
func main() {
	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	reg := services.NewRegistry(db)

	// The index mirrors live in memory; rebuild them from the store so search
	// is consistent from the first request.
	if cfg.ReindexOnStart {
		counts, err := reg.ReindexAll(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("rebuild search indexes")
		}
		log.Info().Interface("indexed", counts).Msg("search indexes ready")
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("configure tracing")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, reg, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
