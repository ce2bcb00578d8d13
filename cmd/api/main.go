package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/scoutline/scoutline-api/internal/config"
	"github.com/scoutline/scoutline-api/internal/domain/athlete"
	"github.com/scoutline/scoutline-api/internal/middleware"
	"github.com/scoutline/scoutline-api/internal/pkg/database"
	"github.com/scoutline/scoutline-api/internal/pkg/jwt"
	"github.com/scoutline/scoutline-api/internal/pkg/logger"
	"github.com/scoutline/scoutline-api/internal/pkg/metrics"
	pkgresponse "github.com/scoutline/scoutline-api/internal/pkg/response"
	"github.com/scoutline/scoutline-api/internal/pkg/storage"
)

const localMediaPrefix = "/uploads"

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Int("publish_min_completion", cfg.PublishMinCompletion).
		Msg("Starting Scoutline API")

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.DefaultPool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	mediaStorage, err := storage.NewFromConfig(ctx, storageConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init media storage")
	}

	var m *metrics.Manager
	if cfg.MetricsEnabled {
		m = metrics.NewManager(metrics.WithRuntimeCollectors())
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Athletes ----------
	athleteRepo := athlete.NewRepository(db)
	statsStore := athlete.NewStatsStore(redis, athleteRepo)
	athleteService := athlete.NewService(athleteRepo, statsStore, mediaStorage, m, cfg.PublishMinCompletion)
	athleteHandler := athlete.NewHandler(athleteService)

	r := newRouter(cfg, athleteHandler, jwtService, m)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func storageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		S3Endpoint:   cfg.S3Endpoint,
		S3Region:     cfg.S3Region,
		S3Bucket:     cfg.S3Bucket,
		S3AccessKey:  cfg.S3AccessKey,
		S3SecretKey:  cfg.S3SecretKey,
		S3PublicURL:  cfg.S3PublicURL,
		LocalPath:    cfg.LocalMedia,
		LocalBaseURL: localMediaPrefix,
	}
}

// newRouter wires middleware and routes. m may be nil.
func newRouter(cfg *config.Config, athleteHandler *athlete.Handler, jwtService *jwt.Service, m *metrics.Manager) chi.Router {
	authMiddleware := middleware.Auth(jwtService)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Local media is served by the API itself when S3 is not configured
	if !cfg.S3Configured() {
		fs := http.StripPrefix(localMediaPrefix+"/", http.FileServer(http.Dir(cfg.LocalMedia)))
		r.Handle(localMediaPrefix+"/*", fs)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/athletes", athleteHandler.Routes(authMiddleware, middleware.RequireOperator()))
	})

	return r
}
