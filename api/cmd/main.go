package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/scoutlens/tracking-service/internal/config"
	redisc "github.com/scoutlens/tracking-service/internal/infrastructure/caching/redis"
	"github.com/scoutlens/tracking-service/internal/infrastructure/db/postgres"
	"github.com/scoutlens/tracking-service/internal/logger"
	"github.com/scoutlens/tracking-service/internal/metrics"
	"github.com/scoutlens/tracking-service/internal/service"
	"github.com/scoutlens/tracking-service/internal/transport/http/handlers"
	appmw "github.com/scoutlens/tracking-service/internal/transport/http/middleware"
	"github.com/scoutlens/tracking-service/internal/transport/http/router"
)

// sysClock implements service.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
	Redis  *redisc.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
		metrics.SetDependencyHealth("postgres", true)
	}

	if cfg.DBMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := postgres.Migrate(ctx, db); err != nil {
			zlog.Fatal().Err(err).Msg("migrate failed")
		}
		zlog.Info().Msg("schema up to date")
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Redis != nil {
			_ = app.Redis.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("shutdown incomplete")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	sessionRepo := postgres.NewSessionRepo(db, cfg.DBTimeout)
	feedbackRepo := postgres.NewFeedbackRepo(db, cfg.DBTimeout)
	interactionRepo := postgres.NewInteractionRepo(db, cfg.DBTimeout)

	var rc *redisc.Client
	var limiter appmw.RequestLimiter
	if cfg.RedisURL != "" {
		c, err := redisc.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable, falling back to in-process rate limiting")
			metrics.SetDependencyHealth("redis", false)
		} else {
			rc = c
			limiter = c
			metrics.SetDependencyHealth("redis", true)
			zlog.Info().Msg("redis rate limiter ready")
		}
	} else {
		zlog.Warn().Msg("REDIS_URL empty: using in-process rate limiting")
	}

	// 2) Application
	clock := sysClock{}
	sessions := service.NewSessionService(sessionRepo, clock)
	feedback := service.NewFeedbackService(feedbackRepo, clock)
	interactions := service.NewInteractionService(interactionRepo, clock)

	// 3) Transport
	sh := handlers.NewSessionsHandler(sessions)
	fh := handlers.NewFeedbackHandler(feedback)
	ih := handlers.NewInteractionsHandler(interactions)
	z := handlers.NewHealthHandler(db)

	// 4) Router
	httpHandler := router.New(sh, fh, ih, z, limiter, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config: cfg,
		Server: srv,
		DB:     db,
		Redis:  rc,
	}
}
