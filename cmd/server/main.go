package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/iliyamo/kruger-gateway/internal/config"
	"github.com/iliyamo/kruger-gateway/internal/database"
	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/middleware"
	"github.com/iliyamo/kruger-gateway/internal/queue"
	"github.com/iliyamo/kruger-gateway/internal/repository"
	"github.com/iliyamo/kruger-gateway/internal/router"
	"github.com/iliyamo/kruger-gateway/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	dsn := database.SQLiteDSN(cfg.DBPath)
	if cfg.DBDriver == database.DriverMySQL {
		dsn = database.MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	db, err := database.Open(cfg.DBDriver, dsn)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database connection failed")
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.DBDriver); err != nil {
		logging.Fatal().Err(err).Msg("migrations failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedOnStart {
		if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
			logging.Fatal().Err(err).Msg("seeding failed")
		}
	}

	// Redis backs the rate limiter and the shared cache; without it the
	// cache stays in process and rate limiting is off.
	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient()
	var store middleware.CacheStore
	if rdb != nil {
		defer rdb.Close()
		store = middleware.NewRedisStore(rdb)
		logging.Info().Msg("redis connected: shared cache and rate limiting enabled")
	} else {
		store = middleware.NewMemoryStore(cacheCfg.TTL)
		logging.Warn().Msg("redis unavailable: using in-process cache, rate limiting disabled")
	}

	var wg sync.WaitGroup
	eventsCfg := config.LoadEventsConfig()
	activity := service.NewActivity(nil)
	if eventsCfg.Enabled {
		activity = service.NewActivity(service.AMQPPublisher{URL: eventsCfg.URL})
		if eventsCfg.Consume {
			consumer := &queue.Consumer{URL: eventsCfg.URL, LogPath: eventsCfg.ActivityLog}
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = consumer.Run(ctx)
			}()
		}
	}

	auth := service.NewAuthService(repository.NewUserRepo(db), service.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		BcryptCost: cfg.BcryptCost,
	})

	e := router.New(router.Deps{
		DB:          db,
		Driver:      cfg.DBDriver,
		JWTSecret:   cfg.JWTSecret,
		Auth:        auth,
		Activity:    activity,
		Redis:       rdb,
		CacheStore:  store,
		Cache:       cacheCfg,
		RateLimit:   config.LoadRateLimitConfig(),
		CORSOrigins: cfg.CORSOrigins,
	})

	addr := ":" + cfg.Port
	go func() {
		logging.Info().Str("addr", addr).Str("env", cfg.Env).Str("driver", cfg.DBDriver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
	activity.Wait()
	wg.Wait()
}
