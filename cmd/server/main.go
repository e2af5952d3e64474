package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/painelfacil/painel-api/internal/api"
	"github.com/painelfacil/painel-api/internal/infrastructure/config"
	"github.com/painelfacil/painel-api/internal/infrastructure/db/mongo"
	"github.com/painelfacil/painel-api/internal/infrastructure/db/redis"
	"github.com/painelfacil/painel-api/internal/menu"
	"github.com/painelfacil/painel-api/internal/realtime"
	"github.com/painelfacil/painel-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("disconnecting mongodb")
		}
	}()

	rdb := goredis.NewClient(&goredis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Menus fall back to the repository when the cache is down.
		log.Warn().Err(err).Msg("redis unreachable, menu cache degraded")
	}

	if err := seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seeding database")
	}

	hub := realtime.NewHub(log)

	resolver := menu.NewResolver(mongo.NewMenuRepository(db), redis.NewMenuCache(rdb), log)
	resolver.Start(hub)
	defer resolver.Stop()

	e := api.NewRouter(db, rdb, hub, resolver, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seed prepares a fresh database: indexes, the built-in roles and the
// administration menu rows.
func seed(ctx context.Context, db *mongodriver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewRoleRepository(db).EnsureSeed(ctx); err != nil {
		return err
	}
	return mongo.NewMenuRepository(db).EnsureSeed(ctx)
}
