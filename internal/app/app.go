// Package app assembles repositories, services and handlers from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ecotrack/internal/auth"
	"ecotrack/internal/cache"
	"ecotrack/internal/config"
	"ecotrack/internal/db"
	"ecotrack/internal/handler"
	"ecotrack/internal/repository"
	"ecotrack/internal/router"
	"ecotrack/internal/service"
	"ecotrack/internal/weather"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Config config.Config
	Logger zerolog.Logger
	DB     *gorm.DB
	Store  repository.Store
	Guard  *auth.Guard

	Auth       service.AuthService
	Users      service.UserService
	Zones      service.ZoneService
	Sources    service.SourceService
	Indicators service.IndicatorService
	Stats      service.StatsService
	Ingestion  service.IngestionService

	cache *cache.Client
}

// New wires services over an open database.
func New(cfg config.Config, logger zerolog.Logger, gormDB *gorm.DB, tokens auth.TokenStoreInterface, fetcher service.WeatherFetcher) *App {
	store := repository.NewStore(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         gormDB,
		Store:      store,
		Guard:      auth.NewGuard(jwtService, store.Users(), tokens),
		Auth:       service.NewAuthService(store.Users(), jwtService, tokens),
		Users:      service.NewUserService(store.Users()),
		Zones:      service.NewZoneService(store),
		Sources:    service.NewSourceService(store),
		Indicators: service.NewIndicatorService(store),
		Stats:      service.NewStatsService(store.Indicators()),
		Ingestion:  service.NewIngestionService(store, fetcher, logger),
	}
}

// Open connects to the configured database and Redis, applies RESET_DB and migrates.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if cfg.ResetDB {
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return nil, err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, refresh tokens will not persist")
	}

	a := New(cfg, logger, gormDB, auth.NewTokenStore(cacheClient), weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherTimeout))
	a.cache = cacheClient
	return a, nil
}

// Handlers builds the HTTP handlers.
func (a *App) Handlers() router.Handlers {
	return router.Handlers{
		Auth:       handler.NewAuthHandler(a.Auth),
		Users:      handler.NewUserHandler(a.Users),
		Zones:      handler.NewZoneHandler(a.Zones),
		Sources:    handler.NewSourceHandler(a.Sources),
		Indicators: handler.NewIndicatorHandler(a.Indicators),
		Stats:      handler.NewStatsHandler(a.Stats),
		Ingest:     handler.NewIngestHandler(a.Ingestion, a.Config.CSVPath),
	}
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
