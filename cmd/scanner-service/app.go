package main

import (
	"fmt"
	"log"

	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/internal/scanner/repository"
	"golang-stock-scanner/internal/scanner/screener"
	"golang-stock-scanner/internal/scanner/service"
	"golang-stock-scanner/pkg/logger"
	"golang-stock-scanner/pkg/postgres"
	"golang-stock-scanner/pkg/redis"
	"golang-stock-scanner/pkg/telegram"

	"gorm.io/gorm"
)

// app holds the wired dependencies shared by the serve and scan commands.
type app struct {
	cfg         *config.Config
	log         *logger.Logger
	scanService service.ScanService
	notifier    telegram.Notifier
	closers     []func()
}

func (a *app) Close() {
	a.scanService.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func newApp(cfg *config.Config, withNotifier bool) (*app, error) {
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, log: appLogger}

	var db *gorm.DB
	if cfg.Database.Enabled {
		pg, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			return nil, err
		}
		if sqlDB, err := pg.DB.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		db = pg.DB
	}

	var store repository.BarStore
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		store = repository.NewRedisBarStore(redisClient.Client)
	}

	bars, err := repository.NewBarRepository(cfg, store, appLogger)
	if err != nil {
		return nil, err
	}
	universe, err := repository.NewUniverseRepository(cfg, db)
	if err != nil {
		return nil, err
	}
	profiles, err := screener.ResolveProfiles(cfg.Scanner.Profiles)
	if err != nil {
		return nil, err
	}

	var notifier telegram.Notifier
	if withNotifier && cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram client: %w", err)
		}
	}

	a.notifier = notifier
	a.scanService = service.NewScanService(cfg, bars, universe, profiles, notifier, appLogger)
	return a, nil
}
