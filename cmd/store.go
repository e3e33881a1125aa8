package cmd

import (
	"context"
	"fmt"

	"github.com/jmehdipour/email-tracker/internal/config"
	"github.com/jmehdipour/email-tracker/internal/db"
	"github.com/jmehdipour/email-tracker/internal/logger"
	"github.com/jmehdipour/email-tracker/internal/model"
	"github.com/jmehdipour/email-tracker/internal/repository"
	"github.com/jmehdipour/email-tracker/internal/service/tracker"
	"github.com/jmehdipour/email-tracker/internal/tracking"
	"go.uber.org/zap"
)

// app is what every command builds from the config: logger, store, service.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	svc   *tracker.Service
	close func() error
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.App.Environment)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	repo, closeStore, err := openTrackingStore(ctx, cfg)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	svc := tracker.New(
		tracking.NewValidator(model.NewTenantSet(cfg.Tracking.Tenants...)),
		repo,
		log,
		tracker.Options{Driver: cfg.Store.Driver, OperationTimeout: cfg.Store.OperationTimeout},
	)

	return &app{
		cfg: cfg,
		log: log,
		svc: svc,
		close: func() error {
			err := closeStore()
			_ = log.Sync()
			return err
		},
	}, nil
}

func openTrackingStore(ctx context.Context, cfg config.Config) (repository.TrackingRepository, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.RedisOpts())
		if err != nil {
			return nil, nil, fmt.Errorf("redis connect: %w", err)
		}
		return repository.NewRedisTrackingRepository(rdb, cfg.Redis.KeyPrefix), rdb.Close, nil

	default:
		mysqlDB, err := db.NewMySQLConnection(ctx, cfg.MySQL.DSN, cfg.MySQL.MySQLOpts())
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		return repository.NewMySQLTrackingRepository(mysqlDB, cfg.MySQL.Table), mysqlDB.Close, nil
	}
}
