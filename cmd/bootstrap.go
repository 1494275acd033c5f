package cmd

import (
	"context"
	"fmt"
	"time"

	"reservation-portal/core/config"
	"reservation-portal/core/database"
	"reservation-portal/core/history"
	"reservation-portal/core/logger"
	"reservation-portal/core/reports"
	"reservation-portal/core/reservations"
	"reservation-portal/core/storage"
	"reservation-portal/feature/portal"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment is everything the commands share.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    reports.Store
	recorder history.Recorder
	service  *portal.Service
}

// setup loads configuration and builds the generation pipeline.
// A failed optional database connection only disables history.
func setup(ctx context.Context) (*environment, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	env := &environment{cfg: cfg, logger: logg, recorder: history.NopRecorder{}}

	if cfg.Database.Enabled() {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			env.db = db
			rec, err := history.NewGormRecorder(db)
			if err != nil {
				return nil, err
			}
			env.recorder = rec
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		bctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Storage.TimeoutSeconds)*time.Second)
		defer cancel()
		if err := storage.EnsureBucket(bctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		env.store = reports.NewObjectStore(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
		logg.Info("Reports stored in bucket", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Storage.Prefix))
	} else {
		fs, err := reports.NewFileStore(cfg.Server.DownloadDir)
		if err != nil {
			return nil, err
		}
		env.store = fs
		logg.Info("Reports stored on disk", zap.String("dir", fs.Root()))
	}

	staged := reports.NewStagedStore(env.store)
	processor := reservations.NewWorkbookProcessor(staged, logg)
	env.service, err = portal.NewService(cfg.Server.UploadDir, staged, processor, logg,
		portal.WithLocation(cfg.Server.Location()),
		portal.WithRecorder(env.recorder),
	)
	if err != nil {
		return nil, err
	}
	return env, nil
}
