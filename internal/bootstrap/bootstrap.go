// Package bootstrap provides dependency initialization for avpress.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/avpress/avpress/internal/compress"
	"github.com/avpress/avpress/internal/config"
	"github.com/avpress/avpress/internal/encoder"
	"github.com/avpress/avpress/internal/server"
	"github.com/avpress/avpress/internal/storage"
)

// Dependencies holds all initialized dependencies for the application.
type Dependencies struct {
	Compressor *compress.Compressor
	Store      storage.Store
	Handlers   *server.Handlers
}

// NewDependencies creates and initializes all dependencies.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	enc := encoder.NewFFmpeg(cfg.FFmpegPath)

	compressor := compress.New(enc, store, compress.WithLogger(logger))

	handlers := server.NewHandlers(compressor, store, logger)

	return &Dependencies{
		Compressor: compressor,
		Store:      store,
		Handlers:   handlers,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3(cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocal(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("temp_dir", cfg.TempDir),
	)
	return localStore, nil
}
