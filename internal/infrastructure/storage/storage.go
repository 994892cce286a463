package storage

import (
	"context"
	"fmt"

	appdocument "github.com/rentals/backend/internal/application/document"
	infraconfig "github.com/rentals/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the storage backend selected by cfg.Driver. For s3 the bucket
// is created when missing.
func New(ctx context.Context, cfg infraconfig.StorageConfig, logger *zap.Logger) (appdocument.ObjectStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case "", "stub":
		logger.Warn("Using stub object storage, uploads are not persisted")
		return NewStubObjectStorage(cfg.PublicURL), nil
	case "s3":
		s, err := NewS3ObjectStorage(&cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Object storage ready", zap.String("bucket", s.GetBucket()))
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
