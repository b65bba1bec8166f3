package main

import (
	"context"
	"fmt"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/imagestore"
	"bookcatalog/internal/memstore"
	"bookcatalog/internal/platform/postgres"
	"bookcatalog/internal/reference"
	"bookcatalog/internal/user"

	"go.uber.org/zap"
)

// storage bundles the repositories of one driver.
type storage struct {
	books      book.Repository
	references reference.Repository
	users      user.Repository
	ready      func(ctx context.Context) error
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store, err := memstore.New()
		if err != nil {
			return nil, err
		}
		logger.Warn("using in-memory storage, data is lost on restart")
		return &storage{
			books:      book.NewMemDBRepo(store),
			references: reference.NewMemDBRepo(store),
			users:      user.NewMemDBRepo(store),
			ready:      func(context.Context) error { return nil },
			close:      func() {},
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection OK", zap.String("dsn", postgres.RedactDSN(cfg.DatabaseDSN)))
		return &storage{
			books:      book.NewPostgresRepo(pool, cfg.DBTimeout),
			references: reference.NewPostgresRepo(pool, cfg.DBTimeout),
			users:      user.NewPostgresRepo(pool, cfg.DBTimeout),
			ready:      pool.Ping,
			close:      pool.Close,
		}, nil
	}
}

// openImageStore returns the configured backend and, for the local driver,
// the directory to serve under /uploads/books/.
func openImageStore(ctx context.Context, cfg config.UploadConfig) (imagestore.Store, string, error) {
	if cfg.Driver == config.UploadDriverS3 {
		s3cfg := imagestore.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UsePathStyle:  cfg.S3UsePathStyle,
			PublicBaseURL: cfg.S3PublicURL,
		}
		client, err := imagestore.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, "", fmt.Errorf("s3 client: %w", err)
		}
		return imagestore.NewS3Store(client, s3cfg), "", nil
	}

	store, err := imagestore.NewLocalStore(cfg.Dir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}
