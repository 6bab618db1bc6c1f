package blob

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/neuhauss/example-gemini/internal/domain/repository"
	"github.com/neuhauss/example-gemini/internal/infrastructure/postgres"
	"github.com/neuhauss/example-gemini/pkg/config"
)

// Opened resultado de Open: el store y la función que libera sus recursos.
type Opened struct {
	Store repository.BlobStore
	File  *FileStore // no nil solo con el driver file (para Watch)
	Close func()
}

// Open construye el BlobStore indicado por cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, db config.DBConfig, rc config.RedisConfig) (*Opened, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Opened{Store: NewMemoryStore(), Close: func() {}}, nil

	case config.DriverFile, "":
		fs, err := NewFileStore(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		return &Opened{Store: fs, File: fs, Close: func() {}}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("blob: conexión a PostgreSQL: %w", err)
		}
		ps := NewPostgresStore(pool)
		if err := ps.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Opened{Store: ps, Close: pool.Close}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("blob: conexión a Redis: %w", err)
		}
		return &Opened{Store: NewRedisStore(client), Close: func() { _ = client.Close() }}, nil

	default:
		return nil, fmt.Errorf("blob: driver desconocido %q", cfg.Driver)
	}
}
