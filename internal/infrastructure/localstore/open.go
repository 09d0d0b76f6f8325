package localstore

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string
	Path        string // file driver
	DatabaseURL string // postgres driver
	RedisAddr   string // redis driver
	RedisPrefix string
}

// Open builds the configured backend. The returned closer releases any
// connection the backend holds and is never nil.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), nopCloser{}, nil

	case DriverFile:
		s, err := OpenFileStore(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil

	case DriverPostgres:
		db, err := ConnectPostgres(opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		s, err := NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db, nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisStore(client, opts.RedisPrefix), client, nil

	default:
		return nil, nil, fmt.Errorf("unknown local store driver %q", opts.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
