package localstore

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("storefront"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func startRedis(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	connStr := startPostgres(ctx, t)
	s, closer, err := Open(ctx, Options{Driver: DriverPostgres, DatabaseURL: connStr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	exerciseStore(t, s)

	// Table creation is idempotent
	db, err := ConnectPostgres(connStr)
	require.NoError(t, err)
	defer db.Close()
	_, err = NewPostgresStore(ctx, db)
	assert.NoError(t, err)
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	addr := startRedis(ctx, t)
	s, closer, err := Open(ctx, Options{Driver: DriverRedis, RedisAddr: addr, RedisPrefix: "device-1"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	exerciseStore(t, s)

	// Keys live under the prefix
	require.NoError(t, s.Set(ctx, KeyCart, "[]"))
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	v, err := client.Get(ctx, "device-1:cart").Result()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestRedisStore_Prefixed(t *testing.T) {
	assert.Equal(t, "cart", NewRedisStore(nil, "").prefixed("cart"))
	assert.Equal(t, "p:cart", NewRedisStore(nil, "p").prefixed("cart"))
}
