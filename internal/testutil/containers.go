// Package testutil starts the shared MySQL and Redis containers used by
// integration tests. Tests are skipped under -short or when Docker is unavailable.
package testutil

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/pkg/database"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

var (
	mysqlOnce sync.Once
	mysqlErr  error
	sharedDB  *gorm.DB

	redisOnce   sync.Once
	redisErr    error
	sharedRedis *redis.Client
)

func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}
	if os.Getenv("EVENTHUB_SKIP_CONTAINERS") != "" {
		t.Skip("EVENTHUB_SKIP_CONTAINERS is set")
	}
}

// NewMySQL returns a migrated database with every table emptied.
func NewMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	skipIfShort(t)

	mysqlOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		container, err := mysql.Run(ctx,
			"mysql:8.0.36",
			mysql.WithDatabase("eventhub"),
			mysql.WithUsername("eventhub"),
			mysql.WithPassword("eventhub"),
		)
		if err != nil {
			mysqlErr = err
			return
		}

		dsn, err := container.ConnectionString(ctx, "parseTime=true", "charset=utf8mb4", "loc=UTC")
		if err != nil {
			mysqlErr = err
			return
		}

		db, err := database.Open(dsn, database.PoolConfig{MaxOpenConns: 20}, false)
		if err != nil {
			mysqlErr = err
			return
		}
		if err := database.Migrate(db); err != nil {
			mysqlErr = err
			return
		}
		sharedDB = db
	})

	if mysqlErr != nil {
		t.Skipf("mysql container unavailable: %v", mysqlErr)
	}

	truncateAll(t, sharedDB)
	return sharedDB
}

func truncateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		require.NoError(t, db.Exec("TRUNCATE TABLE `"+stmt.Schema.Table+"`").Error)
	}
}

// NewRedis returns a flushed client backed by a shared redis container.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()
	skipIfShort(t)

	redisOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := tcredis.Run(ctx, "redis:7-alpine")
		if err != nil {
			redisErr = err
			return
		}

		uri, err := container.ConnectionString(ctx)
		if err != nil {
			redisErr = err
			return
		}

		opts, err := redis.ParseURL(uri)
		if err != nil {
			redisErr = err
			return
		}
		sharedRedis = redis.NewClient(opts)
	})

	if redisErr != nil {
		t.Skipf("redis container unavailable: %v", redisErr)
	}

	require.NoError(t, sharedRedis.FlushDB(context.Background()).Err())
	return sharedRedis
}
