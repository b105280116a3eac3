package repository

import (
	"context"
	"testing"

	"randomusers/internal/randomuser/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory driver", func(t *testing.T) {
		repo, closeStore, err := Open(ctx, &config.Config{StoreDriver: config.DriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryUserRepository{}, repo)
		assert.NoError(t, repo.Ping(ctx))
		assert.NoError(t, closeStore(ctx))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := Open(ctx, &config.Config{StoreDriver: "sqlite"})
		assert.Error(t, err)
	})

	t.Run("bad postgres dsn", func(t *testing.T) {
		_, _, err := Open(ctx, &config.Config{StoreDriver: config.DriverPostgres, PostgresDSN: "::not a dsn::"})
		assert.Error(t, err)
	})
}
