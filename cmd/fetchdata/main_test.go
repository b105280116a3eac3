package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"randomusers/internal/randomuser/client"
	"randomusers/internal/randomuser/config"
	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/repository"
	"randomusers/internal/randomuser/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userJSON = `{
	"gender": "female",
	"name": {"first": "Ada", "last": "Byron"},
	"location": {"city": "London"},
	"email": "ada@example.com",
	"phone": "555",
	"picture": {"thumbnail": "https://randomuser.me/api/portraits/thumb/women/5.jpg"}
}`

func newSeedService(baseURL string, repo repository.UserRepository) service.UserService {
	apiClient := client.NewRandomUserClient(baseURL, time.Second, nil)
	return service.NewService(repo, service.NewIngestor(apiClient, service.NewPersister(repo, nil), 1000, nil), nil)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("loads an empty store and exits 0", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results": [` + userJSON + `, ` + userJSON + `]}`))
		}))
		defer srv.Close()

		repo := repository.NewMemoryUserRepository()
		assert.Equal(t, 0, seed(ctx, newSeedService(srv.URL, repo), 2))
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("skips a populated store and exits 0", func(t *testing.T) {
		repo := repository.NewMemoryUserRepository()
		_, err := repo.InsertBatch(ctx, []*model.User{{FirstName: "Existing"}})
		require.NoError(t, err)

		assert.Equal(t, 0, seed(ctx, newSeedService("http://127.0.0.1:0", repo), 10))
	})

	t.Run("failed fetch exits 1", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		assert.Equal(t, 1, seed(ctx, newSeedService(srv.URL, repository.NewMemoryUserRepository()), 5))
	})
}

func TestRunReturnsExitCodeOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("STORE_DRIVER", config.DriverMemory)
	t.Setenv("RANDOMUSER_BASE_URL", srv.URL)

	assert.Equal(t, 1, run())
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	assert.Equal(t, 1, run())
}
