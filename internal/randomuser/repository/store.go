package repository

import (
	"context"
	"fmt"

	"randomusers/internal/randomuser/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CloseFunc releases whatever connection a store holds.
type CloseFunc func(ctx context.Context) error

// Open builds the repository selected by cfg.StoreDriver and makes sure its
// schema exists.
func Open(ctx context.Context, cfg *config.Config) (UserRepository, CloseFunc, error) {
	var (
		repo    UserRepository
		closeFn CloseFunc
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		repo = NewPostgresUserRepository(pool, cfg.UsersCollection)
		closeFn = func(context.Context) error {
			pool.Close()
			return nil
		}
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		repo = NewMongoUserRepository(client.Database(cfg.DBName), cfg.UsersCollection)
		closeFn = client.Disconnect
	case config.DriverMemory:
		repo = NewMemoryUserRepository()
		closeFn = func(context.Context) error { return nil }
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = closeFn(ctx)
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, closeFn, nil
}
