package repository

import (
	"context"
	"errors"

	"randomusers/internal/randomuser/model"
)

var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	// Create the table/collection and its indexes if missing
	EnsureSchema(ctx context.Context) error
	// Check the store is reachable
	Ping(ctx context.Context) error
	// Insert users in one transaction: either all are stored or none are.
	// On success each user's ID is set.
	InsertBatch(ctx context.Context, users []*model.User) (int, error)
	// Find a user by id, ErrNotFound if absent
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Find one page of users, newest first, with the total count
	FindPage(ctx context.Context, page, size int) ([]*model.User, int64, error)
	// Pick one stored user uniformly at random, ErrNotFound if empty
	FindRandom(ctx context.Context) (*model.User, error)
	// Count stored users
	Count(ctx context.Context) (int64, error)
	// Delete every stored user (administrative bulk action)
	DeleteAll(ctx context.Context) (int64, error)
}

func offset(page, size int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * size)
}
