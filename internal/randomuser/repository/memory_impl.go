package repository

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"

	"randomusers/internal/randomuser/model"
)

// MemoryUserRepository keeps users in process memory. It backs local runs
// and tests. InsertBatch stages every row before publishing any of them.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  []*model.User
	nextID int64

	// BeforeInsert, when set, runs for each staged row; an error aborts the
	// whole batch.
	BeforeInsert func(index int, user *model.User) error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1}
}

func (r *MemoryUserRepository) EnsureSchema(ctx context.Context) error { return nil }

func (r *MemoryUserRepository) Ping(ctx context.Context) error { return ctx.Err() }

func (r *MemoryUserRepository) InsertBatch(ctx context.Context, users []*model.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make([]*model.User, 0, len(users))
	id := r.nextID
	for i, u := range users {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if r.BeforeInsert != nil {
			if err := r.BeforeInsert(i, u); err != nil {
				return 0, err
			}
		}
		row := cloneUser(u)
		row.ID = strconv.FormatInt(id, 10)
		staged = append(staged, row)
		id++
	}

	r.users = append(r.users, staged...)
	r.nextID = id
	for i, row := range staged {
		users[i].ID = row.ID
	}
	return len(staged), nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindPage(ctx context.Context, page, size int) ([]*model.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.users))
	out := make([]*model.User, 0, size)
	// newest first
	for i := len(r.users) - 1 - int(offset(page, size)); i >= 0 && len(out) < size; i-- {
		out = append(out, cloneUser(r.users[i]))
	}
	return out, total, nil
}

func (r *MemoryUserRepository) FindRandom(ctx context.Context) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.users) == 0 {
		return nil, ErrNotFound
	}
	return cloneUser(r.users[rand.IntN(len(r.users))]), nil
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.users))
	r.users = nil
	return n, nil
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.Location != nil {
		c.Location = make(map[string]any, len(u.Location))
		for k, v := range u.Location {
			c.Location[k] = v
		}
	}
	return &c
}
