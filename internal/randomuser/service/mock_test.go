package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"randomusers/internal/randomuser/model"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserRepository) InsertBatch(ctx context.Context, users []*model.User) (int, error) {
	args := m.Called(ctx, users)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindPage(ctx context.Context, page, size int) ([]*model.User, int64, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindRandom(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockFetcher is a mock UserFetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, count int) ([]model.RawUser, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawUser), args.Error(1)
}

// MockPersister is a mock BatchPersister.
type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Persist(ctx context.Context, users []*model.User) (int, error) {
	args := m.Called(ctx, users)
	return args.Int(0), args.Error(1)
}

func rawUser(i int) model.RawUser {
	return model.RawUser{
		"gender":   "female",
		"name":     map[string]any{"first": fmt.Sprintf("Jane%d", i), "last": "Smith"},
		"phone":    "987-654-321",
		"email":    fmt.Sprintf("jane%d@example.com", i),
		"location": map[string]any{"city": "Oslo"},
		"picture":  map[string]any{"thumbnail": "http://example.com/jane.jpg"},
	}
}

func rawUsers(n int) []model.RawUser {
	out := make([]model.RawUser, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rawUser(i))
	}
	return out
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
