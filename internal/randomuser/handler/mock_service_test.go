package handler

import (
	"context"

	"randomusers/internal/randomuser/model"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, req model.ListUsersReq) (*model.UserPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPage), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetRandomUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) LoadUsers(ctx context.Context, req model.LoadUsersReq) (*model.IngestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngestResult), args.Error(1)
}

func (m *MockUserService) LoadInitialUsers(ctx context.Context, total int) (*model.IngestResult, bool, error) {
	args := m.Called(ctx, total)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.IngestResult), args.Bool(1), args.Error(2)
}

func (m *MockUserService) DeleteAllUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
