package service

import (
	"context"
	"errors"
	"log/slog"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/repository"
	"randomusers/internal/randomuser/util"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrBadRequest = errors.New("bad request")
)

type UserService interface {
	ListUsers(ctx context.Context, req model.ListUsersReq) (*model.UserPage, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetRandomUser(ctx context.Context) (*model.User, error)
	LoadUsers(ctx context.Context, req model.LoadUsersReq) (*model.IngestResult, error)
	// Load total users only when the store is empty; reports whether it ran
	LoadInitialUsers(ctx context.Context, total int) (*model.IngestResult, bool, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
	Health(ctx context.Context) error
}

type Service struct {
	Repo     repository.UserRepository
	Ingestor *Ingestor
	logger   *slog.Logger
}

func NewService(repo repository.UserRepository, ingestor *Ingestor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = util.GetLogger()
	}
	return &Service{Repo: repo, Ingestor: ingestor, logger: logger}
}

func (s *Service) ListUsers(ctx context.Context, req model.ListUsersReq) (*model.UserPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	users, total, err := s.Repo.FindPage(ctx, req.Page, req.Size)
	if err != nil {
		return nil, err
	}
	return &model.UserPage{Data: users, Page: req.Page, Size: req.Size, TotalCount: total}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) GetRandomUser(ctx context.Context) (*model.User, error) {
	user, err := s.Repo.FindRandom(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("Database error", "error", err)
		return nil, err
	}
	return user, nil
}

// LoadUsers runs one ingestion. The run is detached from ctx cancellation so
// a dropped caller does not interrupt a batch midway.
func (s *Service) LoadUsers(ctx context.Context, req model.LoadUsersReq) (*model.IngestResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := s.Ingestor.Run(context.WithoutCancel(ctx), *req.Number)
	s.logger.Info("Ingestion finished",
		"requested", result.Requested,
		"saved", result.Saved,
		"rejected", result.Rejected,
		"batches", result.Batches,
		"stop", result.Stop,
	)
	return &result, nil
}

func (s *Service) LoadInitialUsers(ctx context.Context, total int) (*model.IngestResult, bool, error) {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if count > 0 {
		s.logger.Info("Users already loaded, skipping initial load", "count", count)
		return nil, false, nil
	}

	s.logger.Info("Starting initial user load from API", "total", total)
	result := s.Ingestor.Run(ctx, total)
	s.logger.Info("Initial user load finished", "saved", result.Saved, "stop", result.Stop)
	return &result, true, nil
}

func (s *Service) DeleteAllUsers(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Audit: all users deleted", "deleted", n)
	return n, nil
}

func (s *Service) Health(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}
