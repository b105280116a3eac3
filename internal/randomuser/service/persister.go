package service

import (
	"context"
	"errors"
	"log/slog"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/repository"
	"randomusers/internal/randomuser/util"
)

// StorageError means a batch write failed and nothing from it was committed.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is a failed batch write.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// Persister writes validated users in one all-or-nothing batch per call.
// It trusts its input and performs no field validation.
type Persister struct {
	Repo   repository.UserRepository
	logger *slog.Logger
}

func NewPersister(repo repository.UserRepository, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = util.GetLogger()
	}
	return &Persister{Repo: repo, logger: logger}
}

func (p *Persister) Persist(ctx context.Context, users []*model.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	n, err := p.Repo.InsertBatch(ctx, users)
	if err != nil {
		p.logger.Error("Database error", "error", err, "batch_size", len(users))
		return 0, &StorageError{Err: err}
	}
	return n, nil
}
