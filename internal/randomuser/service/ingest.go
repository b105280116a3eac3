package service

import (
	"context"
	"fmt"
	"log/slog"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/util"
)

// UserFetcher fetches raw users from the remote API.
type UserFetcher interface {
	Fetch(ctx context.Context, count int) ([]model.RawUser, error)
}

// BatchPersister stores one batch of users atomically.
type BatchPersister interface {
	Persist(ctx context.Context, users []*model.User) (int, error)
}

// Ingestor runs fetch -> validate -> persist cycles until the requested number
// of users is stored or a cycle makes no progress. Runs are serial and
// uncoordinated with each other.
type Ingestor struct {
	Fetcher   UserFetcher
	Persister BatchPersister
	MaxBatch  int
	logger    *slog.Logger
}

func NewIngestor(fetcher UserFetcher, persister BatchPersister, maxBatch int, logger *slog.Logger) *Ingestor {
	if maxBatch <= 0 || maxBatch > model.MaxBatchSize {
		maxBatch = model.MaxBatchSize
	}
	if logger == nil {
		logger = util.GetLogger()
	}
	return &Ingestor{
		Fetcher:   fetcher,
		Persister: persister,
		MaxBatch:  maxBatch,
		logger:    logger,
	}
}

// Run loads total users. Fetch and storage failures end the run; invalid
// records are logged and dropped. The returned result is informational:
// failures are already logged.
func (ig *Ingestor) Run(ctx context.Context, total int) model.IngestResult {
	result := model.IngestResult{Requested: total}
	if total <= 0 {
		result.Stop = model.StopNothingRequested
		return result
	}

	remaining := total
	for remaining > 0 {
		batchSize := min(remaining, ig.MaxBatch)
		result.Batches++

		raws, err := ig.Fetcher.Fetch(ctx, batchSize)
		if err != nil {
			ig.logger.Error("Batch failed", "stage", "fetch", "error", err, "remaining", remaining)
			return ig.stop(result, model.StopFetchFailed, err)
		}

		users := make([]*model.User, 0, len(raws))
		for i, raw := range raws {
			user, err := model.MapRawUser(raw)
			if err != nil {
				result.Rejected++
				ig.logger.Warn("Invalid user data", "index", i, "error", err)
				continue
			}
			users = append(users, user)
		}

		saved, err := ig.Persister.Persist(ctx, users)
		if err != nil {
			ig.logger.Error("Batch failed", "stage", "persist", "error", err, "remaining", remaining)
			return ig.stop(result, model.StopStorageFailed, err)
		}

		remaining -= saved
		result.Saved += saved
		ig.logger.Info(fmt.Sprintf("Saved %d users, %d remaining", saved, remaining), "saved", saved, "remaining", remaining)

		if saved == 0 {
			ig.logger.Warn("No users saved in last batch, stopping", "fetched", len(raws), "rejected", len(raws)-len(users))
			return ig.stop(result, model.StopNoProgress, nil)
		}
	}

	result.Stop = model.StopCompleted
	return result
}

func (ig *Ingestor) stop(result model.IngestResult, reason model.StopReason, err error) model.IngestResult {
	result.Stop = reason
	if err != nil {
		result.Err = err
		result.Error = err.Error()
	}
	return result
}
