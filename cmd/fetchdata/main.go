// Command fetchdata seeds an empty store with users from randomuser.me.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"randomusers/internal/randomuser/client"
	"randomusers/internal/randomuser/config"
	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/repository"
	"randomusers/internal/randomuser/service"
	"randomusers/internal/randomuser/util"
)

var (
	version   = ""
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""

	count       = flag.Int("count", model.MaxLoadNumber, "Number of users to load when the store is empty")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(util.BuildVersion(version, commit, date, builtBy, treeState).String())
		return
	}

	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	util.InitLogger()
	logger := util.GetLogger()

	if *count < 0 {
		logger.Error("count must not be negative", "count", *count)
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "driver", cfg.StoreDriver, "error", err)
		return 1
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	apiClient := client.NewRandomUserClient(cfg.RandomUserBaseURL, cfg.RandomUserTimeout, logger)
	ingestor := service.NewIngestor(apiClient, service.NewPersister(repo, logger), cfg.IngestMaxBatch, logger)
	svc := service.NewService(repo, ingestor, logger)

	return seed(ctx, svc, *count)
}

// seed loads count users into an empty store and maps the outcome to an
// exit code.
func seed(ctx context.Context, svc service.UserService, count int) int {
	result, ran, err := svc.LoadInitialUsers(ctx, count)
	if err != nil {
		util.GetLogger().Error("Initial load failed", "error", err)
		return 1
	}
	if !ran {
		fmt.Println("Users already loaded, nothing to do")
		return 0
	}

	fmt.Printf("Loaded %d of %d users (%s)\n", result.Saved, result.Requested, result.Stop)
	if result.Stop != model.StopCompleted && result.Stop != model.StopNothingRequested {
		return 1
	}
	return 0
}
