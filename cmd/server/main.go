package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"randomusers/internal/randomuser/client"
	"randomusers/internal/randomuser/config"
	"randomusers/internal/randomuser/handler"
	"randomusers/internal/randomuser/repository"
	"randomusers/internal/randomuser/router"
	"randomusers/internal/randomuser/service"
	"randomusers/internal/randomuser/util"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	version   = ""
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

func main() {
	// 0. Init Logger
	util.InitLogger()
	logger := util.GetLogger()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	util.InitLoggerWithLevel(cfg.LogLevel)
	logger = util.GetLogger()

	// 2. Open store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	// 3. Init Layers
	apiClient := client.NewRandomUserClient(cfg.RandomUserBaseURL, cfg.RandomUserTimeout, logger)
	ingestor := service.NewIngestor(apiClient, service.NewPersister(repo, logger), cfg.IngestMaxBatch, logger)
	svc := service.NewService(repo, ingestor, logger)
	h := handler.NewUserHandler(svc, util.BuildVersion(version, commit, date, builtBy, treeState))

	if cfg.InitialLoad > 0 {
		if _, _, err := svc.LoadInitialUsers(context.Background(), cfg.InitialLoad); err != nil {
			logger.Warn("Initial user load failed", "error", err)
		}
	}

	// 4. Init Echo & Routes
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		},
	}))

	if err := router.RegisterRoutes(e, h, cfg.AdminToken); err != nil {
		logger.Error("Failed to register routes", "error", err)
		os.Exit(1)
	}

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("shutting down the server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server Shutdown Failed", "error", err)
	}

	if err := closeStore(shutdownCtx); err != nil {
		logger.Error("Failed to close store", "error", err)
	}

	logger.Info("Server exited properly")
}
