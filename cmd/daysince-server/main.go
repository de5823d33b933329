package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/daysince/internal/auth"
	"github.com/existflow/daysince/internal/config"
	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/store"
	"github.com/existflow/daysince/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Close() }()

	sortBy, err := model.ParseSortCriterion(cfg.DefaultSort)
	if err != nil {
		log.Fatalf("Invalid default_sort: %v", err)
	}

	backend, err := store.OpenBackend(cfg.Backend, cfg.StoreTarget())
	if err != nil {
		log.Fatalf("Failed to open timer store: %v", err)
	}
	st, err := store.Open(context.Background(), backend)
	if err != nil {
		_ = backend.Close()
		log.Fatalf("Failed to load timers: %v", err)
	}

	gate := auth.NewGate(cfg.Password)
	if !gate.Enabled() {
		logger.Warn("No password configured, API is open to anyone who can reach it")
	}

	srv := server.New(st, gate, server.WithDefaultSort(sortBy))
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	go func() {
		logger.Info("daysince server starting",
			logger.F("addr", cfg.ServerAddr),
			logger.F("backend", cfg.Backend))
		if err := srv.Start(cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", logger.F("error", err))
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", logger.F("error", err))
	}
	logger.Info("daysince server stopped")
}
