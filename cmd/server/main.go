package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fileflow/internal/config"
	"fileflow/internal/executor"
	"fileflow/internal/logging"
	"fileflow/internal/metrics"
	"fileflow/internal/operations"
	"fileflow/internal/pool"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fileflow:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logging.New(os.Getenv("FILEFLOW_ENV") != "production")
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting fileflow",
		zap.Int("core_workers", cfg.CoreWorkers),
		zap.Int("max_workers", cfg.MaxWorkers),
		zap.String("storage_dir", cfg.StorageDir),
	)

	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)

	metricsServer := metrics.NewServer(cfg.MetricsAddr, reg)
	metricsServer.Start()
	log.Info("metrics server listening", zap.String("addr", cfg.MetricsAddr))

	workerPool := pool.New(pool.Config{
		CoreWorkers:     cfg.CoreWorkers,
		MaxWorkers:      cfg.MaxWorkers,
		QueueCapacity:   cfg.QueueCapacity,
		ResizeThreshold: cfg.ResizeThreshold,
		IdleTimeout:     cfg.IdleTimeout,
		MonitorInterval: cfg.MonitorInterval,
	}, log)

	ops := operations.New(cfg.StorageDir, cfg.MaxFileSize, log)
	_ = executor.New(workerPool, ops, reg, log)
	log.Info("workflow executor ready")

	// The RPC transport that drives the executor lives outside this
	// process; main bootstraps the long-lived dependencies and blocks
	// until asked to shut down.

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	workerPool.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown error", zap.Error(err))
	}

	return nil
}
