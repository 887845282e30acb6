package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/packlist/internal/config"
	"github.com/mmynk/packlist/internal/metrics"
	"github.com/mmynk/packlist/internal/service"
	"github.com/mmynk/packlist/internal/storage/sqlite"
	"github.com/mmynk/packlist/pkg/logging"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logging.Setup(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return 1
	}
	defer store.Close()
	slog.Debug("Storage initialized", "database", cfg.DBPath)

	ctx := context.Background()
	m := metrics.New()
	svc := service.NewTripService(ctx, store, service.WithRecorder(m))

	runErr := run(ctx, svc, args, os.Stdout)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Error("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	switch {
	case runErr == nil:
		return 0
	case errors.Is(runErr, errUsage):
		fmt.Fprintln(os.Stderr, runErr)
		fmt.Fprint(os.Stderr, usage)
		return 2
	default:
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
}
