package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/roadto100k/internal/app"
	"github.com/riskibarqy/roadto100k/internal/config"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "CSV file with user_id,amount,date rows (- for stdin)")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent appends")
	flag.Parse()

	if *file == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -file entries.csv [-workers N]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-importer", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *file, *workers, logger); err != nil {
		logger.Error("import failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, path string, workers int, logger *logging.Logger) error {
	input := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		input = f
	}

	rows, parseFailures, err := readRows(input)
	if err != nil {
		return err
	}

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	defer func() { _ = services.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := importRows(ctx, services.Entries, rows, workers, logger)
	if err != nil {
		return err
	}

	for _, failure := range append(parseFailures, result.Failures...) {
		logger.Warn("row rejected", "line", failure.Line, "error", failure.Err)
	}
	logger.Info("import finished",
		"file", path,
		"imported", result.Imported,
		"failed", result.Failed+len(parseFailures),
	)

	if result.Failed+len(parseFailures) > 0 {
		return fmt.Errorf("%d row(s) rejected", result.Failed+len(parseFailures))
	}
	return nil
}
