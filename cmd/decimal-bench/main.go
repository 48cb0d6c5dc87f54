package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ydb-platform/decimal-bench/internal/bench"
	"github.com/ydb-platform/decimal-bench/internal/config"
	"github.com/ydb-platform/decimal-bench/internal/dataset"
	"github.com/ydb-platform/decimal-bench/internal/xlog"
)

func main() {
	cfg, err := config.New(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		if !errors.Is(err, config.ErrWrongArgs) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	logger, err := xlog.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.New()
	logger = logger.With(zap.Stringer("run", runID))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, cfg, logger, runID.String(), os.Stdout); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run generates the dataset, measures the selected scenarios and writes progress and the
// report to out.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, runID string, out io.Writer) error {
	scenarios := bench.Filter(bench.Scenarios(), cfg.IncludeRegexp())
	if len(scenarios) == 0 {
		return fmt.Errorf("no benchmarks match %q", cfg.Include)
	}

	logger.Info("program started",
		zap.Int("size", cfg.Size),
		zap.Int64("seed", cfg.Seed),
		zap.Int("benchmarks", len(scenarios)),
	)
	defer logger.Info("program finished")

	ds, err := dataset.Generate(
		dataset.Config{
			Size:  cfg.Size,
			Seed:  cfg.Seed,
			Scale: cfg.Scale,
		},
		dataset.WithProgress(out),
		dataset.WithLogger(logger.Named("dataset")),
	)
	if err != nil {
		return fmt.Errorf("generate dataset failed: %w", err)
	}

	runner := bench.NewRunner(bench.Options{
		WarmupIterations:      cfg.WarmupIterations,
		WarmupTime:            cfg.WarmupTime,
		MeasurementIterations: cfg.MeasurementIterations,
		MeasurementTime:       cfg.MeasurementTime,
	}, bench.WithLogger(logger.Named("runner")))

	start := time.Now()
	results, err := runner.Run(ctx, ds, scenarios)
	if err != nil {
		return fmt.Errorf("run benchmarks failed: %w", err)
	}
	logger.Info("benchmarks done", zap.Duration("took", time.Since(start)))

	fmt.Fprintln(out)

	return bench.WriteReport(out, runID, results)
}
