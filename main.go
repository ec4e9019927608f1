package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/game"
	"github.com/pthm-cable/steer/sim"
	"github.com/pthm-cable/steer/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	workers := flag.Int("workers", 0, "Steering workers (0 = use config)")
	annotate := flag.Bool("annotate", false, "Start with steering annotations visible")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir, telemetry.NewRunID())
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}

	opts := sim.Options{
		Seed:     rngSeed,
		Workers:  *workers,
		LogStats: *logStats,
		Output:   output,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		err = runHeadless(ctx, cfg, opts, *maxTicks)
	} else {
		err = runWindow(ctx, cfg, opts, *annotate)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps without graphics until maxTicks or an interrupt.
func runHeadless(ctx context.Context, cfg *config.Config, opts sim.Options, maxTicks int) error {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", maxTicks,
	)
	start := time.Now()

	runErr := s.Run(ctx, maxTicks)
	if errors.Is(runErr, context.Canceled) {
		slog.Info("interrupted", "tick", s.Tick())
		runErr = nil
	} else if runErr == nil {
		slog.Info("max ticks reached", "tick", s.Tick(), "elapsed", time.Since(start).Round(time.Millisecond))
	}

	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func runWindow(ctx context.Context, cfg *config.Config, opts sim.Options, annotate bool) error {
	g, err := game.New(cfg, opts, annotate)
	if err != nil {
		return err
	}
	runErr := g.Run(ctx)
	if err := g.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
