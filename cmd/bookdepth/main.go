package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"bookdepth/internal/config"
	"bookdepth/internal/explorer"
	"bookdepth/internal/sim"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	presets, err := config.LoadPresets(cfg.PresetsPath)
	if err != nil {
		logger.Fatal("load presets", zap.Error(err))
	}

	fen, err := presets.ResolveFEN(cfg.FEN, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("resolve starting position", zap.Error(err))
	}

	var cache *explorer.Cache
	if cfg.CachePath != "" {
		cache, err = explorer.OpenCache(cfg.CachePath)
		if err != nil {
			logger.Fatal("open explorer cache", zap.Error(err))
		}
		defer cache.Close()
	}

	client := explorer.NewClient("", cache, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	driver := sim.NewDriver(client, rng, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := driver.Run(ctx, sim.Experiment{
		FEN:    fen,
		Games:  cfg.NumGames,
		Speed:  cfg.Speed,
		Rating: cfg.Rating,
	})
	if err != nil {
		logger.Fatal("run experiment", zap.Error(err))
	}

	if len(report.Depths) == 0 {
		fmt.Println("no samples collected")
		return
	}

	fmt.Println(report.Depths)
	fmt.Printf("mean %.2f  median %.1f  stddev %.2f  (%d games)\n",
		report.Mean, report.Median, report.StdDev, len(report.Depths))
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}
