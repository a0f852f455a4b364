package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/repository"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/precompute"
)

var (
	flagDepth      = flag.Int("depth", 0, "Plies to expand from the empty board (PRECOMPUTE_DEPTH when 0)")
	flagWorkers    = flag.Int("workers", 0, "Solver goroutines (PRECOMPUTE_WORKERS when 0)")
	flagFlushCache = flag.Bool("flush-cache", false, "Drop the shared Redis score cache and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadConfig()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	var err error
	if *flagFlushCache {
		err = flushCache(ctx, cfg)
	} else {
		err = fillTable(ctx, cfg)
	}
	stop()

	if err != nil {
		log.Error().Err(err).Msg("solver-table stopped")
		os.Exit(1)
	}
}

func flushCache(ctx context.Context, cfg *config.Config) error {
	client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if client == nil {
		return errors.New("no Redis configured")
	}
	defer client.Close()

	n, err := redis.NewRedisCache(client, 0).Flush(ctx)
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	fmt.Printf("Removed %d cached scores\n", n)
	return nil
}

func fillTable(ctx context.Context, cfg *config.Config) error {
	table, err := repository.OpenTable(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open position table: %w", err)
	}
	if table == nil {
		return errors.New("TABLE_DRIVER is none, nothing to fill")
	}
	defer table.Close()

	depth := cfg.PrecomputeDepth
	if *flagDepth > 0 {
		depth = *flagDepth
	}
	workers := cfg.PrecomputeWorkers
	if *flagWorkers > 0 {
		workers = *flagWorkers
	}

	start := time.Now()
	stats, err := precompute.NewWorker(table, depth, workers, cfg.SolverTableSize).Run(ctx)
	if err != nil {
		return fmt.Errorf("precompute stopped after %d positions: %w", stats.Solved, err)
	}

	total, err := table.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not count table rows")
	}
	fmt.Printf("Solved %d positions (%d already known) in %s, table holds %d\n",
		stats.Solved, stats.Skipped, time.Since(start).Round(time.Second), total)
	return nil
}
