package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/repository"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/internal/transport/console"
)

var (
	flagMode = flag.String("mode", game.ModeBot, "Game mode ("+strings.Join(game.Modes(), ", ")+")")
	flagBot  = flag.String("bot", bot.Hard, "Bot strategy ("+strings.Join(bot.Names(), ", ")+")")
	flagSeed = flag.Int64("seed", 0, "Seed for the easy bot, 0 picks one from the clock")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadConfig()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Str("mode", *flagMode).Str("bot", *flagBot).Msg("connect4 stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := bot.Options{
		HardDepth:       cfg.HardDepth,
		SolverTableSize: cfg.SolverTableSize,
		Seed:            seed,
	}

	if client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); client != nil {
		defer client.Close()
		opts.Cache = redis.NewRedisCache(client, cfg.SolverCacheTTL)
	}

	table, err := repository.OpenTable(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("offline table unavailable")
	} else if table != nil {
		defer table.Close()
		opts.Table = table
	}

	glyphs := console.Glyphs{Empty: console.DefaultGlyphs.Empty, Player1: cfg.Player1Glyph, Player2: cfg.Player2Glyph}
	renderer := console.NewRenderer(os.Stdout, glyphs)
	deps := game.ModeDeps{
		Human:      console.NewInput(os.Stdin, os.Stdout, glyphs),
		BotName:    *flagBot,
		BotOptions: opts,
	}

	match, err := game.NewModeMatch(*flagMode, deps, renderer, os.Stdout)
	if err != nil {
		return fmt.Errorf("set up match: %w", err)
	}
	match.MoveTimeout = cfg.MoveTimeout
	match.HintTimeout = cfg.HintTimeout
	match.MaxRejections = cfg.MaxRejections

	if err := renderer.Render(match.View()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	result, err := match.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println()
			return nil
		}
		return fmt.Errorf("match %s: %w", result.MatchID, err)
	}

	switch result.Status {
	case domain.StatusWon:
		fmt.Printf("Player %d Won!\n", result.Winner)
	case domain.StatusDraw:
		fmt.Println("Draw!")
	}
	return nil
}
