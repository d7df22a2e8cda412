// cmd/roulette/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/cache"
	"github.com/jason-s-yu/roulette/internal/config"
	"github.com/jason-s-yu/roulette/internal/console"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/jason-s-yu/roulette/internal/logging"
	"github.com/jason-s-yu/roulette/internal/middleware"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	var rulesJSON string
	var themeName string
	flag.StringVar(&rulesJSON, "rules", "", `JSON house-rule overrides, e.g. {"chambers":8,"refillHand":true}`)
	flag.StringVar(&themeName, "theme", "", "card theme (overrides ROULETTE_THEME)")
	flag.Parse()

	if err := run(rulesJSON, themeName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rulesJSON, themeName string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if themeName != "" {
		cfg.Theme = themeName
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	theme, err := cfg.GameTheme()
	if err != nil {
		return err
	}
	rules, err := cfg.HouseRules(theme)
	if err != nil {
		return err
	}
	if rulesJSON != "" {
		var overrides map[string]interface{}
		if err := json.Unmarshal([]byte(rulesJSON), &overrides); err != nil {
			return fmt.Errorf("parse -rules: %w", err)
		}
		if rules, err = game.ParseRules(overrides, rules); err != nil {
			return fmt.Errorf("apply -rules: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	narrator := console.NewNarrator(os.Stdout, cfg.Pace())

	fmt.Println("Welcome to Russian Roulette with Cards!")
	names, err := prompter.AskRoster(game.MinParticipants)
	if err != nil {
		return err
	}

	var publisher *cache.EventPublisher
	if cfg.RedisEnabled() {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			// The sink is optional; play on without it.
			logger.WithError(err).Warn("event sink disabled")
		} else {
			defer rdb.Close()
			publisher = cache.NewEventPublisher(ctx, rdb, cfg.EventQueue, logger)
		}
	}

	broadcast := middleware.Chain(narrator.Handle)
	if publisher != nil {
		broadcast = middleware.Chain(narrator.Handle, publisher.Handle)
	}

	gameID := uuid.New()
	if publisher != nil {
		publisher.SetGame(gameID)
	}

	g, err := game.NewGame(names, game.Options{
		ID:          gameID,
		Theme:       theme,
		Rules:       &rules,
		Seed:        cfg.Seed,
		Decider:     prompter,
		Logger:      logger,
		BroadcastFn: middleware.LogEvents(logger)(broadcast),
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"game_id": g.ID, "seed": g.Seed}).Info("game started")
	return g.Run(ctx)
}
