// cmd/spectator/main.go is a spectator service that pops game events from the Redis queue and narrates them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/cache"
	"github.com/jason-s-yu/roulette/internal/config"
	"github.com/jason-s-yu/roulette/internal/console"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/jason-s-yu/roulette/internal/logging"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// spectatorConfig holds the settings only the spectator reads.
type spectatorConfig struct {
	PopTimeoutSec int `env:"SPECTATOR_POP_TIMEOUT_SEC" envDefault:"3"`
	IdleSec       int `env:"SPECTATOR_IDLE_SEC" envDefault:"600"`
}

// SpectatorService narrates every game published to the queue and notes
// games that go quiet without ending.
type SpectatorService struct {
	client     cache.ListPopper
	queue      string
	popTimeout time.Duration
	idle       time.Duration
	out        io.Writer
	log        *logrus.Logger

	lastActivity sync.Map // map[uuid.UUID]time.Time for games still in progress
}

// NewSpectatorService builds the service around an already-connected client.
func NewSpectatorService(client cache.ListPopper, queue string, sc spectatorConfig, out io.Writer, logger *logrus.Logger) *SpectatorService {
	return &SpectatorService{
		client:     client,
		queue:      queue,
		popTimeout: time.Duration(sc.PopTimeoutSec) * time.Second,
		idle:       time.Duration(sc.IdleSec) * time.Second,
		out:        out,
		log:        logger,
	}
}

// Run starts the idle check and reads the queue until ctx is cancelled.
func (ss *SpectatorService) Run(ctx context.Context) {
	go ss.idleLoop(ctx)

	ss.log.WithField("queue", ss.queue).Info("roulette-spectator started")
	ss.readLoop(ctx)
	ss.log.Info("roulette-spectator shutting down")
}

// readLoop uses BLPop with a timeout so that context cancellation is handled.
func (ss *SpectatorService) readLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		rec, ok, err := cache.PopEvent(ctx, ss.client, ss.queue, ss.popTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			ss.log.WithError(err).Error("pop event")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if !ok {
			continue
		}
		ss.show(rec)
	}
}

// show narrates one record, tagging it with a short game ID.
func (ss *SpectatorService) show(rec cache.EventRecord) {
	if rec.Type == string(game.EventGameEnd) {
		ss.lastActivity.Delete(rec.GameID)
	} else {
		ss.lastActivity.Store(rec.GameID, time.Now())
	}
	text := console.Render(rec.GameEvent())
	if text == "" {
		if rec.Type != string(game.EventTriggerSuspense) {
			return
		}
		text = fmt.Sprintf("%s pulls the trigger...", rec.Actor)
	}
	fmt.Fprintf(ss.out, "[%s] %s\n", shortID(rec.GameID), text)
}

// idleLoop periodically reports games that have not produced an event in the idle window.
func (ss *SpectatorService) idleLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()
			ss.lastActivity.Range(func(key, val interface{}) bool {
				gameID, ok1 := key.(uuid.UUID)
				last, ok2 := val.(time.Time)
				if ok1 && ok2 && now.Sub(last) > ss.idle {
					ss.log.WithField("game_id", gameID).Info("game went quiet without ending")
					ss.lastActivity.Delete(gameID)
				}
				return true
			})
		}
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	var sc spectatorConfig
	if err := config.ParseEnv(&sc); err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if !cfg.RedisEnabled() {
		return errors.New("REDIS_ADDR is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	NewSpectatorService(rdb, cfg.EventQueue, sc, os.Stdout, logger).Run(ctx)
	logger.Info("spectator shutdown complete")
	return nil
}
