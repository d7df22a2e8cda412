// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jason-s-yu/roulette/internal/game"
)

// Config is the process configuration read from the environment (and .env when
// the caller imports godotenv/autoload).
type Config struct {
	Theme            string `env:"ROULETTE_THEME" envDefault:"classic"`
	Chambers         int    `env:"ROULETTE_CHAMBERS" envDefault:"6"`
	HandSize         int    `env:"ROULETTE_HAND_SIZE"` // 0 keeps the theme default
	RefillHand       *bool  `env:"ROULETTE_REFILL_HAND"`
	ExtraLifeExpires bool   `env:"ROULETTE_EXTRA_LIFE_EXPIRES" envDefault:"false"`
	Seed             int64  `env:"ROULETTE_SEED"`
	PaceMs           int    `env:"ROULETTE_PACE_MS" envDefault:"1500"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	RedisAddr  string `env:"REDIS_ADDR"`
	RedisDB    int    `env:"REDIS_DB" envDefault:"0"`
	EventQueue string `env:"ROULETTE_EVENT_QUEUE" envDefault:"roulette_events"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GameTheme resolves the configured theme.
func (c Config) GameTheme() (game.Theme, error) {
	return game.LookupTheme(c.Theme)
}

// HouseRules starts from the theme's rules and applies the environment overrides.
func (c Config) HouseRules(theme game.Theme) (game.HouseRules, error) {
	rules := theme.Rules()
	rules.Chambers = c.Chambers
	if c.HandSize > 0 {
		rules.HandSize = c.HandSize
	}
	if c.RefillHand != nil {
		rules.RefillHand = *c.RefillHand
	}
	rules.ExtraLifeExpires = c.ExtraLifeExpires
	if err := rules.Validate(); err != nil {
		return game.HouseRules{}, fmt.Errorf("house rules from env: %w", err)
	}
	return rules, nil
}

// Pace is the suspense delay used by the console narrator.
func (c Config) Pace() time.Duration {
	if c.PaceMs <= 0 {
		return 0
	}
	return time.Duration(c.PaceMs) * time.Millisecond
}

// RedisEnabled reports whether the event sink should be connected.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
