// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, 6, cfg.Chambers)
	assert.Nil(t, cfg.RefillHand)
	assert.Equal(t, 1500*time.Millisecond, cfg.Pace())
	assert.Equal(t, "roulette_events", cfg.EventQueue)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROULETTE_THEME", "saloon")
	t.Setenv("ROULETTE_CHAMBERS", "8")
	t.Setenv("ROULETTE_REFILL_HAND", "false")
	t.Setenv("ROULETTE_PACE_MS", "0")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	theme, err := cfg.GameTheme()
	require.NoError(t, err)
	rules, err := cfg.HouseRules(theme)
	require.NoError(t, err)

	assert.Equal(t, 8, rules.Chambers)
	assert.Equal(t, 4, rules.HandSize, "saloon hand size survives")
	assert.False(t, rules.RefillHand, "explicit env beats the theme")
	assert.Equal(t, time.Duration(0), cfg.Pace())
	assert.True(t, cfg.RedisEnabled())
}

func TestHouseRulesKeepThemeRefillWhenUnset(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	saloon, err := game.LookupTheme("saloon")
	require.NoError(t, err)

	rules, err := cfg.HouseRules(saloon)
	require.NoError(t, err)
	assert.True(t, rules.RefillHand)
}

func TestHouseRulesRejectsBadChambers(t *testing.T) {
	t.Setenv("ROULETTE_CHAMBERS", "0")
	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.HouseRules(game.Theme{HandSize: 5})
	assert.Error(t, err)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("ROULETTE_SEED", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
