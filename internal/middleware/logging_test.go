// internal/middleware/logging_test.go
package middleware

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEventsPassesThrough(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var got []game.GameEvent
	handler := LogEvents(logger)(func(ev game.GameEvent) { got = append(got, ev) })

	handler(game.GameEvent{
		Type:   game.EventHandSwapped,
		Round:  3,
		User:   &game.EventUser{ID: uuid.New(), Name: "A"},
		Target: &game.EventUser{ID: uuid.New(), Name: "B"},
	})

	require.Len(t, got, 1)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, game.EventHandSwapped, entry.Data["event"])
	assert.Equal(t, "A", entry.Data["actor"])
	assert.Equal(t, "B", entry.Data["target"])
	assert.Equal(t, 3, entry.Data["round"])
}

func TestLogEventsEliminationAtInfo(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := LogEvents(logger)(nil)

	handler(game.GameEvent{Type: game.EventPlayerEliminated, User: &game.EventUser{Name: "A"}})

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestChainSkipsNil(t *testing.T) {
	calls := 0
	count := func(game.GameEvent) { calls++ }

	Chain(count, nil, count)(game.GameEvent{Type: game.EventTurnStart})
	assert.Equal(t, 2, calls)
}
