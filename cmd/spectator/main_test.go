// cmd/spectator/main_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/cache"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedQueue pops the queued payloads in order, then cancels the run.
type scriptedQueue struct {
	payloads []string
	cancel   context.CancelFunc
}

func (q *scriptedQueue) BLPop(ctx context.Context, _ time.Duration, keys ...string) *redis.StringSliceCmd {
	cmd := redis.NewStringSliceCmd(ctx)
	if len(q.payloads) == 0 {
		q.cancel()
		cmd.SetErr(redis.Nil)
		return cmd
	}
	next := q.payloads[0]
	q.payloads = q.payloads[1:]
	cmd.SetVal([]string{keys[0], next})
	return cmd
}

func encode(t *testing.T, rec cache.EventRecord) string {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return string(data)
}

func TestSpectatorNarratesQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameID := uuid.New()
	q := &scriptedQueue{cancel: cancel, payloads: []string{
		encode(t, cache.EventRecord{GameID: gameID, EventIndex: 1, Type: string(game.EventTurnStart), Round: 1, Actor: "Ann"}),
		"{garbage",
		encode(t, cache.EventRecord{GameID: gameID, EventIndex: 2, Type: string(game.EventTriggerSuspense), Actor: "Ann"}),
		encode(t, cache.EventRecord{GameID: gameID, EventIndex: 3, Type: string(game.EventCardDeclined), Actor: "Ann"}),
		encode(t, cache.EventRecord{GameID: gameID, EventIndex: 4, Type: string(game.EventGameEnd), Actor: "Ann"}),
	}}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	var out bytes.Buffer
	ss := NewSpectatorService(q, "roulette_events", spectatorConfig{PopTimeoutSec: 1, IdleSec: 60}, &out, logger)

	ss.readLoop(ctx)

	text := out.String()
	prefix := "[" + gameID.String()[:8] + "]"
	assert.Contains(t, text, prefix+" \n====")
	assert.Contains(t, text, "It's Ann's turn!")
	assert.Contains(t, text, prefix+" Ann pulls the trigger...")
	assert.Contains(t, text, "Ann is the last person standing!")

	_, tracked := ss.lastActivity.Load(gameID)
	assert.False(t, tracked, "ended games are forgotten")
}
