// internal/cache/redis_test.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeList is an in-memory stand-in for a Redis list.
type fakeList struct {
	pushed  map[string][][]byte
	pushErr error
	pop     []string
	popErr  error
	ctxErrs []error
}

func (f *fakeList) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if err := ctx.Err(); err != nil {
		cmd.SetErr(err)
		return cmd
	}
	if f.pushErr != nil {
		cmd.SetErr(f.pushErr)
		return cmd
	}
	if f.pushed == nil {
		f.pushed = map[string][][]byte{}
	}
	for _, v := range values {
		f.pushed[key] = append(f.pushed[key], v.([]byte))
	}
	cmd.SetVal(int64(len(f.pushed[key])))
	return cmd
}

func (f *fakeList) BLPop(ctx context.Context, _ time.Duration, _ ...string) *redis.StringSliceCmd {
	cmd := redis.NewStringSliceCmd(ctx)
	if f.popErr != nil {
		cmd.SetErr(f.popErr)
		return cmd
	}
	cmd.SetVal(f.pop)
	return cmd
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPublisherHandleIndexesEvents(t *testing.T) {
	list := &fakeList{}
	pub := NewEventPublisher(context.Background(), list, "", quietLogger())
	pub.now = func() time.Time { return time.UnixMilli(1000) }
	gameID := uuid.New()
	pub.SetGame(gameID)

	pub.Handle(game.GameEvent{Type: game.EventTurnStart, Round: 1, User: &game.EventUser{Name: "A"}})
	pub.Handle(game.GameEvent{
		Type:    game.EventCardStolen,
		Round:   1,
		User:    &game.EventUser{Name: "A"},
		Target:  &game.EventUser{Name: "B"},
		Payload: map[string]interface{}{"count": 1},
	})

	pushed := list.pushed[DefaultQueueName]
	require.Len(t, pushed, 2)

	var rec EventRecord
	require.NoError(t, json.Unmarshal(pushed[1], &rec))
	assert.Equal(t, gameID, rec.GameID)
	assert.Equal(t, 2, rec.EventIndex)
	assert.Equal(t, string(game.EventCardStolen), rec.Type)
	assert.Equal(t, "A", rec.Actor)
	assert.Equal(t, "B", rec.Target)
	assert.Equal(t, int64(1000), rec.Timestamp)
	assert.Equal(t, float64(1), rec.Payload["count"])
}

func TestPublisherSetGameResetsIndex(t *testing.T) {
	list := &fakeList{}
	pub := NewEventPublisher(context.Background(), list, "q", quietLogger())
	pub.Handle(game.GameEvent{Type: game.EventTurnStart})
	pub.SetGame(uuid.New())
	pub.Handle(game.GameEvent{Type: game.EventTurnStart})

	var rec EventRecord
	require.NoError(t, json.Unmarshal(list.pushed["q"][1], &rec))
	assert.Equal(t, 1, rec.EventIndex)
}

func TestPublishWrapsRedisError(t *testing.T) {
	boom := errors.New("connection refused")
	pub := NewEventPublisher(context.Background(), &fakeList{pushErr: boom}, "q", quietLogger())

	err := pub.Publish(context.Background(), EventRecord{Type: "x"})
	assert.ErrorIs(t, err, boom)

	// Handle swallows the failure
	assert.NotPanics(t, func() { pub.Handle(game.GameEvent{Type: game.EventTurnStart}) })
}

func TestHandleUsesPublisherContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	list := &fakeList{}
	pub := NewEventPublisher(ctx, list, "q", quietLogger())

	pub.Handle(game.GameEvent{Type: game.EventTurnStart})
	cancel()
	pub.Handle(game.GameEvent{Type: game.EventTurnStart})

	require.Len(t, list.ctxErrs, 2)
	assert.NoError(t, list.ctxErrs[0])
	assert.ErrorIs(t, list.ctxErrs[1], context.Canceled, "shutdown cancels in-flight pushes")
	assert.Len(t, list.pushed["q"], 1)
}

func TestPopEvent(t *testing.T) {
	data, err := json.Marshal(EventRecord{EventIndex: 4, Type: "trigger_bang"})
	require.NoError(t, err)

	rec, ok, err := PopEvent(context.Background(), &fakeList{pop: []string{"q", string(data)}}, "q", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, rec.EventIndex)
	assert.Equal(t, "trigger_bang", rec.Type)
}

func TestPopEventTimeoutAndErrors(t *testing.T) {
	_, ok, err := PopEvent(context.Background(), &fakeList{popErr: redis.Nil}, "q", time.Second)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = PopEvent(context.Background(), &fakeList{pop: []string{"q", "{not json"}}, "q", time.Second)
	assert.Error(t, err)

	boom := errors.New("broken pipe")
	_, _, err = PopEvent(context.Background(), &fakeList{popErr: boom}, "q", time.Second)
	assert.ErrorIs(t, err, boom)
}

func TestRecordRoundTripsToGameEvent(t *testing.T) {
	pub := NewEventPublisher(context.Background(), &fakeList{}, "q", quietLogger())
	idx := 2
	rec := pub.record(game.GameEvent{
		Type:   game.EventForcedFire,
		Round:  4,
		User:   &game.EventUser{ID: uuid.New(), Name: "A"},
		Target: &game.EventUser{ID: uuid.New(), Name: "B"},
		Card:   &game.EventCard{Name: "Force Chosen Player to Fire Instead", Idx: &idx},
	})

	ev := rec.GameEvent()
	assert.Equal(t, game.EventForcedFire, ev.Type)
	assert.Equal(t, 4, ev.Round)
	assert.Equal(t, "A", ev.User.Name)
	assert.Equal(t, "B", ev.Target.Name)
	assert.Equal(t, "Force Chosen Player to Fire Instead", ev.Card.Name)
	require.NotNil(t, ev.Card.Idx)
	assert.Equal(t, 2, *ev.Card.Idx)

	assert.Nil(t, EventRecord{Type: "turn_skip"}.GameEvent().User)
}
