// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list (queue) name for game event logs.
var DefaultQueueName = "roulette_events"

// publishTimeout bounds one RPUSH so a slow Redis never stalls a turn.
const publishTimeout = 2 * time.Second

// EventRecord holds the minimal info a spectator needs to replay a game.
type EventRecord struct {
	GameID     uuid.UUID              `json:"game_id"`
	EventIndex int                    `json:"event_index"`
	Type       string                 `json:"type"`
	Round      int                    `json:"round"`
	Actor      string                 `json:"actor,omitempty"`
	Target     string                 `json:"target,omitempty"`
	Card       string                 `json:"card,omitempty"`
	CardIdx    *int                   `json:"card_idx,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	Timestamp  int64                  `json:"timestamp"` // epoch millis
}

// GameEvent rebuilds the narratable event. Participant IDs are not carried.
func (r EventRecord) GameEvent() game.GameEvent {
	ev := game.GameEvent{Type: game.GameEventType(r.Type), Round: r.Round, Payload: r.Payload}
	if r.Actor != "" {
		ev.User = &game.EventUser{Name: r.Actor}
	}
	if r.Target != "" {
		ev.Target = &game.EventUser{Name: r.Target}
	}
	if r.Card != "" {
		ev.Card = &game.EventCard{Name: r.Card, Idx: r.CardIdx}
	}
	return ev
}

// ListPusher is the part of *redis.Client the publisher needs.
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// ListPopper is the part of *redis.Client the spectator needs.
type ListPopper interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// ConnectRedis opens a client for addr and db and pings it.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// EventPublisher pushes every event of one game onto a Redis list.
type EventPublisher struct {
	ctx    context.Context
	client ListPusher
	queue  string
	log    *logrus.Logger

	mu     sync.Mutex
	gameID uuid.UUID
	index  int
	now    func() time.Time
}

// NewEventPublisher returns a publisher writing to queue. An empty queue uses
// DefaultQueueName. Pushes made by Handle are cancelled along with ctx.
func NewEventPublisher(ctx context.Context, client ListPusher, queue string, logger *logrus.Logger) *EventPublisher {
	if queue == "" {
		queue = DefaultQueueName
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EventPublisher{ctx: ctx, client: client, queue: queue, log: logger, now: time.Now}
}

// SetGame stamps subsequent records with gameID and restarts the event index.
func (p *EventPublisher) SetGame(gameID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameID = gameID
	p.index = 0
}

// Handle is a BroadcastFn. Publish failures are logged and otherwise ignored.
func (p *EventPublisher) Handle(ev game.GameEvent) {
	ctx, cancel := context.WithTimeout(p.ctx, publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, p.record(ev)); err != nil {
		p.log.WithError(err).WithField("event", ev.Type).Warn("event not published")
	}
}

func (p *EventPublisher) record(ev game.GameEvent) EventRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index++
	rec := EventRecord{
		GameID:     p.gameID,
		EventIndex: p.index,
		Type:       string(ev.Type),
		Round:      ev.Round,
		Payload:    ev.Payload,
		Timestamp:  p.now().UnixMilli(),
	}
	if ev.User != nil {
		rec.Actor = ev.User.Name
	}
	if ev.Target != nil {
		rec.Target = ev.Target.Name
	}
	if ev.Card != nil {
		rec.Card = ev.Card.Name
		rec.CardIdx = ev.Card.Idx
	}
	return rec
}

// Publish serializes the given record to JSON, then pushes it to the Redis queue.
func (p *EventPublisher) Publish(ctx context.Context, record EventRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal EventRecord: %w", err)
	}
	if err := p.client.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}

// PopEvent blocks up to timeout for the next record on queue. ok is false when
// the wait timed out without a message.
func PopEvent(ctx context.Context, client ListPopper, queue string, timeout time.Duration) (rec EventRecord, ok bool, err error) {
	res, err := client.BLPop(ctx, timeout, queue).Result()
	if errors.Is(err, redis.Nil) {
		return EventRecord{}, false, nil
	}
	if err != nil {
		return EventRecord{}, false, fmt.Errorf("BLPop %s: %w", queue, err)
	}
	if len(res) < 2 {
		return EventRecord{}, false, nil
	}

	// res[0] is the queue name and res[1] the payload.
	if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
		return EventRecord{}, false, fmt.Errorf("invalid event record: %w", err)
	}
	return rec, true, nil
}
