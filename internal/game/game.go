// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/models"
	"github.com/jason-s-yu/roulette/internal/random"
	"github.com/sirupsen/logrus"
)

// MinParticipants is the smallest roster a game can start with.
const MinParticipants = 2

// Options configures NewGame. Zero values fall back to defaults: the classic
// theme and its rules, a crypto-random seed, a passive decider, the standard logger.
type Options struct {
	// ID names the game. A zero ID is replaced with a random one.
	ID      uuid.UUID
	Theme   Theme
	Rules   *HouseRules
	Seed    int64
	Decider Decider
	Logger  *logrus.Logger

	// BroadcastFn receives every narrated event. If nil, events are only logged.
	BroadcastFn func(ev GameEvent)
}

// Game holds the entire state for a single game instance in memory. It is not
// safe for concurrent use; exactly one participant acts at a time.
type Game struct {
	ID       uuid.UUID
	Rules    HouseRules
	Theme    Theme
	Catalog  *Catalog
	Deck     *Deck
	Revolver *Revolver

	// participants is the arena of everyone ever seated, keyed by stable ID.
	participants map[uuid.UUID]*models.Participant
	seating      []uuid.UUID
	// order is the active roster in turn order.
	order   []uuid.UUID
	current int

	// lastCard is the most recent non-replication card resolved.
	lastCard *models.Card

	Round    int
	GameOver bool
	Winner   uuid.UUID
	Seed     int64

	BroadcastFn func(ev GameEvent)

	decider  Decider
	rng      *rand.Rand
	handlers map[EffectKind]effectHandler
	log      *logrus.Entry
}

// NewGame seats the named participants in order, builds the deck and revolver,
// and deals each participant an opening hand.
func NewGame(names []string, opts Options) (*Game, error) {
	if len(names) < MinParticipants {
		return nil, fmt.Errorf("need at least %d participants, got %d", MinParticipants, len(names))
	}

	theme := opts.Theme
	if theme.Catalog == nil {
		theme, _ = LookupTheme("classic")
	}
	rules := theme.Rules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid house rules: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed game: %w", err)
		}
		seed = s
	}
	rng := rand.New(rand.NewSource(seed))

	revolver, err := NewRevolver(rules.Chambers, rng)
	if err != nil {
		return nil, fmt.Errorf("build revolver: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	decider := opts.Decider
	if decider == nil {
		decider = PassiveDecider{}
	}

	id := opts.ID
	if id == uuid.Nil {
		id, _ = uuid.NewRandom()
	}
	g := &Game{
		ID:           id,
		Rules:        rules,
		Theme:        theme,
		Catalog:      theme.Catalog,
		Deck:         NewDeck(theme.Catalog, rng),
		Revolver:     revolver,
		participants: make(map[uuid.UUID]*models.Participant, len(names)),
		Seed:         seed,
		BroadcastFn:  opts.BroadcastFn,
		decider:      decider,
		rng:          rng,
		handlers:     defaultHandlers(),
		log:          logger.WithField("game_id", id),
	}
	g.Deck.OnRepopulate = func(size int) {
		g.fireEvent(GameEvent{Type: EventDeckRepopulated, Payload: map[string]interface{}{"size": size}})
	}

	for _, name := range names {
		p := models.NewParticipant(name)
		p.Hand = g.Deck.Draw(rules.HandSize)
		g.participants[p.ID] = p
		g.seating = append(g.seating, p.ID)
		g.order = append(g.order, p.ID)
	}

	g.log.WithFields(logrus.Fields{
		"theme":        theme.Name,
		"participants": len(names),
		"chambers":     rules.Chambers,
		"seed":         seed,
	}).Debug("game created")
	g.fireEvent(GameEvent{Type: EventGameStart, Payload: map[string]interface{}{
		"participants": len(names),
		"chambers":     rules.Chambers,
		"theme":        theme.Name,
	}})
	return g, nil
}

// Run plays turns until the game is over. The context is checked between turns.
func (g *Game) Run(ctx context.Context) error {
	for !g.GameOver {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("game %s interrupted: %w", g.ID, err)
		}
		g.PlayTurn()
	}
	return nil
}

// PlayTurn runs one full turn for the current participant:
// pending modifiers, card play, bonus plays, trigger pull, forced extra pull, cleanup.
func (g *Game) PlayTurn() {
	if g.GameOver {
		return
	}
	if len(g.order) <= 1 {
		g.endGame()
		return
	}

	g.Round++
	actor := g.Current()
	g.fireEvent(GameEvent{Type: EventTurnStart, User: eventUser(actor)})

	g.applyPendingModifier(actor)

	if signal := g.cardPlayPhase(actor); signal == SignalContinue {
		g.bonusPlayPhase(actor)
		if g.pullTrigger(actor) && actor.Status.ForcedExtraTurn {
			actor.Status.ForcedExtraTurn = false
			g.fireEvent(GameEvent{Type: EventForcedExtraPull, User: eventUser(actor)})
			g.pullTrigger(actor)
		}
	}

	g.cleanup(actor)
	if len(g.order) <= 1 {
		g.endGame()
	}
}

// applyPendingModifier applies the actor's deferred bullet changes before any card is played.
func (g *Game) applyPendingModifier(actor *models.Participant) {
	delta := actor.Status.PendingBulletModifier
	if delta == 0 {
		return
	}
	applied := 0
	if delta > 0 {
		for i := 0; i < delta; i++ {
			if g.Revolver.AddBullet() {
				applied++
			}
		}
	} else {
		for i := 0; i < -delta; i++ {
			if g.Revolver.RemoveBullet() {
				applied++
			}
		}
	}
	actor.Status.PendingBulletModifier = 0
	g.fireEvent(GameEvent{
		Type:    EventPendingApplied,
		User:    eventUser(actor),
		Payload: map[string]interface{}{"delta": delta, "applied": applied},
	})
}

// cardPlayPhase offers a discard-and-redraw and then at most one card play.
func (g *Game) cardPlayPhase(actor *models.Participant) TurnSignal {
	if indices := g.decider.ChooseDiscards(actor); len(indices) > 0 {
		replaced := g.Deck.DiscardAndRedraw(actor, indices)
		if replaced == 0 {
			g.reportInvalid(actor, "discard", fmt.Errorf("discard %v from hand of %d: %w", indices, len(actor.Hand), ErrInvalidSelection))
		} else {
			g.fireEvent(GameEvent{
				Type:    EventPlayerDiscard,
				User:    eventUser(actor),
				Payload: map[string]interface{}{"count": replaced},
			})
		}
	}

	card, idx, declined := g.takeChosenCard(actor, false)
	if declined || card == nil {
		return SignalContinue
	}
	return g.play(actor, card, idx)
}

// bonusPlayPhase spends bonus-play credits. Declining ends the phase and keeps
// the remaining credits; a skip or forced result ends it as well.
func (g *Game) bonusPlayPhase(actor *models.Participant) {
	for actor.Status.ExtraCardsNextRound > 0 {
		card, idx, declined := g.takeChosenCard(actor, true)
		if declined {
			return
		}
		if card != nil {
			if signal := g.play(actor, card, idx); signal != SignalContinue {
				return
			}
		}
		actor.Status.ExtraCardsNextRound--
	}
}

// takeChosenCard asks for a card and removes it from the hand, returning the
// hand index it was taken from. A nil card with declined=false means the choice
// was out of range.
func (g *Game) takeChosenCard(actor *models.Participant, bonus bool) (card *models.Card, idx int, declined bool) {
	idx, ok := g.decider.ChooseCard(actor, bonus)
	if !ok {
		g.fireEvent(GameEvent{Type: EventCardDeclined, User: eventUser(actor), Payload: map[string]interface{}{"bonus": bonus}})
		return nil, 0, true
	}
	card = actor.TakeCard(idx)
	if card == nil {
		g.reportInvalid(actor, "card", fmt.Errorf("card index %d of %d: %w", idx, len(actor.Hand), ErrInvalidSelection))
		return nil, idx, false
	}
	return card, idx, false
}

// play announces the card with the hand index it was played from and resolves it.
func (g *Game) play(actor *models.Participant, card *models.Card, idx int) TurnSignal {
	played := eventCard(card)
	played.Idx = &idx
	g.fireEvent(GameEvent{Type: EventCardPlayed, User: eventUser(actor), Card: played})
	return g.Apply(card, actor)
}

// cleanup clears one-turn flags, applies the hand policy and passes the turn.
func (g *Game) cleanup(actor *models.Participant) {
	actor.ClearTurnFlags()
	if g.Rules.ExtraLifeExpires && actor.Status.ExtraLifeRounds > 0 {
		actor.Status.ExtraLifeRounds--
	}

	idx := g.indexOf(actor.ID)
	if idx < 0 {
		// Eliminated: removal already left the index on their successor.
		return
	}
	if g.Rules.RefillHand && len(actor.Hand) < g.Rules.HandSize {
		missing := g.Rules.HandSize - len(actor.Hand)
		actor.Hand = append(actor.Hand, g.Deck.Draw(missing)...)
		g.fireEvent(GameEvent{Type: EventHandRefilled, User: eventUser(actor), Payload: map[string]interface{}{"count": missing}})
	}
	g.current = (idx + 1) % len(g.order)
}

// eliminate removes p from the active roster and keeps the current index on
// the same participant, or on the successor when p was the current one.
func (g *Game) eliminate(p *models.Participant) {
	pos := g.indexOf(p.ID)
	if pos < 0 {
		return
	}
	g.order = append(g.order[:pos:pos], g.order[pos+1:]...)
	switch {
	case len(g.order) == 0:
		g.current = 0
	case pos < g.current:
		g.current--
	case g.current >= len(g.order):
		g.current = 0
	}
	g.log.WithFields(logrus.Fields{"participant": p.ID, "name": p.Name, "remaining": len(g.order)}).Debug("participant eliminated")
	g.fireEvent(GameEvent{Type: EventPlayerEliminated, User: eventUser(p), Payload: map[string]interface{}{"remaining": len(g.order)}})
}

// endGame finalizes the game and reports the winner, if anyone survived.
func (g *Game) endGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true
	ev := GameEvent{Type: EventGameEnd, Payload: map[string]interface{}{}}
	if len(g.order) == 1 {
		winner := g.participants[g.order[0]]
		g.Winner = winner.ID
		ev.User = eventUser(winner)
		ev.Payload["winner"] = winner.ID.String()
	}
	g.log.WithFields(logrus.Fields{"winner": g.Winner, "rounds": g.Round}).Info("game over")
	g.fireEvent(ev)
}

// Current returns the participant whose turn it is, or nil once the roster is empty.
func (g *Game) Current() *models.Participant {
	if len(g.order) == 0 {
		return nil
	}
	return g.participants[g.order[g.current]]
}

// Participant returns a participant by ID, including eliminated ones.
func (g *Game) Participant(id uuid.UUID) *models.Participant {
	return g.participants[id]
}

// Active returns the active roster in turn order.
func (g *Game) Active() []*models.Participant {
	out := make([]*models.Participant, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.participants[id])
	}
	return out
}

// Seated returns every participant in seating order, eliminated or not.
func (g *Game) Seated() []*models.Participant {
	out := make([]*models.Participant, 0, len(g.seating))
	for _, id := range g.seating {
		out = append(out, g.participants[id])
	}
	return out
}

// IsActive reports whether id is still in the roster.
func (g *Game) IsActive(id uuid.UUID) bool {
	return g.indexOf(id) >= 0
}

// LastCard returns the card replication would copy.
func (g *Game) LastCard() *models.Card {
	return g.lastCard
}

func (g *Game) indexOf(id uuid.UUID) int {
	for i, pid := range g.order {
		if pid == id {
			return i
		}
	}
	return -1
}

// opponents lists active participants other than p in turn order.
func (g *Game) opponents(p *models.Participant) []*models.Participant {
	out := make([]*models.Participant, 0, len(g.order))
	for _, id := range g.order {
		if id != p.ID {
			out = append(out, g.participants[id])
		}
	}
	return out
}

// reportInvalid logs and broadcasts a recovered selection error.
func (g *Game) reportInvalid(actor *models.Participant, what string, err error) {
	g.log.WithFields(logrus.Fields{"participant": actor.ID, "selection": what}).WithError(err).Debug("selection ignored")
	g.fireEvent(GameEvent{
		Type:    EventInvalidSelection,
		User:    eventUser(actor),
		Payload: map[string]interface{}{"selection": what, "message": err.Error()},
	})
}

// fireEvent stamps the round and hands the event to BroadcastFn.
func (g *Game) fireEvent(ev GameEvent) {
	ev.Round = g.Round
	g.log.WithField("event", ev.Type).Trace("event")
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}
