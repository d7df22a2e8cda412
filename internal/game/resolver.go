// internal/game/resolver.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/roulette/internal/models"
	"github.com/sirupsen/logrus"
)

// TurnSignal tells the turn engine how a resolved card affects the rest of the turn.
type TurnSignal uint8

const (
	// SignalContinue proceeds with the turn as normal.
	SignalContinue TurnSignal = iota
	// SignalSkip bypasses the actor's trigger pull this turn.
	SignalSkip
	// SignalForced ends the actor's turn because someone else pulled the trigger for them.
	SignalForced
)

func (s TurnSignal) String() string {
	switch s {
	case SignalSkip:
		return "skip"
	case SignalForced:
		return "forced"
	default:
		return "continue"
	}
}

// effectPlay is the input every effect handler receives.
type effectPlay struct {
	Card  *models.Card
	Entry CatalogEntry
	Actor *models.Participant
	// Target is set by Apply for entries aimed at another participant.
	Target *models.Participant
}

type effectHandler func(g *Game, play effectPlay) TurnSignal

// defaultHandlers maps each effect kind to its handler.
func defaultHandlers() map[EffectKind]effectHandler {
	return map[EffectKind]effectHandler{
		EffectRespin:         applyRespin,
		EffectPeek:           applyPeek,
		EffectChooseChamber:  applyChooseChamber,
		EffectAddBullets:     applyAddBullets,
		EffectRemoveBullets:  applyRemoveBullets,
		EffectSafeTrigger:    applySafeTrigger,
		EffectBonusPlays:     applyBonusPlays,
		EffectBlock:          applyBlock,
		EffectExtraDraw:      applyExtraDraw,
		EffectLuckyCharm:     applyLuckyCharm,
		EffectMiracle:        applyMiracle,
		EffectConstitution:   applyConstitution,
		EffectSwapHands:      applySwapHands,
		EffectLookAtHand:     applyLookAtHand,
		EffectSteal:          applySteal,
		EffectForceRedraw:    applyForceRedraw,
		EffectPendingBullets: applyPendingBullets,
		EffectForceFire:      applyForceFire,
		EffectForceNextFire:  applyForceNextFire,
		EffectReverse:        applyReverse,
		EffectSkip:           applySkip,
		EffectReplicate:      applyReplicate,
	}
}

// Apply resolves card on behalf of actor. Unknown cards are a no-op. Every
// non-replication card becomes the source for later replication.
func (g *Game) Apply(card *models.Card, actor *models.Participant) TurnSignal {
	entry, ok := g.Catalog.Lookup(card.Name)
	if !ok {
		g.log.WithField("card", card.Name).Debug("card not in catalog")
		g.fireEvent(GameEvent{Type: EventUnknownCard, User: eventUser(actor), Card: eventCard(card)})
		return SignalContinue
	}
	if entry.Kind != EffectReplicate {
		g.lastCard = card
	}
	handler, ok := g.handlers[entry.Kind]
	if !ok {
		g.fireEvent(GameEvent{Type: EventUnknownCard, User: eventUser(actor), Card: eventCard(card)})
		return SignalContinue
	}
	play := effectPlay{Card: card, Entry: entry, Actor: actor}
	if entry.Target == TargetOther {
		target, ok := g.chooseTarget(play)
		if !ok {
			return SignalContinue
		}
		play.Target = target
	}
	signal := handler(g, play)
	g.log.WithFields(logrus.Fields{
		"card":   card.Name,
		"effect": entry.Kind.String(),
		"actor":  actor.ID,
		"signal": signal.String(),
	}).Debug("card resolved")
	return signal
}

// chooseTarget asks the actor for another active participant and consumes the
// target's block when the effect is blockable. ok=false means the effect does not apply.
func (g *Game) chooseTarget(play effectPlay) (*models.Participant, bool) {
	eligible := g.opponents(play.Actor)
	if len(eligible) == 0 {
		g.log.WithField("card", play.Card.Name).WithError(ErrNoEligibleTarget).Debug("targeted effect fizzled")
		g.fireEvent(GameEvent{Type: EventNoTarget, User: eventUser(play.Actor), Card: eventCard(play.Card)})
		return nil, false
	}

	id, ok := g.decider.ChooseTarget(play.Actor, eligible)
	if !ok {
		g.fireEvent(GameEvent{Type: EventNoTarget, User: eventUser(play.Actor), Card: eventCard(play.Card)})
		return nil, false
	}
	var target *models.Participant
	for _, p := range eligible {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		g.reportInvalid(play.Actor, "target", fmt.Errorf("target %s: %w", id, ErrInvalidSelection))
		return nil, false
	}

	if play.Entry.Blockable && target.Status.BlockActive {
		target.Status.BlockActive = false
		g.fireEvent(GameEvent{
			Type:   EventEffectBlocked,
			User:   eventUser(play.Actor),
			Target: eventUser(target),
			Card:   eventCard(play.Card),
		})
		return nil, false
	}
	return target, true
}

// targetOf returns the target Apply already resolved, or asks for one when the
// entry does not declare its targeting.
func (g *Game) targetOf(play effectPlay) (*models.Participant, bool) {
	if play.Target != nil {
		return play.Target, true
	}
	return g.chooseTarget(play)
}

// --- Immediate revolver effects ---

func applyRespin(g *Game, play effectPlay) TurnSignal {
	g.Revolver.Spin()
	g.fireEvent(GameEvent{Type: EventRespin, User: eventUser(play.Actor)})
	return SignalContinue
}

func applyPeek(g *Game, play effectPlay) TurnSignal {
	chamber, loaded := g.Revolver.Peek()
	g.fireEvent(GameEvent{
		Type:    EventChamberPeek,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"chamber": chamber, "loaded": loaded},
	})
	return SignalContinue
}

func applyChooseChamber(g *Game, play effectPlay) TurnSignal {
	idx, ok := g.decider.ChooseChamber(play.Actor, g.Revolver.Chambers())
	if !ok {
		g.fireEvent(GameEvent{Type: EventCardDeclined, User: eventUser(play.Actor), Card: eventCard(play.Card)})
		return SignalContinue
	}
	if err := g.Revolver.SetCursor(idx); err != nil {
		g.reportInvalid(play.Actor, "chamber", err)
		return SignalContinue
	}
	g.fireEvent(GameEvent{
		Type:    EventChamberSet,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"chamber": idx},
	})
	return SignalContinue
}

func applyAddBullets(g *Game, play effectPlay) TurnSignal {
	added := 0
	for i := 0; i < play.Entry.Amount; i++ {
		if g.Revolver.AddBullet() {
			added++
		}
	}
	g.fireEvent(GameEvent{
		Type:    EventBulletAdded,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"requested": play.Entry.Amount, "added": added},
	})
	return SignalContinue
}

func applyRemoveBullets(g *Game, play effectPlay) TurnSignal {
	removed := 0
	for i := 0; i < play.Entry.Amount; i++ {
		if g.Revolver.RemoveBullet() {
			removed++
		}
	}
	g.fireEvent(GameEvent{
		Type:    EventBulletRemoved,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"requested": play.Entry.Amount, "removed": removed},
	})
	return SignalContinue
}

// --- Self buffs ---

func applySafeTrigger(g *Game, play effectPlay) TurnSignal {
	play.Actor.Status.SafeTrigger = true
	g.fireEvent(GameEvent{Type: EventSafeTriggerArmed, User: eventUser(play.Actor)})
	return SignalContinue
}

func applyLuckyCharm(g *Game, play effectPlay) TurnSignal {
	play.Actor.Status.LuckyCharm = true
	g.fireEvent(GameEvent{Type: EventLuckyCharmArmed, User: eventUser(play.Actor)})
	return SignalContinue
}

func applyMiracle(g *Game, play effectPlay) TurnSignal {
	play.Actor.Status.Miracle = true
	g.fireEvent(GameEvent{Type: EventMiracleArmed, User: eventUser(play.Actor)})
	return SignalContinue
}

func applyBonusPlays(g *Game, play effectPlay) TurnSignal {
	play.Actor.Status.ExtraCardsNextRound = play.Entry.Amount
	g.fireEvent(GameEvent{
		Type:    EventBonusPlays,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"plays": play.Entry.Amount},
	})
	return SignalContinue
}

func applyBlock(g *Game, play effectPlay) TurnSignal {
	play.Actor.Status.BlockActive = true
	g.fireEvent(GameEvent{Type: EventBlockArmed, User: eventUser(play.Actor)})
	return SignalContinue
}

func applyExtraDraw(g *Game, play effectPlay) TurnSignal {
	play.Actor.Hand = append(play.Actor.Hand, g.Deck.Draw(play.Entry.Amount)...)
	g.fireEvent(GameEvent{
		Type:    EventExtraDraw,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"count": play.Entry.Amount},
	})
	return SignalContinue
}

// applyConstitution either grants the actor an extra life or eliminates a
// chosen target outright. Only the kill mode is targeted and blockable.
func applyConstitution(g *Game, play effectPlay) TurnSignal {
	if g.decider.ChooseConstitution(play.Actor) == ConstitutionKill {
		target, ok := g.targetOf(play)
		if ok {
			g.eliminate(target)
		}
		return SignalContinue
	}
	play.Actor.Status.ExtraLifeRounds = play.Entry.Amount
	g.fireEvent(GameEvent{
		Type:    EventExtraLife,
		User:    eventUser(play.Actor),
		Payload: map[string]interface{}{"rounds": play.Entry.Amount},
	})
	return SignalContinue
}

// --- Targeted effects ---

func applySwapHands(g *Game, play effectPlay) TurnSignal {
	target, ok := g.targetOf(play)
	if !ok {
		return SignalContinue
	}
	play.Actor.Hand, target.Hand = target.Hand, play.Actor.Hand
	g.fireEvent(GameEvent{Type: EventHandSwapped, User: eventUser(play.Actor), Target: eventUser(target)})
	return SignalContinue
}

func applyLookAtHand(g *Game, play effectPlay) TurnSignal {
	target, ok := g.targetOf(play)
	if !ok {
		return SignalContinue
	}
	g.fireEvent(GameEvent{
		Type:    EventHandRevealed,
		User:    eventUser(play.Actor),
		Target:  eventUser(target),
		Payload: map[string]interface{}{"cards": cardNames(target.Hand)},
	})
	return SignalContinue
}

func applySteal(g *Game, play effectPlay) TurnSignal {
	target, ok := g.targetOf(play)
	if !ok {
		return SignalContinue
	}
	if len(target.Hand) == 0 {
		g.log.WithField("target", target.ID).WithError(ErrEmptyHandSteal).Debug("steal fizzled")
		g.fireEvent(GameEvent{Type: EventStealEmpty, User: eventUser(play.Actor), Target: eventUser(target)})
		return SignalContinue
	}
	stolen := target.TakeCard(g.rng.Intn(len(target.Hand)))
	play.Actor.Hand = append(play.Actor.Hand, stolen)
	g.fireEvent(GameEvent{Type: EventCardStolen, User: eventUser(play.Actor), Target: eventUser(target)})
	return SignalContinue
}

func applyForceRedraw(g *Game, play effectPlay) TurnSignal {
	target, ok := g.targetOf(play)
	if !ok {
		return SignalContinue
	}
	target.Hand = g.Deck.Draw(len(target.Hand))
	g.fireEvent(GameEvent{Type: EventHandRedrawn, User: eventUser(play.Actor), Target: eventUser(target)})
	return SignalContinue
}

func applyPendingBullets(g *Game, play effectPlay) TurnSignal {
	target, ok := g.targetOf(play)
	if !ok {
		return SignalContinue
	}
	target.Status.PendingBulletModifier += play.Entry.Amount
	g.fireEvent(GameEvent{
		Type:    EventPendingQueued,
		User:    eventUser(play.Actor),
		Target:  eventUser(target),
		Payload: map[string]interface{}{"delta": play.Entry.Amount},
	})
	return SignalContinue
}

// applyForceFire makes the target pull the trigger in the actor's place. The
// actor's own pull is skipped whenever the substitution happens.
func applyForceFire(g *Game, play effectPlay) TurnSignal {
	target, ok := g.targetOf(play)
	if !ok {
		return SignalContinue
	}
	g.fireEvent(GameEvent{Type: EventForcedFire, User: eventUser(play.Actor), Target: eventUser(target)})
	g.pullTrigger(target)
	return SignalForced
}

// --- Order effects ---

// applyForceNextFire flags the next participant in turn order for a second pull.
func applyForceNextFire(g *Game, play effectPlay) TurnSignal {
	if len(g.order) < 2 {
		g.fireEvent(GameEvent{Type: EventNoTarget, User: eventUser(play.Actor), Card: eventCard(play.Card)})
		return SignalContinue
	}
	next := g.participants[g.order[(g.indexOf(play.Actor.ID)+1)%len(g.order)]]
	next.Status.ForcedExtraTurn = true
	g.fireEvent(GameEvent{Type: EventForcedNextFire, User: eventUser(play.Actor), Target: eventUser(next)})
	return SignalContinue
}

// applyReverse reverses turn order in place and keeps the actor's turn.
func applyReverse(g *Game, play effectPlay) TurnSignal {
	for i, j := 0, len(g.order)-1; i < j; i, j = i+1, j-1 {
		g.order[i], g.order[j] = g.order[j], g.order[i]
	}
	if idx := g.indexOf(play.Actor.ID); idx >= 0 {
		g.current = idx
	}
	g.fireEvent(GameEvent{Type: EventOrderReversed, User: eventUser(play.Actor)})
	return SignalContinue
}

func applySkip(g *Game, play effectPlay) TurnSignal {
	g.fireEvent(GameEvent{Type: EventSkip, User: eventUser(play.Actor)})
	return SignalSkip
}

// applyReplicate re-resolves the cached card against the current actor.
func applyReplicate(g *Game, play effectPlay) TurnSignal {
	source := g.lastCard
	if source == nil {
		g.log.WithField("actor", play.Actor.ID).WithError(ErrNoReplicationSource).Debug("replication fizzled")
		g.fireEvent(GameEvent{Type: EventReplicateFailed, User: eventUser(play.Actor), Card: eventCard(play.Card)})
		return SignalContinue
	}
	g.fireEvent(GameEvent{
		Type:    EventReplicate,
		User:    eventUser(play.Actor),
		Card:    eventCard(play.Card),
		Payload: map[string]interface{}{"card": source.Name},
	})
	return g.Apply(source, play.Actor)
}
