// internal/game/trigger.go
package game

import (
	"github.com/jason-s-yu/roulette/internal/models"
)

// Immunity names reported in EventImmunityUsed payloads.
const (
	ImmunitySafeTrigger = "safe_trigger"
	ImmunityLuckyCharm  = "lucky_charm"
	ImmunityMiracle     = "miracle"
	ImmunityExtraLife   = "extra_life"
)

// resolveTrigger has p pull the trigger once. On a loaded chamber the immunities
// are consulted in a fixed order: safe trigger, lucky charm, miracle, extra life.
// It reports whether p survived; it does not remove anyone from the roster.
func (g *Game) resolveTrigger(p *models.Participant) bool {
	g.fireEvent(GameEvent{Type: EventTriggerSuspense, User: eventUser(p)})

	if !g.Revolver.PullTrigger() {
		g.fireEvent(GameEvent{Type: EventTriggerClick, User: eventUser(p)})
		return true
	}
	g.fireEvent(GameEvent{Type: EventTriggerBang, User: eventUser(p)})

	switch {
	case p.Status.SafeTrigger:
		// A spent safe trigger also burns the other one-turn protections.
		p.ClearTurnFlags()
		g.fireImmunity(p, ImmunitySafeTrigger)
		return true

	case p.Status.LuckyCharm:
		p.Status.LuckyCharm = false
		survived := g.rng.Intn(2) == 0
		g.fireEvent(GameEvent{
			Type:    EventCoinToss,
			User:    eventUser(p),
			Payload: map[string]interface{}{"survived": survived},
		})
		if survived {
			g.fireImmunity(p, ImmunityLuckyCharm)
		}
		return survived

	case p.Status.Miracle:
		p.Status.Miracle = false
		g.Revolver.UnloadPrevious()
		g.fireImmunity(p, ImmunityMiracle)
		return true

	case p.Status.ExtraLifeRounds > 0:
		p.Status.ExtraLifeRounds = 0
		g.fireImmunity(p, ImmunityExtraLife)
		return true
	}
	return false
}

// pullTrigger resolves one pull for p and eliminates them if they lose.
func (g *Game) pullTrigger(p *models.Participant) bool {
	survived := g.resolveTrigger(p)
	if !survived {
		g.eliminate(p)
	}
	return survived
}

func (g *Game) fireImmunity(p *models.Participant, immunity string) {
	g.fireEvent(GameEvent{
		Type:    EventImmunityUsed,
		User:    eventUser(p),
		Payload: map[string]interface{}{"immunity": immunity},
	})
}
