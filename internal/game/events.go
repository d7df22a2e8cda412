// internal/game/events.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/models"
)

// GameEventType is an enum-like type for narrated state transitions.
type GameEventType string

// --- Event Type Definitions ---
//
// Payload keys: pending_applied{delta, applied}, bullet_added{requested, added},
// bullet_removed{requested, removed}, extra_life{rounds}, bonus_plays{plays},
// extra_draw{count}, hand_revealed{cards}, pending_queued{delta},
// replicate{card}, immunity_used{immunity}, coin_toss{survived},
// chamber_peek{chamber, loaded}, chamber_set{chamber}, hand_refilled{count},
// game_end{winner} (winner absent when nobody survived).
const (
	EventGameStart        GameEventType = "game_start"
	EventTurnStart        GameEventType = "turn_start"
	EventPendingApplied   GameEventType = "pending_applied"
	EventDeckRepopulated  GameEventType = "deck_repopulated"
	EventPlayerDiscard    GameEventType = "player_discard"
	EventCardPlayed       GameEventType = "card_played"
	EventCardDeclined     GameEventType = "card_declined"
	EventInvalidSelection GameEventType = "invalid_selection"
	EventNoTarget         GameEventType = "no_target"
	EventEffectBlocked    GameEventType = "effect_blocked"
	EventUnknownCard      GameEventType = "unknown_card"
	EventRespin           GameEventType = "revolver_respin"
	EventChamberPeek      GameEventType = "chamber_peek"
	EventChamberSet       GameEventType = "chamber_set"
	EventBulletAdded      GameEventType = "bullet_added"
	EventBulletRemoved    GameEventType = "bullet_removed"
	EventSafeTriggerArmed GameEventType = "safe_trigger_armed"
	EventLuckyCharmArmed  GameEventType = "lucky_charm_armed"
	EventMiracleArmed     GameEventType = "miracle_armed"
	EventExtraLife        GameEventType = "extra_life"
	EventBonusPlays       GameEventType = "bonus_plays"
	EventBlockArmed       GameEventType = "block_armed"
	EventExtraDraw        GameEventType = "extra_draw"
	EventHandSwapped      GameEventType = "hand_swapped"
	EventHandRevealed     GameEventType = "hand_revealed"
	EventCardStolen       GameEventType = "card_stolen"
	EventStealEmpty       GameEventType = "steal_empty"
	EventHandRedrawn      GameEventType = "hand_redrawn"
	EventPendingQueued    GameEventType = "pending_queued"
	EventForcedFire       GameEventType = "forced_fire"
	EventForcedNextFire   GameEventType = "forced_next_fire"
	EventForcedExtraPull  GameEventType = "forced_extra_pull"
	EventOrderReversed    GameEventType = "order_reversed"
	EventSkip             GameEventType = "turn_skip"
	EventReplicate        GameEventType = "replicate"
	EventReplicateFailed  GameEventType = "replicate_failed"
	EventTriggerSuspense  GameEventType = "trigger_suspense"
	EventTriggerClick     GameEventType = "trigger_click"
	EventTriggerBang      GameEventType = "trigger_bang"
	EventImmunityUsed     GameEventType = "immunity_used"
	EventCoinToss         GameEventType = "coin_toss"
	EventPlayerEliminated GameEventType = "player_eliminated"
	EventHandRefilled     GameEventType = "hand_refilled"
	EventGameEnd          GameEventType = "game_end"
)

// EventUser identifies a participant inside a GameEvent.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// EventCard identifies a card inside a GameEvent.
type EventCard struct {
	Name string `json:"name"`
	// Idx is the hand index a played card came from.
	Idx *int `json:"idx,omitempty"`
}

// GameEvent is a single narrated state transition.
type GameEvent struct {
	Type   GameEventType `json:"type"`
	User   *EventUser    `json:"user,omitempty"`
	Target *EventUser    `json:"target,omitempty"`
	Card   *EventCard    `json:"card,omitempty"`
	Round  int           `json:"round"`

	Payload map[string]interface{} `json:"payload,omitempty"`
}

func eventUser(p *models.Participant) *EventUser {
	if p == nil {
		return nil
	}
	return &EventUser{ID: p.ID, Name: p.Name}
}

func eventCard(c *models.Card) *EventCard {
	if c == nil {
		return nil
	}
	return &EventCard{Name: c.Name}
}

func cardNames(cards []*models.Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	return names
}
