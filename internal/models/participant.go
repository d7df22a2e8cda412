// internal/models/participant.go
package models

import (
	"github.com/google/uuid"
)

// Status holds the per-participant effect flags and counters that cards mutate.
type Status struct {
	// SafeTrigger survives one loaded chamber; cleared at the end of the owner's turn.
	SafeTrigger bool `json:"safeTrigger"`

	// LuckyCharm turns a loaded chamber into a coin toss; cleared at the end of the owner's turn.
	LuckyCharm bool `json:"luckyCharm"`

	// Miracle unloads the chamber that just fired; cleared at the end of the owner's turn.
	Miracle bool `json:"miracle"`

	// ExtraLifeRounds is consumed whole on the first bang while positive.
	ExtraLifeRounds int `json:"extraLifeRounds"`

	// PendingBulletModifier is applied to the revolver at the start of the owner's next turn.
	// Positive adds bullets, negative removes them.
	PendingBulletModifier int `json:"pendingBulletModifier"`

	// ForcedExtraTurn makes the owner pull the trigger a second time after surviving.
	ForcedExtraTurn bool `json:"forcedExtraTurn"`

	// ExtraCardsNextRound is the number of bonus card plays available.
	ExtraCardsNextRound int `json:"extraCardsNextRound"`

	// BlockActive cancels the next targeted effect aimed at the owner.
	BlockActive bool `json:"blockActive"`
}

// Participant is one seated player. Names are display only; ID is the identity.
type Participant struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Hand   []*Card   `json:"hand"`
	Status Status    `json:"status"`
}

// NewParticipant creates a participant with a fresh random ID and an empty hand.
func NewParticipant(name string) *Participant {
	id, _ := uuid.NewRandom()
	return &Participant{
		ID:   id,
		Name: name,
		Hand: []*Card{},
	}
}

// TakeCard removes and returns the hand card at idx, or nil when idx is out of range.
func (p *Participant) TakeCard(idx int) *Card {
	if idx < 0 || idx >= len(p.Hand) {
		return nil
	}
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx:idx], p.Hand[idx+1:]...)
	return card
}

// ClearTurnFlags resets the status flags that only last for the owner's current turn.
func (p *Participant) ClearTurnFlags() {
	p.Status.SafeTrigger = false
	p.Status.LuckyCharm = false
	p.Status.Miracle = false
}
