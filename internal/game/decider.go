// internal/game/decider.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/roulette/internal/models"
)

// ConstitutionChoice selects the mode of the dual self/target card.
type ConstitutionChoice uint8

const (
	ConstitutionExtraLife ConstitutionChoice = iota
	ConstitutionKill
)

// Decider is the presentation side of the engine: every point where the game
// waits on a participant goes through it. Implementations may return any value;
// out-of-range answers are treated as declined.
type Decider interface {
	// ChooseDiscards returns hand indices to discard and redraw, or none.
	ChooseDiscards(p *models.Participant) []int

	// ChooseCard returns the hand index to play. ok=false declines. bonus is true
	// during the bonus-play phase.
	ChooseCard(p *models.Participant, bonus bool) (idx int, ok bool)

	// ChooseTarget picks one of eligible, which never contains p and is never empty.
	ChooseTarget(p *models.Participant, eligible []*models.Participant) (id uuid.UUID, ok bool)

	// ChooseChamber picks the next chamber to fire, in [0, chambers).
	ChooseChamber(p *models.Participant, chambers int) (idx int, ok bool)

	// ChooseConstitution picks the mode of the constitution card.
	ChooseConstitution(p *models.Participant) ConstitutionChoice
}

// PassiveDecider never plays, discards or targets. Extra life is its constitution choice.
type PassiveDecider struct{}

func (PassiveDecider) ChooseDiscards(*models.Participant) []int         { return nil }
func (PassiveDecider) ChooseCard(*models.Participant, bool) (int, bool) { return 0, false }
func (PassiveDecider) ChooseTarget(*models.Participant, []*models.Participant) (uuid.UUID, bool) {
	return uuid.Nil, false
}
func (PassiveDecider) ChooseChamber(*models.Participant, int) (int, bool) { return 0, false }
func (PassiveDecider) ChooseConstitution(*models.Participant) ConstitutionChoice {
	return ConstitutionExtraLife
}
