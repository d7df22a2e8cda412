// internal/game/snapshot.go
package game

import (
	"github.com/google/uuid"
)

// ParticipantView is the public state of one participant as seen by a viewer.
type ParticipantView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Active        bool      `json:"active"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	HandSize      int       `json:"handSize"`
	// Hand is only filled in for the viewer's own entry.
	Hand []string `json:"hand,omitempty"`
}

// GameSnapshot is a read-only view of the table. Chamber contents and status
// flags are never included. Winner is nil until the game ends with a survivor.
type GameSnapshot struct {
	GameID        uuid.UUID         `json:"gameId"`
	Round         int               `json:"round"`
	GameOver      bool              `json:"gameOver"`
	Winner        *uuid.UUID        `json:"winner,omitempty"`
	CurrentID     *uuid.UUID        `json:"currentId,omitempty"`
	Chambers      int               `json:"chambers"`
	DeckRemaining int               `json:"deckRemaining"`
	Order         []uuid.UUID       `json:"order"`
	Participants  []ParticipantView `json:"participants"`
}

// Snapshot builds the view of the game for viewer. Pass uuid.Nil for a spectator view.
func (g *Game) Snapshot(viewer uuid.UUID) GameSnapshot {
	snap := GameSnapshot{
		GameID:        g.ID,
		Round:         g.Round,
		GameOver:      g.GameOver,
		Chambers:      g.Revolver.Chambers(),
		DeckRemaining: g.Deck.Remaining(),
		Order:         append([]uuid.UUID(nil), g.order...),
	}
	if g.GameOver && g.Winner != uuid.Nil {
		winner := g.Winner
		snap.Winner = &winner
	}
	current := g.Current()
	if current != nil {
		id := current.ID
		snap.CurrentID = &id
	}

	for _, p := range g.Seated() {
		view := ParticipantView{
			ID:            p.ID,
			Name:          p.Name,
			Active:        g.IsActive(p.ID),
			IsCurrentTurn: current != nil && current.ID == p.ID,
			HandSize:      len(p.Hand),
		}
		if p.ID == viewer {
			view.Hand = cardNames(p.Hand)
		}
		snap.Participants = append(snap.Participants, view)
	}
	return snap
}
