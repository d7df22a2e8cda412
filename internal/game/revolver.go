// internal/game/revolver.go
package game

import (
	"fmt"
	"math/rand"
)

// DefaultChambers is the chamber count of a standard revolver.
const DefaultChambers = 6

// Revolver is a cylinder of chambers with a cursor marking the next one to fire.
type Revolver struct {
	chambers []bool
	cursor   int
	rng      *rand.Rand
}

// NewRevolver returns a revolver with one round in a random chamber and the
// cursor at a random position.
func NewRevolver(chambers int, rng *rand.Rand) (*Revolver, error) {
	if chambers <= 0 {
		return nil, fmt.Errorf("revolver needs at least one chamber, got %d", chambers)
	}
	r := &Revolver{
		chambers: make([]bool, chambers),
		rng:      rng,
	}
	r.chambers[rng.Intn(chambers)] = true
	r.cursor = rng.Intn(chambers)
	return r, nil
}

// NewRevolverWithChambers returns a revolver with an explicit load pattern and cursor.
func NewRevolverWithChambers(rng *rand.Rand, states []bool, cursor int) (*Revolver, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("revolver needs at least one chamber")
	}
	if cursor < 0 || cursor >= len(states) {
		return nil, fmt.Errorf("cursor %d out of range [0,%d): %w", cursor, len(states), ErrInvalidSelection)
	}
	chambers := make([]bool, len(states))
	copy(chambers, states)
	return &Revolver{chambers: chambers, cursor: cursor, rng: rng}, nil
}

// Spin moves the cursor to a uniformly random chamber.
func (r *Revolver) Spin() {
	r.cursor = r.rng.Intn(len(r.chambers))
}

// PullTrigger reports whether the current chamber is loaded and advances the
// cursor by one, whatever the outcome.
func (r *Revolver) PullTrigger() bool {
	loaded := r.chambers[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.chambers)
	return loaded
}

// AddBullet loads a random empty chamber. It returns false when every chamber is loaded.
func (r *Revolver) AddBullet() bool {
	return r.flipRandom(false)
}

// RemoveBullet unloads a random loaded chamber. It returns false when the revolver is empty.
func (r *Revolver) RemoveBullet() bool {
	return r.flipRandom(true)
}

// flipRandom toggles a uniformly chosen chamber currently in state from.
func (r *Revolver) flipRandom(from bool) bool {
	candidates := make([]int, 0, len(r.chambers))
	for i, loaded := range r.chambers {
		if loaded == from {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	r.chambers[candidates[r.rng.Intn(len(candidates))]] = !from
	return true
}

// Peek reports the status of the current chamber only.
func (r *Revolver) Peek() (chamber int, loaded bool) {
	return r.cursor, r.chambers[r.cursor]
}

// SetCursor makes idx the next chamber to fire.
func (r *Revolver) SetCursor(idx int) error {
	if idx < 0 || idx >= len(r.chambers) {
		return fmt.Errorf("chamber %d out of range [0,%d): %w", idx, len(r.chambers), ErrInvalidSelection)
	}
	r.cursor = idx
	return nil
}

// UnloadPrevious empties the chamber that fired on the last pull.
func (r *Revolver) UnloadPrevious() {
	prev := (r.cursor - 1 + len(r.chambers)) % len(r.chambers)
	r.chambers[prev] = false
}

// Cursor is the index of the next chamber to fire.
func (r *Revolver) Cursor() int { return r.cursor }

// Chambers is the chamber count.
func (r *Revolver) Chambers() int { return len(r.chambers) }

// Loaded counts loaded chambers.
func (r *Revolver) Loaded() int {
	n := 0
	for _, loaded := range r.chambers {
		if loaded {
			n++
		}
	}
	return n
}
