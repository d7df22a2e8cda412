// internal/game/errors.go
package game

import "errors"

// Recoverable conditions. None of these stop the turn loop; the engine reports
// them through BroadcastFn and treats the action as declined or a no-op.
var (
	// ErrInvalidSelection covers out-of-range card, discard, target or chamber choices.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNoEligibleTarget means no other active participant can be targeted.
	ErrNoEligibleTarget = errors.New("no eligible target")

	// ErrNoReplicationSource means a replication card found no cached card to copy.
	ErrNoReplicationSource = errors.New("no card to replicate")

	// ErrEmptyHandSteal means a steal was attempted against an empty hand.
	ErrEmptyHandSteal = errors.New("target hand is empty")
)
