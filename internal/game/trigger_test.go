// internal/game/trigger_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyChamberClicks(t *testing.T) {
	g, mb := setupTestGame(t, []string{"A", "B"}, PassiveDecider{})
	loadRevolver(t, g, allEmpty(6), 0)

	assert.True(t, g.pullTrigger(g.Current()))
	assert.True(t, mb.has(EventTriggerClick))
	assert.False(t, mb.has(EventTriggerBang))
	assert.Equal(t, 1, g.Revolver.Cursor())
}

func TestLoadedChamberEliminates(t *testing.T) {
	g, mb := setupTestGame(t, []string{"A", "B"}, PassiveDecider{})
	loadRevolver(t, g, allLoaded(6), 0)
	a := g.Current()

	assert.False(t, g.pullTrigger(a))
	assert.False(t, g.IsActive(a.ID))
	assert.True(t, mb.has(EventTriggerBang))
	assert.Len(t, mb.ofType(EventPlayerEliminated), 1)
}

// Safe trigger wins over extra life and leaves it untouched.
func TestSafeTriggerTakesPrecedence(t *testing.T) {
	g, mb := setupTestGame(t, []string{"A", "B"}, PassiveDecider{})
	loadRevolver(t, g, allLoaded(6), 0)
	a := g.Current()
	a.Status.SafeTrigger = true
	a.Status.Miracle = true
	a.Status.ExtraLifeRounds = 3

	assert.True(t, g.pullTrigger(a))
	assert.False(t, a.Status.SafeTrigger)
	assert.False(t, a.Status.Miracle)
	assert.Equal(t, 3, a.Status.ExtraLifeRounds)
	assert.Equal(t, 6, g.Revolver.Loaded())

	used := mb.ofType(EventImmunityUsed)
	require.Len(t, used, 1)
	assert.Equal(t, ImmunitySafeTrigger, used[0].Payload["immunity"])
}

func TestLuckyCharmCoinToss(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		mb := newMockBroadcaster()
		g, err := NewGame([]string{"A", "B"}, Options{Seed: seed, Logger: quietLogger(), BroadcastFn: mb.broadcastFn})
		require.NoError(t, err)
		loadRevolver(t, g, allLoaded(6), 0)
		a := g.Current()
		a.Status.LuckyCharm = true
		a.Status.ExtraLifeRounds = 1

		survived := g.pullTrigger(a)

		toss := mb.ofType(EventCoinToss)
		require.Len(t, toss, 1)
		assert.Equal(t, survived, toss[0].Payload["survived"])
		assert.Equal(t, survived, g.IsActive(a.ID))
		assert.False(t, a.Status.LuckyCharm)
		assert.Equal(t, 1, a.Status.ExtraLifeRounds, "a lost toss is final")
	}
}

func TestMiracleUnloadsFiredChamber(t *testing.T) {
	g, mb := setupTestGame(t, []string{"A", "B"}, PassiveDecider{})
	loadRevolver(t, g, []bool{true, true, false, false, false, false}, 0)
	a := g.Current()
	a.Status.Miracle = true

	assert.True(t, g.pullTrigger(a))
	assert.False(t, a.Status.Miracle)
	assert.Equal(t, 1, g.Revolver.Loaded())
	assert.Equal(t, 1, g.Revolver.Cursor())
	_, loaded := g.Revolver.Peek()
	assert.True(t, loaded, "only the fired chamber is emptied")

	used := mb.ofType(EventImmunityUsed)
	require.Len(t, used, 1)
	assert.Equal(t, ImmunityMiracle, used[0].Payload["immunity"])
}

func TestExtraLifeConsumedWhole(t *testing.T) {
	g, mb := setupTestGame(t, []string{"A", "B"}, PassiveDecider{})
	loadRevolver(t, g, allLoaded(6), 0)
	a := g.Current()
	a.Status.ExtraLifeRounds = 3

	assert.True(t, g.pullTrigger(a))
	assert.Equal(t, 0, a.Status.ExtraLifeRounds)
	assert.False(t, g.pullTrigger(a))

	used := mb.ofType(EventImmunityUsed)
	require.Len(t, used, 1)
	assert.Equal(t, ImmunityExtraLife, used[0].Payload["immunity"])
}
