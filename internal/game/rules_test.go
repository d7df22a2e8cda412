// internal/game/rules_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRulesFromJSON(t *testing.T) {
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"chambers": 8, "refillHand": true}`), &raw))

	rules, err := ParseRules(raw, DefaultHouseRules())
	require.NoError(t, err)

	assert.Equal(t, 8, rules.Chambers)
	assert.True(t, rules.RefillHand)
	assert.Equal(t, 5, rules.HandSize, "unset keys keep their value")
	assert.False(t, rules.ExtraLifeExpires)
}

func TestParseRulesRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		rules map[string]interface{}
	}{
		{"zero chambers", map[string]interface{}{"chambers": 0}},
		{"negative hand", map[string]interface{}{"handSize": float64(-1)}},
		{"string chambers", map[string]interface{}{"chambers": "six"}},
		{"numeric bool", map[string]interface{}{"refillHand": 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRules(tc.rules, DefaultHouseRules())
			assert.Error(t, err)
		})
	}
}

func TestParseRulesIgnoresNil(t *testing.T) {
	rules, err := ParseRules(map[string]interface{}{"chambers": nil}, DefaultHouseRules())
	require.NoError(t, err)
	assert.Equal(t, DefaultChambers, rules.Chambers)
}

func TestClassicCatalog(t *testing.T) {
	c := ClassicCatalog()
	assert.Len(t, c.Entries(), 25)
	assert.Equal(t, 139, c.Size())

	entry, ok := c.Lookup("Constitution")
	require.True(t, ok)
	assert.Equal(t, EffectConstitution, entry.Kind)
	assert.True(t, entry.Blockable)
	assert.Equal(t, 3, entry.Amount)

	entry, ok = c.Lookup("Remove Bullet Next Turn")
	require.True(t, ok)
	assert.Equal(t, -1, entry.Amount)
	assert.Equal(t, TargetOther, entry.Target)

	_, ok = c.Lookup("Joker")
	assert.False(t, ok)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"classic", "saloon"}, ThemeNames())

	saloon, err := LookupTheme("saloon")
	require.NoError(t, err)
	assert.Equal(t, 4, saloon.Rules().HandSize)
	assert.True(t, saloon.Rules().RefillHand)
	assert.Equal(t, ClassicCatalog().Size(), saloon.Catalog.Size())

	entry, ok := saloon.Catalog.Lookup("Call Out")
	require.True(t, ok)
	assert.Equal(t, EffectForceFire, entry.Kind)
	_, ok = saloon.Catalog.Lookup("Skip")
	assert.False(t, ok)

	_, err = LookupTheme("space")
	assert.Error(t, err)
}

func TestSaloonGameUsesThemeRules(t *testing.T) {
	saloon, err := LookupTheme("saloon")
	require.NoError(t, err)
	g, err := NewGame([]string{"A", "B"}, Options{Theme: saloon, Seed: 11, Logger: quietLogger()})
	require.NoError(t, err)

	assert.True(t, g.Rules.RefillHand)
	for _, p := range g.Active() {
		require.Len(t, p.Hand, 4)
		for _, c := range p.Hand {
			_, ok := saloon.Catalog.Lookup(c.Name)
			assert.True(t, ok)
		}
	}
}
