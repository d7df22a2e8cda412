// internal/game/catalog.go
package game

// EffectKind tags a catalog entry with the handler that resolves it.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectRespin
	EffectPeek
	EffectChooseChamber
	EffectAddBullets
	EffectRemoveBullets
	EffectSafeTrigger
	EffectBonusPlays
	EffectBlock
	EffectExtraDraw
	EffectLuckyCharm
	EffectMiracle
	EffectConstitution
	EffectSwapHands
	EffectLookAtHand
	EffectSteal
	EffectForceRedraw
	EffectPendingBullets
	EffectForceFire
	EffectForceNextFire
	EffectReverse
	EffectSkip
	EffectReplicate
)

var effectKindNames = map[EffectKind]string{
	EffectNone:           "none",
	EffectRespin:         "respin",
	EffectPeek:           "peek",
	EffectChooseChamber:  "choose_chamber",
	EffectAddBullets:     "add_bullets",
	EffectRemoveBullets:  "remove_bullets",
	EffectSafeTrigger:    "safe_trigger",
	EffectBonusPlays:     "bonus_plays",
	EffectBlock:          "block",
	EffectExtraDraw:      "extra_draw",
	EffectLuckyCharm:     "lucky_charm",
	EffectMiracle:        "miracle",
	EffectConstitution:   "constitution",
	EffectSwapHands:      "swap_hands",
	EffectLookAtHand:     "look_at_hand",
	EffectSteal:          "steal",
	EffectForceRedraw:    "force_redraw",
	EffectPendingBullets: "pending_bullets",
	EffectForceFire:      "force_fire",
	EffectForceNextFire:  "force_next_fire",
	EffectReverse:        "reverse",
	EffectSkip:           "skip",
	EffectReplicate:      "replicate",
}

func (k EffectKind) String() string {
	if s, ok := effectKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Targeting describes who a card effect is aimed at.
type Targeting uint8

const (
	TargetNone  Targeting = iota // acts on the revolver or the player of the card
	TargetOther                  // one other active participant, chosen by the player
)

// CatalogEntry is the static description of one card.
type CatalogEntry struct {
	Name      string     `json:"name"`
	Kind      EffectKind `json:"kind"`
	Target    Targeting  `json:"target"`
	Blockable bool       `json:"blockable"`
	// Amount parameterises the effect: bullets, cards, rounds or plays. Signed for pending bullets.
	Amount int `json:"amount"`
	// Weight is the number of copies in a freshly populated deck.
	Weight int `json:"weight"`
}

// Catalog maps card names to their entries and keeps the population order stable.
type Catalog struct {
	entries map[string]CatalogEntry
	order   []string
}

// NewCatalog builds a catalog from entries. Later duplicates replace earlier ones.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[string]CatalogEntry, len(entries))}
	for _, e := range entries {
		if _, exists := c.entries[e.Name]; !exists {
			c.order = append(c.order, e.Name)
		}
		c.entries[e.Name] = e
	}
	return c
}

// Lookup returns the entry for name.
func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Entries returns all entries in population order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name])
	}
	return out
}

// Size is the number of cards in a full deck built from this catalog.
func (c *Catalog) Size() int {
	total := 0
	for _, e := range c.entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// classicEntries is the classic 25-card table with its rarity weights.
var classicEntries = []CatalogEntry{
	{Name: "Respin Chamber", Kind: EffectRespin, Weight: 15},
	{Name: "Constitution", Kind: EffectConstitution, Blockable: true, Amount: 3, Weight: 3},
	{Name: "Peek at Chamber", Kind: EffectPeek, Weight: 8},
	{Name: "Swap Hand with Player", Kind: EffectSwapHands, Target: TargetOther, Blockable: true, Weight: 5},
	{Name: "Skip", Kind: EffectSkip, Weight: 15},
	{Name: "Add Bullet", Kind: EffectAddBullets, Amount: 1, Weight: 15},
	{Name: "Add 2 Bullet", Kind: EffectAddBullets, Amount: 2, Weight: 5},
	{Name: "Remove Bullet", Kind: EffectRemoveBullets, Amount: 1, Weight: 5},
	{Name: "Add Bullet Next Turn", Kind: EffectPendingBullets, Target: TargetOther, Blockable: true, Amount: 1, Weight: 4},
	{Name: "Add 2 Bullet Next Turn", Kind: EffectPendingBullets, Target: TargetOther, Blockable: true, Amount: 2, Weight: 3},
	{Name: "Remove Bullet Next Turn", Kind: EffectPendingBullets, Target: TargetOther, Blockable: true, Amount: -1, Weight: 4},
	{Name: "Safe Trigger Pull", Kind: EffectSafeTrigger, Weight: 4},
	{Name: "Reverse Order", Kind: EffectReverse, Weight: 8},
	{Name: "Play 2 Cards Next Round", Kind: EffectBonusPlays, Amount: 2, Weight: 4},
	{Name: "Choose Bullet Order", Kind: EffectChooseChamber, Weight: 3},
	{Name: "Force Next Player to Fire Again", Kind: EffectForceNextFire, Weight: 4},
	{Name: "Block Card", Kind: EffectBlock, Weight: 6},
	{Name: "Force Chosen Player to Fire Instead", Kind: EffectForceFire, Target: TargetOther, Blockable: true, Weight: 3},
	{Name: "Look at Player Hand", Kind: EffectLookAtHand, Target: TargetOther, Blockable: true, Weight: 5},
	{Name: "Steal Card", Kind: EffectSteal, Target: TargetOther, Blockable: true, Weight: 3},
	{Name: "Force Reshuffle Hand", Kind: EffectForceRedraw, Target: TargetOther, Blockable: true, Weight: 2},
	{Name: "Duplicate Last Card", Kind: EffectReplicate, Weight: 2},
	{Name: "Extra Draw", Kind: EffectExtraDraw, Amount: 2, Weight: 8},
	{Name: "Lucky Charm", Kind: EffectLuckyCharm, Weight: 4},
	{Name: "Miracle", Kind: EffectMiracle, Weight: 1},
}

// ClassicCatalog returns the catalog of the classic theme.
func ClassicCatalog() *Catalog {
	return NewCatalog(classicEntries)
}
