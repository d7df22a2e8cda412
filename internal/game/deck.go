// internal/game/deck.go
package game

import (
	"math/rand"

	"github.com/jason-s-yu/roulette/internal/models"
)

// Deck is an inexhaustible draw stack populated from a Catalog. When it runs
// dry it restores the full configured multiset and reshuffles.
type Deck struct {
	catalog *Catalog
	rng     *rand.Rand
	cards   []*models.Card

	// OnRepopulate, if set, is called after every automatic refill.
	OnRepopulate func(size int)
}

// NewDeck builds and shuffles a full deck from the catalog.
func NewDeck(catalog *Catalog, rng *rand.Rand) *Deck {
	d := &Deck{catalog: catalog, rng: rng}
	d.populate()
	return d
}

// populate replaces the stack with the full multiset and shuffles it.
func (d *Deck) populate() {
	cards := make([]*models.Card, 0, d.catalog.Size())
	for _, e := range d.catalog.Entries() {
		for i := 0; i < e.Weight; i++ {
			cards = append(cards, models.NewCard(e.Name))
		}
	}
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	d.cards = cards
}

// Draw removes and returns exactly n cards from the top of the stack.
func (d *Deck) Draw(n int) []*models.Card {
	if n <= 0 {
		return []*models.Card{}
	}
	drawn := make([]*models.Card, 0, n)
	for len(drawn) < n {
		if len(d.cards) == 0 {
			d.populate()
			if len(d.cards) == 0 {
				// A catalog with no weighted entries cannot produce cards.
				break
			}
			if d.OnRepopulate != nil {
				d.OnRepopulate(len(d.cards))
			}
		}
		top := len(d.cards) - 1
		drawn = append(drawn, d.cards[top])
		d.cards = d.cards[:top]
	}
	return drawn
}

// DiscardAndRedraw removes the hand cards at indices and draws one replacement
// per card actually removed. Duplicate and out-of-range indices are ignored.
// It returns the number of cards replaced.
func (d *Deck) DiscardAndRedraw(p *models.Participant, indices []int) int {
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(p.Hand) {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := make([]*models.Card, 0, len(p.Hand))
	for i, c := range p.Hand {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	p.Hand = append(kept, d.Draw(len(drop))...)
	return len(drop)
}

// Remaining is the number of cards left before the next automatic refill.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Size is the number of cards in a full deck.
func (d *Deck) Size() int {
	return d.catalog.Size()
}
