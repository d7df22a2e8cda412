// internal/models/card.go
package models

// Card is a single drawn effect card. Its identity is the catalog name; cards
// carry no per-instance state once drawn.
type Card struct {
	Name string `json:"name"`
}

// NewCard returns a card for the given catalog name.
func NewCard(name string) *Card {
	return &Card{Name: name}
}

func (c *Card) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}
