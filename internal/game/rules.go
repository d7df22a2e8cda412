// internal/game/rules.go
package game

import "fmt"

// HouseRules defines the configurable parts of a game. Deck contents come from
// the Theme; these knobs cover the revolver and the hand policy.
type HouseRules struct {
	Chambers         int  `json:"chambers"`         // number of chambers in the revolver; default 6
	HandSize         int  `json:"handSize"`         // cards dealt to each participant at game start
	RefillHand       bool `json:"refillHand"`       // top the acting participant back up to HandSize at the end of their turn
	ExtraLifeExpires bool `json:"extraLifeExpires"` // count extra-life rounds down at the end of each of the owner's turns
}

// DefaultHouseRules returns the rules of the classic theme.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		Chambers:         DefaultChambers,
		HandSize:         5,
		RefillHand:       false,
		ExtraLifeExpires: false,
	}
}

// Validate checks that the rules can build a game.
func (rules HouseRules) Validate() error {
	if rules.Chambers <= 0 {
		return fmt.Errorf("chambers must be positive, got %d", rules.Chambers)
	}
	if rules.HandSize < 0 {
		return fmt.Errorf("handSize must be non-negative, got %d", rules.HandSize)
	}
	return nil
}

// Update will update the house rules with the new rules provided.
// If a rule is not set or defined, it will be ignored, and the old value will persist.
func (rules *HouseRules) Update(newRules map[string]interface{}) error {
	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			*field = b
		}
		return nil
	}

	assignInt := func(field *int, key string, minVal int) error {
		if val, exists := newRules[key]; exists && val != nil {
			// JSON numbers decode as float64
			var v int
			switch n := val.(type) {
			case float64:
				v = int(n)
			case int:
				v = n
			default:
				return fmt.Errorf("invalid type for %s", key)
			}
			if v < minVal {
				return fmt.Errorf("%s must be at least %d", key, minVal)
			}
			*field = v
		}
		return nil
	}

	if err := assignInt(&rules.Chambers, "chambers", 1); err != nil {
		return err
	}
	if err := assignInt(&rules.HandSize, "handSize", 0); err != nil {
		return err
	}
	if err := assignBool(&rules.RefillHand, "refillHand"); err != nil {
		return err
	}
	if err := assignBool(&rules.ExtraLifeExpires, "extraLifeExpires"); err != nil {
		return err
	}
	return nil
}

// ParseRules converts a map of rules to a HouseRules struct. It will ensure the types are valid.
func ParseRules(rules map[string]interface{}, current HouseRules) (HouseRules, error) {
	houseRules := current
	err := houseRules.Update(rules)
	return houseRules, err
}
