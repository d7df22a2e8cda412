// internal/game/themes.go
package game

import (
	"fmt"
	"sort"
)

// Theme bundles a card catalog with the hand policy it was designed for.
type Theme struct {
	Name       string
	Catalog    *Catalog
	HandSize   int
	RefillHand bool
}

// Rules returns DefaultHouseRules adjusted to the theme's hand policy.
func (t Theme) Rules() HouseRules {
	rules := DefaultHouseRules()
	rules.HandSize = t.HandSize
	rules.RefillHand = t.RefillHand
	return rules
}

// saloonNames renames the classic cards for the saloon theme. Effects and
// weights are unchanged.
var saloonNames = map[string]string{
	"Respin Chamber":                      "Spin the Cylinder",
	"Constitution":                        "Sheriff's Badge",
	"Peek at Chamber":                     "Squint Down the Barrel",
	"Swap Hand with Player":               "Switch Saddlebags",
	"Skip":                                "Fold",
	"Add Bullet":                          "Load a Round",
	"Add 2 Bullet":                        "Load Two Rounds",
	"Remove Bullet":                       "Unload a Round",
	"Add Bullet Next Turn":                "Marked Man",
	"Add 2 Bullet Next Turn":              "Wanted Poster",
	"Remove Bullet Next Turn":             "Pardon",
	"Safe Trigger Pull":                   "Misfire",
	"Reverse Order":                       "Turn Tail",
	"Play 2 Cards Next Round":             "Deal Me In",
	"Choose Bullet Order":                 "Set the Hammer",
	"Force Next Player to Fire Again":     "Double Dare",
	"Block Card":                          "Duck",
	"Force Chosen Player to Fire Instead": "Call Out",
	"Look at Player Hand":                 "Card Sharp",
	"Steal Card":                          "Pickpocket",
	"Force Reshuffle Hand":                "New Deal",
	"Duplicate Last Card":                 "Encore",
	"Extra Draw":                          "Another Round",
	"Lucky Charm":                         "Horseshoe",
	"Miracle":                             "Tin Star",
}

// SaloonCatalog returns the classic effects under saloon names.
func SaloonCatalog() *Catalog {
	entries := make([]CatalogEntry, 0, len(classicEntries))
	for _, e := range classicEntries {
		if name, ok := saloonNames[e.Name]; ok {
			e.Name = name
		}
		entries = append(entries, e)
	}
	return NewCatalog(entries)
}

var themes = map[string]func() Theme{
	"classic": func() Theme {
		return Theme{Name: "classic", Catalog: ClassicCatalog(), HandSize: 5, RefillHand: false}
	},
	"saloon": func() Theme {
		return Theme{Name: "saloon", Catalog: SaloonCatalog(), HandSize: 4, RefillHand: true}
	},
}

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, error) {
	build, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (have %v)", name, ThemeNames())
	}
	return build(), nil
}

// ThemeNames lists the registered themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
