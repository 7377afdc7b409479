package deck

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/crdeck/internal/log"
)

// card builds a common-rarity test card.
func card(name string, elixir int, ct CardType, role Role, target TargetType) Card {
	return Card{Name: name, Elixir: elixir, Type: ct, Role: role, Target: target, Rarity: RarityCommon}
}

func troop(name string, elixir int, role Role, target TargetType) Card {
	return card(name, elixir, CardTypeTroop, role, target)
}

func spell(name string, elixir int, target TargetType) Card {
	return card(name, elixir, CardTypeSpell, RoleSpell, target)
}

func building(name string, elixir int, role Role, target TargetType) Card {
	return card(name, elixir, CardTypeBuilding, role, target)
}

func withRarity(c Card, r Rarity) Card {
	c.Rarity = r
	return c
}

func testCatalog(t *testing.T, cards ...Card) *Catalog {
	t.Helper()
	c, err := NewCatalog(cards, nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// bundled loads the embedded catalog and library.
func bundled(t *testing.T) (*Catalog, *Library) {
	t.Helper()
	catalog, library, err := LoadData("", "", nil)
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	return catalog, library
}

// bundledCards resolves names against the embedded catalog and fails on any
// unknown name.
func bundledCards(t *testing.T, names ...string) []Card {
	t.Helper()
	catalog, _ := bundled(t)
	cards, missing := catalog.Resolve(names)
	if len(missing) > 0 {
		t.Fatalf("Unknown cards in fixture: %v", missing)
	}
	return cards
}

func testEngine(t *testing.T, opts ...Option) (*Engine, *log.MemoryLogger) {
	t.Helper()
	catalog, library := bundled(t)
	logger := log.NewMemoryLogger()
	e, err := NewEngine(catalog, library, append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, logger
}

// knownDeck pads the given cards with filler names up to a full deck.
func knownDeck(name string, win, use float64, cards ...string) KnownDeck {
	all := append([]string(nil), cards...)
	for i := 1; len(all) < DeckSize; i++ {
		all = append(all, fmt.Sprintf("%s Filler %d", name, i))
	}
	return KnownDeck{Name: name, Cards: all, WinRate: Percent(win), UseRate: Percent(use)}
}

func assertNoDuplicates(t *testing.T, cards []Card) {
	t.Helper()
	seen := make(map[string]bool)
	for _, c := range cards {
		if seen[c.Name] {
			t.Errorf("Duplicate card %s in deck %v", c.Name, cardNames(cards))
		}
		seen[c.Name] = true
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
