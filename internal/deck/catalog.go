package deck

import (
	"errors"
	"strings"

	"github.com/peterkuimelis/crdeck/internal/log"
)

var (
	// ErrNilCatalog is returned when a catalog is built from no card list at all.
	ErrNilCatalog = errors.New("nil card catalog")
	// ErrEmptyCatalog is returned when a deck is requested from an empty catalog.
	ErrEmptyCatalog = errors.New("card catalog is empty")
)

// Catalog is the immutable set of playable cards, keyed case-insensitively
// by name. It is safe for concurrent reads.
type Catalog struct {
	cards []Card
	index map[string]int // key(name) → position in cards
}

// key is the canonical lookup form of a card name.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCatalog builds a catalog, keeping the first record for each name.
// Later duplicates are dropped and reported to the logger.
func NewCatalog(cards []Card, logger log.EventLogger) (*Catalog, error) {
	if cards == nil {
		return nil, ErrNilCatalog
	}
	if logger == nil {
		logger = log.NopLogger{}
	}

	c := &Catalog{index: make(map[string]int, len(cards))}
	var errs []error
	for _, card := range cards {
		card.normalize()
		if err := card.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		k := key(card.Name)
		if i, ok := c.index[k]; ok {
			logger.Log(log.NewCatalogDuplicateEvent(card.Name, !c.cards[i].sameFields(card)))
			continue
		}
		c.index[k] = len(c.cards)
		c.cards = append(c.cards, card)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Len returns the number of distinct cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns the cards in catalog order. The slice is a copy.
func (c *Catalog) Cards() []Card {
	return append([]Card(nil), c.cards...)
}

// Names returns the canonical card names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.cards))
	for i, card := range c.cards {
		names[i] = card.Name
	}
	return names
}

// Lookup finds a card by name, ignoring case.
func (c *Catalog) Lookup(name string) (Card, bool) {
	i, ok := c.index[key(name)]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Resolve maps names to cards in order, skipping duplicates. Names not in
// the catalog are returned in missing.
func (c *Catalog) Resolve(names []string) (cards []Card, missing []string) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		card, ok := c.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if seen[card.Name] {
			continue
		}
		seen[card.Name] = true
		cards = append(cards, card)
	}
	return cards, missing
}

// Available returns the cards unlocked at the given arena (0 = all).
func (c *Catalog) Available(arena int) []Card {
	if arena <= 0 {
		return c.Cards()
	}
	var out []Card
	for _, card := range c.cards {
		if card.Arena <= arena {
			out = append(out, card)
		}
	}
	return out
}
