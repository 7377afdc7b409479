package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Percent is a percentage that may be written as "54%", "54" or 54.
type Percent float64

// ParsePercent parses a percentage string with an optional trailing '%'.
func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return Percent(f), nil
}

func (p *Percent) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: percent must be a scalar", value.Line)
	}
	parsed, err := ParsePercent(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}

// KnownDeck is a curated, pre-vetted deck with recorded statistics.
type KnownDeck struct {
	Name      string   `yaml:"name" json:"name"`
	Cards     []string `yaml:"cards" json:"cards"`
	WinRate   Percent  `yaml:"win_rate" json:"win_rate"`
	UseRate   Percent  `yaml:"use_rate" json:"use_rate"`
	Archetype string   `yaml:"archetype,omitempty" json:"archetype,omitempty"`
	UsedBy    []string `yaml:"used_by,omitempty" json:"used_by,omitempty"`
	Source    string   `yaml:"source,omitempty" json:"source,omitempty"`
}

// Validate checks the structural invariants of a known deck.
func (d KnownDeck) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("known deck has no name")
	}
	if len(d.Cards) != DeckSize {
		return fmt.Errorf("known deck %q: has %d cards, want %d", d.Name, len(d.Cards), DeckSize)
	}
	seen := make(map[string]bool, len(d.Cards))
	for _, name := range d.Cards {
		k := key(name)
		if k == "" {
			return fmt.Errorf("known deck %q: blank card name", d.Name)
		}
		if seen[k] {
			return fmt.Errorf("known deck %q: duplicate card %q", d.Name, name)
		}
		seen[k] = true
	}
	if d.WinRate < 0 || d.UseRate < 0 {
		return fmt.Errorf("known deck %q: negative rate", d.Name)
	}
	return nil
}

// contains reports whether the deck lists the named card, ignoring case.
func (d KnownDeck) contains(name string) bool {
	k := key(name)
	for _, c := range d.Cards {
		if key(c) == k {
			return true
		}
	}
	return false
}

// Library is the read-only list of known decks.
type Library struct {
	decks []KnownDeck
}

// NewLibrary validates every deck and rejects the whole set if any entry is
// malformed. The returned error lists every bad deck.
func NewLibrary(decks []KnownDeck) (*Library, error) {
	var errs []error
	for _, d := range decks {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid deck library: %w", errors.Join(errs...))
	}
	return &Library{decks: append([]KnownDeck(nil), decks...)}, nil
}

// Decks returns the known decks in library order.
func (l *Library) Decks() []KnownDeck {
	if l == nil {
		return nil
	}
	return append([]KnownDeck(nil), l.decks...)
}

// Len returns the number of known decks.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.decks)
}

// Lookup finds a known deck by name, ignoring case.
func (l *Library) Lookup(name string) (KnownDeck, bool) {
	if l == nil {
		return KnownDeck{}, false
	}
	for _, d := range l.decks {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return KnownDeck{}, false
}
