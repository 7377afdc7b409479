package deck

import (
	"fmt"
	"slices"
	"strings"
)

// DeckSize is the number of cards in a complete deck.
const DeckSize = 8

// --- Enums ---

type CardType string

const (
	CardTypeTroop    CardType = "troop"
	CardTypeSpell    CardType = "spell"
	CardTypeBuilding CardType = "building"
)

func (ct CardType) valid() bool {
	switch ct {
	case CardTypeTroop, CardTypeSpell, CardTypeBuilding:
		return true
	}
	return false
}

// Role is the deck-composition role of a card. Every card has exactly one.
type Role string

const (
	RoleWinCon  Role = "wincon"
	RoleTank    Role = "tank"
	RoleSupport Role = "support"
	RoleSplash  Role = "splash"
	RoleSwarm   Role = "swarm"
	RoleRanged  Role = "ranged"
	RoleDamage  Role = "damage"
	RoleDefense Role = "defense"
	RoleSpawner Role = "spawner"
	RoleSpecial Role = "special"
	RoleSpell   Role = "spell"
)

func (r Role) valid() bool {
	switch r {
	case RoleWinCon, RoleTank, RoleSupport, RoleSplash, RoleSwarm, RoleRanged,
		RoleDamage, RoleDefense, RoleSpawner, RoleSpecial, RoleSpell:
		return true
	}
	return false
}

// TargetType describes what a card can hit.
type TargetType string

const (
	TargetGround TargetType = "ground"
	TargetAir    TargetType = "air"
	TargetBoth   TargetType = "both"
	TargetNone   TargetType = "none"
)

func (t TargetType) valid() bool {
	switch t {
	case TargetGround, TargetAir, TargetBoth, TargetNone:
		return true
	}
	return false
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityChampion  Rarity = "champion"
	RarityEvolution Rarity = "evolution"
)

func (r Rarity) valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityChampion, RarityEvolution:
		return true
	}
	return false
}

// Special reports whether a deck may hold at most one card of this rarity.
func (r Rarity) Special() bool {
	return r == RarityChampion || r == RarityEvolution
}

// Style is an archetype hint parsed from a request.
type Style string

const (
	StyleNone       Style = ""
	StyleCycle      Style = "cycle"
	StyleBeatdown   Style = "beatdown"
	StyleSiege      Style = "siege"
	StyleControl    Style = "control"
	StyleBait       Style = "bait"
	StyleBridgeSpam Style = "bridgespam"
)

// ParseStyle maps a user-supplied style name to a Style. Unknown names
// yield StyleNone.
func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cycle", "fast":
		return StyleCycle
	case "beatdown", "heavy":
		return StyleBeatdown
	case "siege":
		return StyleSiege
	case "control":
		return StyleControl
	case "bait":
		return StyleBait
	case "bridgespam", "bridge-spam", "bridge spam":
		return StyleBridgeSpam
	default:
		return StyleNone
	}
}

// --- Card definition (static, from the catalog) ---

type Card struct {
	Name   string     `yaml:"name" json:"name"`
	Elixir int        `yaml:"elixir" json:"elixir"`
	Type   CardType   `yaml:"type" json:"type"`
	Role   Role       `yaml:"role" json:"role"`
	Target TargetType `yaml:"target" json:"target"`
	Rarity Rarity     `yaml:"rarity" json:"rarity"`
	Arena  int        `yaml:"arena,omitempty" json:"arena,omitempty"` // 0 = always available
	Tags   []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
}

func (c Card) String() string {
	return c.Name
}

func (c Card) IsWinCondition() bool { return c.Role == RoleWinCon }
func (c Card) IsSpell() bool        { return c.Type == CardTypeSpell }
func (c Card) IsBuilding() bool     { return c.Type == CardTypeBuilding }
func (c Card) IsTank() bool         { return c.Role == RoleTank }
func (c Card) IsSwarm() bool        { return c.Role == RoleSwarm }
func (c Card) IsSplash() bool       { return c.Role == RoleSplash }

// IsAntiAir reports whether the card can hit air units.
func (c Card) IsAntiAir() bool {
	return c.Target == TargetAir || c.Target == TargetBoth
}

// IsCycle reports whether the card is cheap enough to count as a cycle card.
func (c Card) IsCycle() bool {
	return c.Elixir <= 2
}

// HasTag reports whether the card carries the given flavor tag.
func (c Card) HasTag(tag string) bool {
	return slices.ContainsFunc(c.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
}

// normalize lower-cases the enum fields so "Troop" and "troop" load the same.
func (c *Card) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Type = CardType(strings.ToLower(strings.TrimSpace(string(c.Type))))
	c.Role = Role(strings.ToLower(strings.TrimSpace(string(c.Role))))
	c.Target = TargetType(strings.ToLower(strings.TrimSpace(string(c.Target))))
	c.Rarity = Rarity(strings.ToLower(strings.TrimSpace(string(c.Rarity))))
}

// validate checks a normalized card against the data model.
func (c *Card) validate() error {
	if c.Name == "" {
		return fmt.Errorf("card has no name")
	}
	if c.Elixir < 0 || c.Elixir > 10 {
		return fmt.Errorf("card %q: elixir %d out of range", c.Name, c.Elixir)
	}
	if !c.Type.valid() {
		return fmt.Errorf("card %q: unknown type %q", c.Name, c.Type)
	}
	if !c.Role.valid() {
		return fmt.Errorf("card %q: unknown role %q", c.Name, c.Role)
	}
	if !c.Target.valid() {
		return fmt.Errorf("card %q: unknown target %q", c.Name, c.Target)
	}
	if !c.Rarity.valid() {
		return fmt.Errorf("card %q: unknown rarity %q", c.Name, c.Rarity)
	}
	if c.Arena < 0 {
		return fmt.Errorf("card %q: negative arena %d", c.Name, c.Arena)
	}
	return nil
}

// sameFields reports whether two records for the same name carry identical data.
func (c Card) sameFields(o Card) bool {
	return c.Elixir == o.Elixir && c.Type == o.Type && c.Role == o.Role &&
		c.Target == o.Target && c.Rarity == o.Rarity && c.Arena == o.Arena &&
		slices.Equal(c.Tags, o.Tags)
}

// --- Requests and results ---

// Correction records a fuzzy resolution of a misspelled mention.
type Correction struct {
	Typed     string `json:"typed"`
	Corrected string `json:"corrected"`
	Distance  int    `json:"distance"`
}

// DeckRequest is derived from one user input string.
type DeckRequest struct {
	RawText        string       `json:"raw_text"`
	RequestedCards []string     `json:"requested_cards"`
	Corrections    []Correction `json:"corrections,omitempty"`
	Style          Style        `json:"style,omitempty"`
	ArenaLimit     int          `json:"arena_limit,omitempty"`
	FromScratch    bool         `json:"from_scratch,omitempty"`
	wantsDeck      bool         // text mentions a deck keyword
}

// WithoutCorrections returns a copy of the request with every fuzzily
// corrected card removed.
func (r DeckRequest) WithoutCorrections() DeckRequest {
	corrected := make(map[string]bool, len(r.Corrections))
	for _, c := range r.Corrections {
		corrected[c.Corrected] = true
	}
	out := r
	out.RequestedCards = nil
	for _, name := range r.RequestedCards {
		if !corrected[name] {
			out.RequestedCards = append(out.RequestedCards, name)
		}
	}
	out.Corrections = nil
	return out
}

// MatchKind tells whether a proven deck held every requested card.
type MatchKind string

const (
	MatchFull    MatchKind = "full"
	MatchPartial MatchKind = "partial"
)

// Provenance is attached to a deck that came from the known-deck library.
type Provenance struct {
	DeckName     string    `json:"deck_name"`
	Archetype    string    `json:"archetype,omitempty"`
	WinRate      float64   `json:"win_rate"`
	UseRate      float64   `json:"use_rate"`
	Kind         MatchKind `json:"kind"`
	MatchPercent int       `json:"match_percent"`
	Score        float64   `json:"score"`
	Source       string    `json:"source,omitempty"`
	UsedBy       []string  `json:"used_by,omitempty"`
	Skipped      []string  `json:"skipped,omitempty"` // library cards missing from the catalog
}

// Deck is an ordered list of distinct cards.
type Deck struct {
	Cards  []Card      `json:"cards"`
	Proven *Provenance `json:"proven,omitempty"`
}

// Names returns the card names in deck order.
func (d Deck) Names() []string {
	names := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		names[i] = c.Name
	}
	return names
}
