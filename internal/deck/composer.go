package deck

import (
	"github.com/peterkuimelis/crdeck/internal/log"
)

// Composition summarizes a partial deck for candidate scoring.
type Composition struct {
	Size            int
	AvgElixir       float64 // 0 for an empty deck
	HasWinCondition bool
	HasSpell        bool
	HasSplash       bool
	HasAntiAir      bool
	HasTank         bool
	HasSwarm        bool
	HasBuilding     bool
	Champions       int
	Evolutions      int
	RoleCounts      map[Role]int
}

// NewComposition computes the composition of the given cards.
func NewComposition(cards []Card) Composition {
	comp := Composition{Size: len(cards), RoleCounts: make(map[Role]int)}
	total := 0
	for _, c := range cards {
		total += c.Elixir
		comp.RoleCounts[c.Role]++
		comp.HasWinCondition = comp.HasWinCondition || c.IsWinCondition()
		comp.HasSpell = comp.HasSpell || c.IsSpell()
		comp.HasSplash = comp.HasSplash || c.IsSplash()
		comp.HasAntiAir = comp.HasAntiAir || c.IsAntiAir()
		comp.HasTank = comp.HasTank || c.IsTank()
		comp.HasSwarm = comp.HasSwarm || c.IsSwarm()
		comp.HasBuilding = comp.HasBuilding || c.IsBuilding()
		switch c.Rarity {
		case RarityChampion:
			comp.Champions++
		case RarityEvolution:
			comp.Evolutions++
		}
	}
	if len(cards) > 0 {
		comp.AvgElixir = float64(total) / float64(len(cards))
	}
	return comp
}

// allows reports whether the special-slot limits leave room for the card.
func (comp Composition) allows(c Card) bool {
	switch c.Rarity {
	case RarityChampion:
		return comp.Champions == 0
	case RarityEvolution:
		return comp.Evolutions == 0
	}
	return true
}

// ScoreCandidate rates how much a card would improve a deck with the given
// composition. Higher is better.
func ScoreCandidate(c Card, comp Composition, style Style) float64 {
	score := 50.0

	if !comp.HasWinCondition && c.IsWinCondition() {
		score += 100
	}
	if !comp.HasSpell && c.IsSpell() {
		score += 80
	}
	if !comp.HasSplash && c.IsSplash() {
		score += 70
	}
	if !comp.HasAntiAir && c.IsAntiAir() {
		score += 60
	}
	if !comp.HasTank && c.IsTank() {
		score += 50
	}
	if !comp.HasSwarm && c.IsSwarm() {
		score += 40
	}
	if !comp.HasBuilding && c.IsBuilding() {
		score += 30
	}

	// Elixir curve.
	if comp.AvgElixir > 4 && c.Elixir > 5 {
		score -= 30
	}
	if comp.AvgElixir < 3.5 && c.Elixir < 3 {
		score -= 20
	}
	if c.Elixir >= 3 && c.Elixir <= 4 {
		score += 20
	}

	// Each card already holding the role costs another 30.
	score -= 30 * float64(comp.RoleCounts[c.Role])

	if c.IsSpell() && c.Elixir <= 3 {
		score += 40
	}

	switch style {
	case StyleCycle:
		if c.Elixir <= 3 {
			score += 40
		} else {
			score -= 20
		}
	case StyleBeatdown:
		if c.IsTank() {
			score += 50
		}
		if c.Elixir >= 5 {
			score += 30
		} else {
			score -= 20
		}
	}
	return score
}

// Compose fills a deck greedily: starting from mustInclude, it repeatedly
// appends the best scoring pool card until the deck is full or the pool runs
// out. Each pick is scored against the deck as filled so far, so the result
// is not globally optimal. Score ties go to the earlier pool card.
func Compose(mustInclude, pool []Card, style Style) []Card {
	return compose(mustInclude, pool, style, log.NopLogger{})
}

func compose(mustInclude, pool []Card, style Style, logger log.EventLogger) []Card {
	deck := make([]Card, 0, DeckSize)
	inDeck := make(map[string]bool, DeckSize)
	for _, c := range mustInclude {
		k := key(c.Name)
		if inDeck[k] {
			continue
		}
		inDeck[k] = true
		deck = append(deck, c)
		if len(deck) == DeckSize {
			return deck
		}
	}

	for len(deck) < DeckSize {
		comp := NewComposition(deck)
		best, bestScore := -1, 0.0
		for i, c := range pool {
			if inDeck[key(c.Name)] || !comp.allows(c) {
				continue
			}
			if s := ScoreCandidate(c, comp, style); best < 0 || s > bestScore {
				best, bestScore = i, s
			}
		}
		if best < 0 {
			logger.Log(log.NewComposeExhaustedEvent(len(deck)))
			break
		}
		pick := pool[best]
		inDeck[key(pick.Name)] = true
		deck = append(deck, pick)
		logger.Log(log.NewCardPickedEvent(pick.Name, len(deck), bestScore))
	}
	return deck
}
