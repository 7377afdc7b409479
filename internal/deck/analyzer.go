package deck

import (
	"math"
	"slices"
)

// Archetype is the strategy classification of a deck.
type Archetype string

const (
	ArchetypeUnknown    Archetype = "Unknown"
	ArchetypeSiege      Archetype = "Siege"
	ArchetypeBait       Archetype = "Bait"
	ArchetypeCycle      Archetype = "Cycle"
	ArchetypeBeatdown   Archetype = "Beatdown"
	ArchetypeBridgeSpam Archetype = "Bridge Spam"
	ArchetypeControl    Archetype = "Control"
	ArchetypeMidrange   Archetype = "Midrange"
	ArchetypeHybrid     Archetype = "Hybrid"
)

// Severity grades an analysis finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Finding is one problem detected in a deck.
type Finding struct {
	Severity    Severity `json:"severity"`
	Issue       string   `json:"issue"`
	Description string   `json:"description"`
	Fix         string   `json:"fix"`
}

// Synergy is a pair of deck cards known to work together.
type Synergy struct {
	Cards    [2]string `json:"cards"`
	Label    string    `json:"label"`
	Strength string    `json:"strength"`
}

// CounterInfo lists the known answers to a card in the deck.
type CounterInfo struct {
	Card        string   `json:"card"`
	CounteredBy []string `json:"countered_by"`
}

// Matchup describes how an archetype fares against others.
type Matchup struct {
	Good        []string `json:"good"`
	Bad         []string `json:"bad"`
	Description string   `json:"description"`
}

func (m Matchup) clone() Matchup {
	return Matchup{Good: slices.Clone(m.Good), Bad: slices.Clone(m.Bad), Description: m.Description}
}

// Analysis is a derived, read-only view of a deck.
type Analysis struct {
	AvgElixir        float64       `json:"avg_elixir"`
	TotalElixir      int           `json:"total_elixir"`
	WinConditions    []string      `json:"win_conditions"`
	Spells           []string      `json:"spells"`
	Buildings        []string      `json:"buildings"`
	Tanks            []string      `json:"tanks"`
	AntiAir          []string      `json:"anti_air"`
	Swarm            []string      `json:"swarm"`
	Splash           []string      `json:"splash"`
	CycleCards       []string      `json:"cycle_cards"`
	Champions        []string      `json:"champions"`
	Evolutions       []string      `json:"evolutions"`
	Archetype        Archetype     `json:"archetype"`
	Synergies        []Synergy     `json:"synergies"`
	Counters         []CounterInfo `json:"counters"`
	Matchup          Matchup       `json:"matchup"`
	Strategy         string        `json:"strategy,omitempty"`
	Problems         []Finding     `json:"problems"` // critical
	Warnings         []Finding     `json:"warnings"`
	PredictedWinRate int           `json:"predicted_win_rate"`
}

// HasCritical reports whether the analysis found a critical problem.
func (a *Analysis) HasCritical() bool {
	return len(a.Problems) > 0
}

// Findings returns problems followed by warnings.
func (a *Analysis) Findings() []Finding {
	return append(slices.Clone(a.Problems), a.Warnings...)
}

// Analyze computes the analysis of a deck. It is a pure function of the card
// list: the same cards always give the same analysis.
func Analyze(cards []Card) *Analysis {
	a := &Analysis{
		WinConditions: []string{},
		Spells:        []string{},
		Buildings:     []string{},
		Tanks:         []string{},
		AntiAir:       []string{},
		Swarm:         []string{},
		Splash:        []string{},
		CycleCards:    []string{},
		Champions:     []string{},
		Evolutions:    []string{},
		Archetype:     ArchetypeUnknown,
		Synergies:     []Synergy{},
		Counters:      []CounterInfo{},
		Matchup:       defaultMatchup.clone(),
		Problems:      []Finding{},
		Warnings:      []Finding{},
	}
	if len(cards) == 0 {
		return a
	}

	a.tally(cards)
	a.Archetype = classify(cards, a)
	if m, ok := matchupTable[a.Archetype]; ok {
		a.Matchup = m.clone()
	}
	a.Strategy = strategyTable[a.Archetype]
	a.findSynergies(cards)
	a.findCounters(cards)
	a.findProblems()
	a.PredictedWinRate = a.predictWinRate()
	return a
}

func (a *Analysis) tally(cards []Card) {
	for _, c := range cards {
		a.TotalElixir += c.Elixir
		if c.IsWinCondition() {
			a.WinConditions = append(a.WinConditions, c.Name)
		}
		if c.IsSpell() {
			a.Spells = append(a.Spells, c.Name)
		}
		if c.IsBuilding() {
			a.Buildings = append(a.Buildings, c.Name)
		}
		if c.IsTank() {
			a.Tanks = append(a.Tanks, c.Name)
		}
		if c.IsAntiAir() {
			a.AntiAir = append(a.AntiAir, c.Name)
		}
		if c.IsSwarm() {
			a.Swarm = append(a.Swarm, c.Name)
		}
		if c.IsSplash() {
			a.Splash = append(a.Splash, c.Name)
		}
		if c.IsCycle() {
			a.CycleCards = append(a.CycleCards, c.Name)
		}
		switch c.Rarity {
		case RarityChampion:
			a.Champions = append(a.Champions, c.Name)
		case RarityEvolution:
			a.Evolutions = append(a.Evolutions, c.Name)
		}
	}
	a.AvgElixir = roundTenth(float64(a.TotalElixir) / float64(len(cards)))
}

func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}

// classify runs the archetype cascade; the first matching rule wins.
func classify(cards []Card, a *Analysis) Archetype {
	avg := a.AvgElixir
	switch {
	case countNamed(cards, siegeBuildings) > 0:
		return ArchetypeSiege
	case countNamed(cards, baitCards) >= 3:
		return ArchetypeBait
	case avg <= 3.2 && len(a.CycleCards) >= 4:
		return ArchetypeCycle
	case countNamed(cards, beatdownTanks) > 0:
		return ArchetypeBeatdown
	case countNamed(cards, spamCards) >= 2 && avg <= 4.2:
		return ArchetypeBridgeSpam
	case len(a.Buildings) >= 1 && len(a.Spells) >= 2:
		return ArchetypeControl
	case avg >= 3.3 && avg <= 4.0:
		return ArchetypeMidrange
	default:
		return ArchetypeHybrid
	}
}

func countNamed(cards []Card, names []string) int {
	n := 0
	for _, c := range cards {
		if containsString(names, c.Name) {
			n++
		}
	}
	return n
}

func (a *Analysis) findSynergies(cards []Card) {
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			x, y := cards[i].Name, cards[j].Name
			if !synergizes(x, y) {
				continue
			}
			a.Synergies = append(a.Synergies, Synergy{
				Cards:    [2]string{x, y},
				Label:    comboLabel(x, y),
				Strength: "Strong",
			})
		}
	}
}

func (a *Analysis) findCounters(cards []Card) {
	for _, c := range cards {
		if counters, ok := counterTable[c.Name]; ok {
			a.Counters = append(a.Counters, CounterInfo{Card: c.Name, CounteredBy: slices.Clone(counters)})
		}
	}
}

func (a *Analysis) findProblems() {
	critical := func(issue, desc, fix string) {
		a.Problems = append(a.Problems, Finding{SeverityCritical, issue, desc, fix})
	}
	warning := func(issue, desc, fix string) {
		a.Warnings = append(a.Warnings, Finding{SeverityWarning, issue, desc, fix})
	}

	if len(a.WinConditions) == 0 {
		critical("No Win Condition",
			"Deck has no reliable way to damage towers",
			"Add Hog Rider, Balloon, Royal Giant, Miner, or similar")
	}
	if len(a.Spells) == 0 {
		critical("No Spells",
			"Cannot deal with swarms or finish low-health towers",
			"Add Fireball, Zap, Log, Arrows, or Poison")
	}
	if len(a.AntiAir) == 0 {
		critical("No Air Defense",
			"Helpless against Balloon, Lava Hound, Minions",
			"Add Mega Minion, Musketeer, Wizard, Arrows, or similar")
	}

	if len(a.WinConditions) > 3 {
		warning("Too Many Win Conditions",
			"Deck lacks defensive support",
			"Replace one win condition with defensive card")
	}
	if a.AvgElixir > 4.5 {
		warning("Too Heavy",
			"Will struggle to defend and cycle",
			"Replace heavy cards with cheaper alternatives")
	}
	if a.AvgElixir < 2.8 {
		warning("Too Light",
			"May lack stopping power vs tanks",
			"Add a medium-cost defensive card")
	}
	if len(a.Splash) == 0 && len(a.Spells) < 2 {
		warning("Weak vs Swarms",
			"No area damage to stop Skeleton Army, Goblin Gang",
			"Add Valkyrie, Wizard, or area damage spell")
	}
	if len(a.Champions) > 1 {
		warning("Too Many Champions",
			"Only one champion can be played per deck",
			"Keep one champion and replace the rest")
	}
	if len(a.Evolutions) > 1 {
		warning("Too Many Evolutions",
			"Only one evolution slot is available",
			"Keep one evolution and replace the rest")
	}
}

func (a *Analysis) predictWinRate() int {
	rate := 50

	switch n := len(a.WinConditions); {
	case n == 1:
		rate += 5
	case n == 2:
		rate += 8
	case n >= 3:
		rate -= 5
	}

	switch n := len(a.Spells); {
	case n >= 2:
		rate += 5
	case n == 0:
		rate -= 15
	}

	switch n := len(a.AntiAir); {
	case n >= 2:
		rate += 5
	case n == 0:
		rate -= 20
	}

	if a.AvgElixir >= 3.0 && a.AvgElixir <= 4.2 {
		rate += 10
	}
	if a.AvgElixir > 5.0 || a.AvgElixir < 2.5 {
		rate -= 10
	}

	if len(a.Buildings) >= 1 {
		rate += 5
	}

	rate -= 15 * len(a.Problems)
	rate -= 5 * len(a.Warnings)

	return min(70, max(30, rate))
}
