package deck

import (
	"reflect"
	"testing"

	"github.com/peterkuimelis/crdeck/internal/log"
)

func TestScoreCandidate(t *testing.T) {
	hog := troop("Hog Rider", 4, RoleWinCon, TargetGround)
	fireball := spell("Fireball", 4, TargetBoth)
	theLog := spell("The Log", 2, TargetGround)
	golem := troop("Golem", 8, RoleWinCon, TargetGround)
	knight := troop("Knight", 3, RoleTank, TargetGround)
	pekka := troop("P.E.K.K.A", 7, RoleTank, TargetGround)

	empty := NewComposition(nil)
	heavy := NewComposition([]Card{golem, pekka, troop("Giant", 5, RoleWinCon, TargetGround)})

	tests := []struct {
		name  string
		card  Card
		comp  Composition
		style Style
		want  float64
	}{
		{"wincon into empty deck", hog, empty, StyleNone, 50 + 100 + 20},
		{"spell with anti-air", fireball, empty, StyleNone, 50 + 80 + 60 + 20},
		{"cheap spell", theLog, empty, StyleNone, 50 + 80 - 20 + 40},
		{"cheap spell cycle style", theLog, empty, StyleCycle, 50 + 80 - 20 + 40 + 40},
		{"wincon cycle style", hog, empty, StyleCycle, 50 + 100 + 20 - 20},
		{"tank beatdown style", knight, empty, StyleBeatdown, 50 + 50 + 20 + 50 - 20},
		{"heavy wincon beatdown style", golem, empty, StyleBeatdown, 50 + 100 + 30},
		// avg 6.67: heavy penalty, tank already present, wincon present twice.
		{"heavy into heavy deck", golem, heavy, StyleNone, 50 - 30 - 60},
		{"tank into deck with tank", knight, heavy, StyleNone, 50 + 20 - 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreCandidate(tt.card, tt.comp, tt.style); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewCompositionEmptyDeck(t *testing.T) {
	comp := NewComposition(nil)
	if comp.AvgElixir != 0 || comp.Size != 0 {
		t.Errorf("Expected zero composition, got %+v", comp)
	}
}

func TestComposeFillsDeck(t *testing.T) {
	catalog, _ := bundled(t)
	hog, _ := catalog.Lookup("Hog Rider")

	deck := Compose([]Card{hog}, catalog.Cards(), StyleCycle)
	if len(deck) != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, len(deck))
	}
	if deck[0].Name != "Hog Rider" {
		t.Errorf("Expected Hog Rider first, got %s", deck[0].Name)
	}
	assertNoDuplicates(t, deck)

	comp := NewComposition(deck)
	if !comp.HasSpell || !comp.HasAntiAir {
		t.Errorf("Expected a spell and anti-air in %v", cardNames(deck))
	}
}

func TestComposeDeterministic(t *testing.T) {
	catalog, _ := bundled(t)
	for _, style := range []Style{StyleNone, StyleCycle, StyleBeatdown, StyleSiege} {
		a := Compose(nil, catalog.Cards(), style)
		b := Compose(nil, catalog.Cards(), style)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Style %q: expected identical decks, got %v and %v", style, cardNames(a), cardNames(b))
		}
		if len(a) != DeckSize {
			t.Errorf("Style %q: expected %d cards, got %d", style, DeckSize, len(a))
		}
		assertNoDuplicates(t, a)
	}
}

func TestComposeGreedyOrder(t *testing.T) {
	pool := []Card{
		troop("Knight", 3, RoleTank, TargetGround),
		troop("Hog Rider", 4, RoleWinCon, TargetGround),
		spell("Zap", 2, TargetBoth),
	}
	deck := Compose(nil, pool, StyleNone)
	// Zap scores 50+80+60-20+40 = 210, Hog 170, Knight 120.
	want := []string{"Zap", "Hog Rider", "Knight"}
	if !equalStrings(cardNames(deck), want) {
		t.Errorf("Expected %v, got %v", want, cardNames(deck))
	}
}

func TestComposeTruncatesMustInclude(t *testing.T) {
	catalog, _ := bundled(t)
	all := catalog.Cards()[:10]
	deck := Compose(all, catalog.Cards(), StyleNone)
	if !equalStrings(cardNames(deck), cardNames(all[:DeckSize])) {
		t.Errorf("Expected the first 8 must-include cards, got %v", cardNames(deck))
	}
}

func TestComposeDedupesMustInclude(t *testing.T) {
	hog := troop("Hog Rider", 4, RoleWinCon, TargetGround)
	pool := []Card{hog, spell("Zap", 2, TargetBoth)}
	deck := Compose([]Card{hog, hog}, pool, StyleNone)
	if !equalStrings(cardNames(deck), []string{"Hog Rider", "Zap"}) {
		t.Errorf("Expected [Hog Rider Zap], got %v", cardNames(deck))
	}
}

func TestComposeShortPool(t *testing.T) {
	pool := []Card{
		troop("Knight", 3, RoleTank, TargetGround),
		spell("Zap", 2, TargetBoth),
		troop("Archers", 3, RoleRanged, TargetBoth),
	}
	deck := Compose(nil, pool, StyleNone)
	if len(deck) != len(pool) {
		t.Errorf("Expected %d cards from a short pool, got %d", len(pool), len(deck))
	}
	if deck := Compose(nil, nil, StyleNone); len(deck) != 0 {
		t.Errorf("Expected an empty deck from an empty pool, got %v", cardNames(deck))
	}
}

func TestComposeCapsSpecialRarities(t *testing.T) {
	pool := []Card{
		withRarity(troop("Skeleton King", 4, RoleTank, TargetGround), RarityChampion),
		withRarity(troop("Archer Queen", 5, RoleRanged, TargetBoth), RarityChampion),
		withRarity(troop("Golden Knight", 4, RoleDamage, TargetGround), RarityChampion),
		withRarity(troop("Evolved Valkyrie", 4, RoleSplash, TargetGround), RarityEvolution),
		withRarity(troop("Evolved Firecracker", 3, RoleSplash, TargetBoth), RarityEvolution),
		troop("Knight", 3, RoleTank, TargetGround),
	}
	deck := Compose(nil, pool, StyleNone)
	comp := NewComposition(deck)
	if comp.Champions != 1 || comp.Evolutions != 1 {
		t.Errorf("Expected one champion and one evolution, got %d and %d in %v",
			comp.Champions, comp.Evolutions, cardNames(deck))
	}
	if len(deck) != 3 {
		t.Errorf("Expected 3 cards, got %d", len(deck))
	}
}

func TestComposeLogsPicks(t *testing.T) {
	catalog, _ := bundled(t)
	logger := log.NewMemoryLogger()
	hog, _ := catalog.Lookup("Hog Rider")

	deck := compose([]Card{hog}, catalog.Cards(), StyleNone, logger)
	picks := logger.EventsOfType(log.EventCardPicked)
	if len(picks) != len(deck)-1 {
		t.Fatalf("Expected %d pick events, got %d", len(deck)-1, len(picks))
	}
	if picks[0].Card != deck[1].Name {
		t.Errorf("Expected first pick %s, got %s", deck[1].Name, picks[0].Card)
	}
}

func TestComposeLogsExhaustion(t *testing.T) {
	logger := log.NewMemoryLogger()
	compose(nil, []Card{troop("Knight", 3, RoleTank, TargetGround)}, StyleNone, logger)
	if len(logger.EventsOfType(log.EventComposeExhausted)) != 1 {
		t.Error("Expected a compose exhausted event")
	}
}
