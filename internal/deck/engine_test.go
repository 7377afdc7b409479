package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/peterkuimelis/crdeck/internal/log"
)

func TestParseRequest(t *testing.T) {
	e, _ := testEngine(t)
	tests := []struct {
		text       string
		cards      []string
		style      Style
		arena      int
		scratch    bool
		sufficient bool
	}{
		{"fast cycle deck with Hog Rider", []string{"Hog Rider"}, StyleCycle, 0, false, true},
		{"heavy golem beatdown", []string{"Golem"}, StyleBeatdown, 0, false, true},
		{"control deck with Miner", []string{"Miner"}, StyleControl, 0, false, true},
		{"bridge spam with P.E.K.K.A", []string{"P.E.K.K.A"}, StyleBridgeSpam, 0, false, true},
		{"log bait please", []string{}, StyleBait, 0, false, true},
		{"build me something for arena 6", []string{}, StyleNone, 6, false, true},
		{"custom deck with Hog Rider", []string{"Hog Rider"}, StyleNone, 0, true, true},
		{"hello there", []string{}, StyleNone, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			req := e.ParseRequest(tt.text)
			if !equalStrings(req.RequestedCards, tt.cards) {
				t.Errorf("Expected cards %v, got %v", tt.cards, req.RequestedCards)
			}
			if req.Style != tt.style {
				t.Errorf("Expected style %q, got %q", tt.style, req.Style)
			}
			if req.ArenaLimit != tt.arena {
				t.Errorf("Expected arena %d, got %d", tt.arena, req.ArenaLimit)
			}
			if req.FromScratch != tt.scratch {
				t.Errorf("Expected from scratch %v, got %v", tt.scratch, req.FromScratch)
			}
			if req.Sufficient() != tt.sufficient {
				t.Errorf("Expected sufficient %v, got %v", tt.sufficient, req.Sufficient())
			}
		})
	}
}

func TestBuildFullPipeline(t *testing.T) {
	e, logger := testEngine(t)

	p, err := e.Propose("fast cycle deck with Hog Rider")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if p.Pending != nil {
		t.Fatalf("Expected no pending corrections, got %v", p.Pending.Corrections())
	}
	res := p.Result
	if res.Deck.Proven == nil || res.Deck.Proven.DeckName != "2.6 Hog Cycle" {
		t.Fatalf("Expected 2.6 Hog Cycle, got %+v", res.Deck.Proven)
	}
	if res.Deck.Proven.Kind != MatchFull || res.Deck.Proven.WinRate != 54 {
		t.Errorf("Expected a full match at 54%%, got %+v", res.Deck.Proven)
	}
	if !equalStrings(res.Deck.Names(), hogCycle) {
		t.Errorf("Expected %v, got %v", hogCycle, res.Deck.Names())
	}
	if res.Analysis.Archetype != ArchetypeCycle {
		t.Errorf("Expected Cycle, got %s", res.Analysis.Archetype)
	}
	if res.Analysis.HasCritical() {
		t.Errorf("Expected no critical problems, got %v", res.Analysis.Problems)
	}

	if len(logger.EventsOfType(log.EventProvenMatch)) != 1 {
		t.Error("Expected a proven match event")
	}
	if len(logger.EventsOfType(log.EventExactMatch)) != 1 {
		t.Error("Expected an exact match event")
	}
	if ev := logger.EventsOfType(log.EventArchetype); len(ev) != 1 || !strings.Contains(ev[0].Details, "Cycle") {
		t.Errorf("Expected a Cycle archetype event, got %v", ev)
	}
}

func TestBuildInsufficientInput(t *testing.T) {
	e, _ := testEngine(t)
	if _, err := e.Propose("hello there"); !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("Expected ErrInsufficientInput, got %v", err)
	}
	if _, err := e.Build(DeckRequest{}); !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("Expected ErrInsufficientInput for an empty request, got %v", err)
	}
}

func TestBuildFromScratchSkipsLibrary(t *testing.T) {
	e, logger := testEngine(t)
	res, err := e.Build(e.ParseRequest("custom deck with Hog Rider"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Deck.Proven != nil {
		t.Errorf("Expected a composed deck, got proven %s", res.Deck.Proven.DeckName)
	}
	if len(res.Deck.Cards) != DeckSize || res.Deck.Cards[0].Name != "Hog Rider" {
		t.Errorf("Expected 8 cards led by Hog Rider, got %v", res.Deck.Names())
	}
	if len(logger.EventsOfType(log.EventProvenMatch)) != 0 {
		t.Error("Expected no proven match lookup")
	}
}

func TestBuildComposesWithoutProvenMatch(t *testing.T) {
	e, logger := testEngine(t)
	res, err := e.Build(e.ParseRequest("Golem, Hog Rider, Miner, Balloon and Sparky"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Deck.Proven != nil {
		t.Errorf("Expected a composed deck, got proven %s", res.Deck.Proven.DeckName)
	}
	want := []string{"Golem", "Hog Rider", "Miner", "Balloon", "Sparky"}
	if got := res.Deck.Names(); len(got) != DeckSize || !equalStrings(got[:5], want) {
		t.Errorf("Expected 8 cards starting with %v, got %v", want, got)
	}
	assertNoDuplicates(t, res.Deck.Cards)
	if len(logger.EventsOfType(log.EventNoProvenMatch)) != 1 {
		t.Error("Expected a no proven match event")
	}
}

func TestBuildPartialMatchKeepsRequestedCards(t *testing.T) {
	e, _ := testEngine(t)
	res, err := e.Build(e.ParseRequest("Hog Rider and Golem"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := res.Deck.Proven
	if p == nil || p.Kind != MatchPartial || p.MatchPercent != 50 {
		t.Fatalf("Expected a 50%% partial match, got %+v", p)
	}
	if p.DeckName != "2.6 Hog Cycle" {
		t.Errorf("Expected 2.6 Hog Cycle, got %s", p.DeckName)
	}
	names := res.Deck.Names()
	if len(names) != DeckSize {
		t.Fatalf("Expected %d cards, got %v", DeckSize, names)
	}
	for _, want := range []string{"Hog Rider", "Golem"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("Expected %s in %v", want, names)
		}
	}
	assertNoDuplicates(t, res.Deck.Cards)
}

func TestBuildSkipsUnknownLibraryCards(t *testing.T) {
	full, library := bundled(t)
	var cards []Card
	for _, c := range full.Cards() {
		if c.Name != "Cannon" {
			cards = append(cards, c)
		}
	}
	catalog := testCatalog(t, cards...)
	logger := log.NewMemoryLogger()
	e, err := NewEngine(catalog, library, WithLogger(logger))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	res, err := e.Build(e.ParseRequest("Hog Rider deck"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Deck.Proven == nil || !equalStrings(res.Deck.Proven.Skipped, []string{"Cannon"}) {
		t.Fatalf("Expected Cannon to be skipped, got %+v", res.Deck.Proven)
	}
	if len(res.Deck.Cards) != DeckSize {
		t.Errorf("Expected the deck topped up to %d, got %v", DeckSize, res.Deck.Names())
	}
	assertNoDuplicates(t, res.Deck.Cards)
	unknown := logger.EventsOfType(log.EventUnknownCard)
	if len(unknown) != 1 || unknown[0].Card != "Cannon" {
		t.Errorf("Expected an unknown card event for Cannon, got %v", unknown)
	}
}

func TestBuildArenaLimit(t *testing.T) {
	e, _ := testEngine(t)
	res, err := e.Build(e.ParseRequest("cycle deck for arena 3"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, c := range res.Deck.Cards {
		if c.Arena > 3 {
			t.Errorf("Expected cards unlocked by arena 3, got %s (arena %d)", c.Name, c.Arena)
		}
	}
}

func TestLibraryForArena(t *testing.T) {
	catalog, library := bundled(t)
	e, err := NewEngine(catalog, library)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	d := e.data.Load()
	if got := d.libraryFor(0); len(got) != library.Len() {
		t.Errorf("Expected all %d decks without a limit, got %d", library.Len(), len(got))
	}

	locked := func(kd KnownDeck, arena int) bool {
		for _, name := range kd.Cards {
			if c, ok := catalog.Lookup(name); ok && c.Arena > arena {
				return true
			}
		}
		return false
	}
	for _, arena := range []int{1, 3, 6} {
		kept := make(map[string]bool)
		for _, kd := range d.libraryFor(arena) {
			kept[kd.Name] = true
			if locked(kd, arena) {
				t.Errorf("arena %d: %s holds a locked card", arena, kd.Name)
			}
		}
		for _, kd := range library.Decks() {
			if !kept[kd.Name] && !locked(kd, arena) {
				t.Errorf("arena %d: %s was dropped but is playable", arena, kd.Name)
			}
		}
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	e, err := NewEngine(testCatalog(t, []Card{}...), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := e.Build(e.ParseRequest("build a deck")); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Expected ErrEmptyCatalog, got %v", err)
	}
}

func TestNewEngineNilCatalog(t *testing.T) {
	if _, err := NewEngine(nil, nil); !errors.Is(err, ErrNilCatalog) {
		t.Errorf("Expected ErrNilCatalog, got %v", err)
	}
}

func TestAnalyzeNames(t *testing.T) {
	e, logger := testEngine(t)
	a, missing := e.AnalyzeNames([]string{"hog rider", "Nope", "Fireball"})
	if !equalStrings(missing, []string{"Nope"}) {
		t.Errorf("Expected missing [Nope], got %v", missing)
	}
	if !equalStrings(a.WinConditions, []string{"Hog Rider"}) {
		t.Errorf("Expected win conditions [Hog Rider], got %v", a.WinConditions)
	}
	if len(logger.EventsOfType(log.EventUnknownCard)) != 1 {
		t.Error("Expected an unknown card event")
	}
}

func TestEngineReload(t *testing.T) {
	e, _ := testEngine(t)
	small := testCatalog(t,
		troop("Knight", 3, RoleTank, TargetGround),
		spell("Zap", 2, TargetBoth),
	)
	if err := e.Reload(small, nil); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if e.Catalog().Len() != 2 || e.Library().Len() != 0 {
		t.Errorf("Expected the new data, got %d cards and %d decks", e.Catalog().Len(), e.Library().Len())
	}
	if got := e.ParseRequest("Hog Rider and Knight").RequestedCards; !equalStrings(got, []string{"Knight"}) {
		t.Errorf("Expected the matcher to follow the new catalog, got %v", got)
	}
	if err := e.Reload(nil, nil); !errors.Is(err, ErrNilCatalog) {
		t.Errorf("Expected ErrNilCatalog, got %v", err)
	}
}
