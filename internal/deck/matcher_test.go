package deck

import (
	"testing"
)

func bundledMatcher(t *testing.T) *Matcher {
	t.Helper()
	catalog, _ := bundled(t)
	return NewMatcher(catalog, DefaultMatchRatio)
}

func TestMatchExactName(t *testing.T) {
	m := bundledMatcher(t)
	res := m.Match("Hog Rider deck")

	if !equalStrings(res.Cards, []string{"Hog Rider"}) {
		t.Errorf("Expected [Hog Rider], got %v", res.Cards)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("Expected no corrections, got %v", res.Corrections)
	}
}

func TestMatchCorrectsOnlyMisspelledToken(t *testing.T) {
	m := bundledMatcher(t)
	res := m.Match("hog rdier")

	if !equalStrings(res.Cards, []string{"Hog Rider"}) {
		t.Fatalf("Expected [Hog Rider], got %v", res.Cards)
	}
	if len(res.Corrections) != 1 {
		t.Fatalf("Expected 1 correction, got %v", res.Corrections)
	}
	c := res.Corrections[0]
	if c.Typed != "rdier" || c.Corrected != "Hog Rider" {
		t.Errorf("Expected {rdier Hog Rider}, got {%s %s}", c.Typed, c.Corrected)
	}
	if c.Distance != 2 {
		t.Errorf("Expected distance 2, got %d", c.Distance)
	}
}

func TestMatchStopwordsNeverCorrected(t *testing.T) {
	catalog := testCatalog(t,
		troop("Minions", 3, RoleSupport, TargetBoth),
		troop("Knight", 3, RoleTank, TargetGround),
	)
	m := NewMatcher(catalog, DefaultMatchRatio)
	res := m.Match("best deck with mini")

	if len(res.Cards) != 0 || len(res.Corrections) != 0 {
		t.Errorf("Expected no matches, got cards %v corrections %v", res.Cards, res.Corrections)
	}
}

func TestMatchLongestNameFirst(t *testing.T) {
	m := bundledMatcher(t)
	res := m.Match("goblin giant and goblins")

	want := []string{"Goblin Giant", "Goblins"}
	if !equalStrings(res.Cards, want) {
		t.Errorf("Expected %v, got %v", want, res.Cards)
	}
}

func TestMatchFirstMentionOrder(t *testing.T) {
	m := bundledMatcher(t)
	res := m.Match("The Log, Hog Rider and a firebal please")

	want := []string{"The Log", "Hog Rider", "Fireball"}
	if !equalStrings(res.Cards, want) {
		t.Errorf("Expected %v, got %v", want, res.Cards)
	}
	if len(res.Corrections) != 1 || res.Corrections[0].Typed != "firebal" {
		t.Errorf("Expected one correction for firebal, got %v", res.Corrections)
	}
}

func TestMatchIgnoresDots(t *testing.T) {
	m := bundledMatcher(t)
	res := m.Match("mini pekka with P.E.K.K.A")

	want := []string{"Mini P.E.K.K.A", "P.E.K.K.A"}
	if !equalStrings(res.Cards, want) {
		t.Errorf("Expected %v, got %v", want, res.Cards)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("Expected no corrections, got %v", res.Corrections)
	}
}

func TestMatchWordBoundaries(t *testing.T) {
	m := bundledMatcher(t)
	// "zap" inside "zapper" is not a mention.
	res := m.Match("zapper")
	for _, name := range res.Cards {
		if name == "Zap" {
			t.Errorf("Expected Zap not to match inside a longer word, got %v", res.Cards)
		}
	}
}

func TestMatchPartialNameNotExpanded(t *testing.T) {
	m := bundledMatcher(t)
	for _, text := range []string{"rider", "royal", "skeleton"} {
		res := m.Match(text)
		if len(res.Cards) != 0 {
			t.Errorf("Match(%q): expected no cards, got %v", text, res.Cards)
		}
	}
}

func TestMatchShortAndEmptyInput(t *testing.T) {
	m := bundledMatcher(t)
	for _, text := range []string{"", "   ", "a b c", "hi"} {
		res := m.Match(text)
		if len(res.Cards) != 0 || len(res.Corrections) != 0 {
			t.Errorf("Match(%q): expected empty result, got %+v", text, res)
		}
	}
}

func TestMatchTieGoesToCatalogOrder(t *testing.T) {
	catalog := testCatalog(t,
		troop("Abcd", 3, RoleSupport, TargetGround),
		troop("Abce", 3, RoleSupport, TargetGround),
	)
	m := NewMatcher(catalog, DefaultMatchRatio)
	res := m.Match("abcf")

	if !equalStrings(res.Cards, []string{"Abcd"}) {
		t.Errorf("Expected [Abcd], got %v", res.Cards)
	}
}

func TestMatchNoDuplicateFromFuzzyPhase(t *testing.T) {
	m := bundledMatcher(t)
	res := m.Match("hog rider and another hog ridr")

	if !equalStrings(res.Cards, []string{"Hog Rider"}) {
		t.Errorf("Expected [Hog Rider], got %v", res.Cards)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("Expected no corrections for an already matched card, got %v", res.Corrections)
	}
}

func TestMatchDistanceThreshold(t *testing.T) {
	m := bundledMatcher(t)
	tests := []struct {
		text string
		want []string
	}{
		{"balon", []string{}},                // distance 2, limit 1
		{"ballon", []string{"Balloon"}},      // distance 1, limit 1
		{"muskateer", []string{"Musketeer"}}, // distance 1, limit 2
		{"skeleton armee", []string{"Skeleton Army"}},
		{"xyzzyqwerty", []string{}},
	}
	for _, tt := range tests {
		res := m.Match(tt.text)
		if !equalStrings(res.Cards, tt.want) {
			t.Errorf("Match(%q): expected %v, got %v", tt.text, tt.want, res.Cards)
		}
	}
}

func TestNewMatcherClampsRatio(t *testing.T) {
	catalog := testCatalog(t, troop("Knight", 3, RoleTank, TargetGround))
	for _, ratio := range []float64{0, 0.1, 0.5, 1} {
		if got := NewMatcher(catalog, ratio).Ratio(); got != DefaultMatchRatio {
			t.Errorf("NewMatcher(%v): expected ratio %v, got %v", ratio, DefaultMatchRatio, got)
		}
	}
	if got := NewMatcher(catalog, 0.25).Ratio(); got != 0.25 {
		t.Errorf("Expected ratio 0.25 to be kept, got %v", got)
	}
}
