package deck

import (
	"errors"
	"sync/atomic"

	"github.com/peterkuimelis/crdeck/internal/log"
)

// ErrInsufficientInput is returned when a request names no card, carries no
// style hint and does not ask for a deck.
var ErrInsufficientInput = errors.New("insufficient input: name a card or a deck style")

// Engine ties the catalog, library, matcher, composer and analyzer into the
// build pipeline. It holds no per-request state and is safe for concurrent
// use as long as its logger is.
type Engine struct {
	data   atomic.Pointer[dataset]
	logger log.EventLogger
	ratio  float64
}

// dataset is the data one build runs against. Reload swaps it whole.
type dataset struct {
	catalog *Catalog
	library *Library
	matcher *Matcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the event logger. The default discards events.
func WithLogger(l log.EventLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMatchRatio sets the fuzzy matcher strictness ratio.
func WithMatchRatio(ratio float64) Option {
	return func(e *Engine) {
		e.ratio = ratio
	}
}

// NewEngine creates an engine. A nil library behaves as an empty one.
func NewEngine(catalog *Catalog, library *Library, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	e := &Engine{
		logger: log.NopLogger{},
		ratio:  DefaultMatchRatio,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reload(catalog, library)
	return e, nil
}

// Reload swaps in a new catalog and library. Builds already running finish
// against the data they started with.
func (e *Engine) Reload(catalog *Catalog, library *Library) error {
	if catalog == nil {
		return ErrNilCatalog
	}
	if library == nil {
		library = &Library{}
	}
	e.data.Store(&dataset{
		catalog: catalog,
		library: library,
		matcher: NewMatcher(catalog, e.ratio),
	})
	return nil
}

func (e *Engine) Catalog() *Catalog { return e.data.Load().catalog }
func (e *Engine) Library() *Library { return e.data.Load().library }
func (e *Engine) Matcher() *Matcher { return e.data.Load().matcher }

// Result is the outcome of one build.
type Result struct {
	Request  DeckRequest `json:"request"`
	Deck     Deck        `json:"deck"`
	Analysis *Analysis   `json:"analysis"`
}

// Build produces a deck for the request: the best proven deck when one holds
// the requested cards, otherwise a greedy composition around them.
func (e *Engine) Build(req DeckRequest) (*Result, error) {
	if !req.Sufficient() {
		return nil, ErrInsufficientInput
	}
	e.logger.Log(log.NewRequestEvent(req.RawText, req.RequestedCards, string(req.Style)))

	d := e.data.Load()
	requested, missing := d.catalog.Resolve(req.RequestedCards)
	for _, name := range missing {
		e.logger.Log(log.NewUnknownCardEvent(name, "request"))
	}
	pool := d.catalog.Available(req.ArenaLimit)

	var deck Deck
	if !req.FromScratch && len(requested) > 0 {
		if pm := FindBest(cardNames(requested), d.libraryFor(req.ArenaLimit)); pm != nil {
			e.logger.Log(log.NewProvenMatchEvent(pm.Deck.Name, string(pm.Kind), pm.MatchPercent, pm.Score))
			deck = e.materialize(d.catalog, pm, requested, pool, req.Style)
		} else {
			e.logger.Log(log.NewNoProvenMatchEvent(len(requested)))
		}
	}
	source := "proven"
	if deck.Proven == nil {
		deck.Cards = compose(requested, pool, req.Style, e.logger)
		source = "composed"
	}
	if len(deck.Cards) == 0 {
		return nil, ErrEmptyCatalog
	}
	e.logger.Log(log.NewDeckBuiltEvent(deck.Names(), source))

	return &Result{Request: req, Deck: deck, Analysis: e.analyze(deck.Cards)}, nil
}

// libraryFor returns the known decks playable at the arena limit. Cards
// missing from the catalog do not disqualify a deck; they are skipped later.
func (d *dataset) libraryFor(arena int) []KnownDeck {
	decks := d.library.Decks()
	if arena <= 0 {
		return decks
	}
	var out []KnownDeck
	for _, kd := range decks {
		playable := true
		for _, name := range kd.Cards {
			if c, ok := d.catalog.Lookup(name); ok && c.Arena > arena {
				playable = false
				break
			}
		}
		if playable {
			out = append(out, kd)
		}
	}
	return out
}

// materialize resolves a proven deck against the catalog. Unknown cards are
// skipped and logged; the gaps are filled by the composer.
func (e *Engine) materialize(catalog *Catalog, pm *ProvenMatch, requested, pool []Card, style Style) Deck {
	cards, skipped := catalog.Resolve(pm.Deck.Cards)
	for _, name := range skipped {
		e.logger.Log(log.NewUnknownCardEvent(name, pm.Deck.Name))
	}
	if pm.Kind == MatchPartial {
		// Requested cards the deck lacks still belong in the result.
		cards = mergeCards(cards, requested)
	}
	if len(cards) < DeckSize {
		cards = compose(cards, pool, style, e.logger)
	}
	if len(cards) > DeckSize {
		cards = cards[:DeckSize]
	}
	return Deck{
		Cards: cards,
		Proven: &Provenance{
			DeckName:     pm.Deck.Name,
			Archetype:    pm.Deck.Archetype,
			WinRate:      float64(pm.Deck.WinRate),
			UseRate:      float64(pm.Deck.UseRate),
			Kind:         pm.Kind,
			MatchPercent: pm.MatchPercent,
			Score:        pm.Score,
			Source:       pm.Deck.Source,
			UsedBy:       pm.Deck.UsedBy,
			Skipped:      skipped,
		},
	}
}

// mergeCards appends the extra cards the base lacks. When the result would
// overflow a deck, trailing base cards make room so no extra card is dropped.
func mergeCards(base, extra []Card) []Card {
	have := make(map[string]bool, len(base))
	for _, c := range base {
		have[key(c.Name)] = true
	}
	var missing []Card
	for _, c := range extra {
		if !have[key(c.Name)] {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return base
	}
	keep := max(0, min(len(base), DeckSize-len(missing)))
	return append(append([]Card(nil), base[:keep]...), missing...)
}

func (e *Engine) analyze(cards []Card) *Analysis {
	a := Analyze(cards)
	e.logger.Log(log.NewArchetypeEvent(string(a.Archetype), a.AvgElixir))
	for _, f := range a.Findings() {
		e.logger.Log(log.NewFindingEvent(string(f.Severity), f.Issue))
	}
	return a
}

// AnalyzeNames analyzes the named cards. Names not in the catalog are
// returned in missing and left out of the analysis.
func (e *Engine) AnalyzeNames(names []string) (*Analysis, []string) {
	cards, missing := e.Catalog().Resolve(names)
	for _, name := range missing {
		e.logger.Log(log.NewUnknownCardEvent(name, "analysis"))
	}
	return e.analyze(cards), missing
}

func cardNames(cards []Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	return names
}
