package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging build events. Implementations
// must be safe for concurrent use; one engine serves many sessions.
type EventLogger interface {
	Log(event BuildEvent)
}

// --- NopLogger: discards everything ---

type NopLogger struct{}

func (NopLogger) Log(BuildEvent) {}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []BuildEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event BuildEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

// Events returns a copy of every logged event.
func (l *MemoryLogger) Events() []BuildEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]BuildEvent(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []BuildEvent {
	var result []BuildEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() BuildEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return BuildEvent{}
	}
	return l.events[len(l.events)-1]
}

// Reset drops all stored events.
func (l *MemoryLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	l.seq = 0
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

// TextLogger does not retain events, so it can back long-running servers.
type TextLogger struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event BuildEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e BuildEvent) string {
	stage := e.Stage
	// Pad stage to 8 chars for alignment
	for len(stage) < 8 {
		stage += " "
	}
	return fmt.Sprintf("#%-3d %s| %s", e.Seq, stage, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []BuildEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewRequestEvent(text string, cards []string, style string) BuildEvent {
	details := fmt.Sprintf("request %q → %d card(s)", text, len(cards))
	if len(cards) > 0 {
		details += ": " + strings.Join(cards, ", ")
	}
	if style != "" {
		details += fmt.Sprintf(" [style %s]", style)
	}
	return BuildEvent{
		Stage:   StageMatch,
		Type:    EventRequest,
		Details: details,
	}
}

func NewExactMatchEvent(cardName string) BuildEvent {
	return BuildEvent{
		Stage:   StageMatch,
		Type:    EventExactMatch,
		Card:    cardName,
		Details: fmt.Sprintf("matched %s", cardName),
	}
}

func NewCorrectionEvent(typed, cardName string, distance int) BuildEvent {
	return BuildEvent{
		Stage:   StageMatch,
		Type:    EventCorrection,
		Card:    cardName,
		Score:   float64(distance),
		Details: fmt.Sprintf("corrected %q → %s (distance %d)", typed, cardName, distance),
	}
}

func NewCatalogDuplicateEvent(cardName string, conflicting bool) BuildEvent {
	if conflicting {
		return BuildEvent{
			Stage:   StageCatalog,
			Type:    EventCatalogConflict,
			Card:    cardName,
			Details: fmt.Sprintf("duplicate %s with conflicting fields dropped; first record kept", cardName),
		}
	}
	return BuildEvent{
		Stage:   StageCatalog,
		Type:    EventCatalogDuplicate,
		Card:    cardName,
		Details: fmt.Sprintf("duplicate %s dropped", cardName),
	}
}

func NewUnknownCardEvent(cardName, deckName string) BuildEvent {
	return BuildEvent{
		Stage:   StageProven,
		Type:    EventUnknownCard,
		Card:    cardName,
		Details: fmt.Sprintf("%s lists unknown card %q; skipped", deckName, cardName),
	}
}

func NewProvenMatchEvent(deckName, kind string, matchPercent int, score float64) BuildEvent {
	return BuildEvent{
		Stage:   StageProven,
		Type:    EventProvenMatch,
		Score:   score,
		Details: fmt.Sprintf("%s match: %s (%d%% of request, score %.2f)", kind, deckName, matchPercent, score),
	}
}

func NewNoProvenMatchEvent(requested int) BuildEvent {
	return BuildEvent{
		Stage:   StageProven,
		Type:    EventNoProvenMatch,
		Details: fmt.Sprintf("no proven deck holds the %d requested card(s)", requested),
	}
}

func NewCardPickedEvent(cardName string, slot int, score float64) BuildEvent {
	return BuildEvent{
		Stage:   StageCompose,
		Type:    EventCardPicked,
		Card:    cardName,
		Score:   score,
		Details: fmt.Sprintf("slot %d ← %s (score %.0f)", slot, cardName, score),
	}
}

func NewComposeExhaustedEvent(size int) BuildEvent {
	return BuildEvent{
		Stage:   StageCompose,
		Type:    EventComposeExhausted,
		Details: fmt.Sprintf("candidates exhausted at %d card(s)", size),
	}
}

func NewDeckBuiltEvent(cards []string, source string) BuildEvent {
	return BuildEvent{
		Stage:   StageCompose,
		Type:    EventDeckBuilt,
		Details: fmt.Sprintf("deck (%s): %s", source, strings.Join(cards, ", ")),
	}
}

func NewArchetypeEvent(archetype string, avgElixir float64) BuildEvent {
	return BuildEvent{
		Stage:   StageAnalyze,
		Type:    EventArchetype,
		Details: fmt.Sprintf("archetype %s (avg elixir %.1f)", archetype, avgElixir),
	}
}

func NewFindingEvent(severity, issue string) BuildEvent {
	return BuildEvent{
		Stage:   StageAnalyze,
		Type:    EventFinding,
		Details: fmt.Sprintf("%s: %s", severity, issue),
	}
}
