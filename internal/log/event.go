package log

// EventType enumerates all observable deck-building events.
type EventType int

const (
	EventRequest EventType = iota
	EventExactMatch
	EventCorrection
	EventCatalogDuplicate
	EventCatalogConflict
	EventUnknownCard
	EventProvenMatch
	EventNoProvenMatch
	EventCardPicked
	EventComposeExhausted
	EventDeckBuilt
	EventArchetype
	EventFinding
)

func (e EventType) String() string {
	switch e {
	case EventRequest:
		return "Request"
	case EventExactMatch:
		return "ExactMatch"
	case EventCorrection:
		return "Correction"
	case EventCatalogDuplicate:
		return "CatalogDuplicate"
	case EventCatalogConflict:
		return "CatalogConflict"
	case EventUnknownCard:
		return "UnknownCard"
	case EventProvenMatch:
		return "ProvenMatch"
	case EventNoProvenMatch:
		return "NoProvenMatch"
	case EventCardPicked:
		return "CardPicked"
	case EventComposeExhausted:
		return "ComposeExhausted"
	case EventDeckBuilt:
		return "DeckBuilt"
	case EventArchetype:
		return "Archetype"
	case EventFinding:
		return "Finding"
	default:
		return "Unknown"
	}
}

// Stage names the part of the pipeline that emitted an event.
const (
	StageCatalog = "catalog"
	StageMatch   = "match"
	StageProven  = "proven"
	StageCompose = "compose"
	StageAnalyze = "analyze"
)

// BuildEvent represents a single observable event while building a deck.
type BuildEvent struct {
	Seq     int       // monotonic sequence number
	Stage   string    // pipeline stage (e.g. "compose")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Score   float64   // score attached to the event (picks, proven matches)
	Details string    // human-readable detail string
}
