package net

import "github.com/peterkuimelis/crdeck/internal/deck"

// Message types for the newline-delimited JSON protocol over TCP. The web
// server's WebSocket chat speaks the same messages.

const (
	// Client → server
	MsgRequest = "request"
	MsgYesNo   = "yes_no"
	MsgAnalyze = "analyze"
	MsgHelp    = "help"

	// Server → client
	MsgConfirmCorrections = "confirm_corrections"
	MsgDeck               = "deck"
	MsgAnalysis           = "analysis"
	MsgError              = "error"
)

// HelpText is sent when a request carries nothing to build from.
const HelpText = "Please describe what kind of deck you want! Name a card (\"Hog Rider\") " +
	"or a style (cycle, beatdown, siege, control, bait, bridge spam)."

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "confirm_corrections"
	Prompt      string            `json:"prompt,omitempty"`
	Corrections []deck.Correction `json:"corrections,omitempty"`

	// For "deck"
	Result *deck.Result `json:"result,omitempty"`

	// For "analysis"
	Analysis *deck.Analysis `json:"analysis,omitempty"`
	Missing  []string       `json:"missing,omitempty"`

	// For "help" and "error"
	Message string `json:"message,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "request"
	Text string `json:"text,omitempty"`

	// For "yes_no"
	Answer bool `json:"answer,omitempty"`

	// For "analyze"
	Cards []string `json:"cards,omitempty"`
}
