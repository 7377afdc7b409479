package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/peterkuimelis/crdeck/internal/deck"
)

// --- Tool responses ---

// BuildResponse is the JSON envelope returned by build_deck and
// confirm_corrections.
type BuildResponse struct {
	PendingID   string            `json:"pending_id,omitempty"`
	Prompt      string            `json:"prompt,omitempty"`
	Corrections []deck.Correction `json:"corrections,omitempty"`
	Result      *deck.Result      `json:"result,omitempty"`
}

// AnalyzeResponse is returned by analyze_deck.
type AnalyzeResponse struct {
	Analysis *deck.Analysis `json:"analysis"`
	Missing  []string       `json:"missing,omitempty"`
}

// FindResponse is returned by find_cards.
type FindResponse struct {
	Cards       []deck.Card       `json:"cards"`
	Corrections []deck.Correction `json:"corrections"`
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
