package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/crdeck/internal/deck"
	crnet "github.com/peterkuimelis/crdeck/internal/net"
)

// Tools exposes a deck engine as MCP tools. Pending corrections live in the
// store between calls.
type Tools struct {
	engine *deck.Engine
	store  *deck.PendingStore
}

func NewTools(engine *deck.Engine) *Tools {
	return &Tools{engine: engine, store: deck.NewPendingStore(0)}
}

// RegisterTools adds all deck tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(buildDeckTool(), t.handleBuildDeck)
	s.AddTool(confirmCorrectionsTool(), t.handleConfirmCorrections)
	s.AddTool(analyzeDeckTool(), t.handleAnalyzeDeck)
	s.AddTool(findCardsTool(), t.handleFindCards)
	s.AddTool(listKnownDecksTool(), t.handleListKnownDecks)
}

// --- Tool definitions ---

func buildDeckTool() mcp.Tool {
	return mcp.NewTool("build_deck",
		mcp.WithDescription("Build an 8-card Clash Royale deck from a free-text request such as "+
			"'fast cycle deck with Hog Rider'. Returns the deck with its analysis, or a pending_id and prompt "+
			"when misspelled card names were corrected. Answer those with confirm_corrections."),
		mcp.WithString("request", mcp.Required(), mcp.Description("Free-text deck request naming cards and/or a style")),
		mcp.WithBoolean("from_scratch", mcp.Description("Skip the proven-deck library and compose a custom deck")),
	)
}

func confirmCorrectionsTool() mcp.Tool {
	return mcp.NewTool("confirm_corrections",
		mcp.WithDescription("Accept or reject the card-name corrections of a pending build_deck call and build the deck."),
		mcp.WithString("pending_id", mcp.Required(), mcp.Description("pending_id returned by build_deck")),
		mcp.WithBoolean("accept", mcp.Required(), mcp.Description("true to use the corrected cards, false to drop them")),
	)
}

func analyzeDeckTool() mcp.Tool {
	return mcp.NewTool("analyze_deck",
		mcp.WithDescription("Analyze a deck: archetype, synergies, counters, critical problems, warnings and a predicted win rate."),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Comma-separated card names (e.g. 'Hog Rider, Fireball, The Log')")),
	)
}

func findCardsTool() mcp.Tool {
	return mcp.NewTool("find_cards",
		mcp.WithDescription("Find the catalog cards mentioned in free text, with any typo corrections. Read-only."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text that mentions card names")),
	)
}

func listKnownDecksTool() mcp.Tool {
	return mcp.NewTool("list_known_decks",
		mcp.WithDescription("List the proven decks in the library with their win and use rates. Read-only."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleBuildDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := strings.TrimSpace(request.GetString("request", ""))
	if text == "" {
		return mcp.NewToolResultError("request must not be empty"), nil
	}

	req := t.engine.ParseRequest(text)
	if request.GetBool("from_scratch", false) {
		req.FromScratch = true
	}
	p, err := t.engine.ProposeRequest(req)
	if err != nil {
		return buildError(err), nil
	}
	if p.Pending != nil {
		return mcp.NewToolResultText(respondJSON(&BuildResponse{
			PendingID:   t.store.Put(*p.Pending),
			Prompt:      p.Pending.Prompt(),
			Corrections: p.Pending.Corrections(),
		})), nil
	}
	return mcp.NewToolResultText(respondJSON(&BuildResponse{Result: p.Result})), nil
}

func (t *Tools) handleConfirmCorrections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("pending_id", "")
	p, ok := t.store.Take(id)
	if !ok {
		return mcp.NewToolResultErrorf("No pending correction with id %q. Call build_deck first.", id), nil
	}

	res, err := t.engine.Resolve(p, request.GetBool("accept", false))
	if err != nil {
		return buildError(err), nil
	}
	return mcp.NewToolResultText(respondJSON(&BuildResponse{Result: res})), nil
}

func (t *Tools) handleAnalyzeDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := splitNames(request.GetString("cards", ""))
	if len(names) == 0 {
		return mcp.NewToolResultError("cards must list at least one card name"), nil
	}
	if len(names) > deck.DeckSize {
		return mcp.NewToolResultErrorf("A deck holds at most %d cards, got %d.", deck.DeckSize, len(names)), nil
	}

	a, missing := t.engine.AnalyzeNames(names)
	return mcp.NewToolResultText(respondJSON(&AnalyzeResponse{Analysis: a, Missing: missing})), nil
}

func (t *Tools) handleFindCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := t.engine.Matcher().Match(request.GetString("text", ""))
	cards, _ := t.engine.Catalog().Resolve(m.Cards)
	if cards == nil {
		cards = []deck.Card{}
	}
	return mcp.NewToolResultText(respondJSON(&FindResponse{Cards: cards, Corrections: m.Corrections})), nil
}

func (t *Tools) handleListKnownDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decks := t.engine.Library().Decks()
	if decks == nil {
		decks = []deck.KnownDeck{}
	}
	return mcp.NewToolResultText(respondJSON(decks)), nil
}

func buildError(err error) *mcp.CallToolResult {
	if errors.Is(err, deck.ErrInsufficientInput) {
		return mcp.NewToolResultError(crnet.HelpText)
	}
	return mcp.NewToolResultErrorf("Failed to build deck: %v", err)
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
