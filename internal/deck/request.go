package deck

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/peterkuimelis/crdeck/internal/log"
)

// styleKeywords maps request words to style hints. The first keyword in
// text order wins.
var styleKeywords = map[string]Style{
	"fast":       StyleCycle,
	"cycle":      StyleCycle,
	"quick":      StyleCycle,
	"cheap":      StyleCycle,
	"beatdown":   StyleBeatdown,
	"heavy":      StyleBeatdown,
	"tank":       StyleBeatdown,
	"siege":      StyleSiege,
	"xbow":       StyleSiege,
	"control":    StyleControl,
	"defensive":  StyleControl,
	"defense":    StyleControl,
	"bait":       StyleBait,
	"bridge":     StyleBridgeSpam,
	"spam":       StyleBridgeSpam,
	"aggressive": StyleBridgeSpam,
}

// deckKeywords mark a request as asking for a deck even when it names no
// card and no style.
var deckKeywords = map[string]bool{
	"deck": true, "decks": true, "build": true, "make": true, "create": true,
}

var (
	arenaPattern   = regexp.MustCompile(`\barena\s+(\d+)\b`)
	scratchPattern = regexp.MustCompile(`\b(from scratch|custom|new deck)\b`)
)

// ParseRequest derives a deck request from free text.
func (e *Engine) ParseRequest(text string) DeckRequest {
	req := parseRequest(text, e.Matcher())
	corrected := make(map[string]bool, len(req.Corrections))
	for _, c := range req.Corrections {
		corrected[c.Corrected] = true
		e.logger.Log(log.NewCorrectionEvent(c.Typed, c.Corrected, c.Distance))
	}
	for _, name := range req.RequestedCards {
		if !corrected[name] {
			e.logger.Log(log.NewExactMatchEvent(name))
		}
	}
	return req
}

func parseRequest(text string, m *Matcher) DeckRequest {
	match := m.Match(text)
	req := DeckRequest{
		RawText:        text,
		RequestedCards: match.Cards,
		Corrections:    match.Corrections,
	}

	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for _, w := range words {
		w = strings.Trim(w, "-")
		if req.Style == StyleNone {
			if s, ok := styleKeywords[w]; ok {
				req.Style = s
			} else if w == "x-bow" {
				req.Style = StyleSiege
			}
		}
		if deckKeywords[w] {
			req.wantsDeck = true
		}
	}

	if sub := arenaPattern.FindStringSubmatch(lower); sub != nil {
		if n, err := strconv.Atoi(sub[1]); err == nil {
			req.ArenaLimit = n
		}
	}
	req.FromScratch = scratchPattern.MatchString(lower)
	return req
}

// Sufficient reports whether the request carries enough to build a deck:
// a card, a style hint or an explicit ask for a deck.
func (r DeckRequest) Sufficient() bool {
	return len(r.RequestedCards) > 0 || r.Style != StyleNone || r.wantsDeck || r.FromScratch
}
