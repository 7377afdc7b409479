package deck

import (
	"math"
	"sort"
)

// Scoring weights for the two proven-deck passes. The partial pass leans on
// coverage because the match is already imperfect.
const (
	fullWinWeight   = 0.7
	fullUseWeight   = 0.2
	fullMatchWeight = 0.1

	partialWinWeight   = 0.6
	partialUseWeight   = 0.15
	partialMatchWeight = 0.25

	// partialMaxRequested is the largest request that may fall back to a
	// partial match.
	partialMaxRequested = 4
)

// ProvenMatch is the best known deck for a request.
type ProvenMatch struct {
	Deck         KnownDeck `json:"deck"`
	Kind         MatchKind `json:"kind"`
	MatchPercent int       `json:"match_percent"`
	Score        float64   `json:"score"`
	Matched      []string  `json:"matched"` // requested cards the deck holds
}

type provenCandidate struct {
	deck    KnownDeck
	pct     float64
	score   float64
	matched []string
}

// FindBest returns the highest scoring known deck holding the requested
// cards, or nil when no deck qualifies. Decks holding every requested card
// always win over partial matches; ties keep library order.
func FindBest(requested []string, library []KnownDeck) *ProvenMatch {
	requested = uniqueNames(requested)
	if len(requested) == 0 || len(library) == 0 {
		return nil
	}

	var full []provenCandidate
	for _, d := range library {
		matched := matchedCards(requested, d)
		if len(matched) != len(requested) || len(d.Cards) == 0 {
			continue
		}
		pct := float64(len(requested)) / float64(len(d.Cards)) * 100
		full = append(full, provenCandidate{
			deck:    d,
			pct:     pct,
			score:   fullWinWeight*float64(d.WinRate) + fullUseWeight*float64(d.UseRate) + fullMatchWeight*pct,
			matched: matched,
		})
	}
	if best := topCandidate(full); best != nil {
		return best.toMatch(MatchFull)
	}

	if len(requested) > partialMaxRequested {
		return nil
	}
	var partial []provenCandidate
	for _, d := range library {
		matched := matchedCards(requested, d)
		// Coverage of at least half: 2*matched >= requested avoids float rounding.
		if len(matched) == 0 || 2*len(matched) < len(requested) {
			continue
		}
		pct := float64(len(matched)) / float64(len(requested)) * 100
		partial = append(partial, provenCandidate{
			deck:    d,
			pct:     pct,
			score:   partialWinWeight*float64(d.WinRate) + partialUseWeight*float64(d.UseRate) + partialMatchWeight*pct,
			matched: matched,
		})
	}
	if best := topCandidate(partial); best != nil {
		return best.toMatch(MatchPartial)
	}
	return nil
}

// matchedCards returns the requested names the deck holds, in request order.
func matchedCards(requested []string, d KnownDeck) []string {
	var matched []string
	for _, name := range requested {
		if d.contains(name) {
			matched = append(matched, name)
		}
	}
	return matched
}

// uniqueNames drops blank and repeated names, ignoring case.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		k := key(name)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, name)
	}
	return out
}

func topCandidate(cands []provenCandidate) *provenCandidate {
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	return &cands[0]
}

func (c *provenCandidate) toMatch(kind MatchKind) *ProvenMatch {
	return &ProvenMatch{
		Deck:         c.deck,
		Kind:         kind,
		MatchPercent: int(math.Round(c.pct)),
		Score:        c.score,
		Matched:      c.matched,
	}
}
