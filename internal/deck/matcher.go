package deck

import (
	"bytes"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMatchRatio is the share of a mention's length that may be edited
// for a fuzzy match to be accepted.
const DefaultMatchRatio = 0.3

const (
	minMatchRatio = 0.25
	maxMatchRatio = 0.30
	minFuzzyLen   = 4
	maskByte      = 0x00
)

// stopwords never trigger a fuzzy correction, even when they sit within edit
// distance of a card name ("mini" vs "Minions").
var stopwords = map[string]bool{
	"with": true, "deck": true, "best": true, "mini": true, "good": true,
	"great": true, "make": true, "build": true, "give": true, "want": true,
	"need": true, "some": true, "that": true, "this": true, "from": true,
	"have": true, "using": true, "cards": true, "card": true, "please": true,
	"fast": true, "cycle": true, "heavy": true, "beatdown": true, "control": true,
	"siege": true, "bait": true, "bridge": true, "spam": true, "cheap": true,
	"quick": true, "arena": true, "meta": true, "strong": true, "defensive": true,
	"defense": true, "aggressive": true, "scratch": true, "custom": true,
	"about": true, "what": true, "which": true, "tank": true, "around": true,
	"elixir": true, "counter": true, "play": true, "spell": true, "spells": true,
	"building": true, "win": true, "condition": true,
}

// MatchResult is the outcome of scanning free text for card mentions.
type MatchResult struct {
	Cards       []string     `json:"cards"`
	Corrections []Correction `json:"corrections"`
}

type nameEntry struct {
	name  string
	norm  string
	words []string
}

// Matcher finds catalog cards mentioned in free text, correcting typos by
// edit distance. It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	ratio     float64
	entries   []nameEntry // catalog order
	byLength  []int       // entries indices, longest normalized name first
	nameWords map[string]bool
	maxWords  int
}

// NewMatcher prepares a matcher over the catalog. A ratio outside
// [0.25, 0.30] falls back to DefaultMatchRatio.
func NewMatcher(catalog *Catalog, ratio float64) *Matcher {
	if ratio < minMatchRatio || ratio > maxMatchRatio {
		ratio = DefaultMatchRatio
	}
	m := &Matcher{ratio: ratio, nameWords: make(map[string]bool)}
	for _, card := range catalog.cards {
		norm := normalizeText(card.Name)
		if norm == "" {
			continue
		}
		e := nameEntry{name: card.Name, norm: norm, words: strings.Fields(norm)}
		if len(e.words) > 1 {
			for _, w := range e.words {
				m.nameWords[w] = true
			}
		}
		m.maxWords = max(m.maxWords, len(e.words))
		m.entries = append(m.entries, e)
	}
	m.byLength = make([]int, len(m.entries))
	for i := range m.byLength {
		m.byLength[i] = i
	}
	sort.SliceStable(m.byLength, func(a, b int) bool {
		return len(m.entries[m.byLength[a]].norm) > len(m.entries[m.byLength[b]].norm)
	})
	return m
}

// Ratio returns the strictness ratio in use.
func (m *Matcher) Ratio() float64 {
	return m.ratio
}

// normalizeText lower-cases s and drops dots so "P.E.K.K.A" reads as "pekka".
func normalizeText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), ".", ""))
}

type hit struct {
	pos  int
	name string
}

type token struct {
	text    string
	pos     int
	segment int
}

// Match returns the cards mentioned in text, in first-mention order, plus
// every fuzzy correction that was applied.
func (m *Matcher) Match(text string) MatchResult {
	res := MatchResult{Cards: []string{}, Corrections: []Correction{}}
	norm := normalizeText(text)
	if norm == "" || len(m.entries) == 0 {
		return res
	}

	buf := []byte(norm)
	var hits []hit
	found := make(map[string]bool)

	// Exact phase: longest names first, consuming each matched span.
	for _, idx := range m.byLength {
		e := m.entries[idx]
		needle := []byte(e.norm)
		from := 0
		for {
			i := bytes.Index(buf[from:], needle)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(needle)
			from = start + 1
			if !boundaryAt(buf, start-1) || !boundaryAt(buf, end) {
				continue
			}
			if !found[e.name] {
				found[e.name] = true
				hits = append(hits, hit{pos: start, name: e.name})
			}
			for j := start; j < end; j++ {
				buf[j] = maskByte
			}
			from = end
		}
	}

	// Fuzzy phase over windows of adjacent unconsumed tokens.
	tokens := tokenize(buf)
	for i := 0; i < len(tokens); {
		accepted := 0
		for w := min(m.maxWords, len(tokens)-i); w >= 1; w-- {
			window := tokens[i : i+w]
			if window[w-1].segment != window[0].segment || !m.eligible(window) {
				continue
			}
			name, typed, dist, ok := m.closest(window)
			if !ok || found[name] {
				continue
			}
			found[name] = true
			hits = append(hits, hit{pos: window[0].pos, name: name})
			if dist > 0 {
				res.Corrections = append(res.Corrections, Correction{Typed: typed, Corrected: name, Distance: dist})
			}
			accepted = w
			break
		}
		if accepted == 0 {
			accepted = 1
		}
		i += accepted
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].pos < hits[b].pos })
	for _, h := range hits {
		res.Cards = append(res.Cards, h.name)
	}
	return res
}

// eligible applies the short-token, stopword and partial-name rules.
func (m *Matcher) eligible(window []token) bool {
	if len(window) == 1 {
		t := window[0].text
		if utf8.RuneCountInString(t) < minFuzzyLen || stopwords[t] {
			return false
		}
		// A whole word of a multi-word name ("rider", "mini") is ambiguous
		// on its own and is never expanded to a card.
		return !m.nameWords[t]
	}
	for _, t := range window {
		if stopwords[t.text] {
			return false
		}
	}
	return true
}

// closest finds the nearest catalog name to the window. Distance ties keep
// the earliest catalog entry. A zero distance means the window spells the
// name exactly.
func (m *Matcher) closest(window []token) (name, typed string, dist int, ok bool) {
	parts := make([]string, len(window))
	for i, t := range window {
		parts[i] = t.text
	}
	phrase := strings.Join(parts, " ")

	best, bestDist := -1, math.MaxInt
	for i, e := range m.entries {
		if e.norm == phrase {
			return e.name, phrase, 0, true
		}
		if d := levenshtein.ComputeDistance(phrase, e.norm); d < bestDist {
			best, bestDist = i, d
		}
	}
	limit := int(math.Floor(float64(utf8.RuneCountInString(phrase)) * m.ratio))
	if best < 0 || bestDist > limit {
		return "", "", 0, false
	}

	e := m.entries[best]
	var misspelled []string
	for _, p := range parts {
		if !containsString(e.words, p) {
			misspelled = append(misspelled, p)
		}
	}
	typed = phrase
	if len(misspelled) > 0 {
		typed = strings.Join(misspelled, " ")
	}
	return e.name, typed, bestDist, true
}

// boundaryAt reports whether position i is outside a word: the text edge,
// a consumed span, or a non-alphanumeric byte.
func boundaryAt(buf []byte, i int) bool {
	if i < 0 || i >= len(buf) {
		return true
	}
	b := buf[i]
	if b == maskByte {
		return true
	}
	if b >= utf8.RuneSelf {
		return false
	}
	return !(b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9')
}

// tokenize splits the masked text into whitespace tokens. Consumed spans
// start a new segment so windows never bridge an exact match.
func tokenize(buf []byte) []token {
	var tokens []token
	segment := 0
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := string(buf[start:end])
		trimmed := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if trimmed != "" {
			offset := strings.Index(raw, trimmed)
			tokens = append(tokens, token{text: trimmed, pos: start + offset, segment: segment})
		}
		start = -1
	}
	for i, b := range buf {
		switch {
		case b == maskByte:
			flush(i)
			if len(tokens) > 0 && tokens[len(tokens)-1].segment == segment {
				segment++
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(buf))
	return tokens
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
