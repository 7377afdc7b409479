package deck

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// PendingCorrection is a parsed request whose fuzzy corrections await a
// yes/no answer. Callers hold it and hand it back to Confirm or Reject.
type PendingCorrection struct {
	Request DeckRequest `json:"request"`
}

// Corrections returns the corrections awaiting confirmation.
func (p PendingCorrection) Corrections() []Correction {
	return p.Request.Corrections
}

// Prompt renders the confirmation question.
func (p PendingCorrection) Prompt() string {
	parts := make([]string, len(p.Request.Corrections))
	for i, c := range p.Request.Corrections {
		parts[i] = fmt.Sprintf("%s (you typed %q)", c.Corrected, c.Typed)
	}
	return "Did you mean " + strings.Join(parts, ", ") + "?"
}

// Proposal is the first step of a build. Exactly one of Pending and Result
// is set.
type Proposal struct {
	Pending *PendingCorrection `json:"pending,omitempty"`
	Result  *Result            `json:"result,omitempty"`
}

// Propose parses text and either builds right away or, when the matcher
// corrected a typo, returns the request for confirmation.
func (e *Engine) Propose(text string) (Proposal, error) {
	return e.ProposeRequest(e.ParseRequest(text))
}

// ProposeRequest is Propose for an already parsed request.
func (e *Engine) ProposeRequest(req DeckRequest) (Proposal, error) {
	if len(req.Corrections) > 0 {
		return Proposal{Pending: &PendingCorrection{Request: req}}, nil
	}
	res, err := e.Build(req)
	if err != nil {
		return Proposal{}, err
	}
	return Proposal{Result: res}, nil
}

// Confirm builds the pending request with its corrections applied.
func (e *Engine) Confirm(p PendingCorrection) (*Result, error) {
	return e.Build(p.Request)
}

// Reject builds the pending request without the corrected cards. The result
// may be ErrInsufficientInput when nothing else was asked for.
func (e *Engine) Reject(p PendingCorrection) (*Result, error) {
	return e.Build(p.Request.WithoutCorrections())
}

// Resolve answers a pending correction.
func (e *Engine) Resolve(p PendingCorrection, accept bool) (*Result, error) {
	if accept {
		return e.Confirm(p)
	}
	return e.Reject(p)
}

// --- Pending store ---

// DefaultPendingLimit bounds a PendingStore created with a limit below one.
const DefaultPendingLimit = 256

// PendingStore holds pending corrections between calls of a stateless
// surface (MCP tools, HTTP API), keyed by a random id. When full, the oldest
// entry is evicted.
type PendingStore struct {
	mu      sync.Mutex
	limit   int
	pending map[string]PendingCorrection
	order   []string // insertion order, for eviction
}

func NewPendingStore(limit int) *PendingStore {
	if limit < 1 {
		limit = DefaultPendingLimit
	}
	return &PendingStore{limit: limit, pending: make(map[string]PendingCorrection)}
}

// Put stores p and returns its id.
func (s *PendingStore) Put(p PendingCorrection) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.pending[id] = p
	s.order = append(s.order, id)
	for len(s.pending) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.pending, oldest)
	}
	return id
}

// Take removes and returns the pending correction with the given id.
func (s *PendingStore) Take(id string) (PendingCorrection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return PendingCorrection{}, false
	}
	delete(s.pending, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
	return p, true
}

// Len returns the number of stored corrections.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
