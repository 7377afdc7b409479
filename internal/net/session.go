package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/peterkuimelis/crdeck/internal/deck"
	"golang.org/x/time/rate"
)

// Session is one client conversation. It holds at most one pending
// correction; a new request while a confirmation is pending replaces it.
type Session struct {
	engine  *deck.Engine
	limiter *rate.Limiter // nil = unlimited

	mu      sync.Mutex
	pending *deck.PendingCorrection
}

// NewSession creates a session on the engine. A nil limiter disables
// throttling.
func NewSession(engine *deck.Engine, limiter *rate.Limiter) *Session {
	return &Session{engine: engine, limiter: limiter}
}

// Pending returns the correction awaiting an answer, if any.
func (s *Session) Pending() *deck.PendingCorrection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Handle answers one client message.
func (s *Session) Handle(msg ClientMessage) ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case MsgRequest:
		if !s.allow() {
			return errorMessage("rate limit exceeded, slow down")
		}
		s.pending = nil
		p, err := s.engine.Propose(msg.Text)
		if err != nil {
			return buildError(err)
		}
		if p.Pending != nil {
			s.pending = p.Pending
			return ServerMessage{
				Type:        MsgConfirmCorrections,
				Prompt:      p.Pending.Prompt(),
				Corrections: p.Pending.Corrections(),
			}
		}
		return ServerMessage{Type: MsgDeck, Result: p.Result}

	case MsgYesNo:
		if s.pending == nil {
			return errorMessage("no correction is waiting for an answer")
		}
		// A throttled answer leaves the correction pending for a retry.
		if !s.allow() {
			return errorMessage("rate limit exceeded, slow down")
		}
		p := *s.pending
		s.pending = nil
		res, err := s.engine.Resolve(p, msg.Answer)
		if err != nil {
			return buildError(err)
		}
		return ServerMessage{Type: MsgDeck, Result: res}

	case MsgAnalyze:
		if !s.allow() {
			return errorMessage("rate limit exceeded, slow down")
		}
		if len(msg.Cards) == 0 {
			return errorMessage("analyze needs at least one card name")
		}
		a, missing := s.engine.AnalyzeNames(msg.Cards)
		return ServerMessage{Type: MsgAnalysis, Analysis: a, Missing: missing}

	case MsgHelp:
		return ServerMessage{Type: MsgHelp, Message: HelpText}

	default:
		return errorMessage(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *Session) allow() bool {
	return s.limiter == nil || s.limiter.Allow()
}

// Serve reads client messages from rw and writes one reply per message until
// the peer disconnects or ctx is cancelled.
func (s *Session) Serve(ctx context.Context, rw io.ReadWriter) error {
	dec := json.NewDecoder(rw)
	enc := json.NewEncoder(rw)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if err := enc.Encode(s.Handle(msg)); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
}

func buildError(err error) ServerMessage {
	if errors.Is(err, deck.ErrInsufficientInput) {
		return ServerMessage{Type: MsgHelp, Message: HelpText}
	}
	return errorMessage(err.Error())
}

func errorMessage(text string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: text}
}
