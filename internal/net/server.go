package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/peterkuimelis/crdeck/internal/deck"
	"golang.org/x/time/rate"
)

// Server hosts deck-building sessions for TCP clients. Each connection gets
// its own session and its own rate limiter.
type Server struct {
	Engine *deck.Engine
	Port   string
	RPS    float64 // requests per second per connection; 0 = unlimited
	Burst  int
}

// Run listens on the configured port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	fmt.Printf("Deck server listening on port %s...\n", s.Port)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		log.Printf("client connected from %s", conn.RemoteAddr())

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-ctx.Done():
					conn.Close()
				case <-done:
				}
			}()
			if err := NewSession(s.Engine, s.limiter()).Serve(ctx, conn); err != nil && ctx.Err() == nil {
				log.Printf("session %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

func (s *Server) limiter() *rate.Limiter {
	if s.RPS <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(s.RPS), max(1, s.Burst))
}
