package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/peterkuimelis/crdeck/internal/deck"
)

// Client connects to a deck server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a REPL client over conn reading user input from in.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect dials a server and runs the REPL on the given terminal streams.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "Connected! Describe the deck you want, \"analyze Card, Card, ...\", or \"quit\".")
	return NewClient(conn, in, out).RunREPL(ctx)
}

// RunREPL reads user lines, sends them to the server and renders replies.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil {
				return nil
			}
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		msg := parseInput(line)
		for {
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("send %s: %w", msg.Type, err)
			}
			var reply ServerMessage
			if err := dec.Decode(&reply); err != nil {
				return fmt.Errorf("read message: %w", err)
			}
			if reply.Type != MsgConfirmCorrections {
				c.render(reply)
				break
			}
			fmt.Fprintf(c.out, "%s (y/n): ", reply.Prompt)
			msg = ClientMessage{Type: MsgYesNo, Answer: c.readYesNo()}
		}
	}
}

// parseInput turns a REPL line into a client message.
func parseInput(line string) ClientMessage {
	lower := strings.ToLower(line)
	switch {
	case lower == "help":
		return ClientMessage{Type: MsgHelp}
	case strings.HasPrefix(lower, "analyze "):
		var cards []string
		for _, name := range strings.Split(line[len("analyze "):], ",") {
			if name = strings.TrimSpace(name); name != "" {
				cards = append(cards, name)
			}
		}
		return ClientMessage{Type: MsgAnalyze, Cards: cards}
	default:
		return ClientMessage{Type: MsgRequest, Text: line}
	}
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case MsgDeck:
		fmt.Fprint(c.out, FormatResult(msg.Result))
	case MsgAnalysis:
		if len(msg.Missing) > 0 {
			fmt.Fprintf(c.out, "Unknown cards: %s\n", strings.Join(msg.Missing, ", "))
		}
		fmt.Fprint(c.out, FormatAnalysis(msg.Analysis))
	case MsgHelp:
		fmt.Fprintln(c.out, msg.Message)
	case MsgError:
		fmt.Fprintf(c.out, "Error: %s\n", msg.Message)
	}
}

func (c *Client) readYesNo() bool {
	for {
		line, err := c.in.ReadString('\n')
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		if err != nil {
			return false
		}
		fmt.Fprint(c.out, "Enter y or n: ")
	}
}

// --- Rendering ---

// FormatResult renders a built deck and its analysis for a terminal.
func FormatResult(res *deck.Result) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n")
	if p := res.Deck.Proven; p != nil {
		fmt.Fprintf(&sb, "Proven deck: %s (%.1f%% win rate, %s match %d%%)\n",
			p.DeckName, p.WinRate, p.Kind, p.MatchPercent)
		if len(p.Skipped) > 0 {
			fmt.Fprintf(&sb, "  skipped unknown cards: %s\n", strings.Join(p.Skipped, ", "))
		}
	} else {
		sb.WriteString("Custom deck\n")
	}
	for i, c := range res.Deck.Cards {
		fmt.Fprintf(&sb, "  %d) %-20s %2d  %s\n", i+1, c.Name, c.Elixir, c.Role)
	}
	sb.WriteString(FormatAnalysis(res.Analysis))
	return sb.String()
}

// FormatAnalysis renders an analysis report for a terminal.
func FormatAnalysis(a *deck.Analysis) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Archetype: %s | Avg elixir: %.1f | Predicted win rate: %d%%\n",
		a.Archetype, a.AvgElixir, a.PredictedWinRate)
	for _, f := range a.Findings() {
		marker := "!"
		if f.Severity == deck.SeverityCritical {
			marker = "X"
		}
		fmt.Fprintf(&sb, "  [%s] %s: %s Fix: %s\n", marker, f.Issue, f.Description, f.Fix)
	}
	if a.Strategy != "" {
		fmt.Fprintf(&sb, "Strategy: %s\n", a.Strategy)
	}
	return sb.String()
}
