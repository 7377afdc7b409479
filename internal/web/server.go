package web

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/peterkuimelis/crdeck/internal/deck"
	crnet "github.com/peterkuimelis/crdeck/internal/net"
	"golang.org/x/time/rate"
)

//go:embed static
var staticFiles embed.FS

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 64 << 10

// Options configures a Server.
type Options struct {
	StaticDir string  // serve the page from disk instead of the embedded copy
	RPS       float64 // POST requests per second; 0 = unlimited
	Burst     int
}

// Server is the crdeck HTTP API and chat page.
type Server struct {
	engine  *deck.Engine
	store   *deck.PendingStore
	limiter *rate.Limiter // shared by POST endpoints; nil = unlimited
	opts    Options
	mux     *http.ServeMux
}

// NewServer creates a new web server on the engine.
func NewServer(engine *deck.Engine, opts Options) *Server {
	s := &Server{
		engine: engine,
		store:  deck.NewPendingStore(0),
		opts:   opts,
		mux:    http.NewServeMux(),
	}
	if opts.RPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RPS), max(1, opts.Burst))
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")
	if s.opts.StaticDir != "" {
		staticFS = os.DirFS(s.opts.StaticDir)
	}

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.Copy(w, f)
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/build", s.limited(s.handleBuild))
	s.mux.HandleFunc("POST /api/confirm", s.limited(s.handleConfirm))
	s.mux.HandleFunc("POST /api/analyze", s.limited(s.handleAnalyze))
	s.mux.HandleFunc("GET /api/chart", s.handleChart)

	// WebSocket chat
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// limited rejects requests beyond the configured rate with 429.
func (s *Server) limited(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, slow down")
			return
		}
		h(w, r)
	}
}

// --- API types ---

// BuildRequest is the body of POST /api/build.
type BuildRequest struct {
	Text        string `json:"text"`
	FromScratch bool   `json:"from_scratch"`
}

// ConfirmRequest is the body of POST /api/confirm.
type ConfirmRequest struct {
	PendingID string `json:"pending_id"`
	Accept    bool   `json:"accept"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Cards []string `json:"cards"`
}

// BuildResponse is returned by /api/build and /api/confirm. A build waiting
// on corrections carries PendingID and is sent with 202 Accepted.
type BuildResponse struct {
	PendingID   string            `json:"pending_id,omitempty"`
	Prompt      string            `json:"prompt,omitempty"`
	Corrections []deck.Correction `json:"corrections,omitempty"`
	Result      *deck.Result      `json:"result,omitempty"`
}

// AnalyzeResponse is returned by /api/analyze.
type AnalyzeResponse struct {
	Analysis *deck.Analysis `json:"analysis"`
	Missing  []string       `json:"missing,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Handlers ---

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	arena := 0
	if v := r.URL.Query().Get("arena"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "arena must be a non-negative integer")
			return
		}
		arena = n
	}
	cards := s.engine.Catalog().Available(arena)
	if cards == nil {
		cards = []deck.Card{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := s.engine.Library().Decks()
	if decks == nil {
		decks = []deck.KnownDeck{}
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var body BuildRequest
	if !readJSON(w, r, &body) {
		return
	}

	req := s.engine.ParseRequest(body.Text)
	if body.FromScratch {
		req.FromScratch = true
	}
	p, err := s.engine.ProposeRequest(req)
	if err != nil {
		writeBuildError(w, err)
		return
	}
	if p.Pending != nil {
		writeJSON(w, http.StatusAccepted, &BuildResponse{
			PendingID:   s.store.Put(*p.Pending),
			Prompt:      p.Pending.Prompt(),
			Corrections: p.Pending.Corrections(),
		})
		return
	}
	writeJSON(w, http.StatusOK, &BuildResponse{Result: p.Result})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var body ConfirmRequest
	if !readJSON(w, r, &body) {
		return
	}
	p, ok := s.store.Take(body.PendingID)
	if !ok {
		writeError(w, http.StatusNotFound, "no pending correction with that id")
		return
	}
	res, err := s.engine.Resolve(p, body.Accept)
	if err != nil {
		writeBuildError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &BuildResponse{Result: res})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if !readJSON(w, r, &body) {
		return
	}
	if len(body.Cards) == 0 || len(body.Cards) > deck.DeckSize {
		writeError(w, http.StatusBadRequest, "cards must list 1 to 8 card names")
		return
	}
	a, missing := s.engine.AnalyzeNames(body.Cards)
	writeJSON(w, http.StatusOK, &AnalyzeResponse{Analysis: a, Missing: missing})
}

// handleWebSocket runs a chat session speaking the TCP protocol messages.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	var limiter *rate.Limiter
	if s.opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.opts.RPS), max(1, s.opts.Burst))
	}
	session := crnet.NewSession(s.engine, limiter)

	for {
		var msg crnet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, io.EOF) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		if err := wsjson.Write(ctx, wsConn, session.Handle(msg)); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

// --- JSON helpers ---

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeBuildError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deck.ErrInsufficientInput):
		writeError(w, http.StatusBadRequest, crnet.HelpText)
	case errors.Is(err, deck.ErrEmptyCatalog):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
