// Package httpx exposes the game engine over a JSON HTTP API. Each game
// lives behind its own mutex; the engine itself does no locking.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"kasupel/internal/game"
	"kasupel/internal/render"
)

// Server wires the HTTP layer to a registry of games.
type Server struct {
	mu       sync.Mutex
	games    map[string]*session
	nextID   int
	defaults game.Config

	log *logrus.Logger

	srvMu sync.Mutex
	srv   *http.Server
}

// session serializes all access to one game.
type session struct {
	mu   sync.Mutex
	game *game.Game
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server. New games inherit the given defaults for any
// configuration field the creation request leaves zero.
func NewServer(defaults game.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		games:    make(map[string]*session),
		defaults: defaults,
		log:      log,
	}
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.WithField("addr", addr).Info("http listening")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// routes configures the ServeMux with the JSON API and the board diagram.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/games", s.withJSON(s.handleCreate))
	mux.HandleFunc("GET /api/games/{id}", s.withJSON(s.handleState))
	mux.HandleFunc("POST /api/games/{id}/move", s.withJSON(s.handleMove))
	mux.HandleFunc("POST /api/games/{id}/resign", s.withJSON(s.handleResign))
	mux.HandleFunc("POST /api/games/{id}/draw-offer", s.withJSON(s.handleDrawOffer))
	mux.HandleFunc("GET /api/games/{id}/board.svg", s.handleBoardSVG)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (s *Server) lookup(r *http.Request) (string, *session, bool) {
	id := r.PathValue("id")
	s.mu.Lock()
	sess, ok := s.games[id]
	s.mu.Unlock()
	return id, sess, ok
}

// ---- API: create ----

type createBody struct {
	Files            int   `json:"files"`
	Ranks            int   `json:"ranks"`
	InitialSeconds   int64 `json:"initialSeconds"`
	IncrementSeconds int64 `json:"incrementSeconds"`
	ExtraSeconds     int64 `json:"extraSeconds"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body createBody
	// An empty body means "use the server defaults".
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	cfg := s.defaults
	if body.Files != 0 {
		cfg.Files = body.Files
	}
	if body.Ranks != 0 {
		cfg.Ranks = body.Ranks
	}
	if body.InitialSeconds != 0 {
		cfg.InitialTime = time.Duration(body.InitialSeconds) * time.Second
	}
	if body.IncrementSeconds != 0 {
		cfg.Increment = time.Duration(body.IncrementSeconds) * time.Second
	}
	if body.ExtraSeconds != 0 {
		cfg.FixedExtraTime = time.Duration(body.ExtraSeconds) * time.Second
	}

	g, err := game.New(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("g%d", s.nextID)
	s.games[id] = &session{game: g}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"game":  id,
		"files": cfg.Files,
		"ranks": cfg.Ranks,
	}).Info("game created")

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{"id": id, "state": g.Snapshot()})
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	sess.mu.Lock()
	sess.game.CheckTimeout()
	state := sess.game.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: move ----

type moveBody struct {
	Side      string `json:"side"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	side, ok := game.ParseColor(body.Side)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid side")
		return
	}
	from, ok := game.ParseSquare(strings.ToLower(strings.TrimSpace(body.From)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid from square")
		return
	}
	to, ok := game.ParseSquare(strings.ToLower(strings.TrimSpace(body.To)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid to square")
		return
	}

	mv := game.Move{From: from, To: to}
	if promotion := strings.TrimSpace(body.Promotion); promotion != "" {
		pt, ok := game.ParsePromotionPiece(promotion)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid promotion choice")
			return
		}
		mv.Promotion = pt
		mv.HasPromotion = true
	}

	sess.mu.Lock()
	result := sess.game.SubmitMove(side, mv)
	sess.mu.Unlock()

	entry := s.log.WithFields(logrus.Fields{
		"game":     id,
		"side":     side.String(),
		"from":     body.From,
		"to":       body.To,
		"accepted": result.Accepted,
	})
	if result.Accepted {
		entry.Info("move committed")
	} else {
		entry.WithField("reason", result.Error).Debug("move rejected")
	}
	if result.Outcome.Terminal() {
		s.log.WithFields(logrus.Fields{
			"game":       id,
			"conclusion": result.Outcome.Conclusion.String(),
		}).Info("game over")
	}

	writeJSON(w, result)
}

// ---- API: resign ----

type sideBody struct {
	Side string `json:"side"`
}

func (s *Server) handleResign(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	side, ok := decodeSide(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	err := sess.game.Resign(side)
	state := sess.game.Snapshot()
	sess.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusConflict, game.ErrorCode(err))
		return
	}
	s.log.WithFields(logrus.Fields{"game": id, "side": side.String()}).Info("resignation")
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: draw offer ----

func (s *Server) handleDrawOffer(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	side, ok := decodeSide(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	err := sess.game.OfferDraw(side)
	state := sess.game.Snapshot()
	sess.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusConflict, game.ErrorCode(err))
		return
	}
	s.log.WithFields(logrus.Fields{"game": id, "side": side.String()}).Info("draw offered")
	writeJSON(w, map[string]any{"state": state})
}

func decodeSide(w http.ResponseWriter, r *http.Request) (game.Color, bool) {
	defer r.Body.Close()
	var body sideBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return 0, false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return 0, false
	}
	side, ok := game.ParseColor(body.Side)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid side")
		return 0, false
	}
	return side, true
}

// ---- board diagram ----

func (s *Server) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	sess.mu.Lock()
	snap := sess.game.Snapshot()
	sess.mu.Unlock()

	applyAPISecurityHeaders(w.Header())
	w.Header().Set("Content-Type", "image/svg+xml")
	render.SVG(w, snap)
}
