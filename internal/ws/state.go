// Package ws is the optional operator console: a websocket control channel
// over the control surface, a live frame preview and a diagnostics feed.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/plasmaglow/internal/control"
	diag "github.com/coreman2200/plasmaglow/internal/diagnostics"
)

const (
	writeWait = 200 * time.Millisecond
	// DefaultThrottle caps the preview at about 20 frames per second.
	DefaultThrottle = 50 * time.Millisecond
)

// Controller is the part of the control surface the console drives.
type Controller interface {
	SetScene(n int) error
	NextScene()
	SetBrightness(i int)
	NextBrightness()
	Status() control.Status
}

// State serves the console endpoints. It also implements led.Driver so it can
// sit behind led.Multi and mirror every latched frame to preview clients.
type State struct {
	mu          sync.RWMutex
	ctl         Controller
	pixels      int
	driver      string
	frameID     uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
	diagMu      sync.Mutex
	history     diag.Log
	upgrader    websocket.Upgrader

	// Throttle is the minimum gap between preview frames; 0 sends every frame.
	Throttle time.Duration
	lastEmit time.Time
}

func NewState(ctl Controller, pixels int, driver string) *State {
	return &State{
		ctl:         ctl,
		pixels:      pixels,
		driver:      driver,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		history:     diag.Log{Max: 64},
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Throttle:    DefaultThrottle,
	}
}

// Handler routes /ws (frames), /diag, /control and /health.
func (s *State) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return withCORS(mux)
}

// Serve listens on addr until ctx is done.
func (s *State) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("console listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeClients()
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// Topology goes out before the first frame can.
	s.mu.Lock()
	s.sendTopology(conn)
	s.clients[conn] = true
	s.mu.Unlock()
	go s.drain(conn, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.diagMu.Lock()
	for _, d := range s.history.Items() {
		writeJSON(conn, d)
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	s.diagMu.Unlock()
	go s.drain(conn, s.diagClients)
}

// drain discards client messages until the connection drops.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(set, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	frameID := s.frameID
	s.mu.RUnlock()
	st := s.ctl.Status()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"frame_id":   frameID,
		"uptime_s":   time.Since(s.startTime).Seconds(),
		"pixels":     s.pixels,
		"driver":     s.driver,
		"scene":      st.Scene,
		"brightness": st.Brightness,
	})
}

func (s *State) sendTopology(conn *websocket.Conn) {
	writeJSON(conn, map[string]any{
		"type":   "topology",
		"pixels": s.pixels,
		"driver": s.driver,
	})
}

// Write mirrors a latched frame to preview clients, dropping frames that
// arrive within Throttle of the last one sent.
func (s *State) Write(rgb []byte) error {
	now := time.Now()
	s.mu.Lock()
	s.frameID++
	id := s.frameID
	if len(s.clients) == 0 || now.Sub(s.lastEmit) < s.Throttle {
		s.mu.Unlock()
		return nil
	}
	s.lastEmit = now
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	type frame struct {
		Type    string `json:"type"`
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}
	b, _ := json.Marshal(frame{Type: "frame", T: now.UnixNano(), FrameID: id, RGB: rgb})
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
	return nil
}

// Close drops every console client.
func (s *State) Close() error {
	s.closeClients()
	return nil
}

func (s *State) closeClients() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		c.Close()
	}
	for c := range s.diagClients {
		c.Close()
	}
}

// Push records d and forwards it to diagnostics clients.
func (s *State) Push(d diag.Diagnostic) {
	if d.Time.IsZero() {
		d.Time = time.Now()
	}
	s.diagMu.Lock()
	defer s.diagMu.Unlock()
	s.history.Push(d)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.diagClients {
		writeJSON(c, d)
	}
}

func writeJSON(c *websocket.Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.WriteMessage(websocket.TextMessage, b)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
