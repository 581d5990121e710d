// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"knife-arena/internal/relay"
)

var upgrader = websocket.Upgrader{
	// Game clients connect from anywhere; there is nothing to protect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsPeer is a connected client: a relay channel with a session id.
type wsPeer struct {
	id string
	*relay.WSChannel
}

func (p *wsPeer) ID() string { return p.id }

// Server exposes the room manager over HTTP: /ws for clients, /rooms and
// /healthz for operators.
type Server struct {
	manager *Manager
	nextID  atomic.Uint64
	mux     *http.ServeMux
}

func New(manager *Manager) *Server {
	s := &Server{manager: manager, mux: http.NewServeMux()}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/rooms", s.handleRooms)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// Handler returns the HTTP handler of the relay.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Relay listening on %s (ws endpoint: /ws)", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("relay server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("relay shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	peer := &wsPeer{
		id:        fmt.Sprintf("s%d", s.nextID.Add(1)),
		WSChannel: relay.NewWSChannel(conn),
	}
	log.Printf("Client connected: %s", peer.id)

	for msg := range peer.Receive() {
		// Rejections were already answered to the peer.
		_ = s.manager.Handle(peer, msg)
	}

	s.manager.Disconnect(peer)
	peer.Close()
	peer.Wait()
	log.Printf("Client disconnected: %s", peer.id)
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.manager.Rooms()); err != nil {
		log.Printf("WARNING: encode rooms: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
