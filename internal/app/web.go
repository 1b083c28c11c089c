// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/joystick_rc/internal/drive"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

const wsWriteTimeout = time.Second

// StatusServer exposes the receiver's actuation status over HTTP and pushes
// every change to connected websocket clients.
type StatusServer struct {
	rx *drive.Receiver

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewStatusServer registers itself as the change listener of rx.
func NewStatusServer(rx *drive.Receiver) *StatusServer {
	s := &StatusServer{
		rx:      rx,
		clients: make(map[*websocket.Conn]struct{}),
	}
	rx.OnChange(s.broadcast)
	return s
}

// Routes returns the server's handler.
func (s *StatusServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/actuation", s.handleActuation)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *StatusServer) handleActuation(w http.ResponseWriter, r *http.Request) {
	st := s.rx.Status()
	if !st.Active {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

func (s *StatusServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	err = s.write(conn, s.rx.Status())
	s.mu.Unlock()
	if err != nil {
		s.drop(conn)
		return
	}

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: websocket error: %v", err)
			}
			break
		}
	}
	s.drop(conn)
}

func (s *StatusServer) broadcast(st drive.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := s.write(conn, st); err != nil {
			log.Debugf("web: dropping client %s: %v", conn.RemoteAddr(), err)
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

// write must be called with s.mu held.
func (s *StatusServer) write(conn *websocket.Conn, st drive.Status) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(st)
}

func (s *StatusServer) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
}
