// httpapi/websocket.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/log"
	"github.com/mmp/atctower/sim"
	"github.com/mmp/atctower/util"
)

// wireMessage is the tagged envelope every WebSocket frame carries
// (spec.md §6 "WebSocket outbound messages (tagged JSON): aircraft,
// world, reply, atcreply, points, funds, size").
type wireMessage struct {
	Tag     string `json:"tag"`
	Payload any    `json:"payload"`
}

var upgrader = websocket.Upgrader{EnableCompression: false}

// hub fans out sim.Broadcast values to every connected WebSocket
// client: every observer receives the same tagged JSON stream, unlike
// a per-token routed connection map.
type hub struct {
	lg *log.Logger

	// mu is a util.LoggingMutex rather than a plain sync.Mutex: this map
	// is touched from the HTTP upgrade handler, every connection's reader
	// goroutine, and forward's broadcast loop, and a client that never
	// releases it (a slow Close under load) is exactly the kind of stall
	// LoggingMutex surfaces instead of hanging silently.
	mu      util.LoggingMutex
	clients map[*websocket.Conn]bool
}

func newHub(lg *log.Logger) *hub {
	return &hub{lg: lg, clients: make(map[*websocket.Conn]bool)}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock(h.lg)
	defer h.mu.Unlock(h.lg)
	h.clients[conn] = true
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock(h.lg)
	defer h.mu.Unlock(h.lg)
	delete(h.clients, conn)
	conn.Close()
}

// forward drains broadcast, JSON-encoding each one onto every connected
// client (spec.md §7 taxonomy (e): "I/O errors on broadcast -> log at
// warn, continue" — one client's write error never drops the message
// for the rest).
func (h *hub) forward(ctx context.Context, broadcast <-chan sim.Broadcast) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-broadcast:
			if !ok {
				return
			}
			h.send(b)
		}
	}
}

func (h *hub) send(b sim.Broadcast) {
	data, err := h.encode(b)
	if err != nil {
		return
	}

	h.mu.Lock(h.lg)
	defer h.mu.Unlock(h.lg)
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.lg.Warnf("websocket: write %s: %v", b.Tag, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// sendOne delivers b to a single, just-connected client: the world/
// size/points/funds catch-up a fresh observer needs, rather than
// re-sending full state to every already-caught-up client.
func (h *hub) sendOne(conn *websocket.Conn, b sim.Broadcast) {
	data, err := h.encode(b)
	if err != nil {
		return
	}

	h.mu.Lock(h.lg)
	defer h.mu.Unlock(h.lg)
	if !h.clients[conn] {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.lg.Warnf("websocket: write %s: %v", b.Tag, err)
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *hub) encode(b sim.Broadcast) ([]byte, error) {
	data, err := json.Marshal(wireMessage{Tag: b.Tag, Payload: b.Payload})
	if err != nil {
		h.lg.Warnf("websocket: marshal %s: %v", b.Tag, err)
		return nil, err
	}
	return data, nil
}

// connectSnapshot is the full-state catch-up a newly connected observer
// needs (spec.md §6 "world"/"size" tags): unlike aircraft/points/funds,
// which change every tick and so ride the regular per-tick broadcast,
// world and size are effectively static once the simulation has booted
// and would otherwise never reach a client that connects mid-run.
type connectSnapshot struct {
	world  *av.World
	size   float32
	points av.Points
	funds  int
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.lg.Errorf("websocket upgrade: %v", err)
		return
	}
	s.hub.add(conn)

	snap := s.query(func(world *av.World, game *av.Game) any {
		return connectSnapshot{world: world, size: 2 * world.Radius, points: game.Points, funds: game.Funds}
	}).(connectSnapshot)
	s.hub.sendOne(conn, sim.Broadcast{Tag: "world", Payload: snap.world})
	s.hub.sendOne(conn, sim.Broadcast{Tag: "size", Payload: snap.size})
	s.hub.sendOne(conn, sim.Broadcast{Tag: "points", Payload: snap.points})
	s.hub.sendOne(conn, sim.Broadcast{Tag: "funds", Payload: snap.funds})

	// Observers never send anything meaningful; read and discard until
	// the connection closes so gorilla's control-frame handling (ping/
	// pong/close) keeps running.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
