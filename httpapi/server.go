// httpapi/server.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package httpapi is the external collaborator spec.md §6 describes:
// the HTTP API and the WebSocket outbound broadcaster. It never touches
// *av.World or *av.Game directly — every read goes through sim.Query
// and every write through sim.Command, both of which execute on the
// Loop's own goroutine (spec.md §5 "Shared resources"). Grounded on the
// teacher's server/http.go mux.HandleFunc registration style, simplified
// to drop the desktop-client/TTS/STT/pprof concerns that package also
// carries (none of which this server-side simulator needs).
package httpapi

import (
	"context"
	"net/http"
	"time"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/log"
	"github.com/mmp/atctower/msgring"
	"github.com/mmp/atctower/sim"
)

// Server wires spec.md §6's HTTP API and WebSocket broadcaster to a
// running sim.Loop.
type Server struct {
	loop *sim.Loop
	ring *msgring.Ring
	tts  msgring.Provider
	lg   *log.Logger
	http *http.Server
	hub  *hub
}

// NewServer builds a Server ready to ListenAndServe. ring is the bounded
// recent-message history backing GET /messages; tts may be nil (no
// voice synthesis configured).
func NewServer(addr string, loop *sim.Loop, ring *msgring.Ring, tts msgring.Provider, lg *log.Logger) *Server {
	s := &Server{
		loop: loop,
		ring: ring,
		tts:  tts,
		lg:   lg,
		hub:  newHub(lg),
	}
	mux := http.NewServeMux()
	s.routes(mux)
	s.http = &http.Server{Addr: addr, Handler: mux}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/ping", s.handlePing)
	mux.HandleFunc("/api/pause", s.handlePause)
	mux.HandleFunc("/api/world", s.handleWorld)
	mux.HandleFunc("/api/messages", s.handleMessages)
	mux.HandleFunc("/api/game/points", s.handlePoints)
	mux.HandleFunc("/api/game/aircraft", s.handleAircraftList)
	mux.HandleFunc("/api/game/aircraft/", s.handleAircraftOne)
	mux.HandleFunc("/api/flights", s.handleFlights)
	mux.HandleFunc("/api/flights/", s.handleFlightOne)
	mux.HandleFunc("/api/comms/text", s.handleCommsText)
	mux.HandleFunc("/api/comms/voice", s.handleCommsVoice)
	mux.HandleFunc("/ws", s.handleWebSocket)
}

// ListenAndServe runs the HTTP server and the broadcast-forwarding
// goroutine until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.hub.forward(ctx, s.loop.Broadcast)

	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// query runs fn on the loop's own goroutine and returns its result,
// per spec.md §5's "Inbound query channel".
func (s *Server) query(fn func(world *av.World, game *av.Game) any) any {
	reply := make(chan any, 1)
	s.loop.Queries <- sim.Query{Run: fn, Reply: reply}
	return <-reply
}

// command hands a controller instruction to the loop (spec.md §5's
// "Inbound command channel") and waits for it to be drained. It does not
// wait for the instruction to take effect, only for the tick loop to
// have picked it up (spec.md §5 "Ordering guarantees").
func (s *Server) command(cmd sim.CommandWithFreq) {
	ack := make(chan struct{})
	s.loop.Commands <- sim.Command{Cmd: cmd, Ack: ack}
	<-ack
}
