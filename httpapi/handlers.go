// httpapi/handlers.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/msgring"
	"github.com/mmp/atctower/parser"
	"github.com/mmp/atctower/sim"
	"github.com/mmp/atctower/util"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
	}
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, "pong")
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	paused := s.query(func(world *av.World, game *av.Game) any {
		game.Paused = !game.Paused
		return game.Paused
	})
	writeJSON(w, paused)
}

func (s *Server) handleWorld(w http.ResponseWriter, r *http.Request) {
	world := s.query(func(world *av.World, game *av.Game) any { return world })
	writeJSON(w, world)
}

// messagesSnapshot is the GET /messages response shape: the message
// ring's bounded recent history (spec.md §6 "GET /messages").
type messagesSnapshot struct {
	Messages []msgring.Message `json:"messages"`
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, messagesSnapshot{Messages: s.ring.Snapshot()})
}

// pointsSnapshot is a value copy of av.Points safe to JSON-encode and
// send to a caller outside the loop's goroutine.
type pointsSnapshot struct {
	Landings        int     `json:"landings"`
	Takeoffs        int     `json:"takeoffs"`
	LandingsPerHour float32 `json:"landings_per_hour"`
	TakeoffsPerHour float32 `json:"takeoffs_per_hour"`
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	snap := s.query(func(world *av.World, game *av.Game) any {
		now := time.Now()
		return pointsSnapshot{
			Landings:        game.Points.Landings.Count(now),
			Takeoffs:        game.Points.Takeoffs.Count(now),
			LandingsPerHour: game.Points.Landings.Rate(now),
			TakeoffsPerHour: game.Points.Takeoffs.Rate(now),
		}
	})
	writeJSON(w, snap)
}

func (s *Server) handleAircraftList(w http.ResponseWriter, r *http.Request) {
	aircraft := s.query(func(world *av.World, game *av.Game) any {
		cp := make([]av.Aircraft, len(game.Aircraft))
		for i, ac := range game.Aircraft {
			cp[i] = *ac
		}
		return cp
	})
	writeJSON(w, aircraft)
}

func (s *Server) handleAircraftOne(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/game/aircraft/")
	if id == "" {
		s.handleAircraftList(w, r)
		return
	}
	ac := s.query(func(world *av.World, game *av.Game) any {
		if found, ok := game.ByCallsign(av.Callsign(id)); ok {
			return *found
		}
		return nil
	})
	if ac == nil {
		http.Error(w, "aircraft not found", http.StatusNotFound)
		return
	}
	writeJSON(w, ac)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		flights := s.query(func(world *av.World, game *av.Game) any {
			cp := make([]av.Flight, len(game.Flights))
			for i, f := range game.Flights {
				cp[i] = *f
			}
			return cp
		})
		writeJSON(w, flights)
	case http.MethodPost:
		s.handleCreateFlight(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCreateFlight parses the form-encoded "kind" and "spawn_at"
// fields (spec.md §6 "POST /flights (form: kind, spawn_at (seconds from
// now))") and schedules a new flight slot, picked up by the spawner the
// next time SpawnScheduledFlights runs.
func (s *Server) handleCreateFlight(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form body", http.StatusBadRequest)
		return
	}

	var kind av.FlightKind
	switch r.FormValue("kind") {
	case "inbound":
		kind = av.FlightInbound
	case "outbound":
		kind = av.FlightOutbound
	default:
		http.Error(w, `kind must be "inbound" or "outbound"`, http.StatusBadRequest)
		return
	}

	secs, err := strconv.ParseFloat(r.FormValue("spawn_at"), 64)
	if err != nil {
		http.Error(w, "spawn_at must be a number of seconds", http.StatusBadRequest)
		return
	}
	airspace := r.FormValue("airspace")

	flight := &av.Flight{
		ID:       uuid.NewString(),
		Kind:     kind,
		Status:   av.Scheduled(),
		SpawnAt:  time.Now().Add(time.Duration(secs * float64(time.Second))),
		Airspace: airspace,
	}

	created := s.query(func(world *av.World, game *av.Game) any {
		game.Flights = append(game.Flights, flight)
		return *flight
	})
	writeJSON(w, created)
}

func (s *Server) handleFlightOne(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/flights/")
	if id == "" {
		http.Error(w, "flight id required", http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	removed := s.query(func(world *av.World, game *av.Game) any {
		return game.RemoveFlight(id)
	})
	if ok, _ := removed.(bool); !ok {
		http.Error(w, "flight not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCommsText is spec.md §6's "POST /comms/text?frequency=<MHz>
// body = transcribed controller speech": the external transcriber (out
// of scope) has already turned audio into text; this endpoint turns
// text into a dispatched command. The body's first token is the
// addressed aircraft's callsign, the remainder is parsed into tasks
// (spec.md §4.5) — the callsign/frequency split a full LLM bridge would
// otherwise perform is reduced to this since the parser here is
// deterministic rather than model-driven. The readback itself isn't
// rendered here: Dispatch builds it once the command reaches the loop
// and the loop broadcasts it tagged "atcreply", so every command source
// (this endpoint, and any future one) gets the same Callout policy
// (spec.md §4.4) for free instead of each caller re-deriving it.
func (s *Server) handleCommsText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	freq, err := strconv.ParseFloat(r.URL.Query().Get("frequency"), 32)
	if err != nil {
		http.Error(w, "frequency query parameter required", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	callsign, text := splitCallsign(string(body))
	if callsign == "" {
		http.Error(w, "body must start with a callsign", http.StatusBadRequest)
		return
	}
	// Voice transcribers tend to emit shouting-case text; tidy it before
	// logging or parsing it rather than storing/echoing it verbatim.
	text = util.StopShouting(text)

	tasks := parser.Parse(text)
	s.ring.Add(msgring.Message{Callsign: callsign, Frequency: float32(freq), Text: text, At: time.Now()})

	s.command(sim.CommandWithFreq{
		Callsign:  av.Callsign(callsign),
		Frequency: float32(freq),
		Tasks:     tasks,
		CreatedAt: time.Now(),
	})

	w.WriteHeader(http.StatusAccepted)
}

// handleCommsVoice is spec.md §6's "POST /comms/voice?frequency=<MHz>
// body = WAV bytes; external transcriber converts to text, then to
// tasks." The transcriber itself is an out-of-scope external
// collaborator (spec.md §1 Non-goals); no transcriber is wired, so this
// endpoint answers 501 Not Implemented rather than silently discarding
// audio.
func (s *Server) handleCommsVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.tts.(msgring.NoopProvider); s.tts == nil || ok {
		http.Error(w, "voice transcription is not configured", http.StatusNotImplemented)
		return
	}
	http.Error(w, "voice transcription is not implemented", http.StatusNotImplemented)
}

func splitCallsign(body string) (callsign, rest string) {
	body = strings.TrimSpace(body)
	idx := strings.IndexAny(body, " \t,")
	if idx < 0 {
		return body, ""
	}
	return body[:idx], strings.TrimLeft(body[idx:], " \t,")
}
