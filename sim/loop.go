// sim/loop.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"
	"time"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/log"
)

// Query is an inbound request/one-shot-reply: "get aircraft", "get
// world", "get messages", "pause", "ping" (spec.md §5). Run is the only
// field the loop calls; it executes on the loop's own goroutine and must
// not block.
type Query struct {
	Run   func(world *av.World, game *av.Game) any
	Reply chan any
}

// Command is a fire-and-ack inbound instruction: a controller command
// already addressed to one aircraft, or an ATC-transmitted text line the
// caller has already run through the parser into a CommandWithFreq; the
// loop runs Dispatch on it when it drains the command. Ack is closed once the command has been drained (not
// once it has taken effect — see spec.md §5 "Ordering guarantees").
type Command struct {
	Cmd CommandWithFreq
	Ack chan struct{}
}

// Broadcast is one outbound message: an aircraft snapshot, world update,
// reply, or points update, tagged for the transport layer (spec.md §6
// WebSocket message tags) to route.
type Broadcast struct {
	Tag     string
	Payload any
}

// Loop drives an Engine at a fixed wall-clock rate, single-threaded and
// cooperative (spec.md §5): one goroutine owns World and Game outright;
// everything else talks to it over the three channels below. Uses a
// wall-clock/slop accumulator generalized to Engine's configurable tick
// rate rather than a fixed once-a-second step.
type Loop struct {
	engine *Engine
	world  *av.World
	game   *av.Game
	lg     *log.Logger

	Queries   chan Query
	Commands  chan Command
	Broadcast chan Broadcast

	period time.Duration
	slop   time.Duration
	last   time.Time

	pending []Event // spawn events emitted on a step's last tick

	done chan struct{}
}

// NewLoop constructs a Loop ready to Run. Broadcast is bounded; overflow
// is dropped with a warning rather than blocking the tick (spec.md §5).
func NewLoop(engine *Engine, world *av.World, game *av.Game, lg *log.Logger) *Loop {
	return &Loop{
		engine:    engine,
		world:     world,
		game:      game,
		lg:        lg,
		Queries:   make(chan Query, 16),
		Commands:  make(chan Command, 64),
		Broadcast: make(chan Broadcast, 256),
		period:    time.Duration(float32(time.Second) / float32(engine.Rate)),
		done:      make(chan struct{}),
	}
}

// Run blocks, ticking at the configured rate until Stop is called or the
// Commands channel is closed. Intended to be launched in its own
// goroutine by the caller.
func (l *Loop) Run() {
	l.last = time.Now()
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}
		if l.step() {
			return // spec.md §5: closing the command channel stops the core
		}
	}
}

// Stop ends Run after its current tick.
func (l *Loop) Stop() { close(l.done) }

// step drains both inbound channels, runs exactly one engine tick, and
// routes the tick's outcome to Broadcast, per spec.md §4.1's five steps.
// It returns true once the Commands channel has been closed, telling Run
// to stop.
func (l *Loop) step() bool {
	now := time.Now()
	elapsed := now.Sub(l.last) + l.slop
	l.last = now

	n := int(elapsed / l.period)
	l.slop = elapsed - time.Duration(n)*l.period
	if n == 0 {
		return false
	}
	if n > 10 {
		l.lg.Warnf("loop falling behind: %d ticks owed in one step", n)
		n = 10 // drop the rest rather than spiral out trying to catch up
	}

	l.drainQueries()

	cmds, closed := l.drainCommands()
	events := l.pending
	l.pending = nil
	for _, cmd := range cmds {
		evs, reply, ok := Dispatch(cmd, l.game, l.world, l.engine.Finders)
		if !ok {
			continue
		}
		events = append(events, evs...)
		if reply != "" {
			l.trySend(Broadcast{Tag: "atcreply", Payload: reply})
		}
	}

	for i := 0; i < n; i++ {
		simNow := time.Now()
		outcome := l.engine.Tick(l.world, l.game, events, simNow)
		events = nil // one-tick lag: already-handled events don't repeat

		l.route(outcome)

		if ev := l.engine.MaybeSignalSpawn(l.world, l.game, simNow, l.period); ev != nil {
			events = append(events, *ev)
		}
		l.engine.SpawnScheduledFlights(l.world, l.game, simNow)
	}
	l.pending = events

	return closed
}

func (l *Loop) drainQueries() {
	for {
		select {
		case q := <-l.Queries:
			q.Reply <- q.Run(l.world, l.game)
		default:
			return
		}
	}
}

func (l *Loop) drainCommands() (cmds []CommandWithFreq, closed bool) {
	for {
		select {
		case c, ok := <-l.Commands:
			if !ok {
				return cmds, true
			}
			cmds = append(cmds, c.Cmd)
			close(c.Ack)
		default:
			return cmds, false
		}
	}
}

// route broadcasts a tick's callouts, non-blocking: a full channel drops
// the message with a logged warning rather than stalling the tick.
func (l *Loop) route(outcome TickOutcome) {
	for _, r := range outcome.Replies {
		l.trySend(Broadcast{Tag: "reply", Payload: r})
	}
	if len(outcome.Deleted) > 0 {
		l.trySend(Broadcast{Tag: "deleted", Payload: outcome.Deleted})
	}
	l.trySend(Broadcast{Tag: "points", Payload: l.game.Points})
	l.trySend(Broadcast{Tag: "funds", Payload: l.game.Funds})
	l.trySend(Broadcast{Tag: "aircraft", Payload: l.game.Aircraft})
}

func (l *Loop) trySend(b Broadcast) {
	select {
	case l.Broadcast <- b:
	default:
		l.lg.Warn("dropping broadcast, channel full", slog.String("tag", b.Tag))
	}
}

// QuickStart runs the engine forward, silently (no broadcasts), for
// enough simulated ticks to fill the world once: worldDiameter / the
// fastest cruise speed any spawned aircraft will fly, matching the
// teacher's prespawn() — a scenario that starts with every departure
// already airborne feels static and empty otherwise.
func (l *Loop) QuickStart(maxCruiseKt float32) {
	if maxCruiseKt <= 0 {
		return
	}
	diameterFt := 2 * l.world.Radius
	secondsNeeded := diameterFt / (maxCruiseKt * av.KnotsToFeetPerSecond)
	ticks := int(secondsNeeded * float32(l.engine.Rate))

	now := time.Now()
	for i := 0; i < ticks; i++ {
		l.engine.Tick(l.world, l.game, nil, now)
		if ev := l.engine.MaybeSignalSpawn(l.world, l.game, now, l.period); ev != nil {
			l.engine.Tick(l.world, l.game, []Event{*ev}, now)
		}
		l.engine.SpawnScheduledFlights(l.world, l.game, now)
	}
}
