// pathfinder/path.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pathfinder

import (
	lru "github.com/hashicorp/golang-lru/v2"

	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// rawPathCacheSize bounds the LRU of enumerated (unfiltered) node-id
// paths between feature pairs. One entry per (from,to) pair queried;
// a few hundred gates/runways per airport keeps this well under the cap.
const rawPathCacheSize = 4096

// Finder answers ground-routing queries against a single airport's
// Graph, memoizing the expensive simple-path enumeration.
type Finder struct {
	graph *Graph
	cache *lru.Cache[pairKey, [][]string]
}

type pairKey struct {
	from, to string
}

func NewFinder(ap *av.Airport) *Finder {
	c, err := lru.New[pairKey, [][]string](rawPathCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size, which rawPathCacheSize isn't
	}
	return &Finder{graph: Build(ap), cache: c}
}

// rawPaths returns every simple path from "from" to "to" with at most
// MaxIntermediateNodes intermediate nodes, as a sequence of feature ids
// including both endpoints. The result is memoized per (from,to): it
// doesn't depend on the caller's entry heading or requested behavior, so
// it can be shared across queries that do.
func (f *Finder) rawPaths(from, to string) [][]string {
	key := pairKey{from, to}
	if cached, ok := f.cache.Get(key); ok {
		return cached
	}

	var paths [][]string
	visited := map[string]bool{from: true}
	path := []string{from}

	// intermediateCount is len(path)-1: every node so far except "from"
	// is an intermediate stop (the target, when reached, isn't pushed
	// onto path via the recursive step below, it's recorded directly).
	var walk func(node string)
	walk = func(node string) {
		for _, e := range f.graph.adj[node] {
			if e.to == to {
				cp := make([]string, len(path)+1)
				copy(cp, path)
				cp[len(path)] = to
				paths = append(paths, cp)
				continue
			}
			if visited[e.to] {
				continue
			}
			if len(path)-1 >= MaxIntermediateNodes {
				continue // at the intermediate-node budget, can't extend further
			}
			visited[e.to] = true
			path = append(path, e.to)
			walk(e.to)
			path = path[:len(path)-1]
			visited[e.to] = false
		}
	}
	walk(from)

	f.cache.Add(key, paths)
	return paths
}

// noTurnToleranceDeg is the maximum heading change allowed between two
// consecutive legs before a route is rejected as requiring a U-turn.
const noTurnToleranceDeg = 175

// Query finds the shortest (by node count) ground route from the
// feature "from" to the feature "to", given the aircraft's current
// position and heading, and stamps the final stop with behavior.
// It returns false if no candidate path survives the turn and
// runway-transit filters.
func (f *Finder) Query(from, to string, pos math.Vec2, heading float32, behavior av.NodeBehavior) ([]av.TaxiWaypoint, bool) {
	candidates := f.rawPaths(from, to)

	var best []av.TaxiWaypoint
	for _, nodes := range candidates {
		wps, ok := f.synthesize(nodes, pos, heading)
		if !ok {
			continue
		}
		if best == nil || len(wps) < len(best) {
			best = wps
		}
	}
	if best == nil {
		return nil, false
	}
	best[len(best)-1].Behavior = behavior
	return best, true
}

// synthesize turns a raw node-id path into a filtered, positioned
// TaxiWaypoint sequence, or returns ok=false if the path is rejected.
func (f *Finder) synthesize(nodes []string, pos math.Vec2, heading float32) ([]av.TaxiWaypoint, bool) {
	wps := make([]av.TaxiWaypoint, 0, len(nodes)-1)

	prevPos := pos
	prevHeading := heading
	for i := 0; i+1 < len(nodes); i++ {
		a, b := nodes[i], nodes[i+1]
		point, ok := edgePoint(f.graph, a, b)
		if !ok {
			return nil, false
		}

		leg := math.Heading2Vec2(prevPos, point)
		if math.HeadingDifference(prevHeading, leg) >= noTurnToleranceDeg {
			kind, _ := f.graph.Kind(a)
			if kind != av.FeatureGate {
				return nil, false
			}
		}

		// Reject intermediate runway transits; the final node is allowed
		// to be a runway (it's the explicit target, e.g. a takeoff queue).
		if i+2 < len(nodes) {
			if kind, _ := f.graph.Kind(b); kind == av.FeatureRunway {
				return nil, false
			}
		}

		kind, _ := f.graph.Kind(b)
		wps = append(wps, av.TaxiWaypoint{FeatureID: b, Kind: kind, Behavior: av.BehaviorGoTo, Pos: point})

		prevPos, prevHeading = point, leg
	}

	return wps, true
}

// RouteVia builds an explicit ground route from "from" through each
// feature in via, in order, stamping the last stop with behavior. Unlike
// Query, it doesn't search or filter — it's used when the controller
// named the via points directly (spec.md §4.5's "tx short 27L via A B"
// form) — and fails only if a consecutive pair in the route isn't
// actually connected by an edge in the graph.
func (f *Finder) RouteVia(from string, via []string, behavior av.NodeBehavior) ([]av.TaxiWaypoint, bool) {
	if len(via) == 0 {
		return nil, false
	}
	nodes := append([]string{from}, via...)
	wps := make([]av.TaxiWaypoint, 0, len(via))
	for i := 0; i+1 < len(nodes); i++ {
		point, ok := edgePoint(f.graph, nodes[i], nodes[i+1])
		if !ok {
			return nil, false
		}
		kind, _ := f.graph.Kind(nodes[i+1])
		wps = append(wps, av.TaxiWaypoint{FeatureID: nodes[i+1], Kind: kind, Behavior: av.BehaviorGoTo, Pos: point})
	}
	wps[len(wps)-1].Behavior = behavior
	return wps, true
}

func edgePoint(g *Graph, a, b string) (math.Vec2, bool) {
	for _, e := range g.adj[a] {
		if e.to == b {
			return e.point, true
		}
	}
	return math.Vec2{}, false
}
