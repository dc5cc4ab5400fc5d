// pathfinder/graph.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package pathfinder builds an undirected graph over an airport's
// runways, taxiways and terminals and answers gate-to-runway (and
// reverse) routing queries against it.
package pathfinder

import (
	av "github.com/mmp/atctower/aviation"
	"github.com/mmp/atctower/math"
)

// MaxIntermediateNodes bounds the simple-path enumeration in Query. This
// is a correctness-vs-latency knob: on typical airports it reduces the
// search from hundreds of thousands of paths to hundreds. Don't raise it
// without rebenchmarking.
const MaxIntermediateNodes = 8

type edge struct {
	to    string
	point math.Vec2
}

// Graph is the undirected ground-feature graph for a single airport.
// Node and edge data are owned by the graph and referred to by feature
// id; nothing outside the pathfinder holds a pointer into it.
type Graph struct {
	kind  map[string]av.FeatureKind
	adj   map[string][]edge
	order []string // feature ids in insertion order, for deterministic iteration
}

func newGraph() *Graph {
	return &Graph{
		kind: make(map[string]av.FeatureKind),
		adj:  make(map[string][]edge),
	}
}

func (g *Graph) addNode(id string, kind av.FeatureKind) {
	if _, ok := g.kind[id]; !ok {
		g.kind[id] = kind
		g.order = append(g.order, id)
	}
}

func (g *Graph) addEdge(a, b string, p math.Vec2) {
	g.adj[a] = append(g.adj[a], edge{to: b, point: p})
	g.adj[b] = append(g.adj[b], edge{to: a, point: p})
}

// Kind returns the feature kind of a node, if present.
func (g *Graph) Kind(id string) (av.FeatureKind, bool) {
	k, ok := g.kind[id]
	return k, ok
}

type lineFeature struct {
	id   string
	kind av.FeatureKind
	line math.Line
}

// Build constructs the ground graph for an airport: a node per
// runway/taxiway/terminal-apron and per gate, an edge at every pairwise
// feature intersection, and an edge from each gate to its terminal's
// apron.
func Build(ap *av.Airport) *Graph {
	g := newGraph()

	var features []lineFeature
	for _, r := range ap.Runways {
		features = append(features, lineFeature{id: r.ID, kind: av.FeatureRunway, line: r.Line()})
	}
	for _, tw := range ap.Taxiways {
		features = append(features, lineFeature{id: tw.ID, kind: av.FeatureTaxiway, line: tw.Line()})
	}
	for _, t := range ap.Terminals {
		features = append(features, lineFeature{id: t.ID, kind: av.FeatureApron, line: t.Apron()})
	}

	for _, f := range features {
		g.addNode(f.id, f.kind)
	}

	for i := 0; i < len(features); i++ {
		for j := i + 1; j < len(features); j++ {
			a, b := features[i], features[j]
			if p, ok := math.SegmentSegmentIntersect(a.line.P0, a.line.P1, b.line.P0, b.line.P1); ok {
				g.addEdge(a.id, b.id, p)
			}
		}
	}

	for _, t := range ap.Terminals {
		apron := t.Apron()
		for _, gate := range t.Gates {
			g.addNode(gate.ID, av.FeatureGate)
			p := math.ClosestPointOnLine(gate.Pos, apron.P0, apron.P1)
			g.addEdge(gate.ID, t.ID, p)
		}
	}

	return g
}
