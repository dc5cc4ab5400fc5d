// aviation/load.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmp/atctower/math"
	"github.com/mmp/atctower/util"
)

// authoredTerminal is the on-disk shape of a terminal (spec.md §6
// "Airport authoring": "terminals[] with gates[] and apron"), distinct
// from the runtime Terminal, which additionally carries the far side of
// the quadrilateral for rendering; only the apron edge the gates face
// is authored.
type authoredTerminal struct {
	ID    string    `json:"id"`
	Apron [2]math.Vec2 `json:"apron"`
	Gates []Gate    `json:"gates"`
}

// authoredAirport is the wire format an external authoring toolchain
// produces for one airport (spec.md §6): "id, centre, runways[],
// taxiways[], terminals[] with gates[] and apron". `.source` files are
// compiled to this JSON by that external toolchain, not by this
// package; LoadAirportDir only ever reads the compiled `.json` output.
type authoredAirport struct {
	ID        string              `json:"id"`
	Centre    math.Vec2           `json:"centre"`
	Runways   []Runway            `json:"runways"`
	Taxiways  []Taxiway           `json:"taxiways"`
	Terminals []authoredTerminal  `json:"terminals"`
}

func (a authoredAirport) toAirport() *Airport {
	ap := &Airport{
		ID:       a.ID,
		Centre:   a.Centre,
		Runways:  a.Runways,
		Taxiways: a.Taxiways,
	}
	for _, t := range a.Terminals {
		ap.Terminals = append(ap.Terminals, Terminal{
			ID:    t.ID,
			A:     t.Apron[0],
			B:     t.Apron[1],
			Gates: t.Gates,
		})
	}
	return ap
}

// LoadAirportDir reads every `*.json` file directly inside dir as one
// authored airport document and validates it (spec.md §7 taxonomy (f):
// a malformed document aborts loading with a diagnostic rather than
// starting the server against a half-built world). Every file in dir is
// checked rather than stopping at the first bad one, so a single typo
// doesn't hide every other problem in the same authoring pass. Uses
// util.ErrorLogger's accumulate-then-report shape and
// util.UnmarshalJSONBytes for line/character-numbered syntax errors
// instead of Go's raw offset.
func LoadAirportDir(dir string) ([]*Airport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read airport directory %s: %w", dir, err)
	}

	var el util.ErrorLogger
	var airports []*Airport
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		el.Push(path)

		data, err := os.ReadFile(path)
		if err != nil {
			el.Error(err)
			el.Pop()
			continue
		}

		var doc authoredAirport
		if err := util.UnmarshalJSONBytes(data, &doc); err != nil {
			el.Error(err)
			el.Pop()
			continue
		}

		ap := doc.toAirport()
		if err := ap.Validate(); err != nil {
			el.Error(err)
			el.Pop()
			continue
		}

		airports = append(airports, ap)
		el.Pop()
	}

	if el.HaveErrors() {
		return nil, errors.New(el.String())
	}
	return airports, nil
}
