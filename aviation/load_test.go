// aviation/load_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmp/atctower/math"
	"github.com/stretchr/testify/require"
)

const testAirportJSON = `{
  "id": "KXX",
  "centre": {"x": 0, "y": 0},
  "runways": [{"id": "9", "pos": {"x": 3500, "y": 0}, "heading": 90, "length": 7000}],
  "taxiways": [{"id": "A", "a": {"x": 0, "y": 0}, "b": {"x": 3500, "y": 100}}],
  "terminals": [{
    "id": "T1",
    "apron": [{"x": 0, "y": 200}, {"x": 500, "y": 200}],
    "gates": [{"id": "A1", "pos": {"x": 100, "y": 260}, "heading": 0, "available": true}]
  }]
}`

func TestLoadAirportDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kxx.json"), []byte(testAirportJSON), 0o644))

	airports, err := LoadAirportDir(dir)
	require.NoError(t, err)
	require.Len(t, airports, 1)

	ap := airports[0]
	require.Equal(t, "KXX", ap.ID)
	require.Len(t, ap.Runways, 1)
	require.Len(t, ap.Taxiways, 1)
	require.Len(t, ap.Terminals, 1)
	require.Equal(t, "A1", ap.Terminals[0].Gates[0].ID)
	require.Equal(t, math.Vec2{X: 0, Y: 200}, ap.Terminals[0].Apron().P0)
	require.Equal(t, math.Vec2{X: 500, Y: 200}, ap.Terminals[0].Apron().P1)
}

func TestLoadAirportDirRejectsInvalidGeometry(t *testing.T) {
	dir := t.TempDir()
	bad := `{"id":"BAD","centre":{"x":0,"y":0},"runways":[{"id":"9","pos":{"x":0,"y":0},"heading":90,"length":0}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(bad), 0o644))

	_, err := LoadAirportDir(dir)
	require.Error(t, err)
}

func TestLoadAirportDirMissingDirectory(t *testing.T) {
	_, err := LoadAirportDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
