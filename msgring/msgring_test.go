// msgring/msgring_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package msgring

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRingPrunesByAge(t *testing.T) {
	r := NewRing(100, 10*time.Second)
	base := time.Now()

	r.Add(Message{Callsign: "AAL1", Text: "old", At: base})
	r.Add(Message{Callsign: "AAL2", Text: "new", At: base.Add(20 * time.Second)})

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, "new", snap[0].Text)
}

func TestRingPrunesByCapacity(t *testing.T) {
	r := NewRing(2, 0)
	base := time.Now()

	r.Add(Message{Text: "a", At: base})
	r.Add(Message{Text: "b", At: base})
	r.Add(Message{Text: "c", At: base})

	snap := r.Snapshot()
	require.Equal(t, []string{"b", "c"}, []string{snap[0].Text, snap[1].Text})
}

func TestReplayStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.msgpack")
	store := NewReplayStore(path)

	now := time.Now().Truncate(time.Second)
	want := []Message{{Callsign: "AAL1", Frequency: 121.9, Text: "taxi to gate", At: now}}

	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReplayStoreLoadMissingFileIsNotAnError(t *testing.T) {
	store := NewReplayStore(filepath.Join(t.TempDir(), "absent.msgpack"))
	got, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNoopProviderReportsNoEngine(t *testing.T) {
	var p Provider = NoopProvider{}

	voices := p.GetAllVoices()
	require.Empty(t, <-voices.VoicesCh)

	speech := p.TextToSpeech("en-US", "taxi to gate alpha")
	require.ErrorIs(t, <-speech.ErrCh, ErrNoTTSEngine)
}
