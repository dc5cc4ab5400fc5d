// msgring/tts.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package msgring

import "errors"

// ErrNoTTSEngine is returned by NoopProvider for every synthesis
// request: voice synthesis itself is out of scope (see DESIGN.md), so
// this is the one place that fact is visible to a caller.
var ErrNoTTSEngine = errors.New("msgring: no text-to-speech engine configured")

// Voice names one synthesized speaker, as returned by a Provider's
// voice catalog.
type Voice string

// VoicesFuture is a channel-delivered result: providers that call out
// to a remote service return immediately and let the caller select on
// the result instead of blocking the tick.
type VoicesFuture struct {
	VoicesCh chan []Voice
	ErrCh    chan error
}

// SpeechFuture is the synthesized-audio counterpart of VoicesFuture.
type SpeechFuture struct {
	AudioCh chan []byte
	ErrCh   chan error
}

// Provider is the text-to-speech interface seam. config.toml's
// `world.use_piper_tts` is loaded into config.World but nothing reads
// it; the server is always given NoopProvider. No engine is implemented here —
// voice synthesis is out of scope for a backend that otherwise only
// emits text readbacks over the wire (see DESIGN.md "Dropped teacher
// dependencies") — but the seam exists so a real engine (e.g. Piper, or
// a remote provider like Google's Cloud TTS) can be wired in later
// without touching any caller.
type Provider interface {
	GetAllVoices() VoicesFuture
	TextToSpeech(voice Voice, text string) SpeechFuture
}

// NoopProvider answers every request with zero voices and an error,
// letting callers that optimistically check for a Provider at startup
// treat "TTS configured but no engine built in" the same as "not
// configured" with no nil-interface special-casing.
type NoopProvider struct{}

func (NoopProvider) GetAllVoices() VoicesFuture {
	ch, errCh := make(chan []Voice, 1), make(chan error, 1)
	ch <- nil
	close(ch)
	close(errCh)
	return VoicesFuture{VoicesCh: ch, ErrCh: errCh}
}

func (NoopProvider) TextToSpeech(Voice, string) SpeechFuture {
	ch, errCh := make(chan []byte, 1), make(chan error, 1)
	errCh <- ErrNoTTSEngine
	close(ch)
	close(errCh)
	return SpeechFuture{AudioCh: ch, ErrCh: errCh}
}
