// msgring/replay.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package msgring

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// ReplayStore persists a Ring's history to disk, msgpack-encoded, so a
// crash or restart doesn't lose the transcript the `/messages` endpoint
// serves.
type ReplayStore struct {
	path string
}

// NewReplayStore targets path as the on-disk dump location.
func NewReplayStore(path string) *ReplayStore {
	return &ReplayStore{path: path}
}

// Save overwrites the replay file with the given history.
func (s *ReplayStore) Save(messages []Message) error {
	data, err := msgpack.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode message replay: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write message replay %s: %w", s.path, err)
	}
	return nil
}

// Load reads back a previously Saved history. A missing file is not an
// error: it just means there's nothing to replay yet.
func (s *ReplayStore) Load() ([]Message, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read message replay %s: %w", s.path, err)
	}

	var messages []Message
	if err := msgpack.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("decode message replay: %w", err)
	}
	return messages, nil
}
