// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/sgformer/models"
	"github.com/danielhkuo/sgformer/store"
)

// State is the persisted blob
type State struct {
	Forms       []models.Form       `json:"forms"`
	Submissions []models.Submission `json:"submissions"`
	Checkins    []models.Checkin    `json:"checkins"`
}

// Empty reports whether the state holds no records at all
func (s State) Empty() bool {
	return len(s.Forms) == 0 && len(s.Submissions) == 0 && len(s.Checkins) == 0
}

// Load reads the state at path. A missing or unreadable file is "no stored
// state": it is logged and an empty State is returned with found=false.
func Load(path string) (state State, found bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("state file unreadable, starting fresh", "path", path, "error", err)
		}
		return State{}, false
	}

	if err := json.Unmarshal(data, &state); err != nil {
		slog.Warn("state file corrupt, starting fresh", "path", path, "error", err)
		return State{}, false
	}

	slog.Info("state loaded",
		"path", path,
		"size", humanize.Bytes(uint64(len(data))),
		"forms", len(state.Forms),
		"submissions", len(state.Submissions),
		"checkins", len(state.Checkins),
	)
	return state, true
}

// Save writes state to path through a temp file and rename
func Save(path string, state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	slog.Info("state saved", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

// Restore loads path into m. When nothing usable is stored, fallback
// seeds the store instead.
func Restore(m *store.Memory, path string, fallback []models.Form) {
	state, found := Load(path)
	if !found || state.Empty() {
		m.Load(fallback, nil, nil)
		return
	}
	m.Load(state.Forms, state.Submissions, state.Checkins)
}

// Persist writes the contents of m to path
func Persist(m *store.Memory, path string) error {
	forms, subs, checkins := m.Dump()
	return Save(path, State{Forms: forms, Submissions: subs, Checkins: checkins})
}
