// Package lockstate persists the workspace Locked/Unlocked flag.
// The flag lives in a single plain-text file holding one token,
// read once per guard invocation and mutated only by the lock and
// unlock commands.
package lockstate

import (
	"fmt"
	"os"
	"strings"

	"github.com/pinesmith/pineguard/internal/model"
)

// Reading is the result of resolving the persisted lock state.
// A missing or unreadable file reads as Unlocked: the default
// favors iteration speed, protection is opt-in via lock.
type Reading struct {
	State model.State

	// Present reports whether the state file existed and was readable.
	Present bool

	// Recognized is false when the file held neither valid token.
	// The state still reads as Unlocked (fail-open), but the guard
	// surfaces an advisory so the operator notices.
	Recognized bool

	// Token is the raw trimmed file content, kept for diagnostics.
	Token string
}

// Store abstracts lock-state persistence so the decision pipeline
// can be exercised without a filesystem.
type Store interface {
	Read() Reading
	Write(model.State) error
}

// FileStore persists the lock state in a single token file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Read resolves the current lock state. Never returns an error:
// every failure mode degrades to Unlocked.
func (s *FileStore) Read() Reading {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Reading{State: model.Unlocked, Recognized: true}
	}

	token := strings.TrimSpace(string(data))
	state, ok := model.ParseState(token)
	return Reading{State: state, Present: true, Recognized: ok, Token: token}
}

// Write persists the given state atomically (tmp + rename).
func (s *FileStore) Write(state model.State) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(string(state)+"\n"), 0644); err != nil {
		return fmt.Errorf("write lock state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write lock state: %w", err)
	}
	return nil
}

// Memory is an in-memory Store for tests.
type Memory struct {
	Reading Reading
	Written []model.State
	Err     error
}

// Read returns the canned reading.
func (m *Memory) Read() Reading { return m.Reading }

// Write records the state and returns the canned error.
func (m *Memory) Write(state model.State) error {
	m.Written = append(m.Written, state)
	return m.Err
}
