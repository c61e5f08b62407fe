package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	storeDirName  = "courtly"
	storeFileName = "session.json"

	// EnvSessionFile overrides the session file location, mainly for tests
	// and CI where no home directory is available.
	EnvSessionFile = "COURTLY_SESSION_FILE"
)

// Store persists the session record between runs. Write replaces the whole
// record; there are no partial-field updates.
type Store interface {
	Write(Session) error
	Read() (Session, bool)
	Clear() error
}

// FileStore keeps the session in ~/.config/courtly/session.json. When no
// storage path can be resolved (no home directory and no override) the
// store is disabled: reads report no session and writes are no-ops. That
// guard is contractual, not an optimization — a disabled store must behave
// exactly like an anonymous visitor.
type FileStore struct {
	path string
}

// NewFileStore resolves the session file path. The returned store is never
// nil; an unresolvable path yields a disabled store.
func NewFileStore() *FileStore {
	if p := os.Getenv(EnvSessionFile); p != "" {
		return &FileStore{path: p}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &FileStore{}
	}
	return &FileStore{path: filepath.Join(homeDir, ".config", storeDirName, storeFileName)}
}

// Enabled reports whether the store has a backing file.
func (f *FileStore) Enabled() bool {
	return f.path != ""
}

// Write persists the session as an atomic whole-record replacement.
func (f *FileStore) Write(s Session) error {
	if !f.Enabled() {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s.Sanitize(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to a temp file in the same directory, then rename over the
	// old record so a crashed write never leaves a half-written session.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// Read returns the stored session and whether one exists. Any failure to
// read or parse counts as "no session".
func (f *FileStore) Read() (Session, bool) {
	if !f.Enabled() {
		return Session{}, false
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false
	}

	if s.Token == "" {
		return Session{}, false
	}
	return s.Sanitize(), true
}

// Clear removes the session record. Clearing an absent record is not an
// error.
func (f *FileStore) Clear() error {
	if !f.Enabled() {
		return nil
	}

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	session Session
	present bool
}

func (m *MemStore) Write(s Session) error {
	m.session = s.Sanitize()
	m.present = m.session.Token != ""
	return nil
}

func (m *MemStore) Read() (Session, bool) {
	if !m.present {
		return Session{}, false
	}
	return m.session, true
}

func (m *MemStore) Clear() error {
	m.session = Session{}
	m.present = false
	return nil
}
