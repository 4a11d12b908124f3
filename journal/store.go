package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store persists one DayState per calendar date as a JSON document under a
// state directory. Load then Save with no intervening mutation reproduces
// the file byte for byte, which is what makes re-running the journal for
// the same day safe.
type Store struct {
	dir  string
	date string
	lock *flock.Flock
}

// NewStore prepares the per-date store, creating the state directory if
// needed and taking an advisory lock on the date's resource. Two concurrent
// invocations for the same date are not defined behavior, so the second
// simply fails here.
func NewStore(dir, date string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, date+".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock day state: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("day state for %s is locked by another invocation", date)
	}

	return &Store{dir: dir, date: date, lock: lock}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, s.date+".json")
}

// Load returns the persisted state for the store's date, or an empty state
// when no file exists yet.
func (s *Store) Load() (*DayState, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return NewDayState(s.date), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read day state: %w", err)
	}

	state := NewDayState(s.date)
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse day state: %w", err)
	}
	state.Date = s.date
	return state, nil
}

// Save durably overwrites the per-date record with the full state. The
// write goes to a temp file first and is renamed into place, so a failed
// run never leaves partial state behind.
func (s *Store) Save(state *DayState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal day state: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write day state: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace day state: %w", err)
	}
	return nil
}

// Close releases the advisory lock.
func (s *Store) Close() error {
	return s.lock.Unlock()
}
