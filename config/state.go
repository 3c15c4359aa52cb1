package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sidepane/log"
)

const StateFileName = "state.json"

// AppState handles application-level state. The sidebar's collapsed state
// is deliberately absent: it is never persisted.
type AppState interface {
	// GetTheme returns the last theme the user picked, or "" for none.
	GetTheme() string
	// SetTheme records the theme
	SetTheme(theme string) error
	// GetLastSection returns the slug of the last section shown
	GetLastSection() string
	// SetLastSection records the section shown
	SetLastSection(slug string) error
}

// State represents the application state that persists between sessions
type State struct {
	Theme       string `json:"theme,omitempty"`
	LastSection string `json:"last_section,omitempty"`

	// lastModTime tracks when we last read the state file (not serialized)
	lastModTime time.Time `json:"-"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{}
}

func statePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState() *State {
	path, err := statePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		return DefaultState()
	}

	// Acquire shared lock for reading
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	state, err := readState(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WarningLog.Printf("failed to load state file: %v", err)
		}
		return DefaultState()
	}
	return state
}

func readState(path string) (*State, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	state.lastModTime = info.ModTime()
	return &state, nil
}

// SaveState saves the state to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveState(state *State) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, StateFileName)

	// Acquire exclusive lock for writing
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	// Update lastModTime after successful write
	if info, err := os.Stat(path); err == nil {
		state.lastModTime = info.ModTime()
	}

	return nil
}

// ResetState deletes the state file.
func ResetState() error {
	path, err := statePath()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// AppState interface implementation

// GetTheme returns the stored theme
func (s *State) GetTheme() string {
	return s.Theme
}

// SetTheme records the theme and saves the state
func (s *State) SetTheme(theme string) error {
	s.Theme = theme
	return SaveState(s)
}

// GetLastSection returns the stored section slug
func (s *State) GetLastSection() string {
	return s.LastSection
}

// SetLastSection records the section slug and saves the state
func (s *State) SetLastSection(slug string) error {
	s.LastSection = slug
	return SaveState(s)
}

// State sync methods

// GetStateModTime returns the current modification time of the state file on disk.
func GetStateModTime() (time.Time, error) {
	path, err := statePath()
	if err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}

	return info.ModTime(), nil
}

// NeedsRefresh checks if the state file has been modified since the given time.
// Returns true if the file has been modified and should be refreshed.
func NeedsRefresh(since time.Time) bool {
	modTime, err := GetStateModTime()
	if err != nil {
		return false
	}
	return modTime.After(since)
}

// RefreshFromDisk reloads the state from disk if another process changed it.
// Returns true if the state was refreshed, false if no refresh was needed.
func (s *State) RefreshFromDisk() (bool, error) {
	if !NeedsRefresh(s.lastModTime) {
		return false, nil
	}

	path, err := statePath()
	if err != nil {
		return false, fmt.Errorf("failed to get config directory: %w", err)
	}

	// Acquire shared lock for reading
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		return false, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer lock.Unlock()

	newState, err := readState(path)
	if err != nil {
		return false, err
	}

	s.Theme = newState.Theme
	s.LastSection = newState.LastSection
	s.lastModTime = newState.lastModTime

	return true, nil
}
