package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// State is what a session knows about earlier attempts.
type State struct {
	Attempts  int     `json:"attempts"`
	PrevScore float64 `json:"prevscore"`

	// TimeDelta is 0 for an on-time submission and negative when late.
	TimeDelta int `json:"timedelta"`
}

// DefaultState is used when no persisted state exists.
func DefaultState() State {
	return State{Attempts: 1}
}

// LoadStateFile reads state from a JSON file such as data.json. A missing
// file yields DefaultState; missing keys keep their default values.
func LoadStateFile(path string) (State, error) {
	st := DefaultState()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read state: %w", err)
	}

	if err := json.Unmarshal(data, &st); err != nil {
		return DefaultState(), fmt.Errorf("parse state %s: %w", path, err)
	}
	return st, nil
}
