package userapi

import "sync"

// State is the persisted session snapshot: the current token pair plus
// the identity projection it belongs to.
type State struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// SessionStore persists session state across process restarts.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// Save overwrites the stored state.
	Save(state State) error

	// Load returns the stored state. ok is false when nothing has been
	// saved yet or the session was cleared.
	Load() (state State, ok bool, err error)

	// Clear removes the stored state. Clearing an empty store is not an
	// error. This is the client-side logout; the server keeps nothing.
	Clear() error
}

// MemoryStore is a SessionStore that lives and dies with the process.
// Useful for tests and short-lived tools that don't want a state file.
type MemoryStore struct {
	mu    sync.Mutex
	state *State
}

func (m *MemoryStore) Save(state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &state
	return nil
}

func (m *MemoryStore) Load() (State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return State{}, false, nil
	}
	return *m.state, true, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}
