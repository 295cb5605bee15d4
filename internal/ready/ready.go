// Package ready tracks whether the bot has finished booting: the database
// sync ran, the gateway session is up and every extension reported in.
package ready

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// State is the process readiness. The zero value has no extensions and is
// never OK; use New.
type State struct {
	mu         sync.RWMutex
	extensions map[string]bool
	booted     bool
	synced     bool
}

// New creates a state tracking the named extensions, all down.
func New(extensions ...string) *State {
	s := &State{extensions: make(map[string]bool, len(extensions))}
	for _, name := range extensions {
		s.extensions[name] = false
	}
	return s
}

// Up marks an extension ready. Unknown names are added.
func (s *State) Up(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.extensions == nil {
		s.extensions = map[string]bool{}
	}
	s.extensions[name] = true
}

func (s *State) SetBooted(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booted = v
}

func (s *State) SetSynced(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced = v
}

func (s *State) Booted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booted
}

func (s *State) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// Initialised reports whether every extension is up.
func (s *State) Initialised() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialised()
}

func (s *State) initialised() bool {
	for _, up := range s.extensions {
		if !up {
			return false
		}
	}
	return true
}

// OK reports whether commands may run.
func (s *State) OK() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booted && s.initialised()
}

// Extensions returns a copy of the extension map.
func (s *State) Extensions() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.extensions)
}

// Teardown marks everything down again, used on shutdown.
func (s *State) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.extensions {
		s.extensions[name] = false
	}
	s.booted = false
	s.synced = false
}

// String renders "booted=true synced=true help=true tags=false".
func (s *State) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parts := []string{
		fmt.Sprintf("booted=%t", s.booted),
		fmt.Sprintf("synced=%t", s.synced),
	}
	for _, name := range slices.Sorted(maps.Keys(s.extensions)) {
		parts = append(parts, fmt.Sprintf("%s=%t", name, s.extensions[name]))
	}
	return strings.Join(parts, " ")
}
