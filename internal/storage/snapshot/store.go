// Package snapshot holds the shared telemetry state: the latest system and
// network snapshots plus the pause flag, behind one lock.
package snapshot

import (
	"slices"
	"sync"

	"horizonx-top/internal/domain"
)

// State is written by the samplers and the pause toggle and read by the
// renderer and exporters. The lock is only ever held for a struct copy.
type State struct {
	mu      sync.RWMutex
	system  domain.SystemSnapshot
	network domain.NetworkSnapshot
	paused  bool
}

func NewState() *State {
	return &State{}
}

func (s *State) PublishSystem(snap domain.SystemSnapshot) {
	s.mu.Lock()
	s.system = snap
	s.mu.Unlock()
}

func (s *State) PublishNetwork(snap domain.NetworkSnapshot) {
	s.mu.Lock()
	s.network = snap
	s.mu.Unlock()
}

func (s *State) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// TogglePause flips the pause flag and returns the new value.
func (s *State) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Read returns both snapshots and the pause flag from one critical section.
// The returned slices are private to the caller.
func (s *State) Read() domain.View {
	s.mu.RLock()
	v := domain.View{
		System:  s.system,
		Network: s.network,
		Paused:  s.paused,
	}
	s.mu.RUnlock()

	// published slices are never written again, so cloning can happen unlocked
	v.System.Processes = slices.Clone(v.System.Processes)
	v.Network.Interfaces = slices.Clone(v.Network.Interfaces)

	return v
}
