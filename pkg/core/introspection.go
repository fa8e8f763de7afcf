package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes            int        `json:"notes"`
	Initialized      bool       `json:"initialized"`
	MalformedDropped bool       `json:"malformed_dropped"`
	SlotType         string     `json:"slot_type"`
	Subscribers      int        `json:"subscribers"`
	EventBufferSize  int        `json:"event_buffer_size"`
	LastPersist      *time.Time `json:"last_persist,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		Notes:            len(s.notes),
		Initialized:      s.initialized,
		MalformedDropped: s.malformedDropped,
		EventBufferSize:  s.eventBufferSize,
		LastPersist:      s.lastPersist,
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	state.Subscribers = len(s.subs)
	s.subMu.Unlock()

	state.SlotType = "unknown"
	if comp, ok := s.slot.(introspection.Component); ok {
		state.SlotType = comp.ComponentType()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
