// Package memory provides a process-local core.Slot, used for tests and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Slot keeps the payload in memory. It is safe for concurrent use.
type Slot struct {
	mu     sync.RWMutex
	data   []byte
	set    bool
	writes int
}

// NewSlot returns an empty slot, or one pre-filled with seed when given.
func NewSlot(seed ...[]byte) *Slot {
	s := &Slot{}
	if len(seed) > 0 {
		s.data = append([]byte(nil), seed[0]...)
		s.set = true
	}
	return s
}

func (s *Slot) Initialize(ctx context.Context) error { return nil }

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return nil, core.ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *Slot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.set = true
	s.writes++
	return nil
}

// Writes returns how many times the slot was written.
func (s *Slot) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "memory-slot"
}

// SlotState exposes internal state for observability.
type SlotState struct {
	Bytes  int `json:"bytes"`
	Writes int `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SlotState{Bytes: len(s.data), Writes: s.writes}
}
