package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// SlotState exposes internal state for observability.
type SlotState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	Name          string     `json:"name"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SlotState{
		Path:          s.Path,
		SystemDir:     s.config.SystemDir,
		Name:          s.config.Name,
		Writes:        s.writes,
		LastWrite:     s.lastWrite,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "fs-slot"
}

var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)

func (s *Slot) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
