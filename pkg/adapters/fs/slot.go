package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

const (
	// DefaultSystemDir is the hidden directory holding jot's files inside a vault.
	DefaultSystemDir = ".jot"
	// DefaultSlotName is the name of the slot holding the note collection.
	DefaultSlotName = "notes"
)

// Config holds the configuration for the filesystem slot.
type Config struct {
	Path         string // Vault directory.
	SystemDir    string // e.g. ".jot"
	Name         string // Slot name; stored as <Path>/<SystemDir>/<Name>.json
	MustExist    bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher errors. Optional.
	Debounce     time.Duration
}

// Slot implements core.Slot with a single JSON file written atomically.
type Slot struct {
	Path   string // Full path of the slot file.
	config Config

	mu            sync.RWMutex
	lastWritten   []byte
	lastWrite     *time.Time
	writes        int
	watcherActive bool
}

// NewSlot creates a new filesystem-backed slot.
func NewSlot(config Config) *Slot {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Name == "" {
		config.Name = DefaultSlotName
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Slot{
		Path:   filepath.Join(config.Path, config.SystemDir, config.Name+".json"),
		config: config,
	}
}

// Initialize checks the vault directory and creates the system directory.
func (s *Slot) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.config.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", s.config.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat vault: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", s.config.Path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}
	return nil
}

// Read returns the slot payload, or core.ErrSlotEmpty if the file does not exist.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.Path, err)
	}
	return data, nil
}

// Write atomically replaces the slot file.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}

	s.lastWritten = append(s.lastWritten[:0], data...)
	now := time.Now()
	s.lastWrite = &now
	s.writes++
	s.config.Logger.Debug("slot written", "path", s.Path, "bytes", len(data))
	return nil
}

// Watch reports changes made to the slot file by other processes.
// Writes made through this Slot are filtered out.
func (s *Slot) Watch(ctx context.Context) (<-chan struct{}, error) {
	w := newWatchWorker(s)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w.out, nil
}

// isOwnWrite reports whether the file on disk is what this Slot last wrote.
func (s *Slot) isOwnWrite() bool {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastWritten != nil && bytes.Equal(data, s.lastWritten)
}

var _ core.WatchableSlot = (*Slot)(nil)
