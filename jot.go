package jot

import (
	"context"
	"log/slog"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// --- Types ---

// Note is a single persisted note.
type Note = core.Note

// Store is the note collection bound to a storage slot.
type Store = core.Store

// Event is emitted by a Store after every mutation or reload.
type Event = core.Event

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithLogger sets the logger for the store and its slot.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSlot allows injecting a custom storage slot.
func WithSlot(slot core.Slot) Option {
	return platform.WithSlot(slot)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".jot").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithSlotName sets the name of the slot holding the notes.
func WithSlotName(name string) Option {
	return platform.WithSlotName(name)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithEventBuffer allows specifying the per-subscriber event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New opens the vault at path and returns a hydrated Store.
func New(path string, opts ...Option) (*Store, error) {
	return platform.New(context.Background(), path, opts...)
}

// Init prepares the storage slot of a vault without loading it.
func Init(path string, opts ...Option) (core.Slot, error) {
	return platform.Init(context.Background(), path, opts...)
}

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
