package platform

import (
	"log/slog"

	"github.com/aretw0/jot/pkg/core"
)

// Adapter names.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the jot store.
type options struct {
	slot    core.Slot
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		slot:    nil,
		logger:  nil,
		adapter: AdapterFS,
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the store and its slot.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSlot allows injecting a custom storage slot (e.g. mock).
// If provided, adapter selection is skipped.
func WithSlot(slot core.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir sets the hidden directory name inside the vault (e.g. ".jot").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithSlotName sets the name of the slot holding the notes. Defaults to "notes".
func WithSlotName(name string) Option {
	return func(o *options) {
		o.config["slot_name"] = name
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithEventBuffer sets the per-subscriber event buffer of the store.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while watching the slot.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
