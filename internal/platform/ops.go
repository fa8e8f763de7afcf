package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
)

// Init builds and initializes the slot for the vault at uri.
// The uri is adapter-specific: a vault directory for "fs" and "sqlite", ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.Slot, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	slot, err := buildSlot(uri, o)
	if err != nil {
		return nil, err
	}

	if err := slot.Initialize(ctx); err != nil {
		return nil, err
	}
	return slot, nil
}

// New builds the slot and returns a hydrated store on top of it.
//
//	store, err := platform.New(ctx, "./vault", platform.WithAdapter("sqlite"))
func New(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	slot, err := buildSlot(uri, o)
	if err != nil {
		return nil, err
	}

	storeOpts := []core.StoreOption{core.WithStoreLogger(o.logger)}
	if size, ok := o.config["event_buffer"].(int); ok {
		storeOpts = append(storeOpts, core.WithEventBuffer(size))
	}

	store := core.NewStore(slot, storeOpts...)
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("store ready", "adapter", o.adapter, "uri", uri, "notes", store.Len())
	}
	return store, nil
}

func buildSlot(uri string, o *options) (core.Slot, error) {
	if o.slot != nil {
		return o.slot, nil
	}

	systemDir, _ := o.config["system_dir"].(string)
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	name, _ := o.config["slot_name"].(string)
	if name == "" {
		name = fs.DefaultSlotName
	}
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	switch o.adapter {
	case AdapterFS:
		return fs.NewSlot(fs.Config{
			Path:         uri,
			SystemDir:    systemDir,
			Name:         name,
			MustExist:    mustExist,
			Logger:       o.logger,
			ErrorHandler: errorHandler,
		}), nil
	case AdapterSQLite:
		return sqlite.NewSlot(sqlite.Config{
			Path:      filepath.Join(uri, systemDir, "jot.db"),
			Name:      name,
			VaultDir:  uri,
			MustExist: mustExist,
			Logger:    o.logger,
		}), nil
	case AdapterMemory:
		return memory.NewSlot(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
