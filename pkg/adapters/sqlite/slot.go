// Package sqlite stores the note collection as a single row of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/jot/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Config holds the configuration for the SQLite slot.
type Config struct {
	Path      string // Database file.
	Name      string // Row key; defaults to "notes".
	VaultDir  string // Vault directory the database belongs to; checked when MustExist is set.
	MustExist bool
	Logger    *slog.Logger
}

// Slot implements core.Slot on top of a SQLite table.
type Slot struct {
	config Config

	mu sync.Mutex
	db *sql.DB
}

// NewSlot creates a new SQLite-backed slot. The database is opened by Initialize.
func NewSlot(config Config) *Slot {
	if config.Name == "" {
		config.Name = "notes"
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Slot{config: config}
}

// Initialize opens the database and applies the schema.
func (s *Slot) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	if s.config.MustExist {
		vault := s.config.VaultDir
		if vault == "" {
			vault = filepath.Dir(s.config.Path)
		}
		info, err := os.Stat(vault)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", vault)
		}
		if err != nil {
			return fmt.Errorf("failed to stat vault: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", vault)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.config.Path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.config.Path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps writes serialized and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	s.db = db
	s.config.Logger.Debug("sqlite slot ready", "path", s.config.Path, "name", s.config.Name)
	return nil
}

func (s *Slot) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, errors.New("sqlite slot is not initialized")
	}
	return s.db, nil
}

// Read returns the stored payload or core.ErrSlotEmpty.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var data []byte
	err = db.QueryRowContext(ctx, `SELECT data FROM slots WHERE name = ?`, s.config.Name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.config.Name, err)
	}
	return data, nil
}

// Write upserts the payload.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO slots (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.config.Name, data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.config.Name, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Slot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SlotState exposes internal state for observability.
type SlotState struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Open bool   `json:"open"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SlotState{Path: s.config.Path, Name: s.config.Name, Open: s.db != nil}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "sqlite-slot"
}
