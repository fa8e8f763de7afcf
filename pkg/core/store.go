package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultEventBuffer = 100

// Store is the authoritative in-memory list of notes, kept newest-first and
// rewritten whole to its Slot after every mutation.
type Store struct {
	slot   Slot
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu               sync.RWMutex
	notes            []Note
	initialized      bool
	malformedDropped bool
	lastPersist      *time.Time

	subMu           sync.Mutex
	subs            map[chan Event]struct{}
	eventBufferSize int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for diagnostics.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp new notes.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides how note IDs are generated.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewStore creates a Store on top of the given slot. Call Initialize before use.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:            slot,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
		newID:           uuid.NewString,
		subs:            make(map[chan Event]struct{}),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize prepares the slot and hydrates the collection from it.
//
// A missing slot starts an empty collection. A malformed slot is dropped: the store
// starts empty, a warning is logged and State reports MalformedDropped. The slot itself
// is left untouched until the next mutation. Only I/O failures are returned.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.slot.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize slot: %w", err)
	}
	return s.hydrate(ctx)
}

// Reload re-reads the slot, replacing the in-memory collection.
// It is used when another process changed the slot.
func (s *Store) Reload(ctx context.Context) error {
	if err := s.hydrate(ctx); err != nil {
		return err
	}
	s.publish(Event{Type: EventReload, Timestamp: s.now().Unix()})
	return nil
}

func (s *Store) hydrate(ctx context.Context) error {
	data, err := s.slot.Read(ctx)
	if err != nil && !errors.Is(err, ErrSlotEmpty) {
		return fmt.Errorf("failed to read slot: %w", err)
	}

	var notes []Note
	dropped := false
	if err == nil {
		notes, err = DecodeNotes(data)
		if err != nil {
			s.logger.Warn("dropping malformed note collection", "error", err, "bytes", len(data))
			notes = nil
			dropped = true
		}
	}

	s.mu.Lock()
	s.notes = notes
	s.initialized = true
	s.malformedDropped = dropped
	s.mu.Unlock()

	s.logger.Debug("store hydrated", "notes", len(notes))
	return nil
}

// Create stamps a new note with a fresh ID and the current time, prepends it and
// persists the collection. Content is not re-validated here: the entry form owns that rule.
func (s *Store) Create(ctx context.Context, content string) (Note, error) {
	note := Note{
		ID:        s.newID(),
		CreatedAt: s.now().UTC().Round(0),
		Content:   content,
	}

	s.mu.Lock()
	next := make([]Note, 0, len(s.notes)+1)
	next = append(next, note)
	next = append(next, s.notes...)
	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return Note{}, err
	}
	s.mu.Unlock()

	s.logger.Debug("note created", "id", note.ID)
	s.publish(Event{Type: EventCreate, ID: note.ID, Timestamp: note.CreatedAt.Unix()})
	return note, nil
}

// Delete removes the note with the given ID. Deleting an unknown ID is a no-op, not an error.
// The resulting collection is persisted either way.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]Note, 0, len(s.notes))
	removed := false
	for _, n := range s.notes {
		if n.ID == id {
			removed = true
			continue
		}
		next = append(next, n)
	}
	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if removed {
		s.logger.Debug("note deleted", "id", id)
		s.publish(Event{Type: EventDelete, ID: id, Timestamp: s.now().Unix()})
	}
	return nil
}

// persistLocked writes next to the slot and, only on success, makes it the current collection.
// Caller must hold s.mu.
func (s *Store) persistLocked(ctx context.Context, next []Note) error {
	data, err := EncodeNotes(next)
	if err != nil {
		return err
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	s.notes = next
	now := s.now()
	s.lastPersist = &now
	return nil
}

// Search returns, in collection order, the notes whose content contains query, ignoring case.
// An empty query returns the whole collection.
func (s *Store) Search(query string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return cloneNotes(s.notes)
	}

	needle := strings.ToLower(query)
	result := make([]Note, 0)
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Content), needle) {
			result = append(result, n)
		}
	}
	return result
}

// Notes returns a snapshot of the collection, newest first.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Get looks a note up by ID.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Subscribe returns a stream of store events until ctx is done.
// Events are buffered; a subscriber that falls behind misses events instead of blocking writers.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, s.eventBufferSize)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	context.AfterFunc(ctx, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	})
	return ch
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.logger.Debug("subscriber lagging, event dropped", "event", e.String())
		}
	}
}

// Follow reloads the collection whenever the slot reports an external change,
// until ctx is done. Reload failures are logged and do not stop the loop.
func (s *Store) Follow(ctx context.Context) error {
	ws, ok := s.slot.(WatchableSlot)
	if !ok {
		return ErrNotWatchable
	}
	changes, err := ws.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch slot: %w", err)
	}
	for range changes {
		if err := s.Reload(ctx); err != nil {
			s.logger.Error("failed to reload after external change", "error", err)
			continue
		}
		s.logger.Debug("reloaded after external change", "notes", s.Len())
	}
	return ctx.Err()
}

// Slot returns the slot the store persists to.
func (s *Store) Slot() Slot {
	return s.slot
}

// Close releases the slot when it holds resources (a database handle).
func (s *Store) Close() error {
	if c, ok := s.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}
