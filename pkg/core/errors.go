package core

import "errors"

// Common errors.
var (
	// ErrSlotEmpty is returned by a Slot when nothing has been written to it yet.
	ErrSlotEmpty = errors.New("slot is empty")

	// ErrMalformed is returned when persisted data is not a valid note collection.
	ErrMalformed = errors.New("malformed note collection")

	// ErrNotWatchable is returned by Follow when the slot cannot report external changes.
	ErrNotWatchable = errors.New("slot does not support watching")
)
