package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeNotes serializes a collection into the persisted slot layout: a JSON array of notes.
func EncodeNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return data, nil
}

// DecodeNotes parses the persisted slot layout.
// Anything other than a JSON array of notes carrying an id and a timestamp yields ErrMalformed.
func DecodeNotes(data []byte) ([]Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	var notes []Note
	if err := json.Unmarshal(trimmed, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for i, n := range notes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: note %d has no id", ErrMalformed, i)
		}
		if n.CreatedAt.IsZero() {
			return nil, fmt.Errorf("%w: note %s has no timestamp", ErrMalformed, n.ID)
		}
	}
	return notes, nil
}
