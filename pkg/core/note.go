package core

import (
	"encoding/json"
	"time"
)

// Note is the central entity of the domain.
// It is an immutable record of user-authored text with an identity and a creation time.
type Note struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
}

// noteWire is the persisted shape of a Note.
// Older slots stored the timestamp under "date"; "createdAt" wins when both are present.
type noteWire struct {
	ID        string     `json:"id"`
	CreatedAt *time.Time `json:"createdAt"`
	Date      *time.Time `json:"date"`
	Content   string     `json:"content"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Note) UnmarshalJSON(data []byte) error {
	var w noteWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	n.ID = w.ID
	n.Content = w.Content
	n.CreatedAt = time.Time{}
	switch {
	case w.CreatedAt != nil:
		n.CreatedAt = *w.CreatedAt
	case w.Date != nil:
		n.CreatedAt = *w.Date
	}
	return nil
}
