package dream

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "dreamscape/pkg/errors"
)

// Entry is a single journaled dream with the entities extracted from it.
type Entry struct {
	ID        string    `json:"id"`
	Dream     string    `json:"dream"`
	Entities  []string  `json:"entities"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntry creates an entry with validation. The dream text is trimmed
// and must be non-empty; entities may be empty when extraction found
// nothing.
func NewEntry(text string, entities []string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, pkgerrors.NewValidationError("dream text cannot be empty")
	}

	if entities == nil {
		entities = []string{}
	}

	return Entry{
		ID:        uuid.NewString(),
		Dream:     text,
		Entities:  entities,
		CreatedAt: time.Now().UTC(),
	}, nil
}
