package ports

import (
	"context"

	"dreamscape/domain/dream"
	"dreamscape/domain/graph"
)

// EntryRepository persists journal entries.
type EntryRepository interface {
	// Append stores a new entry after the existing ones.
	Append(ctx context.Context, entry dream.Entry) error

	// List returns every stored entry in insertion order.
	List(ctx context.Context) ([]dream.Entry, error)
}

// GraphRepository persists the current co-occurrence snapshot.
type GraphRepository interface {
	// Load returns the current snapshot, or an empty one when nothing
	// has been stored yet.
	Load(ctx context.Context) (*graph.Snapshot, error)

	// Save replaces the stored snapshot wholesale.
	Save(ctx context.Context, snapshot *graph.Snapshot) error
}
