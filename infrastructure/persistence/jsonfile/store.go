package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"dreamscape/domain/dream"
	"dreamscape/domain/graph"
	pkgerrors "dreamscape/pkg/errors"
)

const (
	entriesFilename = "dreams.json"
	graphFilename   = "cooccurrences.json"
)

// entriesDocument is the on-disk shape of the journal.
type entriesDocument struct {
	Entries []dream.Entry `json:"entries"`
}

// EntryStore persists journal entries in a single JSON document.
// A missing, empty, or corrupt file reads as an empty journal.
type EntryStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewEntryStore creates an entry store under dataDir.
func NewEntryStore(dataDir string, logger *zap.Logger) *EntryStore {
	return &EntryStore{
		path:   filepath.Join(dataDir, entriesFilename),
		logger: logger,
	}
}

// Append stores a new entry after the existing ones.
func (s *EntryStore) Append(ctx context.Context, entry dream.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc entriesDocument
	s.loadOrDefault(&doc, entriesDocument{Entries: []dream.Entry{}})

	doc.Entries = append(doc.Entries, entry)

	if err := writeJSON(s.path, doc); err != nil {
		return pkgerrors.NewStorageError("append entry", err)
	}
	return nil
}

// List returns every stored entry in insertion order.
func (s *EntryStore) List(ctx context.Context) ([]dream.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc entriesDocument
	s.loadOrDefault(&doc, entriesDocument{Entries: []dream.Entry{}})

	return doc.Entries, nil
}

// loadOrDefault reads the document, falling back to def when the file
// is missing, empty, or not valid JSON. Mirrors the original backend's
// safe-default initialization.
func (s *EntryStore) loadOrDefault(doc *entriesDocument, def entriesDocument) {
	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		*doc = def
		return
	}
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn("journal file unreadable, starting from defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
		*doc = def
	}
	if doc.Entries == nil {
		doc.Entries = []dream.Entry{}
	}
}

// GraphStore persists the current co-occurrence snapshot as JSON.
type GraphStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewGraphStore creates a graph store under dataDir.
func NewGraphStore(dataDir string, logger *zap.Logger) *GraphStore {
	return &GraphStore{
		path:   filepath.Join(dataDir, graphFilename),
		logger: logger,
	}
}

// Load returns the stored snapshot, or an empty one when the file is
// missing, empty, or corrupt.
func (s *GraphStore) Load(ctx context.Context) (*graph.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		return graph.Empty(), nil
	}

	snapshot := graph.Empty()
	if err := json.Unmarshal(data, snapshot); err != nil {
		s.logger.Warn("graph file unreadable, starting from defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return graph.Empty(), nil
	}
	if snapshot.Nodes == nil {
		snapshot.Nodes = []graph.Node{}
	}
	if snapshot.Links == nil {
		snapshot.Links = []graph.Link{}
	}

	return snapshot, nil
}

// Save replaces the stored snapshot wholesale.
func (s *GraphStore) Save(ctx context.Context, snapshot *graph.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(s.path, snapshot); err != nil {
		return pkgerrors.NewStorageError("save graph", err)
	}
	return nil
}

// writeJSON writes the document atomically: temp file in the same
// directory, then rename over the target.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dreamscape-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
