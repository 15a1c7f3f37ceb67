package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"dreamscape/application/ports"
	"dreamscape/domain/dream"
	"dreamscape/domain/graph"
	pkgerrors "dreamscape/pkg/errors"
)

// JournalService owns the submit flow: extract entities from a new
// dream, persist the entry, and rebuild the co-occurrence snapshot from
// every entry so far.
type JournalService struct {
	entries   ports.EntryRepository
	graphs    ports.GraphRepository
	extractor dream.Extractor
	fallback  dream.Extractor
	logger    *zap.Logger
}

// NewJournalService creates a journal service. extractor may equal
// fallback when no language model is configured.
func NewJournalService(
	entries ports.EntryRepository,
	graphs ports.GraphRepository,
	extractor dream.Extractor,
	logger *zap.Logger,
) *JournalService {
	if extractor == nil {
		extractor = dream.FallbackExtractor{}
	}
	return &JournalService{
		entries:   entries,
		graphs:    graphs,
		extractor: extractor,
		fallback:  dream.FallbackExtractor{},
		logger:    logger,
	}
}

// SubmitResult is what a successful submission returns: the stored
// entry plus the rebuilt snapshot.
type SubmitResult struct {
	Entry dream.Entry     `json:"entry"`
	Graph *graph.Snapshot `json:"graph"`
}

// Submit validates and stores a dream entry, then rebuilds and persists
// the co-occurrence graph over all entries. The entry is not stored if
// extraction fails outright (the fallback extractor never does).
func (s *JournalService) Submit(ctx context.Context, text string) (*SubmitResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.NewValidationError("dream text is required")
	}

	entities, err := s.extractor.Extract(ctx, text)
	if err != nil {
		s.logger.Warn("entity extraction failed, using fallback",
			zap.Error(err),
		)
		entities, err = s.fallback.Extract(ctx, text)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "extract entities")
		}
	}

	entry, err := dream.NewEntry(text, entities)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Append(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(err, "store entry")
	}

	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list entries")
	}

	entitySets := make([][]string, 0, len(all))
	for _, e := range all {
		entitySets = append(entitySets, e.Entities)
	}

	snapshot := graph.Build(entitySets)
	if err := s.graphs.Save(ctx, snapshot); err != nil {
		return nil, pkgerrors.Wrap(err, "store graph")
	}

	s.logger.Info("dream submitted",
		zap.String("entryID", entry.ID),
		zap.Int("entities", len(entry.Entities)),
		zap.Int("nodes", len(snapshot.Nodes)),
		zap.Int("links", len(snapshot.Links)),
	)

	return &SubmitResult{Entry: entry, Graph: snapshot}, nil
}

// Graph returns the current co-occurrence snapshot.
func (s *JournalService) Graph(ctx context.Context) (*graph.Snapshot, error) {
	snapshot, err := s.graphs.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load graph")
	}
	return snapshot, nil
}
