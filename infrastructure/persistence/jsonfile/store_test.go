package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dreamscape/domain/dream"
	"dreamscape/domain/graph"
)

func TestEntryStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewEntryStore(dir, zap.NewNop())
	ctx := context.Background()

	first, err := dream.NewEntry("a Moon over the Ocean", []string{"Moon", "Ocean"})
	require.NoError(t, err)
	second, err := dream.NewEntry("a Ship in a Storm", []string{"Ship", "Storm"})
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, []string{"Ship", "Storm"}, entries[1].Entities)
}

func TestEntryStoreEmptyWhenFileMissing(t *testing.T) {
	store := NewEntryStore(t.TempDir(), zap.NewNop())

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryStoreRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dreams.json"), []byte("{not json"), 0o644))

	store := NewEntryStore(dir, zap.NewNop())
	ctx := context.Background()

	entry, err := dream.NewEntry("a Garden behind the House", []string{"Garden", "House"})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, entry))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestGraphStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewGraphStore(dir, zap.NewNop())
	ctx := context.Background()

	snapshot := &graph.Snapshot{
		Nodes: []graph.Node{{ID: "Moon"}, {ID: "Ocean"}},
		Links: []graph.Link{{Source: "Moon", Target: "Ocean", Weight: 2}},
	}
	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Nodes, loaded.Nodes)
	assert.Equal(t, snapshot.Links, loaded.Links)
}

func TestGraphStoreDefaultsWhenMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewGraphStore(dir, zap.NewNop())

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Nodes)
	assert.Empty(t, loaded.Links)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cooccurrences.json"), []byte("]["), 0o644))
	loaded, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Nodes)
	assert.Empty(t, loaded.Links)
}

func TestGraphStoreLegacyValueField(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"nodes":[{"id":"a"},{"id":"b"}],"links":[{"source":"a","target":"b","value":3}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cooccurrences.json"), []byte(legacy), 0o644))

	store := NewGraphStore(dir, zap.NewNop())
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, loaded.Links, 1)
	assert.Equal(t, 3.0, loaded.Links[0].Weight)
}
