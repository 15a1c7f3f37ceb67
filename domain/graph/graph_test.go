package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want float64
	}{
		{"weight field", `{"source":"a","target":"b","weight":3}`, 3},
		{"value field", `{"source":"a","target":"b","value":2}`, 2},
		{"weight preferred over value", `{"source":"a","target":"b","weight":5,"value":2}`, 5},
		{"neither defaults to one", `{"source":"a","target":"b"}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var link Link
			require.NoError(t, json.Unmarshal([]byte(tt.json), &link))
			assert.Equal(t, "a", link.Source)
			assert.Equal(t, "b", link.Target)
			assert.Equal(t, tt.want, link.Weight)
		})
	}
}

func TestSnapshotUnmarshal(t *testing.T) {
	payload := `{
		"nodes": [{"id":"Ocean"},{"id":"Moon"}],
		"links": [{"source":"Ocean","target":"Moon","value":4}]
	}`

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snapshot))

	assert.Len(t, snapshot.Nodes, 2)
	require.Len(t, snapshot.Links, 1)
	assert.Equal(t, 4.0, snapshot.Links[0].Weight)
	assert.True(t, snapshot.HasNode("Ocean"))
	assert.False(t, snapshot.HasNode("Forest"))
}

func TestEmptyMarshalsAsArrays(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"links":[]}`, string(data))
}

func TestWeightRange(t *testing.T) {
	snapshot := &Snapshot{
		Links: []Link{
			{Source: "a", Target: "b", Weight: 2},
			{Source: "b", Target: "c", Weight: 7},
			{Source: "c", Target: "d", Weight: 1},
		},
	}

	min, max := snapshot.WeightRange()
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 7.0, max)

	min, max = Empty().WeightRange()
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestBuildCountsCoOccurrences(t *testing.T) {
	entries := [][]string{
		{"Ocean", "Moon", "Ship"},
		{"Ocean", "Moon"},
		{"Forest"},
	}

	snapshot := Build(entries)

	assert.Equal(t, []Node{{ID: "Forest"}, {ID: "Moon"}, {ID: "Ocean"}, {ID: "Ship"}}, snapshot.Nodes)
	require.Len(t, snapshot.Links, 3)

	weights := make(map[string]float64)
	for _, l := range snapshot.Links {
		weights[l.Source+"-"+l.Target] = l.Weight
	}
	assert.Equal(t, 2.0, weights["Moon-Ocean"])
	assert.Equal(t, 1.0, weights["Moon-Ship"])
	assert.Equal(t, 1.0, weights["Ocean-Ship"])
}

func TestBuildSkipsBlanksAndDuplicates(t *testing.T) {
	snapshot := Build([][]string{{"Ocean", "", "  ", "Ocean"}})

	assert.Equal(t, []Node{{ID: "Ocean"}}, snapshot.Nodes)
	assert.Empty(t, snapshot.Links)
}

func TestBuildIsDeterministic(t *testing.T) {
	entries := [][]string{
		{"Delta", "Alpha", "Charlie"},
		{"Bravo", "Alpha"},
	}

	first, err := json.Marshal(Build(entries))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := json.Marshal(Build(entries))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
