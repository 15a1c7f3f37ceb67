package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamscape/domain/graph"
)

// fixedMesher sizes every label the same, standing in for the font.
type fixedMesher struct{}

func (fixedMesher) Measure(text string) rl.Vector2 {
	return rl.NewVector2(float32(len(text))*2, 4)
}

func testSnapshot() *graph.Snapshot {
	return &graph.Snapshot{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Links: []graph.Link{
			{Source: "a", Target: "b", Weight: 1},
			{Source: "b", Target: "c", Weight: 5},
			{Source: "a", Target: "x", Weight: 3},
		},
	}
}

func TestRebuildRequiresFont(t *testing.T) {
	s := New(nil)

	err := s.Rebuild(testSnapshot())
	require.ErrorIs(t, err, ErrFontNotReady)
	assert.Empty(t, s.Meshes)

	s.SetLabelMesher(fixedMesher{})
	require.NoError(t, s.Rebuild(testSnapshot()))
	assert.Len(t, s.Meshes, 3)
}

func TestRebuildDropsUnresolvedLinks(t *testing.T) {
	s := New(fixedMesher{})
	require.NoError(t, s.Rebuild(testSnapshot()))

	// The a-x link has no x node and must be dropped.
	require.Len(t, s.Lines, 2)

	for _, mesh := range s.Meshes {
		for _, line := range mesh.Incident {
			assert.NotNil(t, s.NodeByID(line.Source.ID))
			assert.NotNil(t, s.NodeByID(line.Target.ID))
		}
	}

	// Incident lists: a has 1 line, b has 2, c has 1.
	assert.Len(t, s.NodeByID("a").Incident, 1)
	assert.Len(t, s.NodeByID("b").Incident, 2)
	assert.Len(t, s.NodeByID("c").Incident, 1)
}

func TestRebuildAssignsWeightColors(t *testing.T) {
	s := New(fixedMesher{})
	require.NoError(t, s.Rebuild(testSnapshot()))

	var low, high *LinePrimitive
	for _, line := range s.Lines {
		switch line.Weight {
		case 1:
			low = line
		case 5:
			high = line
		}
	}
	require.NotNil(t, low)
	require.NotNil(t, high)

	min, max := s.WeightRange()
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 5.0, max)
	assert.Equal(t, WeightColor(1, 1, 5), low.Color)
	assert.Equal(t, WeightColor(5, 1, 5), high.Color)
	assert.Equal(t, lowWeightColor, low.Color)
	assert.Equal(t, highWeightColor, high.Color)
}

func TestRebuildReplacesWholesale(t *testing.T) {
	s := New(fixedMesher{})
	require.NoError(t, s.Rebuild(testSnapshot()))

	replacement := &graph.Snapshot{
		Nodes: []graph.Node{{ID: "Moon"}},
		Links: []graph.Link{},
	}
	require.NoError(t, s.Rebuild(replacement))

	assert.Len(t, s.Meshes, 1)
	assert.Empty(t, s.Lines)
	assert.Nil(t, s.NodeByID("a"))
	assert.NotNil(t, s.NodeByID("Moon"))
	assert.Empty(t, s.NodeByID("Moon").Incident)
}

func TestRebuildPlacesNodesInsideCube(t *testing.T) {
	s := New(fixedMesher{})

	nodes := make([]graph.Node, 50)
	for i := range nodes {
		nodes[i] = graph.Node{ID: string(rune('A' + i%26)) + string(rune('a'+i/26))}
	}
	require.NoError(t, s.Rebuild(&graph.Snapshot{Nodes: nodes}))

	for _, mesh := range s.Meshes {
		assert.LessOrEqual(t, float64(mesh.Position.X), cubeExtent)
		assert.GreaterOrEqual(t, float64(mesh.Position.X), -cubeExtent)
		assert.LessOrEqual(t, float64(mesh.Position.Y), cubeExtent)
		assert.GreaterOrEqual(t, float64(mesh.Position.Y), -cubeExtent)
		assert.LessOrEqual(t, float64(mesh.Position.Z), cubeExtent)
		assert.GreaterOrEqual(t, float64(mesh.Position.Z), -cubeExtent)
	}
}

func TestWeightColorMonotonic(t *testing.T) {
	min, max := 1.0, 9.0

	prev := WeightColor(min, min, max)
	for w := min + 1; w <= max; w++ {
		next := WeightColor(w, min, max)
		assert.GreaterOrEqual(t, next.R, prev.R, "red must not decrease with weight")
		assert.LessOrEqual(t, next.B, prev.B, "blue must not increase with weight")
		prev = next
	}

	assert.Equal(t, lowWeightColor, WeightColor(min, min, max))
	assert.Equal(t, highWeightColor, WeightColor(max, min, max))
}

func TestWeightColorDegenerateRange(t *testing.T) {
	// min == max must not divide by zero; everything gets the low hue.
	assert.Equal(t, lowWeightColor, WeightColor(4, 4, 4))
	assert.Equal(t, lowWeightColor, WeightColor(0, 0, 0))
}

func TestWeightColorClampsOutOfRange(t *testing.T) {
	assert.Equal(t, lowWeightColor, WeightColor(-10, 0, 5))
	assert.Equal(t, highWeightColor, WeightColor(50, 0, 5))
}

func TestRestoreBaseColor(t *testing.T) {
	line := &LinePrimitive{}
	line.RestoreBaseColor()
	assert.Equal(t, NeutralLineColor, line.Color, "no recorded base color falls back to gray")

	line.SetBaseColor(WeightColor(2, 1, 5))
	line.Highlighted = true
	line.Color = HighlightColor
	line.RestoreBaseColor()
	assert.False(t, line.Highlighted)
	assert.Equal(t, WeightColor(2, 1, 5), line.Color)
}

func TestBounds(t *testing.T) {
	mesh := &NodeMesh{
		Position:    rl.NewVector3(10, -4, 2),
		HalfExtents: rl.NewVector3(3, 1, 1),
	}

	box := mesh.Bounds()
	assert.Equal(t, rl.NewVector3(7, -5, 1), box.Min)
	assert.Equal(t, rl.NewVector3(13, -3, 3), box.Max)
}
