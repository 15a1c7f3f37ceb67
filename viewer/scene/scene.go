package scene

import (
	"errors"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"dreamscape/domain/graph"
)

// ErrFontNotReady means the label mesher (the loaded font) is not
// available yet. The render call is a no-op; the caller retries later.
var ErrFontNotReady = errors.New("scene: label font not loaded")

// cubeExtent is the half-size of the cube new nodes are scattered in.
const cubeExtent = 60.0

// LabelMesher measures label text into world-unit dimensions. The
// raylib viewer backs this with its loaded font; tests use a fixed-size
// implementation.
type LabelMesher interface {
	Measure(text string) rl.Vector2
}

// NodeMesh is the visual primitive for one node: a 3D text label with
// an axis-aligned bounding box used for picking.
type NodeMesh struct {
	ID          string
	Position    rl.Vector3
	HalfExtents rl.Vector3
	Color       rl.Color

	// Incident holds every rendered line touching this node. Dropped
	// links never appear here.
	Incident []*LinePrimitive
}

// Bounds returns the mesh's world-space bounding box at its current
// position.
func (m *NodeMesh) Bounds() rl.BoundingBox {
	return rl.BoundingBox{
		Min: rl.NewVector3(
			m.Position.X-m.HalfExtents.X,
			m.Position.Y-m.HalfExtents.Y,
			m.Position.Z-m.HalfExtents.Z,
		),
		Max: rl.NewVector3(
			m.Position.X+m.HalfExtents.X,
			m.Position.Y+m.HalfExtents.Y,
			m.Position.Z+m.HalfExtents.Z,
		),
	}
}

// LinePrimitive is the visual primitive for one resolved link. From/To
// are the line's endpoint vertices, rewritten in place every simulation
// step rather than reallocated.
type LinePrimitive struct {
	Source *NodeMesh
	Target *NodeMesh
	From   rl.Vector3
	To     rl.Vector3
	Weight float64

	// BaseColor is the weight-derived color; Color is what gets drawn.
	// They differ only while the line is highlighted.
	BaseColor   rl.Color
	baseColorOK bool
	Color       rl.Color
	Highlighted bool
}

// SetBaseColor records the weight-derived color and, unless the line is
// highlighted, applies it as the draw color.
func (l *LinePrimitive) SetBaseColor(c rl.Color) {
	l.BaseColor = c
	l.baseColorOK = true
	if !l.Highlighted {
		l.Color = c
	}
}

// RestoreBaseColor resets the draw color to the recorded base color, or
// neutral gray when none was ever recorded.
func (l *LinePrimitive) RestoreBaseColor() {
	l.Highlighted = false
	if l.baseColorOK {
		l.Color = l.BaseColor
		return
	}
	l.Color = NeutralLineColor
}

// Scene holds the visual state for the current snapshot: node meshes,
// line primitives, and the id index used to resolve links and picks.
type Scene struct {
	Meshes []*NodeMesh
	Lines  []*LinePrimitive

	byID      map[string]*NodeMesh
	mesher    LabelMesher
	rng       *rand.Rand
	minWeight float64
	maxWeight float64
}

// New creates an empty scene. mesher may be nil while the font is still
// loading; Rebuild reports ErrFontNotReady until SetLabelMesher is
// called.
func New(mesher LabelMesher) *Scene {
	return &Scene{
		byID:   make(map[string]*NodeMesh),
		mesher: mesher,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
}

// SetLabelMesher installs the font-backed mesher once it is loaded.
func (s *Scene) SetLabelMesher(m LabelMesher) {
	s.mesher = m
}

// FontReady reports whether the scene can build label meshes.
func (s *Scene) FontReady() bool {
	return s.mesher != nil
}

// WeightRange returns the weight range recorded at the last rebuild.
func (s *Scene) WeightRange() (min, max float64) {
	return s.minWeight, s.maxWeight
}

// NodeByID returns the mesh for a node id, or nil.
func (s *Scene) NodeByID(id string) *NodeMesh {
	return s.byID[id]
}

// Rebuild replaces all visual primitives with ones built from the
// snapshot. Prior meshes and lines are discarded wholesale; nothing is
// diffed. Links whose source or target id has no node are dropped
// silently and never join an incident list.
func (s *Scene) Rebuild(snapshot *graph.Snapshot) error {
	if s.mesher == nil {
		return ErrFontNotReady
	}

	s.Meshes = s.Meshes[:0]
	s.Lines = s.Lines[:0]
	s.byID = make(map[string]*NodeMesh, len(snapshot.Nodes))

	for _, node := range snapshot.Nodes {
		size := s.mesher.Measure(node.ID)
		mesh := &NodeMesh{
			ID:       node.ID,
			Position: s.randomCubePosition(),
			HalfExtents: rl.NewVector3(
				size.X/2,
				size.Y/2,
				size.Y/2,
			),
			Color: DefaultNodeColor,
		}
		s.Meshes = append(s.Meshes, mesh)
		s.byID[node.ID] = mesh
	}

	s.minWeight, s.maxWeight = snapshot.WeightRange()

	for _, link := range snapshot.Links {
		source := s.byID[link.Source]
		target := s.byID[link.Target]
		if source == nil || target == nil {
			continue
		}

		line := &LinePrimitive{
			Source: source,
			Target: target,
			From:   source.Position,
			To:     target.Position,
			Weight: link.Weight,
		}
		line.SetBaseColor(WeightColor(link.Weight, s.minWeight, s.maxWeight))

		s.Lines = append(s.Lines, line)
		source.Incident = append(source.Incident, line)
		target.Incident = append(target.Incident, line)
	}

	return nil
}

// randomCubePosition returns a uniform random point inside the
// placement cube centered at the origin.
func (s *Scene) randomCubePosition() rl.Vector3 {
	return rl.NewVector3(
		float32((s.rng.Float64()*2-1)*cubeExtent),
		float32((s.rng.Float64()*2-1)*cubeExtent),
		float32((s.rng.Float64()*2-1)*cubeExtent),
	)
}
