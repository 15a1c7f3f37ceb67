package layout

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"dreamscape/viewer/scene"
)

// Config tunes the force simulation.
type Config struct {
	// Charge scales the pairwise inverse-square repulsion.
	Charge float64
	// SpringLength is the rest length links relax toward.
	SpringLength float64
	// SpringStrength scales the attraction along links.
	SpringStrength float64
	// CenterStrength pulls the whole layout toward the origin.
	CenterStrength float64
	// Damping bleeds velocity each step, keeping the layout stable.
	Damping float64
	// TimeStep is the integration step, in simulation seconds.
	TimeStep float64
}

// DefaultConfig returns tuning that settles a few dozen nodes within a
// couple of seconds at sixty steps per second.
func DefaultConfig() Config {
	return Config{
		Charge:         1200,
		SpringLength:   30,
		SpringStrength: 3,
		CenterStrength: 1.2,
		Damping:        0.85,
		TimeStep:       1.0 / 60.0,
	}
}

// Simulation relaxes a scene's node positions toward a force-directed
// equilibrium. One simulation owns one scene's layout; starting a new
// snapshot means stopping the old simulation and creating a fresh one.
// Step runs on the render thread, once per frame.
type Simulation struct {
	scene      *scene.Scene
	cfg        Config
	velocities []rl.Vector3
	stopped    bool
}

// New creates a simulation over the scene's current meshes. Callers
// replacing a prior simulation must Stop it first so no two simulations
// drive the same graph.
func New(sc *scene.Scene, cfg Config) *Simulation {
	return &Simulation{
		scene:      sc,
		cfg:        cfg,
		velocities: make([]rl.Vector3, len(sc.Meshes)),
	}
}

// Stop halts the simulation. Further Step calls are no-ops. Stop is
// idempotent.
func (s *Simulation) Stop() {
	s.stopped = true
}

// Stopped reports whether the simulation has been halted.
func (s *Simulation) Stopped() bool {
	return s.stopped
}

// Step advances the simulation one tick: accumulate forces, integrate,
// copy positions onto the meshes, and rewrite every line's endpoints
// and color in place.
func (s *Simulation) Step() {
	if s.stopped {
		return
	}

	meshes := s.scene.Meshes
	if len(s.velocities) != len(meshes) {
		s.velocities = make([]rl.Vector3, len(meshes))
	}

	forces := make([]rl.Vector3, len(meshes))

	// Pairwise charge repulsion.
	for i := 0; i < len(meshes); i++ {
		for j := i + 1; j < len(meshes); j++ {
			dx := float64(meshes[i].Position.X - meshes[j].Position.X)
			dy := float64(meshes[i].Position.Y - meshes[j].Position.Y)
			dz := float64(meshes[i].Position.Z - meshes[j].Position.Z)

			distSq := dx*dx + dy*dy + dz*dz
			if distSq < 1e-4 {
				// Coincident nodes get a tiny deterministic nudge so
				// the repulsion has a direction to act along.
				dx, dy, dz = 0.01*float64(i+1), 0.01, 0.01
				distSq = dx*dx + dy*dy + dz*dz
			}

			dist := math.Sqrt(distSq)
			magnitude := s.cfg.Charge / distSq

			fx := magnitude * dx / dist
			fy := magnitude * dy / dist
			fz := magnitude * dz / dist

			forces[i] = addVec(forces[i], fx, fy, fz)
			forces[j] = addVec(forces[j], -fx, -fy, -fz)
		}
	}

	// Spring attraction along links.
	index := meshIndex(meshes)
	for _, line := range s.scene.Lines {
		si, sok := index[line.Source]
		ti, tok := index[line.Target]
		if !sok || !tok {
			continue
		}

		dx := float64(line.Target.Position.X - line.Source.Position.X)
		dy := float64(line.Target.Position.Y - line.Source.Position.Y)
		dz := float64(line.Target.Position.Z - line.Source.Position.Z)

		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if dist < 1e-6 {
			continue
		}

		stretch := dist - s.cfg.SpringLength
		magnitude := s.cfg.SpringStrength * stretch

		fx := magnitude * dx / dist
		fy := magnitude * dy / dist
		fz := magnitude * dz / dist

		forces[si] = addVec(forces[si], fx, fy, fz)
		forces[ti] = addVec(forces[ti], -fx, -fy, -fz)
	}

	// Centering pull toward the origin.
	for i, mesh := range meshes {
		forces[i] = addVec(forces[i],
			-float64(mesh.Position.X)*s.cfg.CenterStrength,
			-float64(mesh.Position.Y)*s.cfg.CenterStrength,
			-float64(mesh.Position.Z)*s.cfg.CenterStrength,
		)
	}

	// Integrate and write positions back onto the meshes.
	for i, mesh := range meshes {
		v := s.velocities[i]
		v.X = float32((float64(v.X) + float64(forces[i].X)*s.cfg.TimeStep) * s.cfg.Damping)
		v.Y = float32((float64(v.Y) + float64(forces[i].Y)*s.cfg.TimeStep) * s.cfg.Damping)
		v.Z = float32((float64(v.Z) + float64(forces[i].Z)*s.cfg.TimeStep) * s.cfg.Damping)

		mesh.Position.X += v.X * float32(s.cfg.TimeStep)
		mesh.Position.Y += v.Y * float32(s.cfg.TimeStep)
		mesh.Position.Z += v.Z * float32(s.cfg.TimeStep)

		if !finiteVec(mesh.Position) {
			// A malformed position would poison every force next tick;
			// park the node at the origin and restart its motion.
			mesh.Position = rl.NewVector3(0, 0, 0)
			v = rl.NewVector3(0, 0, 0)
		}

		s.velocities[i] = v
	}

	s.syncLines()
}

// syncLines rewrites each line's endpoint vertices from its endpoint
// meshes and refreshes its weight color. Endpoints are mutated in
// place; a line whose endpoints went missing is skipped (the next
// rebuild drops it entirely).
func (s *Simulation) syncLines() {
	min, max := s.scene.WeightRange()

	for _, line := range s.scene.Lines {
		if line.Source == nil || line.Target == nil {
			continue
		}
		line.From = line.Source.Position
		line.To = line.Target.Position
		line.SetBaseColor(scene.WeightColor(line.Weight, min, max))
	}
}

func meshIndex(meshes []*scene.NodeMesh) map[*scene.NodeMesh]int {
	index := make(map[*scene.NodeMesh]int, len(meshes))
	for i, m := range meshes {
		index[m] = i
	}
	return index
}

func addVec(v rl.Vector3, x, y, z float64) rl.Vector3 {
	v.X += float32(x)
	v.Y += float32(y)
	v.Z += float32(z)
	return v
}

func finiteVec(v rl.Vector3) bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0) &&
		!math.IsNaN(float64(v.Z)) && !math.IsInf(float64(v.Z), 0)
}
