package interact

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"dreamscape/viewer/scene"
)

// Pick casts the ray against the scene's node meshes and returns the
// nearest hit, or nil. Lines are never hit-tested; only labels pick.
func Pick(ray rl.Ray, sc *scene.Scene) *scene.NodeMesh {
	var nearest *scene.NodeMesh
	nearestDist := math.MaxFloat64

	for _, mesh := range sc.Meshes {
		dist, hit := rayBoxDistance(ray, mesh.Bounds())
		if hit && dist < nearestDist {
			nearest = mesh
			nearestDist = dist
		}
	}

	return nearest
}

// rayBoxDistance intersects a ray with an axis-aligned box using the
// slab method. It returns the distance along the ray to the entry
// point (zero when the ray starts inside) and whether the box was hit.
func rayBoxDistance(ray rl.Ray, box rl.BoundingBox) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	origins := [3]float64{float64(ray.Position.X), float64(ray.Position.Y), float64(ray.Position.Z)}
	dirs := [3]float64{float64(ray.Direction.X), float64(ray.Direction.Y), float64(ray.Direction.Z)}
	mins := [3]float64{float64(box.Min.X), float64(box.Min.Y), float64(box.Min.Z)}
	maxs := [3]float64{float64(box.Max.X), float64(box.Max.Y), float64(box.Max.Z)}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dirs[axis]) < 1e-12 {
			// Ray parallel to this slab: must already be inside it.
			if origins[axis] < mins[axis] || origins[axis] > maxs[axis] {
				return 0, false
			}
			continue
		}

		t1 := (mins[axis] - origins[axis]) / dirs[axis]
		t2 := (maxs[axis] - origins[axis]) / dirs[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		// Box entirely behind the ray.
		return 0, false
	}

	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
