// internal/render/pick.go
package render

import "math"

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// GroundHit intersects a ray with the ground plane y = 0. It fails when the
// ray runs parallel to the ground or points away from it.
func GroundHit(origin, dir Vec3) (x, z float64, ok bool) {
	if math.Abs(dir.Y) < 1e-9 {
		return 0, 0, false
	}
	t := -origin.Y / dir.Y
	if t < 0 {
		return 0, 0, false
	}
	return origin.X + dir.X*t, origin.Z + dir.Z*t, true
}
