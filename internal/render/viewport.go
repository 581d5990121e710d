// internal/render/viewport.go
package render

import (
	"math"

	"knife-arena/internal/component"
)

// Viewport maps the ground plane onto a flat surface (pixels or terminal
// cells). The arena origin sits in the middle of the surface and +z points
// down the screen.
type Viewport struct {
	Width, Height  int
	ScaleX, ScaleZ float64 // surface units per world unit
}

// NewViewport uses the same scale on both axes.
func NewViewport(width, height int, scale float64) Viewport {
	return Viewport{Width: width, Height: height, ScaleX: scale, ScaleZ: scale}
}

// FitViewport picks the largest scale that shows all of r. aspect is the
// height of one surface unit divided by its width (about 2 for terminal
// cells, 1 for pixels).
func FitViewport(width, height int, r component.Rect, aspect float64) Viewport {
	if aspect <= 0 {
		aspect = 1
	}
	w := math.Max(math.Abs(r.MinX), math.Abs(r.MaxX)) * 2
	d := math.Max(math.Abs(r.MinZ), math.Abs(r.MaxZ)) * 2
	if w <= 0 || d <= 0 || width <= 0 || height <= 0 {
		return Viewport{Width: width, Height: height, ScaleX: 1, ScaleZ: 1}
	}
	sx := float64(width) / w
	sz := float64(height) * aspect / d
	s := math.Min(sx, sz)
	return Viewport{Width: width, Height: height, ScaleX: s, ScaleZ: s / aspect}
}

// ToScreen converts a world position to surface coordinates.
func (v Viewport) ToScreen(x, z float64) (float64, float64) {
	return float64(v.Width)/2 + x*v.ScaleX, float64(v.Height)/2 + z*v.ScaleZ
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(sx, sy float64) (float64, float64) {
	if v.ScaleX == 0 || v.ScaleZ == 0 {
		return 0, 0
	}
	return (sx - float64(v.Width)/2) / v.ScaleX, (sy - float64(v.Height)/2) / v.ScaleZ
}

// Cell rounds a world position to the surface cell that contains it.
func (v Viewport) Cell(x, z float64) (int, int) {
	sx, sy := v.ToScreen(x, z)
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// Inside reports whether a cell is on the surface.
func (v Viewport) Inside(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < v.Width && cy < v.Height
}

// FitScale returns the uniform scale that makes a model of the given
// footprint fit inside width × depth.
func FitScale(sizeX, sizeZ, width, depth float64) float64 {
	if sizeX <= 0 || sizeZ <= 0 {
		return 1
	}
	return math.Min(width/sizeX, depth/sizeZ)
}
