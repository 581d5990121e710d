// internal/render/trail.go
package render

// Point is a position on the ground plane.
type Point struct {
	X, Z float64
}

// Trail remembers the last few positions of a moving object, newest last.
type Trail struct {
	points []Point
	max    int
}

func NewTrail(max int) *Trail {
	if max < 1 {
		max = 1
	}
	return &Trail{points: make([]Point, 0, max), max: max}
}

// Push appends a position, dropping the oldest one when full. A repeat of the
// newest point is ignored.
func (t *Trail) Push(x, z float64) {
	p := Point{X: x, Z: z}
	if n := len(t.points); n > 0 && t.points[n-1] == p {
		return
	}
	if len(t.points) == t.max {
		copy(t.points, t.points[1:])
		t.points = t.points[:t.max-1]
	}
	t.points = append(t.points, p)
}

// Points returns the stored positions, oldest first. The slice is reused by
// the next Push.
func (t *Trail) Points() []Point { return t.points }

// Fade returns the opacity of the i-th point: 1 for the newest, falling
// towards 0 for the oldest.
func (t *Trail) Fade(i int) float64 {
	n := len(t.points)
	if n == 0 || i < 0 || i >= n {
		return 0
	}
	return float64(i+1) / float64(n)
}
