// internal/component/effect.go
package component

import "knife-arena/internal/types"

// Particle is one droplet of a hit effect.
type Particle struct {
	X, Y, Z    float64
	VX, VY, VZ float64
}

// Effect is a cosmetic blood burst spawned where a knife landed. It has no
// influence on the simulation and is dropped when Life reaches zero.
type Effect struct {
	ID        types.EntityID
	Particles []Particle
	Life      float64 // 1 → 0
	Decay     float64 // per step
}

// Alive reports whether the effect should still be drawn.
func (e *Effect) Alive() bool {
	return e.Life > 0
}
