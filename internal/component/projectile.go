// internal/component/projectile.go
package component

import (
	"knife-arena/internal/types"
)

// Projectile is a thrown knife in flight. Velocity has a constant magnitude
// on the xz plane; Spin is cosmetic.
type Projectile struct {
	ID     types.EntityID
	Owner  types.PlayerID
	X, Z   float64
	VX, VZ float64 // units per second
	Spin   float64
	Yaw    float64 // heading of the blade, derived from the velocity
}

// Target returns the only combatant this projectile can hit.
func (p *Projectile) Target() types.PlayerID {
	return p.Owner.Other()
}
