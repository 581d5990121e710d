// internal/system/movement.go
package system

import (
	"math"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// MovementSystem walks combatants toward their targets.
type MovementSystem struct {
	world *entity.World
}

func NewMovementSystem(world *entity.World) *MovementSystem {
	return &MovementSystem{world: world}
}

// Update advances every moving combatant by one step of deltaTime seconds.
func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range types.Players {
		c := s.world.Combatant(id)
		if c == nil || c.Defeated() {
			continue
		}
		s.advance(c, deltaTime)
	}
}

func (s *MovementSystem) advance(c *component.Combatant, deltaTime float64) {
	if !c.Moving || c.Target == nil {
		return
	}

	dx := c.Target.X - c.X
	dz := c.Target.Z - c.Z
	dist := math.Hypot(dx, dz)
	moveDistance := c.Speed * deltaTime

	// Arrived, or the last step would overshoot.
	if dist <= config.ArrivalThreshold || dist <= moveDistance {
		if s.allowed(c.X, c.Target.X, c.Target.Z) {
			c.X, c.Z = c.Target.X, c.Target.Z
		}
		c.Stop()
		return
	}

	nx := c.X + dx/dist*moveDistance
	nz := c.Z + dz/dist*moveDistance
	if !s.allowed(c.X, nx, nz) {
		// The intent is dropped, not queued.
		c.Stop()
		return
	}

	c.X, c.Z = nx, nz
	face(c, dx, dz)
}

// allowed rejects a step that enters the river from either bank or leaves
// the arena.
func (s *MovementSystem) allowed(x, nx, nz float64) bool {
	arena := s.world.Arena
	if arena.CrossesRiver(x, nx) {
		return false
	}
	return arena.Bounds.Contains(nx, nz)
}

// face turns a combatant toward the direction (dx, dz).
func face(c *component.Combatant, dx, dz float64) {
	if dx > 0 {
		c.Facing = 1
	} else if dx < 0 {
		c.Facing = -1
	}
	c.Rotation = headingOf(dx, dz)
}

// headingOf converts a planar direction into a yaw where 0 faces +z.
func headingOf(dx, dz float64) float64 {
	return utils.NormalizeAngle(-math.Atan2(dz, dx) + math.Pi/2)
}
