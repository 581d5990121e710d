// internal/component/arena.go
package component

import (
	"knife-arena/internal/config"
	"knife-arena/internal/types"
)

// Rect is an axis-aligned rectangle on the xz plane.
type Rect struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Contains reports whether (x, z) lies inside the rectangle, edges included.
func (r Rect) Contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// ClampX limits x to the rectangle.
func (r Rect) ClampX(x float64) float64 {
	if x < r.MinX {
		return r.MinX
	}
	if x > r.MaxX {
		return r.MaxX
	}
	return x
}

// ClampZ limits z to the rectangle.
func (r Rect) ClampZ(z float64) float64 {
	if z < r.MinZ {
		return r.MinZ
	}
	if z > r.MaxZ {
		return r.MaxZ
	}
	return z
}

// Arena holds the static geometry of the playfield.
type Arena struct {
	Bounds   Rect // outer walls
	RiverMin float64
	RiverMax float64 // the band [RiverMin, RiverMax] on x is impassable
	Spawns   [2]Rect
	AIHome   Rect // wander area of the scripted opponent
	Cull     Rect // projectiles outside are discarded
}

// DefaultArena returns the standard map layout.
func DefaultArena() Arena {
	return Arena{
		Bounds:   Rect{MinX: config.ArenaMinX, MaxX: config.ArenaMaxX, MinZ: config.ArenaMinZ, MaxZ: config.ArenaMaxZ},
		RiverMin: config.RiverMinX,
		RiverMax: config.RiverMaxX,
		Spawns: [2]Rect{
			{MinX: -config.SpawnFarX, MaxX: -config.SpawnNearX, MinZ: config.SpawnMinZ, MaxZ: config.SpawnMaxZ},
			{MinX: config.SpawnNearX, MaxX: config.SpawnFarX, MinZ: config.SpawnMinZ, MaxZ: config.SpawnMaxZ},
		},
		AIHome: Rect{MinX: config.AIHomeMinX, MaxX: config.AIHomeMaxX, MinZ: config.AIHomeMinZ, MaxZ: config.AIHomeMaxZ},
		Cull:   Rect{MinX: -config.KnifeCullX, MaxX: config.KnifeCullX, MinZ: -config.KnifeCullZ, MaxZ: config.KnifeCullZ},
	}
}

// InRiver reports whether x is strictly inside the band.
func (a Arena) InRiver(x float64) bool {
	return x > a.RiverMin && x < a.RiverMax
}

// CrossesRiver reports whether a step from x to nx enters the band from
// either bank.
func (a Arena) CrossesRiver(x, nx float64) bool {
	if x < a.RiverMin && nx > a.RiverMin {
		return true
	}
	if x > a.RiverMax && nx < a.RiverMax {
		return true
	}
	return false
}

// SpawnFacing returns the initial facing for a seat: both look across the river.
func SpawnFacing(id types.PlayerID) int {
	if id == types.Player2 {
		return -1
	}
	return 1
}
