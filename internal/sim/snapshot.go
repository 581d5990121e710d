// internal/sim/snapshot.go
package sim

import (
	"knife-arena/internal/entity"
	"knife-arena/internal/types"
)

// CombatantPose is the presentable part of a combatant at one tick.
type CombatantPose struct {
	Player   types.PlayerID
	X, Z     float64
	Rotation float64
	Facing   int
}

// ProjectilePose is the presentable part of a knife at one tick.
type ProjectilePose struct {
	ID      types.EntityID
	Owner   types.PlayerID
	X, Z    float64
	Spin    float64
	Yaw     float64
	Removed bool // set by Interpolate for a knife that vanished this tick
}

// Snapshot is an immutable capture of the world at one fixed tick.
type Snapshot struct {
	Tick        uint64
	Combatants  [2]CombatantPose
	Projectiles []ProjectilePose
}

// Capture copies the poses out of the world. The returned snapshot shares no
// memory with it.
func Capture(w *entity.World, tick uint64) Snapshot {
	snap := Snapshot{Tick: tick}
	for _, id := range types.Players {
		c := w.Combatant(id)
		if c == nil {
			snap.Combatants[id.Index()] = CombatantPose{Player: id}
			continue
		}
		snap.Combatants[id.Index()] = CombatantPose{
			Player:   id,
			X:        c.X,
			Z:        c.Z,
			Rotation: c.Rotation,
			Facing:   c.Facing,
		}
	}
	if len(w.Projectiles) > 0 {
		snap.Projectiles = make([]ProjectilePose, len(w.Projectiles))
		for i, p := range w.Projectiles {
			snap.Projectiles[i] = ProjectilePose{
				ID:    p.ID,
				Owner: p.Owner,
				X:     p.X,
				Z:     p.Z,
				Spin:  p.Spin,
				Yaw:   p.Yaw,
			}
		}
	}
	return snap
}

// Combatant returns the pose of a seat.
func (s Snapshot) Combatant(id types.PlayerID) CombatantPose {
	if !id.Valid() {
		return CombatantPose{}
	}
	return s.Combatants[id.Index()]
}
