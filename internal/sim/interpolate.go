// internal/sim/interpolate.go
package sim

import (
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// Frame is what the renderer draws between two ticks.
type Frame struct {
	Alpha       float64
	Combatants  [2]CombatantPose
	Projectiles []ProjectilePose
}

// Combatant returns the pose of a seat.
func (f Frame) Combatant(id types.PlayerID) CombatantPose {
	if !id.Valid() {
		return CombatantPose{}
	}
	return f.Combatants[id.Index()]
}

// Interpolate blends two consecutive snapshots. Positions and spin are lerped,
// yaw takes the shortest arc. Knives are matched by ID: a knife present only
// in curr is drawn where it is, a knife present only in prev is drawn at its
// last position once with Removed set.
func Interpolate(prev, curr Snapshot, alpha float64) Frame {
	alpha = utils.Clamp(alpha, 0, 1)
	f := Frame{Alpha: alpha}

	for i := range curr.Combatants {
		a, b := prev.Combatants[i], curr.Combatants[i]
		f.Combatants[i] = CombatantPose{
			Player:   b.Player,
			X:        utils.Lerp(a.X, b.X, alpha),
			Z:        utils.Lerp(a.Z, b.Z, alpha),
			Rotation: utils.LerpAngle(a.Rotation, b.Rotation, alpha),
			Facing:   b.Facing,
		}
	}

	if len(prev.Projectiles) == 0 && len(curr.Projectiles) == 0 {
		return f
	}

	before := make(map[types.EntityID]int, len(prev.Projectiles))
	for i, p := range prev.Projectiles {
		before[p.ID] = i
	}

	f.Projectiles = make([]ProjectilePose, 0, len(curr.Projectiles))
	seen := make(map[types.EntityID]bool, len(curr.Projectiles))
	for _, b := range curr.Projectiles {
		seen[b.ID] = true
		i, ok := before[b.ID]
		if !ok {
			f.Projectiles = append(f.Projectiles, b)
			continue
		}
		a := prev.Projectiles[i]
		f.Projectiles = append(f.Projectiles, ProjectilePose{
			ID:    b.ID,
			Owner: b.Owner,
			X:     utils.Lerp(a.X, b.X, alpha),
			Z:     utils.Lerp(a.Z, b.Z, alpha),
			Spin:  utils.Lerp(a.Spin, b.Spin, alpha),
			Yaw:   b.Yaw,
		})
	}
	for _, a := range prev.Projectiles {
		if seen[a.ID] {
			continue
		}
		a.Removed = true
		f.Projectiles = append(f.Projectiles, a)
	}
	return f
}
