// internal/entity/world.go
package entity

import (
	"knife-arena/internal/component"
	"knife-arena/internal/types"
)

// World owns every simulated object of a match. Only the simulator and the
// systems it drives mutate it.
type World struct {
	NextID      types.EntityID
	Arena       component.Arena
	Combatants  map[types.PlayerID]*component.Combatant
	Projectiles []*component.Projectile // spawn order; snapshots rely on it
	Effects     []*component.Effect
	Phase       component.Phase
	Winner      types.PlayerID
}

// NewWorld creates a world with both combatants placed at the centre of their
// spawn areas. The round machine randomizes them on countdown.
func NewWorld(roles [2]component.Role) *World {
	w := &World{
		NextID:     1,
		Arena:      component.DefaultArena(),
		Combatants: make(map[types.PlayerID]*component.Combatant, 2),
		Phase:      component.PhaseIdle,
	}
	for _, id := range types.Players {
		spawn := w.Arena.Spawns[id.Index()]
		x := (spawn.MinX + spawn.MaxX) / 2
		z := (spawn.MinZ + spawn.MaxZ) / 2
		w.Combatants[id] = component.NewCombatant(id, roles[id.Index()], x, z, component.SpawnFacing(id))
	}
	return w
}

// NewEntity hands out the next projectile/effect ID.
func (w *World) NewEntity() types.EntityID {
	id := w.NextID
	w.NextID++
	return id
}

// Combatant returns the fighter in a seat, or nil.
func (w *World) Combatant(id types.PlayerID) *component.Combatant {
	return w.Combatants[id]
}

// Opponent returns the fighter opposing id.
func (w *World) Opponent(id types.PlayerID) *component.Combatant {
	return w.Combatants[id.Other()]
}

// AddProjectile appends a knife to the in-flight list.
func (w *World) AddProjectile(p *component.Projectile) {
	w.Projectiles = append(w.Projectiles, p)
}

// RemoveProjectile drops the knife at index i, keeping spawn order.
func (w *World) RemoveProjectile(i int) {
	copy(w.Projectiles[i:], w.Projectiles[i+1:])
	w.Projectiles[len(w.Projectiles)-1] = nil
	w.Projectiles = w.Projectiles[:len(w.Projectiles)-1]
}

// ClearProjectiles drops every knife in flight.
func (w *World) ClearProjectiles() {
	w.Projectiles = nil
}

// ClearEffects drops every cosmetic effect.
func (w *World) ClearEffects() {
	w.Effects = nil
}

// Frozen reports whether the world rejects mutation (round resolved).
func (w *World) Frozen() bool {
	return w.Phase == component.PhaseResolved
}
