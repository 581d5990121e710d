// internal/system/rules.go
package system

import (
	"time"

	"knife-arena/internal/entity"
	"knife-arena/internal/event"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// Rules runs the systems in a fixed order for one simulation step and is the
// only entry point for intents.
type Rules struct {
	world           *entity.World
	eventDispatcher *event.Dispatcher

	Movement    *MovementSystem
	Combat      *CombatSystem
	AI          *AISystem
	Projectiles *ProjectileSystem
	Effects     *EffectSystem
}

func NewRules(world *entity.World, eventDispatcher *event.Dispatcher, scheduler *sim.Scheduler, rng *utils.PRNGService) *Rules {
	effects := NewEffectSystem(world, rng)
	combat := NewCombatSystem(world, eventDispatcher, scheduler)
	return &Rules{
		world:           world,
		eventDispatcher: eventDispatcher,
		Movement:        NewMovementSystem(world),
		Combat:          combat,
		AI:              NewAISystem(world, combat, rng),
		Projectiles:     NewProjectileSystem(world, eventDispatcher, effects),
		Effects:         effects,
	}
}

// Step implements sim.Rules.
func (r *Rules) Step(now, dt time.Duration) {
	deltaTime := dt.Seconds()

	r.Movement.Update(deltaTime)
	r.AI.Update(now)
	r.Projectiles.Update(deltaTime)
	if r.world.Frozen() {
		return
	}
	r.Effects.Update()
}

// MoveTo is a move intent for a seat. Targets inside the river are refused
// here; the path itself is checked step by step.
func (r *Rules) MoveTo(id types.PlayerID, x, z float64, remote bool) bool {
	if !r.world.Phase.Simulating() {
		return false
	}
	c := r.world.Combatant(id)
	if c == nil || c.Defeated() {
		return false
	}
	if r.world.Arena.InRiver(x) {
		return false
	}
	c.SetTarget(x, z)
	r.eventDispatcher.Dispatch(event.Event{
		Type: event.MoveIssued,
		Data: event.MoveData{Player: id, X: x, Z: z, Remote: remote},
	})
	return true
}

// ApplyRemoteHealth stores a health value reported by the peer. It is
// clamped and may only lower health. A drop to zero defeats the combatant.
func (r *Rules) ApplyRemoteHealth(id types.PlayerID, hp int) bool {
	if r.world.Frozen() {
		return false
	}
	c := r.world.Combatant(id)
	if c == nil {
		return false
	}
	before := c.Health
	c.SetHealth(hp)
	if c.Health == before {
		return false
	}

	data := event.HitData{Target: id, Health: c.Health, X: c.X, Z: c.Z, Remote: true}
	r.eventDispatcher.Dispatch(event.Event{Type: event.CombatantHit, Data: data})
	if c.Defeated() {
		r.eventDispatcher.Dispatch(event.Event{Type: event.CombatantDefeated, Data: data})
	}
	return true
}

// Reset drops per-round bookkeeping held by the systems.
func (r *Rules) Reset() {
	r.Combat.Reset()
}
