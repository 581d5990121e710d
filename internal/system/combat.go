// internal/system/combat.go
package system

import (
	"math"
	"time"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/event"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
)

// CombatSystem gates throws and spawns knives.
type CombatSystem struct {
	world           *entity.World
	eventDispatcher *event.Dispatcher
	scheduler       *sim.Scheduler
	attackTimers    map[types.PlayerID]sim.TimerID
}

func NewCombatSystem(world *entity.World, eventDispatcher *event.Dispatcher, scheduler *sim.Scheduler) *CombatSystem {
	return &CombatSystem{
		world:           world,
		eventDispatcher: eventDispatcher,
		scheduler:       scheduler,
		attackTimers:    make(map[types.PlayerID]sim.TimerID),
	}
}

// TryThrow is a local throw intent. It is accepted only when attacks are
// enabled and the cooldown has elapsed.
func (s *CombatSystem) TryThrow(id types.PlayerID, targetX, targetZ float64, now time.Duration) bool {
	c := s.thrower(id)
	if c == nil || !c.CanThrow(now) {
		return false
	}
	s.throw(c, targetX, targetZ, now, event.ThrowData{Thrower: id, TargetX: targetX, TargetZ: targetZ})
	return true
}

// ThrowAhead throws DefaultThrowReach units along the combatant's facing.
// Used when there is no aim point under the cursor.
func (s *CombatSystem) ThrowAhead(id types.PlayerID, now time.Duration) bool {
	c := s.thrower(id)
	if c == nil {
		return false
	}
	return s.TryThrow(id, c.X+float64(c.Facing)*config.DefaultThrowReach, c.Z, now)
}

// RemoteThrow replays a throw the peer already validated. The local gate is
// skipped; only the timestamp is recorded.
func (s *CombatSystem) RemoteThrow(id types.PlayerID, targetX, targetZ float64, now time.Duration) bool {
	c := s.thrower(id)
	if c == nil {
		return false
	}
	s.throw(c, targetX, targetZ, now, event.ThrowData{Thrower: id, TargetX: targetX, TargetZ: targetZ, Remote: true})
	return true
}

// aimedThrow is the scripted opponent's throw; miss is reported on the event.
func (s *CombatSystem) aimedThrow(id types.PlayerID, targetX, targetZ float64, now time.Duration, miss bool) bool {
	c := s.thrower(id)
	if c == nil || !c.CanThrow(now) {
		return false
	}
	s.throw(c, targetX, targetZ, now, event.ThrowData{Thrower: id, TargetX: targetX, TargetZ: targetZ, Miss: miss})
	return true
}

func (s *CombatSystem) thrower(id types.PlayerID) *component.Combatant {
	if s.world.Frozen() {
		return nil
	}
	c := s.world.Combatant(id)
	if c == nil || c.Defeated() {
		return nil
	}
	return c
}

func (s *CombatSystem) throw(c *component.Combatant, targetX, targetZ float64, now time.Duration, data event.ThrowData) {
	s.spawnKnife(c, targetX, targetZ)

	c.Stop()
	c.StampAttack(now)
	c.Attacking = true
	s.scheduleAttackEnd(c)

	s.eventDispatcher.Dispatch(event.Event{Type: event.KnifeThrown, Data: data})
}

func (s *CombatSystem) spawnKnife(c *component.Combatant, targetX, targetZ float64) *component.Projectile {
	dx := targetX - c.X
	dz := targetZ - c.Z
	dist := math.Hypot(dx, dz)
	if dist < 1e-9 {
		dx, dz, dist = float64(c.Facing), 0, 1
	}
	dirX, dirZ := dx/dist, dz/dist

	p := &component.Projectile{
		ID:    s.world.NewEntity(),
		Owner: c.ID,
		X:     c.X,
		Z:     c.Z,
		VX:    dirX * config.KnifeSpeed,
		VZ:    dirZ * config.KnifeSpeed,
		Yaw:   headingOf(dirX, dirZ),
	}
	s.world.AddProjectile(p)
	return p
}

// scheduleAttackEnd clears the throwing pose after ThrowAnimDuration. A newer
// throw replaces the pending clear.
func (s *CombatSystem) scheduleAttackEnd(c *component.Combatant) {
	if id, ok := s.attackTimers[c.ID]; ok {
		s.scheduler.Cancel(id)
	}
	s.attackTimers[c.ID] = s.scheduler.After(config.ThrowAnimDuration, func() {
		c.Attacking = false
		delete(s.attackTimers, c.ID)
	})
}

// Reset forgets pending attack timers. The scheduler itself is cleared by
// the round machine.
func (s *CombatSystem) Reset() {
	for id, timer := range s.attackTimers {
		s.scheduler.Cancel(timer)
		delete(s.attackTimers, id)
	}
}
