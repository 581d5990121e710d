// internal/system/projectile.go
package system

import (
	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/event"
	"knife-arena/internal/utils"
)

// ProjectileSystem flies knives, culls strays and resolves hits.
type ProjectileSystem struct {
	world           *entity.World
	eventDispatcher *event.Dispatcher
	effects         *EffectSystem
}

func NewProjectileSystem(world *entity.World, eventDispatcher *event.Dispatcher, effects *EffectSystem) *ProjectileSystem {
	return &ProjectileSystem{
		world:           world,
		eventDispatcher: eventDispatcher,
		effects:         effects,
	}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	hitRadius := config.CharacterSize * config.HitRadiusFactor

	for i := 0; i < len(s.world.Projectiles); {
		// A defeat earlier in this loop froze the round.
		if s.world.Frozen() {
			return
		}

		p := s.world.Projectiles[i]
		p.X += p.VX * deltaTime
		p.Z += p.VZ * deltaTime
		p.Spin += config.KnifeSpinStep

		if !s.world.Arena.Cull.Contains(p.X, p.Z) {
			s.world.RemoveProjectile(i)
			continue
		}

		target := s.world.Combatant(p.Target())
		if target == nil || target.Defeated() {
			i++
			continue
		}
		if utils.Distance(p.X, p.Z, target.X, target.Z) >= hitRadius {
			i++
			continue
		}

		s.world.RemoveProjectile(i)
		s.hit(target)
	}
}

func (s *ProjectileSystem) hit(target *component.Combatant) {
	defeated := target.Damage(1)
	if s.effects != nil {
		s.effects.SpawnBlood(target.X, config.KnifeHeight, target.Z)
	}

	data := event.HitData{Target: target.ID, Health: target.Health, X: target.X, Z: target.Z}
	s.eventDispatcher.Dispatch(event.Event{Type: event.CombatantHit, Data: data})
	if defeated {
		s.eventDispatcher.Dispatch(event.Event{Type: event.CombatantDefeated, Data: data})
	}
}
