// internal/system/effect.go
package system

import (
	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/utils"
)

// EffectSystem animates cosmetic blood bursts.
type EffectSystem struct {
	world *entity.World
	rng   *utils.PRNGService
}

func NewEffectSystem(world *entity.World, rng *utils.PRNGService) *EffectSystem {
	return &EffectSystem{world: world, rng: rng}
}

// SpawnBlood adds a burst of BloodParticles droplets at (x, y, z).
func (s *EffectSystem) SpawnBlood(x, y, z float64) *component.Effect {
	e := &component.Effect{
		ID:        s.world.NewEntity(),
		Particles: make([]component.Particle, config.BloodParticles),
		Life:      1,
		Decay:     config.BloodDecay,
	}
	for i := range e.Particles {
		e.Particles[i] = component.Particle{
			X:  x,
			Y:  y,
			Z:  z,
			VX: s.rng.Spread(4),
			VY: s.rng.Range(4, 12),
			VZ: s.rng.Spread(4),
		}
	}
	s.world.Effects = append(s.world.Effects, e)
	return e
}

// Update advances particles once per fixed step and drops faded effects.
func (s *EffectSystem) Update() {
	alive := s.world.Effects[:0]
	for _, e := range s.world.Effects {
		if !e.Alive() {
			continue
		}
		for i := range e.Particles {
			p := &e.Particles[i]
			p.X += p.VX * config.BloodVelScale
			p.Y += p.VY * config.BloodVelScale
			p.Z += p.VZ * config.BloodVelScale
			p.VY -= config.BloodGravity
		}
		e.Life -= e.Decay
		alive = append(alive, e)
	}
	for i := len(alive); i < len(s.world.Effects); i++ {
		s.world.Effects[i] = nil
	}
	s.world.Effects = alive
}
