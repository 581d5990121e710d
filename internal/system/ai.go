// internal/system/ai.go
package system

import (
	"math"
	"time"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// MissBag pre-selects which throws in each run of MissBagSize attempts are
// deliberate misses. Exactly MissBagMisses per bag, drawn without replacement.
type MissBag struct {
	rng     *utils.PRNGService
	size    int
	misses  int
	pattern map[int]bool
	attempt int
	bags    int
}

// NewMissBag creates a bag and draws its first pattern.
func NewMissBag(rng *utils.PRNGService, size, misses int) *MissBag {
	b := &MissBag{rng: rng, size: size, misses: misses}
	b.refill()
	return b
}

func (b *MissBag) refill() {
	b.pattern = make(map[int]bool, b.misses)
	for _, slot := range b.rng.Pick(b.misses, b.size) {
		b.pattern[slot] = true
	}
	b.attempt = 0
	b.bags++
}

// Next consumes one attempt and reports whether it must miss.
func (b *MissBag) Next() bool {
	miss := b.pattern[b.attempt]
	b.attempt++
	if b.attempt >= b.size {
		b.refill()
	}
	return miss
}

// Pattern returns the miss slots of the current bag in ascending order.
func (b *MissBag) Pattern() []int {
	slots := make([]int, 0, len(b.pattern))
	for i := 0; i < b.size; i++ {
		if b.pattern[i] {
			slots = append(slots, i)
		}
	}
	return slots
}

// Bags returns how many patterns have been drawn.
func (b *MissBag) Bags() int {
	return b.bags
}

// AISystem drives every RoleAI combatant: wandering inside its home area
// and throwing with a predictive lead.
type AISystem struct {
	world  *entity.World
	combat *CombatSystem
	rng    *utils.PRNGService
	bag    *MissBag
}

func NewAISystem(world *entity.World, combat *CombatSystem, rng *utils.PRNGService) *AISystem {
	return &AISystem{
		world:  world,
		combat: combat,
		rng:    rng,
		bag:    NewMissBag(rng, config.MissBagSize, config.MissBagMisses),
	}
}

// Bag exposes the miss bag for inspection.
func (s *AISystem) Bag() *MissBag {
	return s.bag
}

func (s *AISystem) Update(now time.Duration) {
	if s.world.Phase != component.PhaseActive {
		return
	}
	for _, id := range types.Players {
		c := s.world.Combatant(id)
		if c == nil || c.Role != component.RoleAI || c.Defeated() {
			continue
		}
		s.wander(c)
		s.attack(c, now)
	}
}

func (s *AISystem) wander(c *component.Combatant) {
	if c.Moving || c.Attacking {
		return
	}
	if !s.rng.Chance(config.AIWanderChance) {
		return
	}
	home := s.world.Arena.AIHome
	x := home.ClampX(c.X + s.rng.Spread(config.AIWanderRange))
	z := home.ClampZ(c.Z + s.rng.Spread(config.AIWanderRange))
	c.SetTarget(x, z)
}

func (s *AISystem) attack(c *component.Combatant, now time.Duration) {
	if !c.CanThrow(now) {
		return
	}
	opponent := s.world.Opponent(c.ID)
	if opponent == nil || opponent.Defeated() {
		return
	}

	x, z := s.Lead(opponent)
	miss := s.bag.Next()
	if miss {
		x += s.rng.Spread(config.MissOffset)
		z += s.rng.Spread(config.MissOffset)
	} else {
		x += s.rng.Spread(config.HitJitter)
		z += s.rng.Spread(config.HitJitter)
	}
	s.combat.aimedThrow(c.ID, x, z, now, miss)
}

// Lead predicts where a moving target will be after AILookAhead, never
// past its own destination.
func (s *AISystem) Lead(target *component.Combatant) (float64, float64) {
	x, z := target.X, target.Z
	if !target.Moving || target.Target == nil {
		return x, z
	}
	dx := target.Target.X - x
	dz := target.Target.Z - z
	dist := math.Hypot(dx, dz)
	if dist <= 0.1 {
		return x, z
	}
	ahead := math.Min(target.Speed*config.AILookAhead.Seconds(), dist)
	return x + dx/dist*ahead, z + dz/dist*ahead
}
