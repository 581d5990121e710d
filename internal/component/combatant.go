// internal/component/combatant.go
package component

import (
	"time"

	"knife-arena/internal/config"
	"knife-arena/internal/types"
)

// Role says who issues intents for a combatant.
type Role int

const (
	RoleHuman  Role = iota // local mouse/keyboard
	RoleAI                 // scripted practice opponent
	RoleRemote             // peer over the relay
)

func (r Role) String() string {
	switch r {
	case RoleHuman:
		return "human"
	case RoleAI:
		return "ai"
	case RoleRemote:
		return "remote"
	}
	return "unknown"
}

// Point is a target on the arena floor.
type Point struct {
	X, Z float64
}

// Combatant is the pure simulation state of one fighter. It carries no
// rendering handles; renderers keep their own bindings keyed by ID.
type Combatant struct {
	ID       types.PlayerID
	Role     Role
	X, Z     float64
	Facing   int     // +1 faces +x, -1 faces -x
	Rotation float64 // yaw in radians
	Target   *Point
	Moving   bool
	Speed    float64 // units per second

	Health    int
	MaxHealth int

	LastAttack    time.Duration // sim time of the last accepted throw
	Cooldown      time.Duration
	AttackEnabled bool
	Attacking     bool // cosmetic, cleared by a scheduled timer

	hasAttacked bool
}

// NewCombatant creates a full-health combatant at the given position.
func NewCombatant(id types.PlayerID, role Role, x, z float64, facing int) *Combatant {
	return &Combatant{
		ID:        id,
		Role:      role,
		X:         x,
		Z:         z,
		Facing:    facing,
		Speed:     config.MoveSpeed,
		Health:    config.MaxHealth,
		MaxHealth: config.MaxHealth,
		Cooldown:  config.AttackCooldown,
	}
}

// SetTarget starts a move toward (x, z).
func (c *Combatant) SetTarget(x, z float64) {
	c.Target = &Point{X: x, Z: z}
	c.Moving = true
}

// Stop drops the current move intent.
func (c *Combatant) Stop() {
	c.Target = nil
	c.Moving = false
}

// CooldownReady reports whether a throw would pass the cooldown gate at now.
func (c *Combatant) CooldownReady(now time.Duration) bool {
	return !c.hasAttacked || now-c.LastAttack >= c.Cooldown
}

// CooldownRemaining returns how long until the next throw is allowed.
func (c *Combatant) CooldownRemaining(now time.Duration) time.Duration {
	if c.CooldownReady(now) {
		return 0
	}
	return c.Cooldown - (now - c.LastAttack)
}

// StampAttack records a throw (or a cooldown restart) at now.
func (c *Combatant) StampAttack(now time.Duration) {
	c.LastAttack = now
	c.hasAttacked = true
}

// CanThrow combines the enable flag with the cooldown gate.
func (c *Combatant) CanThrow(now time.Duration) bool {
	return c.AttackEnabled && c.CooldownReady(now)
}

// Damage removes amount health, never going below zero, and reports whether
// the combatant is now defeated.
func (c *Combatant) Damage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	return c.Health == 0
}

// SetHealth stores a peer-reported value clamped to [0, MaxHealth]. Health
// never rises during a round, so higher values than the current one are
// ignored.
func (c *Combatant) SetHealth(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > c.MaxHealth {
		hp = c.MaxHealth
	}
	if hp < c.Health {
		c.Health = hp
	}
}

// Defeated reports the terminal condition.
func (c *Combatant) Defeated() bool {
	return c.Health <= 0
}

// Reset restores a combatant for a new round at the given spawn.
func (c *Combatant) Reset(x, z float64, facing int) {
	c.X, c.Z = x, z
	c.Facing = facing
	c.Rotation = 0
	c.Stop()
	c.Health = c.MaxHealth
	c.Cooldown = config.AttackCooldown
	c.LastAttack = 0
	c.hasAttacked = false
	c.AttackEnabled = false
	c.Attacking = false
}
