package component

import (
	"testing"
	"time"

	"knife-arena/internal/types"
)

func TestRiverBand(t *testing.T) {
	a := DefaultArena()
	tests := []struct {
		x, nx   float64
		crosses bool
	}{
		{-15, -10.5, false},
		{-10.5, -9.9, true},
		{10.5, 9.9, true},
		{12, 15, false},
		{-12, -11, false},
	}
	for _, tt := range tests {
		if got := a.CrossesRiver(tt.x, tt.nx); got != tt.crosses {
			t.Errorf("CrossesRiver(%v, %v) = %v", tt.x, tt.nx, got)
		}
	}
	if !a.InRiver(0) || a.InRiver(-10) || a.InRiver(10) || a.InRiver(-11) {
		t.Error("InRiver edges")
	}
}

func TestCombatantHealthNeverRises(t *testing.T) {
	c := NewCombatant(types.Player1, RoleHuman, -30, 0, 1)
	c.SetHealth(99)
	if c.Health != c.MaxHealth {
		t.Errorf("health = %d", c.Health)
	}
	if c.Damage(2) || c.Health != 3 {
		t.Errorf("after damage: %d", c.Health)
	}
	c.SetHealth(4)
	if c.Health != 3 {
		t.Errorf("remote value raised health to %d", c.Health)
	}
	c.SetHealth(-5)
	if !c.Defeated() || c.Health != 0 {
		t.Errorf("negative health stored as %d", c.Health)
	}
	if c.Damage(1) != true || c.Health != 0 {
		t.Error("damage below zero")
	}
}

func TestCooldownGate(t *testing.T) {
	c := NewCombatant(types.Player2, RoleAI, 30, 0, -1)
	if c.CanThrow(0) {
		t.Error("throw allowed while attacks are disabled")
	}
	c.AttackEnabled = true
	if !c.CanThrow(0) {
		t.Error("first throw blocked")
	}
	c.StampAttack(time.Second)
	if c.CanThrow(time.Second+c.Cooldown-time.Millisecond) || !c.CanThrow(time.Second+c.Cooldown) {
		t.Error("cooldown boundary")
	}
	if got := c.CooldownRemaining(time.Second + 200*time.Millisecond); got != c.Cooldown-200*time.Millisecond {
		t.Errorf("remaining = %v", got)
	}

	c.Reset(40, 5, -1)
	if c.AttackEnabled || c.Health != c.MaxHealth || c.Moving || c.X != 40 {
		t.Error("reset left round state behind")
	}
}

func TestPhaseSimulating(t *testing.T) {
	for p, want := range map[Phase]bool{PhaseIdle: false, PhaseCountdown: true, PhaseActive: true, PhaseResolved: false} {
		if p.Simulating() != want {
			t.Errorf("%s.Simulating() = %v", p, p.Simulating())
		}
	}
}
