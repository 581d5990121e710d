package system

import (
	"math"
	"testing"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/event"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

func TestMissBagTwoOfSeven(t *testing.T) {
	bag := NewMissBag(utils.NewPRNGService(7), config.MissBagSize, config.MissBagMisses)

	patterns := make(map[[2]int]bool)
	for round := 0; round < 20; round++ {
		pattern := bag.Pattern()
		if len(pattern) != config.MissBagMisses {
			t.Fatalf("bag %d has %d miss slots", round, len(pattern))
		}
		patterns[[2]int{pattern[0], pattern[1]}] = true

		misses := 0
		for i := 0; i < config.MissBagSize; i++ {
			if bag.Next() {
				misses++
			}
		}
		if misses != config.MissBagMisses {
			t.Errorf("bag %d produced %d misses, want %d", round, misses, config.MissBagMisses)
		}
	}

	if bag.Bags() != 21 {
		t.Errorf("bags drawn = %d, want 21", bag.Bags())
	}
	if len(patterns) < 2 {
		t.Error("the bag never drew a fresh pattern")
	}
}

func TestMissBagSlidingWindowBound(t *testing.T) {
	bag := NewMissBag(utils.NewPRNGService(99), config.MissBagSize, config.MissBagMisses)
	var seq []bool
	for i := 0; i < 7*30; i++ {
		seq = append(seq, bag.Next())
	}
	total := 0
	for _, miss := range seq {
		if miss {
			total++
		}
	}
	if total != 2*30 {
		t.Errorf("misses over 30 bags = %d, want 60", total)
	}
}

func TestLeadPrediction(t *testing.T) {
	f := newFixture(t, [2]component.Role{component.RoleHuman, component.RoleAI})
	target := f.place(types.Player1, -40, 0)

	x, z := f.rules.AI.Lead(target)
	if x != -40 || z != 0 {
		t.Errorf("idle target lead = (%v,%v), want its position", x, z)
	}

	target.SetTarget(-40, 50)
	x, z = f.rules.AI.Lead(target)
	ahead := config.MoveSpeed * config.AILookAhead.Seconds()
	if x != -40 || math.Abs(z-ahead) > 1e-9 {
		t.Errorf("moving target lead = (%v,%v), want (-40,%v)", x, z, ahead)
	}

	target.SetTarget(-40, 3)
	x, z = f.rules.AI.Lead(target)
	if z != 3 {
		t.Errorf("lead should stop at the destination, got z=%v", z)
	}
}

func TestAIThrowsWithMissPattern(t *testing.T) {
	f := newFixture(t, [2]component.Role{component.RoleHuman, component.RoleAI})
	human := f.world.Combatant(types.Player1)
	human.MaxHealth, human.Health = 1000, 1000
	ai := f.world.Combatant(types.Player2)
	ai.AttackEnabled = true

	// Seven cooldowns plus slack.
	f.step(int(7*config.AttackCooldown/config.FixedStep) + 10)

	var throws []event.ThrowData
	for _, e := range f.rec.events {
		if e.Type == event.KnifeThrown {
			throws = append(throws, e.Data.(event.ThrowData))
		}
	}
	if len(throws) < 7 {
		t.Fatalf("AI threw %d times, want at least 7", len(throws))
	}
	misses := 0
	for _, th := range throws[:7] {
		if th.Thrower != types.Player2 {
			t.Fatalf("unexpected thrower %v", th.Thrower)
		}
		if th.Miss {
			misses++
		}
	}
	if misses != config.MissBagMisses {
		t.Errorf("misses in the first 7 AI throws = %d, want %d", misses, config.MissBagMisses)
	}
}

func TestAIWanderStaysHome(t *testing.T) {
	f := newFixture(t, [2]component.Role{component.RoleHuman, component.RoleAI})
	ai := f.world.Combatant(types.Player2)
	home := f.world.Arena.AIHome

	for i := 0; i < 5000; i++ {
		f.step(1)
		if ai.Target != nil && !home.Contains(ai.Target.X, ai.Target.Z) {
			t.Fatalf("wander target (%v,%v) outside the home area", ai.Target.X, ai.Target.Z)
		}
		if f.world.Arena.InRiver(ai.X) || ai.X < 0 {
			t.Fatalf("AI left its half: x=%v", ai.X)
		}
	}
}

func TestAIIdleOutsideActivePhase(t *testing.T) {
	f := newFixture(t, [2]component.Role{component.RoleHuman, component.RoleAI})
	f.world.Phase = component.PhaseCountdown
	ai := f.world.Combatant(types.Player2)
	ai.AttackEnabled = true
	x, z := ai.X, ai.Z

	f.step(1000)
	if ai.X != x || ai.Z != z || ai.Moving {
		t.Error("AI wandered during the countdown")
	}
	if f.rec.count(event.KnifeThrown) != 0 {
		t.Error("AI threw during the countdown")
	}
}
