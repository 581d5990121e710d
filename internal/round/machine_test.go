package round

import (
	"testing"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/event"
	"knife-arena/internal/sim"
	"knife-arena/internal/system"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

type countdownRecorder struct {
	ticks    []int
	resolved []event.ResolvedData
	started  int
	active   int
}

func (r *countdownRecorder) OnEvent(e event.Event) {
	switch e.Type {
	case event.CountdownTick:
		r.ticks = append(r.ticks, e.Data.(event.CountdownData).Remaining)
	case event.RoundResolved:
		r.resolved = append(r.resolved, e.Data.(event.ResolvedData))
	case event.RoundStarted:
		r.started++
	case event.RoundActive:
		r.active++
	}
}

type harness struct {
	world   *entity.World
	events  *event.Dispatcher
	rules   *system.Rules
	sim     *sim.Simulator
	machine *Machine
	rec     *countdownRecorder
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	w := entity.NewWorld([2]component.Role{component.RoleHuman, component.RoleHuman})
	d := event.NewDispatcher()
	sched := sim.NewScheduler()
	rng := utils.NewPRNGService(seed)
	rules := system.NewRules(w, d, sched, rng)
	rec := &countdownRecorder{}
	d.SubscribeMany(rec, event.CountdownTick, event.RoundResolved, event.RoundStarted, event.RoundActive)
	return &harness{
		world:   w,
		events:  d,
		rules:   rules,
		sim:     sim.NewSimulator(w, rules, sched),
		machine: NewMachine(w, d, sched, rules, rng),
		rec:     rec,
	}
}

func (h *harness) run(seconds float64) {
	for elapsed := 0.0; elapsed < seconds-1e-9; elapsed += 0.1 {
		h.sim.Tick(0.1)
	}
}

func (h *harness) activate() {
	h.machine.StartCountdown()
	h.run(6)
}

func TestStartsIdle(t *testing.T) {
	h := newHarness(t, 1)
	if h.machine.Phase() != component.PhaseIdle || h.world.Phase != component.PhaseIdle {
		t.Fatalf("phase = %v", h.machine.Phase())
	}
	h.run(1)
	if h.sim.Steps() == 0 {
		t.Fatal("clock did not run")
	}
	if h.rec.started != 0 {
		t.Error("a round started on its own")
	}
}

func TestCountdownSequence(t *testing.T) {
	h := newHarness(t, 1)
	h.machine.StartCountdown()

	if h.world.Phase != component.PhaseCountdown {
		t.Fatalf("phase = %v, want countdown", h.world.Phase)
	}
	for _, id := range types.Players {
		c := h.world.Combatant(id)
		if c.AttackEnabled {
			t.Errorf("player %d can attack during the countdown", id)
		}
		if c.Cooldown != config.CountdownCooldown {
			t.Errorf("player %d cooldown = %v, want %v", id, c.Cooldown, config.CountdownCooldown)
		}
		if !h.world.Arena.Spawns[id.Index()].Contains(c.X, c.Z) {
			t.Errorf("player %d spawned outside its half at (%v,%v)", id, c.X, c.Z)
		}
	}

	h.run(5.4)
	want := []int{5, 4, 3, 2, 1, 0}
	if len(h.rec.ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", h.rec.ticks, want)
	}
	for i := range want {
		if h.rec.ticks[i] != want[i] {
			t.Fatalf("ticks = %v, want %v", h.rec.ticks, want)
		}
	}
	if h.world.Phase != component.PhaseCountdown {
		t.Fatal("fight started before the delay elapsed")
	}
	for _, c := range h.world.Combatants {
		if c.Cooldown != config.AttackCooldown {
			t.Errorf("cooldown after FIGHT = %v, want %v", c.Cooldown, config.AttackCooldown)
		}
	}

	h.run(0.2)
	if h.world.Phase != component.PhaseActive {
		t.Fatalf("phase = %v, want active", h.world.Phase)
	}
	if h.rec.active != 1 {
		t.Errorf("RoundActive events = %d", h.rec.active)
	}
	for _, c := range h.world.Combatants {
		if !c.AttackEnabled {
			t.Error("attacks not enabled in the active phase")
		}
	}
}

func TestCountdownCooldownBlocksEarlyThrow(t *testing.T) {
	h := newHarness(t, 1)
	h.machine.StartCountdown()
	h.run(5.6)

	// LastAttack was stamped at countdown start, so the 2200ms cooldown has
	// long elapsed when the fight begins.
	if !h.rules.Combat.TryThrow(types.Player1, 30, 0, h.sim.Now()) {
		t.Error("first throw of the fight refused")
	}
}

func TestResolutionFreezesWorld(t *testing.T) {
	h := newHarness(t, 3)
	h.activate()

	p1 := h.world.Combatant(types.Player1)
	p2 := h.world.Combatant(types.Player2)
	p2.Health = 1

	if !h.rules.Combat.TryThrow(types.Player1, p2.X, p2.Z, h.sim.Now()) {
		t.Fatal("throw refused")
	}
	h.run(0.5)

	if h.world.Phase != component.PhaseResolved {
		t.Fatalf("phase = %v, want resolved", h.world.Phase)
	}
	if h.machine.Winner() != types.Player1 || h.world.Winner != types.Player1 {
		t.Errorf("winner = %v", h.machine.Winner())
	}
	if p2.Health != 0 {
		t.Errorf("loser health = %d", p2.Health)
	}
	if tally := h.machine.Tally(); tally != [2]int{1, 0} {
		t.Errorf("tally = %v", tally)
	}
	if len(h.rec.resolved) != 1 || h.rec.resolved[0].Loser != types.Player2 {
		t.Errorf("resolved events = %+v", h.rec.resolved)
	}

	x, z := p1.X, p1.Z
	if h.rules.MoveTo(types.Player1, -40, 20, false) {
		t.Error("move accepted after resolution")
	}
	if h.rules.Combat.TryThrow(types.Player1, 0, 0, h.sim.Now()+config.AttackCooldown) {
		t.Error("throw accepted after resolution")
	}
	if h.rules.ApplyRemoteHealth(types.Player1, 0) {
		t.Error("health update accepted after resolution")
	}
	h.run(3)
	if p1.X != x || p1.Z != z || p1.Health != config.MaxHealth {
		t.Error("world mutated after resolution")
	}
}

func TestRematchResets(t *testing.T) {
	h := newHarness(t, 5)
	if h.machine.Rematch() {
		t.Fatal("rematch accepted before any round")
	}
	h.activate()

	p1 := h.world.Combatant(types.Player1)
	p1.Health = 2
	h.rules.Combat.TryThrow(types.Player2, p1.X, p1.Z, h.sim.Now())
	h.rules.Combat.TryThrow(types.Player1, 60, 60, h.sim.Now())
	if h.machine.Rematch() {
		t.Fatal("rematch accepted during an active round")
	}
	h.machine.Resolve(types.Player2)

	if !h.machine.Rematch() {
		t.Fatal("rematch refused after resolution")
	}
	if h.machine.Round() != 2 {
		t.Errorf("round = %d, want 2", h.machine.Round())
	}
	if h.world.Phase != component.PhaseCountdown {
		t.Errorf("phase = %v", h.world.Phase)
	}
	if len(h.world.Projectiles) != 0 || len(h.world.Effects) != 0 {
		t.Error("projectiles or effects survived the rematch")
	}
	for _, id := range types.Players {
		c := h.world.Combatant(id)
		if c.Health != c.MaxHealth || c.Attacking || c.AttackEnabled || c.Moving {
			t.Errorf("player %d not reset: %+v", id, c)
		}
	}
	if tally := h.machine.Tally(); tally != [2]int{0, 1} {
		t.Errorf("tally = %v, want it kept across rematches", tally)
	}
	if h.rec.started != 2 {
		t.Errorf("RoundStarted events = %d", h.rec.started)
	}
}

func TestSpawnsAreSeeded(t *testing.T) {
	a := newHarness(t, 77)
	b := newHarness(t, 77)
	a.machine.StartCountdown()
	b.machine.StartCountdown()
	for _, id := range types.Players {
		ca, cb := a.world.Combatant(id), b.world.Combatant(id)
		if ca.X != cb.X || ca.Z != cb.Z {
			t.Errorf("player %d spawned at (%v,%v) and (%v,%v) with the same seed", id, ca.X, ca.Z, cb.X, cb.Z)
		}
	}
}

func TestHaltCancelsCountdown(t *testing.T) {
	h := newHarness(t, 1)
	h.machine.StartCountdown()
	h.machine.Halt()
	h.run(7)
	if h.world.Phase != component.PhaseIdle {
		t.Errorf("phase = %v, want idle after halt", h.world.Phase)
	}
	if len(h.rec.ticks) != 1 {
		t.Errorf("countdown kept ticking after halt: %v", h.rec.ticks)
	}
}
