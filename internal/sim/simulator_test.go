package sim

import (
	"math"
	"testing"
	"time"

	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/entity"
	"knife-arena/internal/types"
)

func newTestWorld() *entity.World {
	w := entity.NewWorld([2]component.Role{component.RoleHuman, component.RoleAI})
	w.Phase = component.PhaseActive
	return w
}

func TestTickStepAccounting(t *testing.T) {
	frames := []float64{0.016, 0.017, 0.001, 0.0333, 0.5, 0, -0.2, 0.008, 0.0079, 0.1}

	w := newTestWorld()
	calls := 0
	s := NewSimulator(w, RulesFunc(func(now, dt time.Duration) { calls++ }), nil)

	var total float64
	for _, f := range frames {
		s.Tick(f)
		clamped := math.Max(0, math.Min(f, config.MaxFrameTime))
		total += clamped

		leftover := s.Leftover()
		if leftover < 0 || leftover >= config.FixedStep {
			t.Fatalf("leftover %v outside [0, %v)", leftover, config.FixedStep)
		}
		alpha := s.Alpha()
		if alpha < 0 || alpha >= 1 {
			t.Fatalf("alpha %f outside [0, 1)", alpha)
		}
	}

	expected := math.Floor(total / config.FixedStep.Seconds())
	if diff := math.Abs(float64(s.Steps()) - expected); diff > 1 {
		t.Errorf("steps = %d, expected %v (±1)", s.Steps(), expected)
	}
	if uint64(calls) != s.Steps() {
		t.Errorf("rules ran %d times for %d steps", calls, s.Steps())
	}
	if s.Now() != time.Duration(s.Steps())*config.FixedStep {
		t.Errorf("Now() = %v, want steps × step", s.Now())
	}
}

func TestTickClampsLongFrames(t *testing.T) {
	s := NewSimulator(newTestWorld(), RulesFunc(func(now, dt time.Duration) {}), nil)
	ran := s.Tick(10)
	want := int(secondsToDuration(config.MaxFrameTime) / config.FixedStep)
	if ran != want {
		t.Errorf("10s frame ran %d steps, want %d", ran, want)
	}
}

func TestRulesSkippedWhenNotSimulating(t *testing.T) {
	w := newTestWorld()
	calls := 0
	s := NewSimulator(w, RulesFunc(func(now, dt time.Duration) { calls++ }), nil)

	w.Phase = component.PhaseResolved
	s.Tick(0.1)
	if calls != 0 {
		t.Errorf("rules ran %d times in a resolved round", calls)
	}
	if s.Steps() == 0 {
		t.Error("clock should keep stepping while frozen")
	}
}

func TestSchedulerAdvancedEachStep(t *testing.T) {
	w := newTestWorld()
	sched := NewScheduler()
	s := NewSimulator(w, RulesFunc(func(now, dt time.Duration) {}), sched)

	var firedAt time.Duration
	sched.After(100*time.Millisecond, func() { firedAt = s.Now() })
	s.Tick(0.2)
	if firedAt != 104*time.Millisecond && firedAt != 100*time.Millisecond {
		t.Errorf("timer fired at %v, want the first step at or after 100ms", firedAt)
	}
}

func TestStopHaltsTicks(t *testing.T) {
	s := NewSimulator(newTestWorld(), RulesFunc(func(now, dt time.Duration) {}), nil)
	s.Tick(0.1)
	steps := s.Steps()
	s.Stop()
	if n := s.Tick(0.1); n != 0 {
		t.Errorf("stopped simulator ran %d steps", n)
	}
	if s.Steps() != steps {
		t.Error("step count changed after Stop")
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (float64, float64) {
		w := newTestWorld()
		c := w.Combatant(types.Player1)
		c.SetTarget(-25, 30)
		s := NewSimulator(w, RulesFunc(func(now, dt time.Duration) {
			if c.Target == nil {
				return
			}
			step := c.Speed * dt.Seconds()
			dx, dz := c.Target.X-c.X, c.Target.Z-c.Z
			d := math.Hypot(dx, dz)
			if d <= step {
				c.X, c.Z = c.Target.X, c.Target.Z
				c.Stop()
				return
			}
			c.X += dx / d * step
			c.Z += dz / d * step
		}), nil)
		for _, f := range []float64{0.016, 0.021, 0.013, 0.016, 0.05} {
			s.Tick(f)
		}
		return c.X, c.Z
	}
	x1, z1 := run()
	x2, z2 := run()
	if x1 != x2 || z1 != z2 {
		t.Errorf("runs diverged: (%v,%v) vs (%v,%v)", x1, z1, x2, z2)
	}
}

func TestSnapshotsBracketLastStep(t *testing.T) {
	w := newTestWorld()
	c := w.Combatant(types.Player1)
	s := NewSimulator(w, RulesFunc(func(now, dt time.Duration) { c.X += 1 }), nil)
	start := c.X

	s.Tick(0.02) // two steps, 4ms left over
	if got := s.Previous().Combatant(types.Player1).X; got != start+1 {
		t.Errorf("previous X = %v, want %v", got, start+1)
	}
	if got := s.Current().Combatant(types.Player1).X; got != start+2 {
		t.Errorf("current X = %v, want %v", got, start+2)
	}
	f := s.Frame()
	if got := f.Combatant(types.Player1).X; math.Abs(got-(start+1.5)) > 1e-9 {
		t.Errorf("interpolated X = %v, want %v", got, start+1.5)
	}
}
