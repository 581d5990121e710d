// internal/sim/simulator.go
package sim

import (
	"time"

	"knife-arena/internal/config"
	"knife-arena/internal/entity"
)

// Rules advances the world by exactly one fixed step. now is the simulation
// time at the end of the step.
type Rules interface {
	Step(now, dt time.Duration)
}

// RulesFunc adapts a function to Rules.
type RulesFunc func(now, dt time.Duration)

func (f RulesFunc) Step(now, dt time.Duration) { f(now, dt) }

// Simulator drives the rules at a fixed rate independent of the frame rate
// and keeps the two most recent snapshots for interpolation.
type Simulator struct {
	world     *entity.World
	rules     Rules
	scheduler *Scheduler

	step        time.Duration
	maxFrame    time.Duration
	accumulator time.Duration
	steps       uint64
	stopped     bool

	previous Snapshot
	current  Snapshot
}

// NewSimulator creates a simulator over world. scheduler may be nil.
func NewSimulator(world *entity.World, rules Rules, scheduler *Scheduler) *Simulator {
	if scheduler == nil {
		scheduler = NewScheduler()
	}
	s := &Simulator{
		world:     world,
		rules:     rules,
		scheduler: scheduler,
		step:      config.FixedStep,
		maxFrame:  secondsToDuration(config.MaxFrameTime),
	}
	s.Resync()
	return s
}

// Tick consumes one frame of real elapsed time and returns how many fixed
// steps ran. Frames longer than MaxFrameTime are clamped.
func (s *Simulator) Tick(elapsed float64) int {
	if s.stopped {
		return 0
	}
	frame := secondsToDuration(elapsed)
	if frame < 0 {
		frame = 0
	}
	if frame > s.maxFrame {
		frame = s.maxFrame
	}
	s.accumulator += frame

	ran := 0
	for s.accumulator >= s.step && !s.stopped {
		s.previous = Capture(s.world, s.steps)
		s.steps++
		now := s.Now()
		s.scheduler.Advance(now)
		if s.world.Phase.Simulating() {
			s.rules.Step(now, s.step)
		}
		s.current = Capture(s.world, s.steps)
		s.accumulator -= s.step
		ran++
	}
	return ran
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
func (s *Simulator) Alpha() float64 {
	return float64(s.accumulator) / float64(s.step)
}

// Leftover returns the unconsumed time in the accumulator.
func (s *Simulator) Leftover() time.Duration {
	return s.accumulator
}

// Steps returns the number of fixed steps executed so far.
func (s *Simulator) Steps() uint64 {
	return s.steps
}

// Now returns the simulation time: Steps × FixedStep.
func (s *Simulator) Now() time.Duration {
	return time.Duration(s.steps) * s.step
}

// Scheduler returns the timer queue advanced by this simulator.
func (s *Simulator) Scheduler() *Scheduler {
	return s.scheduler
}

// World returns the simulated world.
func (s *Simulator) World() *entity.World {
	return s.world
}

// Previous returns the snapshot taken before the last step.
func (s *Simulator) Previous() Snapshot {
	return s.previous
}

// Current returns the snapshot taken after the last step.
func (s *Simulator) Current() Snapshot {
	return s.current
}

// Frame interpolates the two snapshots at the current alpha.
func (s *Simulator) Frame() Frame {
	return Interpolate(s.previous, s.current, s.Alpha())
}

// Resync replaces both snapshots with the present world so a teleport (round
// reset) is not smeared across a frame.
func (s *Simulator) Resync() {
	s.current = Capture(s.world, s.steps)
	s.previous = s.current
}

// Stop halts the simulator permanently. Tick becomes a no-op.
func (s *Simulator) Stop() {
	s.stopped = true
	s.accumulator = 0
}

// Stopped reports whether Stop was called.
func (s *Simulator) Stopped() bool {
	return s.stopped
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
