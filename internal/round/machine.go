// internal/round/machine.go
package round

import (
	"log"

	"knife-arena/internal/component"
	"knife-arena/internal/entity"
	"knife-arena/internal/event"
	"knife-arena/internal/sim"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// Resetter drops per-round bookkeeping outside the world, such as pending
// attack timers of the combat rules.
type Resetter interface {
	Reset()
}

// Machine runs Idle → Countdown → Active → Resolved and back to Countdown on
// a rematch. Countdown ticks run on the simulation scheduler.
type Machine struct {
	world     *entity.World
	events    *event.Dispatcher
	scheduler *sim.Scheduler
	rules     Resetter
	spawnRNG  *utils.PRNGService

	current   State
	idle      *IdleState
	countdown *CountdownState
	active    *ActiveState
	resolved  *ResolvedState

	tally [2]int
	round int
}

// NewMachine creates a machine in Idle and subscribes it to defeats.
// spawnRNG draws the spawn positions; rules may be nil.
func NewMachine(world *entity.World, events *event.Dispatcher, scheduler *sim.Scheduler, rules Resetter, spawnRNG *utils.PRNGService) *Machine {
	m := &Machine{
		world:     world,
		events:    events,
		scheduler: scheduler,
		rules:     rules,
		spawnRNG:  spawnRNG,
	}
	m.idle = &IdleState{m: m}
	m.countdown = &CountdownState{m: m}
	m.active = &ActiveState{m: m}
	m.resolved = &ResolvedState{m: m}

	events.Subscribe(event.CombatantDefeated, m)
	m.SetState(m.idle)
	return m
}

// SetState leaves the current state and enters next.
func (m *Machine) SetState(next State) {
	if m.current != nil {
		m.current.Exit()
	}
	m.current = next
	if m.current != nil {
		m.current.Enter()
	}
}

// Phase returns the phase of the current state.
func (m *Machine) Phase() component.Phase {
	if m.current == nil {
		return component.PhaseIdle
	}
	return m.current.Phase()
}

// StartCountdown resets the world and begins the countdown from any phase.
func (m *Machine) StartCountdown() {
	m.SetState(m.countdown)
	log.Printf("Round %d: countdown started", m.round)
}

// Rematch starts a fresh round after a resolution. It is ignored while a
// round is in progress.
func (m *Machine) Rematch() bool {
	if m.Phase() != component.PhaseResolved {
		return false
	}
	m.StartCountdown()
	return true
}

// Resolve ends the round with winner. Only a running round can resolve.
func (m *Machine) Resolve(winner types.PlayerID) bool {
	if !m.Phase().Simulating() {
		return false
	}
	m.resolved.winner = winner
	m.SetState(m.resolved)
	log.Printf("Round %d: resolved, winner player %d (tally %d:%d)", m.round, winner, m.tally[0], m.tally[1])
	return true
}

// Halt cancels pending countdown timers and returns to Idle.
func (m *Machine) Halt() {
	m.scheduler.CancelAll()
	m.SetState(m.idle)
	m.events.Unsubscribe(event.CombatantDefeated, m)
}

// OnEvent resolves the round the instant a combatant is defeated.
func (m *Machine) OnEvent(e event.Event) {
	if e.Type != event.CombatantDefeated {
		return
	}
	hit, ok := e.Data.(event.HitData)
	if !ok {
		return
	}
	m.Resolve(hit.Target.Other())
}

// Countdown returns the number shown on the countdown, or -1 outside it.
func (m *Machine) Countdown() int {
	if m.Phase() != component.PhaseCountdown {
		return -1
	}
	return m.countdown.Remaining()
}

// Winner returns the winner of the last resolved round.
func (m *Machine) Winner() types.PlayerID {
	if m.Phase() != component.PhaseResolved {
		return types.NoPlayer
	}
	return m.resolved.winner
}

// Tally returns the kill counts of both seats across rematches.
func (m *Machine) Tally() [2]int {
	return m.tally
}

// Round returns the 1-based number of the current round, 0 before the first.
func (m *Machine) Round() int {
	return m.round
}
