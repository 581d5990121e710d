// internal/round/states.go
package round

import (
	"knife-arena/internal/component"
	"knife-arena/internal/config"
	"knife-arena/internal/event"
	"knife-arena/internal/types"
)

// State is one phase of the round lifecycle.
type State interface {
	Phase() component.Phase
	Enter()
	Exit()
}

// IdleState is the pre-spawn phase: nothing simulates.
type IdleState struct {
	m *Machine
}

func (s *IdleState) Phase() component.Phase { return component.PhaseIdle }

func (s *IdleState) Enter() {
	s.m.world.Phase = component.PhaseIdle
}

func (s *IdleState) Exit() {}

// CountdownState resets the world and counts down to the fight with
// attacks disabled. Movement is allowed.
type CountdownState struct {
	m         *Machine
	remaining int
}

func (s *CountdownState) Phase() component.Phase { return component.PhaseCountdown }

func (s *CountdownState) Enter() {
	m := s.m
	m.scheduler.CancelAll()
	if m.rules != nil {
		m.rules.Reset()
	}
	m.world.Phase = component.PhaseCountdown
	m.world.Winner = types.NoPlayer
	m.world.ClearProjectiles()
	m.world.ClearEffects()

	now := m.scheduler.Now()
	for _, id := range types.Players {
		c := m.world.Combatant(id)
		spawn := m.world.Arena.Spawns[id.Index()]
		x := m.spawnRNG.Range(spawn.MinX, spawn.MaxX)
		z := m.spawnRNG.Range(spawn.MinZ, spawn.MaxZ)
		c.Reset(x, z, component.SpawnFacing(id))
		c.Cooldown = config.CountdownCooldown
		c.StampAttack(now)
	}

	m.round++
	s.remaining = config.CountdownFrom
	m.events.Dispatch(event.Event{Type: event.RoundStarted})
	m.events.Dispatch(event.Event{Type: event.CountdownTick, Data: event.CountdownData{Remaining: s.remaining}})
	m.scheduler.After(config.CountdownInterval, s.tick)
}

func (s *CountdownState) tick() {
	m := s.m
	s.remaining--
	m.events.Dispatch(event.Event{Type: event.CountdownTick, Data: event.CountdownData{Remaining: s.remaining}})
	if s.remaining > 0 {
		m.scheduler.After(config.CountdownInterval, s.tick)
		return
	}

	// "FIGHT!": regular cooldowns from here on, attacks open shortly after.
	for _, c := range m.world.Combatants {
		c.Cooldown = config.AttackCooldown
	}
	m.scheduler.After(config.FightDelay, func() {
		m.SetState(m.active)
	})
}

// Remaining returns the number currently shown; 0 means the fight call.
func (s *CountdownState) Remaining() int {
	return s.remaining
}

func (s *CountdownState) Exit() {}

// ActiveState is the fight: attacks and the scripted opponent are enabled.
type ActiveState struct {
	m *Machine
}

func (s *ActiveState) Phase() component.Phase { return component.PhaseActive }

func (s *ActiveState) Enter() {
	s.m.world.Phase = component.PhaseActive
	for _, c := range s.m.world.Combatants {
		c.AttackEnabled = true
	}
	s.m.events.Dispatch(event.Event{Type: event.RoundActive})
}

func (s *ActiveState) Exit() {
	for _, c := range s.m.world.Combatants {
		c.AttackEnabled = false
	}
}

// ResolvedState freezes the world with a winner recorded.
type ResolvedState struct {
	m      *Machine
	winner types.PlayerID
}

func (s *ResolvedState) Phase() component.Phase { return component.PhaseResolved }

func (s *ResolvedState) Enter() {
	m := s.m
	m.world.Phase = component.PhaseResolved
	m.world.Winner = s.winner
	m.scheduler.CancelAll()
	if s.winner.Valid() {
		m.tally[s.winner.Index()]++
	}
	for _, c := range m.world.Combatants {
		c.Stop()
	}
	m.events.Dispatch(event.Event{
		Type: event.RoundResolved,
		Data: event.ResolvedData{Winner: s.winner, Loser: s.winner.Other()},
	})
}

func (s *ResolvedState) Exit() {}
