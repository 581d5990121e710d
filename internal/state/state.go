// internal/state/state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"

	"knife-arena/internal/audio"
	"knife-arena/internal/config"
	"knife-arena/internal/session"
)

// State is one screen of the 2D client.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Shared is what every screen needs.
type Shared struct {
	Settings config.Settings
	Sessions *session.Manager
	Audio    *audio.SoundManager
}

// StateMachine switches between screens.
type StateMachine struct {
	current State
	shared  *Shared
}

// NewStateMachine creates a machine with no screen yet.
func NewStateMachine(shared *Shared) *StateMachine {
	return &StateMachine{shared: shared}
}

// SetState leaves the current screen and enters the new one.
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

func (sm *StateMachine) Current() State { return sm.current }

func (sm *StateMachine) Shared() *Shared { return sm.shared }

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// Shutdown leaves the current screen.
func (sm *StateMachine) Shutdown() {
	sm.SetState(nil)
}
