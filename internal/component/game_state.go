// internal/component/game_state.go
package component

// Phase is the round lifecycle state stored on the world.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCountdown
	PhaseActive
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	}
	return "unknown"
}

// Simulating reports whether the fixed-step rules run in this phase.
func (p Phase) Simulating() bool {
	return p == PhaseCountdown || p == PhaseActive
}
