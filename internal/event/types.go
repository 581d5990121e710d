// internal/event/types.go
package event

import "knife-arena/internal/types"

const (
	RoundStarted      EventType = "RoundStarted"      // countdown began, world was reset
	CountdownTick     EventType = "CountdownTick"     // Data: CountdownData
	RoundActive       EventType = "RoundActive"       // attacks enabled
	RoundResolved     EventType = "RoundResolved"     // Data: ResolvedData
	MoveIssued        EventType = "MoveIssued"        // Data: MoveData
	KnifeThrown       EventType = "KnifeThrown"       // Data: ThrowData
	CombatantHit      EventType = "CombatantHit"      // Data: HitData
	CombatantDefeated EventType = "CombatantDefeated" // Data: HitData
	PeerJoined        EventType = "PeerJoined"
	PeerDisconnected  EventType = "PeerDisconnected"
)

// CountdownData carries the number shown on the countdown; 0 means "FIGHT!".
type CountdownData struct {
	Remaining int
}

// ResolvedData names the winner of a round.
type ResolvedData struct {
	Winner types.PlayerID
	Loser  types.PlayerID
}

// MoveData describes an accepted move intent.
type MoveData struct {
	Player types.PlayerID
	X, Z   float64
	Remote bool // originated from the peer
}

// ThrowData describes an accepted throw.
type ThrowData struct {
	Thrower          types.PlayerID
	TargetX, TargetZ float64
	Miss             bool // scripted opponent deliberately aimed off
	Remote           bool
}

// HitData describes a knife landing on a combatant.
type HitData struct {
	Target types.PlayerID
	Health int
	X, Z   float64
	Remote bool // reported by the peer, not simulated locally
}
