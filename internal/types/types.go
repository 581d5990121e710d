// internal/types/types.go
package types

// EntityID identifies projectiles and effects for the lifetime of a session.
type EntityID uint32

// PlayerID is the seat of a combatant in a match: 1 is the host (left half),
// 2 is the guest or the practice AI (right half).
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

// Players lists the seats in simulation order.
var Players = [2]PlayerID{Player1, Player2}

// Other returns the opposing seat.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// Valid reports whether p is one of the two seats.
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Index maps a seat to 0 or 1 for fixed-size arrays.
func (p PlayerID) Index() int {
	return int(p) - 1
}
