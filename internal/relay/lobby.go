// internal/relay/lobby.go
package relay

import (
	"context"
	"errors"
	"fmt"
	"log"

	"knife-arena/internal/types"
)

var (
	ErrJoinRejected = errors.New("join rejected")
	ErrRoomFull     = errors.New("room full")
	ErrRelay        = errors.New("relay error")
)

// Lobby runs the pre-match handshake on a channel: create or join a room,
// exchange ready flags and wait for the start signal. It reads the channel
// directly, so it must finish before an Adapter is started on it.
type Lobby struct {
	ch       Channel
	roomCode string
	local    types.PlayerID
	peerIn   bool
}

func NewLobby(ch Channel) *Lobby {
	return &Lobby{ch: ch}
}

// RoomCode returns the room the lobby is in, or "".
func (l *Lobby) RoomCode() string { return l.roomCode }

// Seat returns the seat assigned by the relay.
func (l *Lobby) Seat() types.PlayerID { return l.local }

// PeerPresent reports whether the second seat is taken.
func (l *Lobby) PeerPresent() bool { return l.peerIn }

// CreateRoom opens a room as host. An empty code asks for a random one.
func (l *Lobby) CreateRoom(ctx context.Context, code string) (RoomAssignment, error) {
	if code == "" {
		code = NewRoomCode()
	}
	if err := l.ch.Send(MustMessage(MsgCreateRoom, RoomRequest{RoomCode: code})); err != nil {
		return RoomAssignment{}, fmt.Errorf("create room: %w", err)
	}
	m, err := l.await(ctx, MsgRoomCreated, MsgError)
	if err != nil {
		return RoomAssignment{}, fmt.Errorf("create room: %w", err)
	}
	return l.assigned(m)
}

// JoinRoom takes the second seat of an existing room.
func (l *Lobby) JoinRoom(ctx context.Context, code string) (RoomAssignment, error) {
	if err := l.ch.Send(MustMessage(MsgJoinRoom, RoomRequest{RoomCode: code})); err != nil {
		return RoomAssignment{}, fmt.Errorf("join room: %w", err)
	}
	m, err := l.await(ctx, MsgJoinSuccess, MsgJoinError, MsgRoomFull, MsgError)
	if err != nil {
		return RoomAssignment{}, fmt.Errorf("join room %s: %w", code, err)
	}
	a, err := l.assigned(m)
	if err == nil {
		l.peerIn = true
	}
	return a, err
}

// WaitForPeer blocks the host until the guest has joined.
func (l *Lobby) WaitForPeer(ctx context.Context) error {
	if l.peerIn {
		return nil
	}
	if _, err := l.await(ctx, MsgPlayerJoined); err != nil {
		return fmt.Errorf("wait for peer: %w", err)
	}
	l.peerIn = true
	return nil
}

// SetReady sends the local ready flag.
func (l *Lobby) SetReady(ready bool) error {
	return l.ch.Send(MustMessage(MsgPlayerReady, ReadyRequest{RoomCode: l.roomCode, Ready: ready}))
}

// WaitForReady blocks until the peer reports ready.
func (l *Lobby) WaitForReady(ctx context.Context) error {
	for {
		m, err := l.await(ctx, MsgPlayerReadyUpdate)
		if err != nil {
			return fmt.Errorf("wait for ready: %w", err)
		}
		u, err := DecodePayload[ReadyUpdate](m)
		if err != nil {
			return err
		}
		if u.PlayerID != l.local && u.Ready {
			return nil
		}
	}
}

// Start asks the relay to begin the match. Only the host may do so, and
// only once both seats are ready.
func (l *Lobby) Start() error {
	return l.ch.Send(MustMessage(MsgStartGame, RoomRequest{RoomCode: l.roomCode}))
}

// WaitForStart blocks until the relay announces the match.
func (l *Lobby) WaitForStart(ctx context.Context) error {
	if _, err := l.await(ctx, MsgGameStart, MsgError); err != nil {
		return fmt.Errorf("wait for start: %w", err)
	}
	return nil
}

func (l *Lobby) assigned(m Message) (RoomAssignment, error) {
	a, err := DecodePayload[RoomAssignment](m)
	if err != nil {
		return RoomAssignment{}, err
	}
	if !a.PlayerID.Valid() {
		return RoomAssignment{}, fmt.Errorf("relay assigned seat %d", a.PlayerID)
	}
	l.roomCode = a.RoomCode
	l.local = a.PlayerID
	log.Printf("Relay: room %s, seat %d", a.RoomCode, a.PlayerID)
	return a, nil
}

// await reads until one of the wanted types arrives. Failure replies are
// turned into errors; any other traffic is skipped.
func (l *Lobby) await(ctx context.Context, want ...MessageType) (Message, error) {
	for {
		select {
		case <-ctx.Done():
			return Message{}, ctx.Err()
		case m, ok := <-l.ch.Receive():
			if !ok {
				return Message{}, ErrClosed
			}
			if m.Type == MsgPlayerJoined {
				l.peerIn = true
			}
			for _, t := range want {
				if m.Type != t {
					continue
				}
				if err := failure(m); err != nil {
					return Message{}, err
				}
				return m, nil
			}
			if m.Type == MsgOpponentDisconnected {
				l.peerIn = false
			}
		}
	}
}

func failure(m Message) error {
	var sentinel error
	switch m.Type {
	case MsgJoinError:
		sentinel = ErrJoinRejected
	case MsgRoomFull:
		sentinel = ErrRoomFull
	case MsgError:
		sentinel = ErrRelay
	default:
		return nil
	}
	p, _ := DecodePayload[ErrorPayload](m)
	return fmt.Errorf("%w: %s", sentinel, p.Message)
}
