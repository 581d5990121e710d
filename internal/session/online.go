// internal/session/online.go
package session

import (
	"context"
	"fmt"
	"log"

	"knife-arena/internal/relay"
)

// OnlineOptions describe how to reach and enter a relay room.
type OnlineOptions struct {
	URL      string
	Host     bool
	RoomCode string // host: "" asks for a random code; guest: required
	Seed     int64

	// OnRoom is called with the room code as soon as it is known, so the
	// host can show it while waiting for the guest.
	OnRoom func(code string)
}

// Connect dials the relay, runs the lobby handshake and returns a started
// online session. The host waits for the guest and starts the match; the
// guest waits for the start.
func Connect(ctx context.Context, o OnlineOptions) (*Session, error) {
	if !o.Host && o.RoomCode == "" {
		return nil, fmt.Errorf("join: room code required")
	}
	ch, err := relay.Dial(ctx, o.URL)
	if err != nil {
		return nil, err
	}
	s, err := handshake(ctx, ch, o)
	if err != nil {
		ch.Close()
		ch.Wait()
		return nil, err
	}
	return s, nil
}

func handshake(ctx context.Context, ch relay.Channel, o OnlineOptions) (*Session, error) {
	lobby := relay.NewLobby(ch)

	var (
		a   relay.RoomAssignment
		err error
	)
	if o.Host {
		a, err = lobby.CreateRoom(ctx, o.RoomCode)
	} else {
		a, err = lobby.JoinRoom(ctx, o.RoomCode)
	}
	if err != nil {
		return nil, err
	}
	if o.OnRoom != nil {
		o.OnRoom(a.RoomCode)
	}

	if o.Host {
		log.Printf("Room %s: waiting for an opponent", a.RoomCode)
		if err := lobby.WaitForPeer(ctx); err != nil {
			return nil, err
		}
	}
	if err := lobby.SetReady(true); err != nil {
		return nil, fmt.Errorf("ready: %w", err)
	}
	if o.Host {
		if err := lobby.WaitForReady(ctx); err != nil {
			return nil, err
		}
		if err := lobby.Start(); err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
	}
	if err := lobby.WaitForStart(ctx); err != nil {
		return nil, err
	}

	s, err := New(Options{
		Mode:     ModeOnline,
		Seed:     o.Seed,
		Channel:  ch,
		RoomCode: a.RoomCode,
		Local:    a.PlayerID,
	})
	if err != nil {
		return nil, err
	}
	s.Start()
	return s, nil
}
