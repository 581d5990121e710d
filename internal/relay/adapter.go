// internal/relay/adapter.go
package relay

import (
	"fmt"
	"log"
	"sync"

	"knife-arena/internal/config"
	"knife-arena/internal/event"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// Sink applies peer intents to the local simulation as if they were issued
// locally for the opponent's seat.
type Sink interface {
	RemoteMove(x, z float64)
	RemoteThrow(x, z float64)
	RemoteHealth(id types.PlayerID, hp int)
	RemoteStart()
	PeerJoined()
	PeerLeft()
}

// Adapter translates local events into relay messages and relay messages
// into Sink calls. Inbound messages are buffered in a mailbox by a pump
// goroutine and applied only when the owner calls Poll, so the simulation
// is never touched from the network goroutine.
type Adapter struct {
	ch       Channel
	roomCode string
	local    types.PlayerID

	mailbox chan Message
	wg      sync.WaitGroup
	once    sync.Once
	closing chan struct{}
}

// NewAdapter binds ch to a room and the local seat.
func NewAdapter(ch Channel, roomCode string, local types.PlayerID) *Adapter {
	return &Adapter{
		ch:       ch,
		roomCode: roomCode,
		local:    local,
		mailbox:  make(chan Message, config.RelayMailboxSize),
		closing:  make(chan struct{}),
	}
}

// Local returns the local seat.
func (a *Adapter) Local() types.PlayerID {
	return a.local
}

// Remote returns the seat driven by the peer.
func (a *Adapter) Remote() types.PlayerID {
	return a.local.Other()
}

// RoomCode returns the room this adapter talks to.
func (a *Adapter) RoomCode() string {
	return a.roomCode
}

// Start launches the pump that copies inbound messages into the mailbox.
// When the connection drops the peer is reported as disconnected.
func (a *Adapter) Start() {
	a.wg.Add(1)
	go a.pump()
}

func (a *Adapter) pump() {
	defer a.wg.Done()
	for m := range a.ch.Receive() {
		select {
		case a.mailbox <- m:
		case <-a.closing:
			return
		}
	}
	select {
	case <-a.closing:
	default:
		log.Println("WARNING: relay connection lost")
		select {
		case a.mailbox <- Message{Type: MsgOpponentDisconnected, Payload: []byte("{}")}:
		default:
		}
	}
}

// Poll applies every buffered message to sink and returns how many were
// applied. It never blocks.
func (a *Adapter) Poll(sink Sink) int {
	n := 0
	for {
		select {
		case m := <-a.mailbox:
			if err := a.Apply(m, sink); err != nil {
				log.Printf("WARNING: relay message %s ignored: %v", m.Type, err)
				continue
			}
			n++
		default:
			return n
		}
	}
}

// Apply maps one inbound message onto sink.
func (a *Adapter) Apply(m Message, sink Sink) error {
	switch m.Type {
	case MsgOpponentMove:
		p, err := DecodePayload[MovePayload](m)
		if err != nil {
			return err
		}
		sink.RemoteMove(p.TargetX, p.TargetZ)
	case MsgOpponentKnifeThrow:
		p, err := DecodePayload[ThrowPayload](m)
		if err != nil {
			return err
		}
		sink.RemoteThrow(p.TargetX, p.TargetZ)
	case MsgOpponentHealthUpdate:
		p, err := DecodePayload[HealthPayload](m)
		if err != nil {
			return err
		}
		if !p.PlayerID.Valid() {
			return fmt.Errorf("health update for seat %d", p.PlayerID)
		}
		sink.RemoteHealth(p.PlayerID, utils.ClampInt(p.Health, 0, config.MaxHealth))
	case MsgOpponentDisconnected:
		sink.PeerLeft()
	case MsgPlayerJoined:
		sink.PeerJoined()
	case MsgGameStart:
		sink.RemoteStart()
	case MsgError, MsgJoinError, MsgRoomFull:
		p, _ := DecodePayload[ErrorPayload](m)
		log.Printf("WARNING: relay reported %s: %s", m.Type, p.Message)
	case MsgPlayerReadyUpdate, MsgRoomCreated, MsgJoinSuccess:
		// lobby traffic, nothing to apply mid-match
	default:
		return fmt.Errorf("%q: %w", m.Type, ErrUnknownMessage)
	}
	return nil
}

// SendMove publishes a local move target.
func (a *Adapter) SendMove(x, z float64) error {
	return a.send(MsgPlayerMove, MovePayload{RoomCode: a.roomCode, TargetX: x, TargetZ: z})
}

// SendThrow publishes a local throw.
func (a *Adapter) SendThrow(x, z float64) error {
	return a.send(MsgKnifeThrow, ThrowPayload{RoomCode: a.roomCode, TargetX: x, TargetZ: z, FromPlayer: a.local})
}

// SendHealth publishes a health value computed locally.
func (a *Adapter) SendHealth(id types.PlayerID, hp int) error {
	hp = utils.ClampInt(hp, 0, config.MaxHealth)
	return a.send(MsgHealthUpdate, HealthPayload{RoomCode: a.roomCode, PlayerID: id, Health: hp})
}

// SendReady toggles the ready flag in the room.
func (a *Adapter) SendReady(ready bool) error {
	return a.send(MsgPlayerReady, ReadyRequest{RoomCode: a.roomCode, Ready: ready})
}

// SendStart asks the relay to start (or restart) the match. Host only.
func (a *Adapter) SendStart() error {
	return a.send(MsgStartGame, RoomRequest{RoomCode: a.roomCode})
}

func (a *Adapter) send(t MessageType, payload any) error {
	m, err := NewMessage(t, payload)
	if err != nil {
		return err
	}
	if err := a.ch.Send(m); err != nil {
		return fmt.Errorf("send %s: %w", t, err)
	}
	return nil
}

// OnEvent forwards local intents that the simulation accepted. Events
// caused by the peer are not echoed back.
func (a *Adapter) OnEvent(e event.Event) {
	var err error
	switch data := e.Data.(type) {
	case event.MoveData:
		if data.Remote || data.Player != a.local {
			return
		}
		err = a.SendMove(data.X, data.Z)
	case event.ThrowData:
		if data.Remote || data.Thrower != a.local {
			return
		}
		err = a.SendThrow(data.TargetX, data.TargetZ)
	case event.HitData:
		if data.Remote {
			return
		}
		err = a.SendHealth(data.Target, data.Health)
	default:
		return
	}
	if err != nil {
		log.Printf("WARNING: %v", err)
	}
}

// Subscribe registers the adapter for the events it forwards.
func (a *Adapter) Subscribe(d *event.Dispatcher) {
	d.SubscribeMany(a, event.MoveIssued, event.KnifeThrown, event.CombatantHit)
}

// Unsubscribe removes the adapter from d.
func (a *Adapter) Unsubscribe(d *event.Dispatcher) {
	d.Unsubscribe(event.MoveIssued, a)
	d.Unsubscribe(event.KnifeThrown, a)
	d.Unsubscribe(event.CombatantHit, a)
}

// Close shuts the channel and waits for the pump to exit.
func (a *Adapter) Close() error {
	var err error
	a.once.Do(func() {
		close(a.closing)
		err = a.ch.Close()
		a.wg.Wait()
	})
	return err
}
