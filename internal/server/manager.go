// internal/server/manager.go
package server

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"knife-arena/internal/config"
	"knife-arena/internal/relay"
	"knife-arena/internal/types"
)

var (
	ErrRoomNotFound = errors.New("room code does not exist")
	ErrRoomFull     = errors.New("room is full")
	ErrRoomExists   = errors.New("room already exists")
	ErrNotHost      = errors.New("only host can start game")
	ErrNotAllReady  = errors.New("all players must be ready")
	ErrNotInRoom    = errors.New("not in a room")
	ErrInRoom       = errors.New("already in a room")
)

// Peer is one connected client.
type Peer interface {
	ID() string
	Send(m relay.Message) error
}

// Seat is a player's place in a room.
type Seat struct {
	PlayerID types.PlayerID
	Ready    bool
	IsHost   bool
}

// Room is the relay's bookkeeping for one match. It holds no game state.
type Room struct {
	Code        string
	HostSession string
	Players     map[string]*Seat
	PlayerCount int
	GameStarted bool

	peers map[string]Peer
}

// RoomInfo is the public view returned by /rooms.
type RoomInfo struct {
	Code        string `json:"code"`
	Players     int    `json:"players"`
	GameStarted bool   `json:"gameStarted"`
}

// Manager owns every room. Handle and Disconnect are safe for concurrent
// use by the connection goroutines.
type Manager struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	sessions map[string]string // session id → room code
}

func NewManager() *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		sessions: make(map[string]string),
	}
}

// Handle processes one client message. Rejected actions are answered to the
// requester only, leave the room untouched and are returned as errors.
func (m *Manager) Handle(p Peer, msg relay.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch msg.Type {
	case relay.MsgCreateRoom:
		req, err := relay.DecodePayload[relay.RoomRequest](msg)
		if err != nil {
			return m.reject(p, relay.MsgError, err)
		}
		return m.createRoom(p, req.RoomCode)
	case relay.MsgJoinRoom:
		req, err := relay.DecodePayload[relay.RoomRequest](msg)
		if err != nil {
			return m.reject(p, relay.MsgJoinError, err)
		}
		return m.joinRoom(p, req.RoomCode)
	case relay.MsgPlayerReady:
		req, err := relay.DecodePayload[relay.ReadyRequest](msg)
		if err != nil {
			return m.reject(p, relay.MsgError, err)
		}
		return m.setReady(p, req.Ready)
	case relay.MsgStartGame:
		return m.startGame(p)
	case relay.MsgPlayerMove:
		move, err := relay.DecodePayload[relay.MovePayload](msg)
		if err != nil {
			return m.reject(p, relay.MsgError, err)
		}
		return m.forward(p, relay.MsgOpponentMove, relay.MovePayload{TargetX: move.TargetX, TargetZ: move.TargetZ})
	case relay.MsgKnifeThrow:
		throw, err := relay.DecodePayload[relay.ThrowPayload](msg)
		if err != nil {
			return m.reject(p, relay.MsgError, err)
		}
		return m.forward(p, relay.MsgOpponentKnifeThrow, relay.ThrowPayload{TargetX: throw.TargetX, TargetZ: throw.TargetZ})
	case relay.MsgHealthUpdate:
		hp, err := relay.DecodePayload[relay.HealthPayload](msg)
		if err != nil {
			return m.reject(p, relay.MsgError, err)
		}
		return m.forward(p, relay.MsgOpponentHealthUpdate, relay.HealthPayload{PlayerID: hp.PlayerID, Health: hp.Health})
	}
	return m.reject(p, relay.MsgError, fmt.Errorf("%q: %w", msg.Type, relay.ErrUnknownMessage))
}

func (m *Manager) createRoom(p Peer, code string) error {
	if _, in := m.sessions[p.ID()]; in {
		return m.reject(p, relay.MsgError, ErrInRoom)
	}
	if code == "" {
		for {
			code = relay.NewRoomCode()
			if _, exists := m.rooms[code]; !exists {
				break
			}
		}
	}
	if _, exists := m.rooms[code]; exists {
		return m.reject(p, relay.MsgError, ErrRoomExists)
	}

	r := &Room{
		Code:        code,
		HostSession: p.ID(),
		Players:     map[string]*Seat{p.ID(): {PlayerID: types.Player1, IsHost: true}},
		PlayerCount: 1,
		peers:       map[string]Peer{p.ID(): p},
	}
	m.rooms[code] = r
	m.sessions[p.ID()] = code

	log.Printf("Room created: %s by %s", code, p.ID())
	m.send(p, relay.MsgRoomCreated, relay.RoomAssignment{RoomCode: code, PlayerID: types.Player1})
	return nil
}

func (m *Manager) joinRoom(p Peer, code string) error {
	if _, in := m.sessions[p.ID()]; in {
		return m.reject(p, relay.MsgJoinError, ErrInRoom)
	}
	r, ok := m.rooms[code]
	if !ok {
		return m.reject(p, relay.MsgJoinError, ErrRoomNotFound)
	}
	if r.PlayerCount >= config.RoomCapacity {
		return m.reject(p, relay.MsgRoomFull, ErrRoomFull)
	}

	seat := r.freeSeat()
	r.Players[p.ID()] = &Seat{PlayerID: seat, IsHost: r.HostSession == ""}
	if r.HostSession == "" {
		r.HostSession = p.ID()
	}
	r.peers[p.ID()] = p
	r.PlayerCount++
	m.sessions[p.ID()] = code

	log.Printf("Player %s joined room %s as seat %d", p.ID(), code, seat)
	m.send(p, relay.MsgJoinSuccess, relay.RoomAssignment{RoomCode: code, PlayerID: seat})
	if host, ok := r.peers[r.HostSession]; ok && r.HostSession != p.ID() {
		m.send(host, relay.MsgPlayerJoined, relay.RoomNotice{RoomCode: code})
	}
	return nil
}

func (r *Room) freeSeat() types.PlayerID {
	taken := make(map[types.PlayerID]bool, len(r.Players))
	for _, s := range r.Players {
		taken[s.PlayerID] = true
	}
	for _, id := range types.Players {
		if !taken[id] {
			return id
		}
	}
	return types.NoPlayer
}

func (m *Manager) setReady(p Peer, ready bool) error {
	r, err := m.roomOf(p)
	if err != nil {
		return m.reject(p, relay.MsgError, err)
	}
	seat := r.Players[p.ID()]
	seat.Ready = ready
	log.Printf("Player %s ready state: %v in room %s", p.ID(), ready, r.Code)
	m.broadcast(r, "", relay.MsgPlayerReadyUpdate, relay.ReadyUpdate{PlayerID: seat.PlayerID, Ready: ready})
	return nil
}

func (m *Manager) startGame(p Peer) error {
	r, err := m.roomOf(p)
	if err != nil {
		return m.reject(p, relay.MsgError, err)
	}
	if r.HostSession != p.ID() {
		return m.reject(p, relay.MsgError, ErrNotHost)
	}
	for _, s := range r.Players {
		if !s.Ready {
			return m.reject(p, relay.MsgError, ErrNotAllReady)
		}
	}
	r.GameStarted = true
	log.Printf("Game started in room %s", r.Code)
	m.broadcast(r, "", relay.MsgGameStart, relay.RoomNotice{RoomCode: r.Code})
	return nil
}

// forward relays a gameplay message to everyone in the sender's room but
// the sender.
func (m *Manager) forward(p Peer, t relay.MessageType, payload any) error {
	r, err := m.roomOf(p)
	if err != nil {
		return m.reject(p, relay.MsgError, err)
	}
	m.broadcast(r, p.ID(), t, payload)
	return nil
}

// Disconnect removes a peer from its room, tells the remaining player and
// deletes the room once it is empty.
func (m *Manager) Disconnect(p Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, ok := m.sessions[p.ID()]
	if !ok {
		return
	}
	delete(m.sessions, p.ID())
	r, ok := m.rooms[code]
	if !ok {
		return
	}
	delete(r.Players, p.ID())
	delete(r.peers, p.ID())
	r.PlayerCount--
	if r.HostSession == p.ID() {
		r.HostSession = ""
	}
	log.Printf("Client %s left room %s", p.ID(), code)

	m.broadcast(r, "", relay.MsgOpponentDisconnected, nil)

	if r.PlayerCount <= 0 {
		delete(m.rooms, code)
		log.Printf("Room %s deleted (empty)", code)
	}
}

// Rooms lists the open rooms sorted by code.
func (m *Manager) Rooms() []RoomInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, RoomInfo{Code: code, Players: r.PlayerCount, GameStarted: r.GameStarted})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Room returns a copy of a room record.
func (m *Manager) Room(code string) (Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[code]
	if !ok {
		return Room{}, false
	}
	cp := Room{
		Code:        r.Code,
		HostSession: r.HostSession,
		Players:     make(map[string]*Seat, len(r.Players)),
		PlayerCount: r.PlayerCount,
		GameStarted: r.GameStarted,
	}
	for id, s := range r.Players {
		seat := *s
		cp.Players[id] = &seat
	}
	return cp, true
}

func (m *Manager) roomOf(p Peer) (*Room, error) {
	code, ok := m.sessions[p.ID()]
	if !ok {
		return nil, ErrNotInRoom
	}
	r, ok := m.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (m *Manager) reject(p Peer, t relay.MessageType, err error) error {
	log.Printf("Rejected %s from %s: %v", t, p.ID(), err)
	m.send(p, t, relay.ErrorPayload{Message: err.Error()})
	return err
}

func (m *Manager) broadcast(r *Room, except string, t relay.MessageType, payload any) {
	for id, peer := range r.peers {
		if id == except {
			continue
		}
		m.send(peer, t, payload)
	}
}

func (m *Manager) send(p Peer, t relay.MessageType, payload any) {
	msg, err := relay.NewMessage(t, payload)
	if err != nil {
		log.Printf("ERROR: encode %s: %v", t, err)
		return
	}
	if err := p.Send(msg); err != nil {
		log.Printf("WARNING: send %s to %s: %v", t, p.ID(), err)
	}
}
