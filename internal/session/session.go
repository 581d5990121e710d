// internal/session/session.go
package session

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"time"

	"knife-arena/internal/component"
	"knife-arena/internal/entity"
	"knife-arena/internal/event"
	"knife-arena/internal/relay"
	"knife-arena/internal/round"
	"knife-arena/internal/sim"
	"knife-arena/internal/system"
	"knife-arena/internal/types"
	"knife-arena/internal/utils"
)

// Mode selects who drives the opponent seat.
type Mode int

const (
	ModePractice Mode = iota // scripted opponent
	ModeOnline               // peer over the relay
)

func (m Mode) String() string {
	if m == ModeOnline {
		return "online"
	}
	return "practice"
}

var ErrNoChannel = errors.New("online session needs a relay channel")

// Options configure a session.
type Options struct {
	Mode Mode
	Seed int64 // 0 picks one from the clock

	// Online only.
	Channel  relay.Channel
	RoomCode string
	Local    types.PlayerID
}

// Session owns one match: world, simulator, rules, round machine and, when
// online, the relay adapter. All methods must be called from the goroutine
// that drives Frame.
type Session struct {
	mode  Mode
	local types.PlayerID

	world     *entity.World
	events    *event.Dispatcher
	scheduler *sim.Scheduler
	simulator *sim.Simulator
	rules     *system.Rules
	machine   *round.Machine
	adapter   *relay.Adapter

	rng      *utils.PRNGService
	spawnRNG *utils.PRNGService
	roomCode string

	peerPresent bool
	starts      int
	disposed    bool
}

// New builds a session in Idle. Call Start to begin the first countdown.
func New(opts Options) (*Session, error) {
	local := types.Player1
	roles := [2]component.Role{component.RoleHuman, component.RoleAI}
	if opts.Mode == ModeOnline {
		if opts.Channel == nil {
			return nil, ErrNoChannel
		}
		if !opts.Local.Valid() {
			return nil, fmt.Errorf("invalid local seat %d", opts.Local)
		}
		local = opts.Local
		roles[local.Index()] = component.RoleHuman
		roles[local.Other().Index()] = component.RoleRemote
	}

	s := &Session{
		mode:        opts.Mode,
		local:       local,
		world:       entity.NewWorld(roles),
		events:      event.NewDispatcher(),
		scheduler:   sim.NewScheduler(),
		rng:         utils.NewPRNGService(opts.Seed),
		roomCode:    opts.RoomCode,
		peerPresent: opts.Mode == ModeOnline,
	}

	// Online peers must agree on spawns, so they derive them from the room.
	s.spawnRNG = s.rng
	if opts.Mode == ModeOnline {
		s.spawnRNG = utils.NewPRNGService(spawnSeed(opts.RoomCode, 0))
	}

	s.rules = system.NewRules(s.world, s.events, s.scheduler, s.rng)
	s.simulator = sim.NewSimulator(s.world, s.rules, s.scheduler)
	s.machine = round.NewMachine(s.world, s.events, s.scheduler, s.rules, s.spawnRNG)
	s.events.SubscribeMany(s, event.RoundStarted, event.RoundResolved)

	if opts.Mode == ModeOnline {
		s.adapter = relay.NewAdapter(opts.Channel, opts.RoomCode, local)
		s.adapter.Subscribe(s.events)
	}

	log.Printf("Session seed: %d (mode %s, seat %d)", s.rng.Seed(), s.mode, s.local)
	return s, nil
}

// spawnSeed hashes the room code and the match number into a seed shared by
// both peers.
func spawnSeed(code string, match int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", code, match)
	return int64(h.Sum64())
}

// Start begins the first countdown and, online, the relay pump.
func (s *Session) Start() {
	if s.disposed || s.starts > 0 {
		return
	}
	if s.adapter != nil {
		s.adapter.Start()
	}
	s.begin()
}

func (s *Session) begin() {
	if s.mode == ModeOnline {
		s.spawnRNG.Reseed(spawnSeed(s.roomCode, s.starts))
	}
	s.starts++
	if s.machine.Phase() == component.PhaseResolved {
		s.machine.Rematch()
		return
	}
	s.machine.StartCountdown()
}

// Frame applies peer messages, advances the simulation by elapsed seconds
// and returns the interpolated poses. A disposed session returns an empty
// frame.
func (s *Session) Frame(elapsed float64) sim.Frame {
	if s.disposed {
		return sim.Frame{}
	}
	if s.adapter != nil {
		s.adapter.Poll(s)
	}
	s.simulator.Tick(elapsed)
	return s.simulator.Frame()
}

// MoveTo is the local player's right-click.
func (s *Session) MoveTo(x, z float64) bool {
	if s.disposed {
		return false
	}
	return s.rules.MoveTo(s.local, x, z, false)
}

// Throw is the local player's throw at a floor point.
func (s *Session) Throw(x, z float64) bool {
	if s.disposed {
		return false
	}
	return s.rules.Combat.TryThrow(s.local, x, z, s.simulator.Now())
}

// ThrowAhead throws along the facing when there is no aim point.
func (s *Session) ThrowAhead() bool {
	if s.disposed {
		return false
	}
	return s.rules.Combat.ThrowAhead(s.local, s.simulator.Now())
}

// Rematch restarts after a resolution. Online only the host may ask, and
// the round restarts on both sides when the relay confirms.
func (s *Session) Rematch() bool {
	if s.disposed || s.machine.Phase() != component.PhaseResolved {
		return false
	}
	if s.mode == ModePractice {
		s.begin()
		return true
	}
	if s.local != types.Player1 {
		log.Println("Rematch: waiting for the host")
		return false
	}
	if err := s.adapter.SendStart(); err != nil {
		log.Printf("WARNING: rematch: %v", err)
		return false
	}
	return true
}

// RemoteMove implements relay.Sink.
func (s *Session) RemoteMove(x, z float64) {
	s.rules.MoveTo(s.local.Other(), x, z, true)
}

// RemoteThrow implements relay.Sink.
func (s *Session) RemoteThrow(x, z float64) {
	s.rules.Combat.RemoteThrow(s.local.Other(), x, z, s.simulator.Now())
}

// RemoteHealth implements relay.Sink.
func (s *Session) RemoteHealth(id types.PlayerID, hp int) {
	s.rules.ApplyRemoteHealth(id, hp)
}

// RemoteStart implements relay.Sink. A start while a round is running is a
// duplicate and ignored.
func (s *Session) RemoteStart() {
	if s.machine.Phase().Simulating() {
		return
	}
	s.begin()
}

// PeerJoined implements relay.Sink.
func (s *Session) PeerJoined() {
	s.peerPresent = true
	log.Println("Opponent joined")
	s.events.Dispatch(event.Event{Type: event.PeerJoined})
}

// PeerLeft implements relay.Sink. The simulation keeps running.
func (s *Session) PeerLeft() {
	if !s.peerPresent {
		return
	}
	s.peerPresent = false
	log.Println("WARNING: opponent disconnected")
	s.events.Dispatch(event.Event{Type: event.PeerDisconnected})
}

// OnEvent keeps interpolation from smearing round resets.
func (s *Session) OnEvent(e event.Event) {
	switch e.Type {
	case event.RoundStarted:
		s.simulator.Resync()
	case event.RoundResolved:
		t := s.machine.Tally()
		log.Printf("Session: tally %d:%d after round %d", t[0], t[1], s.machine.Round())
	}
}

// Dispose stops the match for good: no more steps, timers or network.
func (s *Session) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true
	s.simulator.Stop()
	s.machine.Halt()
	s.scheduler.CancelAll()
	s.world.ClearProjectiles()
	s.world.ClearEffects()
	s.events.Unsubscribe(event.RoundStarted, s)
	s.events.Unsubscribe(event.RoundResolved, s)

	if s.adapter == nil {
		return nil
	}
	s.adapter.Unsubscribe(s.events)
	if err := s.adapter.Close(); err != nil {
		return fmt.Errorf("close relay: %w", err)
	}
	return nil
}

// Disposed reports whether Dispose ran.
func (s *Session) Disposed() bool { return s.disposed }

func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Local() types.PlayerID { return s.local }
func (s *Session) Opponent() types.PlayerID { return s.local.Other() }
func (s *Session) RoomCode() string { return s.roomCode }
func (s *Session) Seed() int64 { return s.rng.Seed() }
func (s *Session) PeerPresent() bool { return s.peerPresent }
func (s *Session) Events() *event.Dispatcher { return s.events }
func (s *Session) World() *entity.World { return s.world }
func (s *Session) Simulator() *sim.Simulator { return s.simulator }
func (s *Session) Phase() component.Phase { return s.machine.Phase() }
func (s *Session) Winner() types.PlayerID { return s.machine.Winner() }
func (s *Session) Tally() [2]int { return s.machine.Tally() }
func (s *Session) Round() int { return s.machine.Round() }
func (s *Session) Countdown() int { return s.machine.Countdown() }
func (s *Session) Now() time.Duration { return s.simulator.Now() }
func (s *Session) Combatant(id types.PlayerID) *component.Combatant { return s.world.Combatant(id) }

// Health returns the health of a seat, or 0 for an unknown seat.
func (s *Session) Health(id types.PlayerID) int {
	if c := s.world.Combatant(id); c != nil {
		return c.Health
	}
	return 0
}

// CooldownFraction returns how much of a seat's cooldown has elapsed, in
// [0, 1]. 1 means the next throw is allowed.
func (s *Session) CooldownFraction(id types.PlayerID) float64 {
	c := s.world.Combatant(id)
	if c == nil || c.Cooldown <= 0 {
		return 1
	}
	left := c.CooldownRemaining(s.simulator.Now())
	return utils.Clamp(1-float64(left)/float64(c.Cooldown), 0, 1)
}
