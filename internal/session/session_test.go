package session

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"knife-arena/internal/component"
	"knife-arena/internal/event"
	"knife-arena/internal/server"
	"knife-arena/internal/types"
)

const frame = 1.0 / 60

func run(s *Session, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		s.Frame(frame)
	}
}

func practice(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := New(Options{Mode: ModePractice, Seed: seed})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.Start()
	return s
}

func TestPracticeRoundLifecycle(t *testing.T) {
	s := practice(t, 99)
	defer s.Dispose()

	if s.Phase() != component.PhaseCountdown || s.Countdown() != 5 {
		t.Fatalf("after start: phase %v countdown %d", s.Phase(), s.Countdown())
	}
	if s.Throw(0, 0) {
		t.Error("throw accepted during countdown")
	}
	run(s, 6)
	if s.Phase() != component.PhaseActive {
		t.Fatalf("phase after countdown = %v", s.Phase())
	}
	if s.CooldownFraction(s.Local()) != 1 {
		t.Errorf("cooldown fraction at fight = %v", s.CooldownFraction(s.Local()))
	}

	// The local player stands still; the scripted opponent wins eventually.
	for i := 0; i < 60*60 && s.Phase() != component.PhaseResolved; i++ {
		s.Frame(frame)
	}
	if s.Phase() != component.PhaseResolved || s.Winner() != types.Player2 {
		t.Fatalf("phase %v winner %d", s.Phase(), s.Winner())
	}
	if s.Health(types.Player1) != 0 || s.Tally() != [2]int{0, 1} {
		t.Errorf("health %d tally %v", s.Health(types.Player1), s.Tally())
	}
	if s.MoveTo(-30, 0) {
		t.Error("move accepted after resolution")
	}

	if !s.Rematch() {
		t.Fatal("rematch refused")
	}
	if s.Phase() != component.PhaseCountdown || s.Round() != 2 {
		t.Errorf("after rematch: phase %v round %d", s.Phase(), s.Round())
	}
	if s.Health(types.Player1) != 5 || s.Health(types.Player2) != 5 || s.Tally() != [2]int{0, 1} {
		t.Errorf("after rematch: health %d/%d tally %v", s.Health(types.Player1), s.Health(types.Player2), s.Tally())
	}
	if len(s.World().Projectiles) != 0 {
		t.Error("projectiles survived the rematch")
	}
}

func TestPracticeIsReproducibleFromSeed(t *testing.T) {
	a, b := practice(t, 4242), practice(t, 4242)
	defer a.Dispose()
	defer b.Dispose()

	for _, s := range []*Session{a, b} {
		run(s, 6)
		s.MoveTo(-45, 20)
		run(s, 20)
	}

	for _, id := range types.Players {
		ca, cb := a.Combatant(id), b.Combatant(id)
		if ca.X != cb.X || ca.Z != cb.Z || ca.Health != cb.Health {
			t.Errorf("seat %d diverged: (%v,%v,%d) vs (%v,%v,%d)", id, ca.X, ca.Z, ca.Health, cb.X, cb.Z, cb.Health)
		}
	}
	if a.Now() != b.Now() || len(a.World().Projectiles) != len(b.World().Projectiles) {
		t.Errorf("clock %v/%v projectiles %d/%d", a.Now(), b.Now(), len(a.World().Projectiles), len(b.World().Projectiles))
	}
}

func TestRemoteHealthResolvesRound(t *testing.T) {
	s := practice(t, 7)
	defer s.Dispose()
	run(s, 6)

	s.RemoteHealth(types.Player2, 9)
	if s.Health(types.Player2) != 5 {
		t.Errorf("health rose to %d", s.Health(types.Player2))
	}
	s.RemoteHealth(types.Player2, 0)
	if s.Phase() != component.PhaseResolved || s.Winner() != types.Player1 {
		t.Errorf("phase %v winner %d", s.Phase(), s.Winner())
	}
}

func TestDisposeStopsEverything(t *testing.T) {
	s := practice(t, 3)
	run(s, 1)
	now := s.Now()

	if err := s.Dispose(); err != nil {
		t.Fatalf("dispose: %v", err)
	}
	f := s.Frame(1)
	if len(f.Projectiles) != 0 || s.Now() != now {
		t.Errorf("disposed session advanced: %v → %v", now, s.Now())
	}
	if s.MoveTo(-30, 0) || s.Throw(0, 0) || s.ThrowAhead() || s.Rematch() {
		t.Error("intent accepted after dispose")
	}
	if s.Simulator().Scheduler().Len() != 0 {
		t.Errorf("%d timers pending", s.Simulator().Scheduler().Len())
	}
	if err := s.Dispose(); err != nil {
		t.Errorf("second dispose: %v", err)
	}
}

func TestOnlineNeedsChannel(t *testing.T) {
	if _, err := New(Options{Mode: ModeOnline, Local: types.Player1}); err != ErrNoChannel {
		t.Errorf("err = %v", err)
	}
}

func TestSpawnSeed(t *testing.T) {
	if spawnSeed("ABCDEF", 0) != spawnSeed("ABCDEF", 0) {
		t.Error("spawn seed not stable")
	}
	if spawnSeed("ABCDEF", 0) == spawnSeed("ABCDEF", 1) || spawnSeed("ABCDEF", 0) == spawnSeed("ABCDEG", 0) {
		t.Error("spawn seed ignores its inputs")
	}
}

func TestManagerReplacesSession(t *testing.T) {
	m := NewManager()
	first, err := m.Begin(Options{Mode: ModePractice, Seed: 1})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	second, err := m.Begin(Options{Mode: ModePractice, Seed: 2})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !first.Disposed() || second.Disposed() || m.Current() != second {
		t.Error("previous session not replaced")
	}
	if err := m.End(); err != nil || !second.Disposed() || m.Current() != nil {
		t.Errorf("end: %v", err)
	}
}

type peerWatch struct{ left int }

func (w *peerWatch) OnEvent(e event.Event) { w.left++ }

func waitFor(t *testing.T, what string, s *Session, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		s.Frame(0)
		time.Sleep(2 * time.Millisecond)
	}
}

func TestOnlineMatchThroughRelay(t *testing.T) {
	srv := httptest.NewServer(server.New(server.NewManager()).Handler())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		s   *Session
		err error
	}
	codes := make(chan string, 1)
	hostDone := make(chan result, 1)
	go func() {
		s, err := Connect(ctx, OnlineOptions{URL: url, Host: true, Seed: 11, OnRoom: func(code string) { codes <- code }})
		hostDone <- result{s, err}
	}()

	var code string
	select {
	case code = <-codes:
	case <-ctx.Done():
		t.Fatal("host never got a room")
	}
	guest, err := Connect(ctx, OnlineOptions{URL: url, RoomCode: code, Seed: 22})
	if err != nil {
		t.Fatalf("guest connect: %v", err)
	}
	defer guest.Dispose()
	hr := <-hostDone
	if hr.err != nil {
		t.Fatalf("host connect: %v", hr.err)
	}
	host := hr.s
	defer host.Dispose()

	if host.Local() != types.Player1 || guest.Local() != types.Player2 {
		t.Fatalf("seats %d/%d", host.Local(), guest.Local())
	}
	for _, id := range types.Players {
		h, g := host.Combatant(id), guest.Combatant(id)
		if h.X != g.X || h.Z != g.Z {
			t.Errorf("seat %d spawns differ: (%v,%v) vs (%v,%v)", id, h.X, h.Z, g.X, g.Z)
		}
	}

	if !host.MoveTo(-30.125, 5.5) {
		t.Fatal("host move refused")
	}
	waitFor(t, "opponent move", guest, func() bool { return guest.Combatant(types.Player1).Target != nil })
	if tgt := guest.Combatant(types.Player1).Target; tgt.X != -30.125 || tgt.Z != 5.5 {
		t.Errorf("guest sees target %+v", *tgt)
	}

	host.Events().Dispatch(event.Event{Type: event.CombatantHit, Data: event.HitData{Target: types.Player2, Health: 3}})
	waitFor(t, "health update", guest, func() bool { return guest.Health(types.Player2) == 3 })

	w := &peerWatch{}
	host.Events().Subscribe(event.PeerDisconnected, w)
	if err := guest.Dispose(); err != nil {
		t.Fatalf("guest dispose: %v", err)
	}
	waitFor(t, "disconnect", host, func() bool { return !host.PeerPresent() })
	if w.left != 1 {
		t.Errorf("PeerDisconnected dispatched %d times", w.left)
	}
	if host.Phase() != component.PhaseCountdown && host.Phase() != component.PhaseActive {
		t.Errorf("host stopped simulating: %v", host.Phase())
	}
}
