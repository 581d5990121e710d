package session

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"knife-arena/internal/server"
	"knife-arena/internal/types"
)

func relayURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(server.New(server.NewManager()).Handler())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func waitPending(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPendingConnects(t *testing.T) {
	url := relayURL(t)

	host := ConnectAsync(context.Background(), OnlineOptions{URL: url, Host: true, Seed: 3})
	waitPending(t, "room code", func() bool { return host.RoomCode() != "" })
	if host.Done() {
		t.Fatal("host finished without a guest")
	}

	guest := ConnectAsync(context.Background(), OnlineOptions{URL: url, RoomCode: host.RoomCode(), Seed: 4})
	waitPending(t, "both handshakes", func() bool { return host.Done() && guest.Done() })

	hs, err := host.Result()
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	defer hs.Dispose()
	gs, err := guest.Result()
	if err != nil {
		t.Fatalf("guest: %v", err)
	}
	defer gs.Dispose()

	if hs.Local() != types.Player1 || gs.Local() != types.Player2 {
		t.Errorf("seats %d/%d", hs.Local(), gs.Local())
	}
	if guest.RoomCode() != host.RoomCode() || gs.RoomCode() != host.RoomCode() {
		t.Errorf("room codes %q %q %q", host.RoomCode(), guest.RoomCode(), gs.RoomCode())
	}
}

func TestPendingCancel(t *testing.T) {
	url := relayURL(t)

	host := ConnectAsync(context.Background(), OnlineOptions{URL: url, Host: true})
	waitPending(t, "room code", func() bool { return host.RoomCode() != "" })
	host.Cancel()

	if !host.Done() {
		t.Fatal("Cancel returned before the handshake stopped")
	}
	s, err := host.Result()
	if s != nil || !errors.Is(err, context.Canceled) {
		t.Errorf("result after cancel: %v, %v", s, err)
	}
}

func TestPendingGuestNeedsCode(t *testing.T) {
	p := ConnectAsync(context.Background(), OnlineOptions{URL: "ws://127.0.0.1:1/ws"})
	waitPending(t, "failure", p.Done)
	if _, err := p.Result(); err == nil {
		t.Error("guest without a room code connected")
	}
}
