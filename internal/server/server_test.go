package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"knife-arena/internal/relay"
	"knife-arena/internal/types"
)

func dial(t *testing.T, srv *httptest.Server) *relay.WSChannel {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ch, err := relay.Dial(ctx, url)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		ch.Close()
		ch.Wait()
	})
	return ch
}

func expect(t *testing.T, ch relay.Channel, want relay.MessageType) relay.Message {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case m, ok := <-ch.Receive():
			if !ok {
				t.Fatalf("connection closed waiting for %s", want)
			}
			if m.Type == want {
				return m
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestRelayOverWebsocket(t *testing.T) {
	srv := httptest.NewServer(New(NewManager()).Handler())
	defer srv.Close()

	host, guest := dial(t, srv), dial(t, srv)

	host.Send(relay.MustMessage(relay.MsgCreateRoom, relay.RoomRequest{RoomCode: "WIRE22"}))
	expect(t, host, relay.MsgRoomCreated)
	guest.Send(relay.MustMessage(relay.MsgJoinRoom, relay.RoomRequest{RoomCode: "WIRE22"}))
	joined := expect(t, guest, relay.MsgJoinSuccess)
	if a, _ := relay.DecodePayload[relay.RoomAssignment](joined); a.PlayerID != types.Player2 {
		t.Fatalf("guest seat = %d", a.PlayerID)
	}
	expect(t, host, relay.MsgPlayerJoined)

	x, z := 0.1+0.2, -math.Pi*11
	host.Send(relay.MustMessage(relay.MsgPlayerMove, relay.MovePayload{RoomCode: "WIRE22", TargetX: x, TargetZ: z}))
	move, err := relay.DecodePayload[relay.MovePayload](expect(t, guest, relay.MsgOpponentMove))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Float64bits(move.TargetX) != math.Float64bits(x) || math.Float64bits(move.TargetZ) != math.Float64bits(z) {
		t.Errorf("target changed in transit: (%v,%v) want (%v,%v)", move.TargetX, move.TargetZ, x, z)
	}

	resp, err := http.Get(srv.URL + "/rooms")
	if err != nil {
		t.Fatalf("rooms: %v", err)
	}
	var rooms []RoomInfo
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}
	resp.Body.Close()
	if len(rooms) != 1 || rooms[0].Code != "WIRE22" || rooms[0].Players != 2 {
		t.Errorf("rooms = %+v", rooms)
	}

	guest.Close()
	expect(t, host, relay.MsgOpponentDisconnected)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(New(NewManager()).Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
