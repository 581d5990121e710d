// internal/state/connect_state.go
package state

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"knife-arena/internal/config"
	"knife-arena/internal/session"
)

var _ State = (*ConnectState)(nil)

// ConnectState runs the lobby handshake in the background and shows the room
// code while waiting. Esc aborts back to the menu.
type ConnectState struct {
	sm      *StateMachine
	opts    session.OnlineOptions
	pending *session.Pending
}

func NewConnectState(sm *StateMachine, opts session.OnlineOptions) *ConnectState {
	shared := sm.Shared()
	opts.URL = shared.Settings.RelayURL
	opts.Seed = shared.Settings.Seed
	return &ConnectState{sm: sm, opts: opts}
}

func (c *ConnectState) Enter() {
	c.pending = session.ConnectAsync(context.Background(), c.opts)
}

func (c *ConnectState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.sm.SetState(NewMenuState(c.sm, ""))
		return
	}
	if !c.pending.Done() {
		return
	}
	s, err := c.pending.Result()
	if err != nil {
		c.sm.SetState(NewMenuState(c.sm, "Connection failed: "+err.Error()))
		return
	}
	c.pending = nil
	c.sm.Shared().Sessions.Adopt(s)
	c.sm.SetState(NewMatchState(c.sm, s))
}

func (c *ConnectState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	x, y := config.ScreenWidth/2-120, config.ScreenHeight/2

	msg := "Connecting to " + c.opts.URL
	if c.pending == nil {
		return
	}
	if code := c.pending.RoomCode(); code != "" {
		msg = "Room " + code
		if c.opts.Host {
			msg += ": waiting for an opponent"
		} else {
			msg += ": waiting for the host"
		}
	}
	text.Draw(screen, msg, face, x, y, config.TextLightColor)
	text.Draw(screen, "Esc to cancel", face, x, y+20, config.TextLightColor)
}

// Exit cancels a handshake that has not been handed to a match.
func (c *ConnectState) Exit() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}
