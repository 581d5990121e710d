// internal/state/menu_state.go
package state

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"knife-arena/internal/config"
	"knife-arena/internal/session"
)

// MenuState picks practice, hosting or joining a room.
type MenuState struct {
	sm      *StateMachine
	joining bool
	code    []rune
	message string
}

// NewMenuState shows the menu, optionally with a message such as a
// connection error.
func NewMenuState(sm *StateMachine, message string) *MenuState {
	return &MenuState{sm: sm, message: message}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if m.joining {
		m.updateJoin()
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		m.startPractice()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		m.sm.SetState(NewConnectState(m.sm, session.OnlineOptions{Host: true}))
	case inpututil.IsKeyJustPressed(ebiten.KeyJ):
		m.joining = true
		m.code = m.code[:0]
		m.message = ""
	}
}

func (m *MenuState) updateJoin() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if len(m.code) < config.RoomCodeLength && r < 128 {
			m.code = append(m.code, []rune(strings.ToUpper(string(r)))...)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(m.code) > 0:
		m.code = m.code[:len(m.code)-1]
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		m.joining = false
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) && len(m.code) == config.RoomCodeLength:
		m.sm.SetState(NewConnectState(m.sm, session.OnlineOptions{RoomCode: string(m.code)}))
	}
}

func (m *MenuState) startPractice() {
	shared := m.sm.Shared()
	s, err := shared.Sessions.Begin(session.Options{Mode: session.ModePractice, Seed: shared.Settings.Seed})
	if err != nil {
		m.message = err.Error()
		return
	}
	m.sm.SetState(NewMatchState(m.sm, s))
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	x, y := config.ScreenWidth/2-120, config.ScreenHeight/2-60

	text.Draw(screen, "KNIFE ARENA", face, x, y, config.TextLightColor)
	if m.joining {
		text.Draw(screen, "Room code: "+string(m.code)+"_", face, x, y+40, config.TextLightColor)
		text.Draw(screen, "Enter to join, Esc to go back", face, x, y+60, config.TextLightColor)
	} else {
		text.Draw(screen, "P / Space  practice against the AI", face, x, y+40, config.TextLightColor)
		text.Draw(screen, "H          host a room", face, x, y+60, config.TextLightColor)
		text.Draw(screen, "J          join a room", face, x, y+80, config.TextLightColor)
	}
	if m.message != "" {
		text.Draw(screen, m.message, face, x, y+120, config.HealthCritColor)
	}
}

func (m *MenuState) Exit() {}
