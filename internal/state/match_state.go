// internal/state/match_state.go
package state

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"knife-arena/internal/config"
	"knife-arena/internal/hud"
	"knife-arena/internal/render/eb2d"
	"knife-arena/internal/session"
	"knife-arena/internal/sim"
)

var _ State = (*MatchState)(nil)

// MatchState plays a session: right click moves, Q throws at the cursor,
// Space throws straight ahead, R asks for a rematch, Esc leaves.
type MatchState struct {
	sm       *StateMachine
	session  *session.Session
	renderer *eb2d.Renderer
	frame    sim.Frame
}

func NewMatchState(sm *StateMachine, s *session.Session) *MatchState {
	return &MatchState{
		sm:       sm,
		session:  s,
		renderer: eb2d.NewRenderer(s.World().Arena, config.ScreenWidth, config.ScreenHeight),
	}
}

func (g *MatchState) Enter() {
	if a := g.sm.Shared().Audio; a != nil {
		a.SetLocal(g.session.Local())
		a.Subscribe(g.session.Events())
	}
	log.Printf("Match started (%s, seat %d)", g.session.Mode(), g.session.Local())
}

func (g *MatchState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sm.SetState(NewMenuState(g.sm, ""))
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, z := g.renderer.ScreenToWorld(cx, cy)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.session.MoveTo(x, z)
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.session.Throw(x, z)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.session.ThrowAhead()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.Rematch()
	}

	g.frame = g.session.Frame(deltaTime)
}

func (g *MatchState) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.frame, g.session.World().Effects, hud.Build(g.session))
}

func (g *MatchState) Exit() {
	if a := g.sm.Shared().Audio; a != nil {
		a.Unsubscribe(g.session.Events())
	}
	g.renderer.Cleanup()
	if err := g.sm.Shared().Sessions.End(); err != nil {
		log.Printf("WARNING: end session: %v", err)
	}
}
