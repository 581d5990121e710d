// cmd/arena/app.go
package main

import (
	"context"
	"log"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"knife-arena/internal/assets"
	"knife-arena/internal/audio"
	"knife-arena/internal/config"
	"knife-arena/internal/hud"
	"knife-arena/internal/render/rl3d"
	"knife-arena/internal/session"
	"knife-arena/internal/sim"
	"knife-arena/internal/ui"
)

type phase int

const (
	phaseMenu phase = iota
	phaseConnecting
	phaseMatch
)

const buttonWidth, buttonHeight = 260, 50

// app drives the raylib client: a menu, the lobby wait and the match.
type app struct {
	settings config.Settings
	sessions *session.Manager
	sounds   *audio.SoundManager
	models   *assets.ModelManager
	hud      *ui.HUD

	phase   phase
	quit    bool
	message string

	practice, host, join, exit *ui.Button
	joining                    bool
	code                       []rune

	pending     *session.Pending
	pendingHost bool

	current *session.Session
	scene   *rl3d.Scene
	frame   sim.Frame
}

func newApp(settings config.Settings, models *assets.ModelManager, sounds *audio.SoundManager) *app {
	x := float32(config.ScreenWidth-buttonWidth) / 2
	y := float32(config.ScreenHeight)/2 - 90
	button := func(i int, label string) *ui.Button {
		return ui.NewButton(rl.NewRectangle(x, y+float32(i)*(buttonHeight+15), buttonWidth, buttonHeight), label)
	}
	return &app{
		settings: settings,
		sessions: session.NewManager(),
		sounds:   sounds,
		models:   models,
		hud:      ui.NewHUD(),
		practice: button(0, "Practice vs AI"),
		host:     button(1, "Host a room"),
		join:     button(2, "Join a room"),
		exit:     button(3, "Quit"),
	}
}

func (a *app) update(dt float64) {
	switch a.phase {
	case phaseMenu:
		a.updateMenu()
	case phaseConnecting:
		a.updateConnecting()
	case phaseMatch:
		a.updateMatch(dt)
	}
}

func (a *app) draw() {
	switch a.phase {
	case phaseMenu:
		a.drawMenu()
	case phaseConnecting:
		a.drawConnecting()
	case phaseMatch:
		a.scene.Draw(a.frame, a.current.World().Effects)
		a.hud.Draw(hud.Build(a.current))
	}
}

func (a *app) updateMenu() {
	if a.joining {
		for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
			if len(a.code) < config.RoomCodeLength && r < 128 {
				a.code = append(a.code, []rune(strings.ToUpper(string(rune(r))))...)
			}
		}
		switch {
		case rl.IsKeyPressed(rl.KeyBackspace) && len(a.code) > 0:
			a.code = a.code[:len(a.code)-1]
		case rl.IsKeyPressed(rl.KeyEscape):
			a.joining = false
		case rl.IsKeyPressed(rl.KeyEnter) && len(a.code) == config.RoomCodeLength:
			a.joining = false
			a.connect(session.OnlineOptions{RoomCode: string(a.code)})
		}
		return
	}

	mouse := rl.GetMousePosition()
	switch {
	case a.practice.IsClicked(mouse):
		a.startPractice()
	case a.host.IsClicked(mouse):
		a.connect(session.OnlineOptions{Host: true})
	case a.join.IsClicked(mouse):
		a.joining = true
		a.code = a.code[:0]
		a.message = ""
	case a.exit.IsClicked(mouse), rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
	}
}

func (a *app) drawMenu() {
	title := "KNIFE ARENA"
	tw := rl.MeasureText(title, 60)
	rl.DrawText(title, (config.ScreenWidth-tw)/2, config.ScreenHeight/2-200, 60, rl.White)

	if a.joining {
		prompt := "Room code: " + string(a.code) + "_"
		pw := rl.MeasureText(prompt, 30)
		rl.DrawText(prompt, (config.ScreenWidth-pw)/2, config.ScreenHeight/2-40, 30, rl.White)
		rl.DrawText("Enter to join, Esc to go back", (config.ScreenWidth-300)/2, config.ScreenHeight/2+10, 20, rl.LightGray)
	} else {
		mouse := rl.GetMousePosition()
		for _, b := range []*ui.Button{a.practice, a.host, a.join, a.exit} {
			b.Draw(mouse)
		}
	}
	if a.message != "" {
		mw := rl.MeasureText(a.message, 20)
		rl.DrawText(a.message, (config.ScreenWidth-mw)/2, config.ScreenHeight-80, 20, rl.Red)
	}
}

func (a *app) connect(o session.OnlineOptions) {
	o.URL = a.settings.RelayURL
	o.Seed = a.settings.Seed
	a.pending = session.ConnectAsync(context.Background(), o)
	a.pendingHost = o.Host
	a.message = ""
	a.phase = phaseConnecting
}

func (a *app) updateConnecting() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.pending.Cancel()
		a.pending = nil
		a.phase = phaseMenu
		return
	}
	if !a.pending.Done() {
		return
	}
	s, err := a.pending.Result()
	a.pending = nil
	if err != nil {
		log.Printf("ERROR: connect: %v", err)
		a.message = "Connection failed: " + err.Error()
		a.phase = phaseMenu
		return
	}
	a.sessions.Adopt(s)
	a.enterMatch(s)
}

func (a *app) drawConnecting() {
	msg := "Connecting to " + a.settings.RelayURL
	if code := a.pending.RoomCode(); code != "" {
		msg = "Room " + code
		if a.pendingHost {
			msg += " - waiting for an opponent"
		} else {
			msg += " - waiting for the host"
		}
	}
	w := rl.MeasureText(msg, 30)
	rl.DrawText(msg, (config.ScreenWidth-w)/2, config.ScreenHeight/2-15, 30, rl.White)
	rl.DrawText("Esc to cancel", (config.ScreenWidth-140)/2, config.ScreenHeight/2+30, 20, rl.LightGray)
}

func (a *app) startPractice() {
	s, err := a.sessions.Begin(session.Options{Mode: session.ModePractice, Seed: a.settings.Seed})
	if err != nil {
		a.message = err.Error()
		return
	}
	a.enterMatch(s)
}

func (a *app) enterMatch(s *session.Session) {
	a.current = s
	a.scene = rl3d.NewScene(a.models, s.World().Arena)
	a.sounds.SetLocal(s.Local())
	a.sounds.Subscribe(s.Events())
	a.frame = s.Simulator().Frame()
	a.phase = phaseMatch
}

func (a *app) updateMatch(dt float64) {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.leaveMatch()
		return
	}
	s := a.current
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if x, z, ok := a.scene.Pick(); ok {
			s.MoveTo(x, z)
		}
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		if x, z, ok := a.scene.Pick(); ok {
			s.Throw(x, z)
		} else {
			s.ThrowAhead()
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		s.Rematch()
	}

	a.frame = s.Frame(dt)
	me := a.frame.Combatant(s.Local())
	a.scene.Follow(me.X, me.Z)
}

func (a *app) leaveMatch() {
	a.sounds.Unsubscribe(a.current.Events())
	a.scene.Cleanup()
	if err := a.sessions.End(); err != nil {
		log.Printf("WARNING: end session: %v", err)
	}
	a.current = nil
	a.scene = nil
	a.phase = phaseMenu
}

func (a *app) cleanup() {
	switch a.phase {
	case phaseConnecting:
		a.pending.Cancel()
	case phaseMatch:
		a.leaveMatch()
	}
}
