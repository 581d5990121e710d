// cmd/arena-tui/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"knife-arena/internal/audio"
	"knife-arena/internal/config"
	"knife-arena/internal/hud"
	"knife-arena/internal/render"
	"knife-arena/internal/session"
	"knife-arena/internal/types"
)

const frameInterval = 16 * time.Millisecond

func main() {
	mode := flag.String("mode", "practice", "practice, host or join")
	room := flag.String("room", "", "Room code to join (or to create when hosting)")
	envFile := flag.String("env", "", "Optional env file with ARENA_* settings")
	logFile := flag.String("log", "arena-tui.log", "Log file; the terminal belongs to the game")
	flag.Parse()

	if f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	settings, err := config.LoadSettings(files...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}

	var pending *session.Pending
	var current *session.Session
	sessions := session.NewManager()
	switch strings.ToLower(*mode) {
	case "practice":
		current, err = sessions.Begin(session.Options{Mode: session.ModePractice, Seed: settings.Seed})
	case "host", "join":
		pending = session.ConnectAsync(context.Background(), session.OnlineOptions{
			URL:      settings.RelayURL,
			Host:     *mode == "host",
			RoomCode: strings.ToUpper(*room),
			Seed:     settings.Seed,
		})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	sounds := audio.NewSoundManager(types.Player1)
	if settings.AudioEnabled {
		if err := sounds.Initialize(); err != nil {
			log.Printf("WARNING: %v; continuing without sound", err)
		}
	}
	defer sounds.Cleanup()

	g := &game{screen: screen, sessions: sessions, sounds: sounds, pending: pending}
	if current != nil {
		g.enter(current)
	}
	g.run()
	g.shutdown()
}

type game struct {
	screen   tcell.Screen
	term     *render.Terminal
	sessions *session.Manager
	sounds   *audio.SoundManager
	pending  *session.Pending
	current  *session.Session
	mouseX   int
	mouseY   int
	status   string
}

func (g *game) enter(s *session.Session) {
	g.current = s
	g.term = render.NewTerminal(g.screen, s.World().Arena)
	g.sounds.SetLocal(s.Local())
	g.sounds.Subscribe(s.Events())
}

func (g *game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > config.MaxDeltaTime {
				dt = config.MaxDeltaTime
			}
			if !g.tick(dt) {
				return
			}
		}
	}
}

func (g *game) tick(dt float64) bool {
	if g.current == nil {
		if g.pending == nil {
			return false
		}
		if !g.pending.Done() {
			g.drawStatus()
			return true
		}
		s, err := g.pending.Result()
		g.pending = nil
		if err != nil {
			log.Printf("ERROR: connect: %v", err)
			g.status = "Connection failed: " + err.Error()
			g.drawStatus()
			return true
		}
		g.sessions.Adopt(s)
		g.enter(s)
	}
	frame := g.current.Frame(dt)
	g.term.Draw(frame, g.current.World().Effects, hud.Build(g.current))
	return true
}

func (g *game) drawStatus() {
	msg := g.status
	if msg == "" {
		msg = "Connecting..."
		if code := g.pending.RoomCode(); code != "" {
			msg = "Room " + code + " - waiting for the other player (Esc to quit)"
		}
	}
	g.screen.Clear()
	for i, r := range []rune(msg) {
		g.screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	g.screen.Show()
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if g.current == nil || ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			if x, z, ok := g.term.ScreenToWorld(g.mouseX, g.mouseY); ok {
				g.current.Throw(x, z)
			} else {
				g.current.ThrowAhead()
			}
		case ' ':
			g.current.ThrowAhead()
		case 'r', 'R':
			g.current.Rematch()
		}

	case *tcell.EventMouse:
		g.mouseX, g.mouseY = ev.Position()
		if g.current == nil {
			return true
		}
		x, z, ok := g.term.ScreenToWorld(g.mouseX, g.mouseY)
		if !ok {
			return true
		}
		switch {
		case ev.Buttons()&tcell.Button2 != 0:
			g.current.MoveTo(x, z)
		case ev.Buttons()&tcell.Button1 != 0:
			g.current.Throw(x, z)
		}

	case *tcell.EventResize:
		g.screen.Sync()
		if g.term != nil {
			g.term.Resize()
		}
	}
	return true
}

func (g *game) shutdown() {
	if g.pending != nil {
		g.pending.Cancel()
	}
	if g.current != nil {
		g.sounds.Unsubscribe(g.current.Events())
	}
	if err := g.sessions.End(); err != nil {
		log.Printf("WARNING: end session: %v", err)
	}
}
