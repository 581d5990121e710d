// cmd/arena2d/main.go
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"knife-arena/internal/audio"
	"knife-arena/internal/config"
	"knife-arena/internal/session"
	"knife-arena/internal/state"
	"knife-arena/internal/types"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	envFile := flag.String("env", "", "Optional env file with ARENA_* settings")
	practice := flag.Bool("practice", false, "Skip the menu and start a practice match")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	settings, err := config.LoadSettings(files...)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	sounds := audio.NewSoundManager(types.Player1)
	if settings.AudioEnabled {
		if err := sounds.Initialize(); err != nil {
			log.Printf("WARNING: %v; continuing without sound", err)
		}
	}
	defer sounds.Cleanup()

	sm := state.NewStateMachine(&state.Shared{
		Settings: settings,
		Sessions: session.NewManager(),
		Audio:    sounds,
	})
	sm.SetState(state.NewMenuState(sm, ""))
	if *practice {
		s, err := sm.Shared().Sessions.Begin(session.Options{Mode: session.ModePractice, Seed: settings.Seed})
		if err != nil {
			log.Fatalf("Failed to start practice: %v", err)
		}
		sm.SetState(state.NewMatchState(sm, s))
	}
	defer sm.Shutdown()

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Knife Arena")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
