// cmd/arena/main.go
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"knife-arena/internal/assets"
	"knife-arena/internal/audio"
	"knife-arena/internal/config"
	"knife-arena/internal/render/rl3d"
	"knife-arena/internal/session"
	"knife-arena/internal/types"
)

func main() {
	devMode := flag.Bool("dev", false, "Start a practice match directly")
	mode := flag.String("mode", "menu", "menu, practice, host or join")
	room := flag.String("room", "", "Room code to join (or to create when hosting)")
	envFile := flag.String("env", "", "Optional env file with ARENA_* settings")
	relayURL := flag.String("relay", "", "Relay websocket URL (overrides ARENA_RELAY_URL)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	settings, err := config.LoadSettings(files...)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *relayURL != "" {
		settings.RelayURL = *relayURL
	}
	if *devMode {
		log.Println("---DEV MODE: Starting practice directly---")
		*mode = "practice"
	}

	rl.InitWindow(config.ScreenWidth, config.ScreenHeight, "Knife Arena")
	defer rl.CloseWindow()
	rl.SetTargetFPS(config.TargetFPS)
	rl.SetExitKey(0)

	models := assets.NewModelManager(settings.AssetDir)
	models.LoadAll()
	defer models.Cleanup()

	sounds := audio.NewSoundManager(types.Player1)
	if settings.AudioEnabled {
		if err := sounds.Initialize(); err != nil {
			log.Printf("WARNING: %v; continuing without sound", err)
		}
	}
	defer sounds.Cleanup()

	a := newApp(settings, models, sounds)
	defer a.cleanup()

	switch strings.ToLower(*mode) {
	case "practice":
		a.startPractice()
	case "host":
		a.connect(session.OnlineOptions{Host: true, RoomCode: *room})
	case "join":
		a.connect(session.OnlineOptions{RoomCode: strings.ToUpper(*room)})
	case "menu":
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}

	lastUpdateTime := time.Now()
	for !rl.WindowShouldClose() && !a.quit {
		now := time.Now()
		deltaTime := now.Sub(lastUpdateTime).Seconds()
		if deltaTime > config.MaxDeltaTime {
			deltaTime = config.MaxDeltaTime
		}
		lastUpdateTime = now

		a.update(deltaTime)

		rl.BeginDrawing()
		rl.ClearBackground(rl3d.ColorToRL(config.BackgroundColor))
		a.draw()
		rl.DrawFPS(10, config.ScreenHeight-30)
		rl.EndDrawing()
	}
}
