// cmd/relay/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"knife-arena/internal/config"
	"knife-arena/internal/server"
)

func main() {
	envFile := flag.String("env", "", "Optional env file with ARENA_* settings")
	addr := flag.String("addr", "", "Listen address (overrides ARENA_RELAY_ADDR)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	settings, err := config.LoadSettings(files...)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *addr != "" {
		settings.RelayAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.NewManager())
	log.Printf("Relay listening on %s", settings.RelayAddr)
	if err := srv.ListenAndServe(ctx, settings.RelayAddr); err != nil {
		log.Fatalf("Relay stopped: %v", err)
	}
	log.Println("Relay shut down")
}
