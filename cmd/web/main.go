package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/crdeck/internal/config"
	"github.com/peterkuimelis/crdeck/internal/web"
)

func main() {
	configFile := flag.String("config", config.DefaultPath, "path to TOML config file")
	port := flag.String("port", "", "HTTP port to listen on (default from config)")
	staticDir := flag.String("static", "", "serve the chat page from this directory instead of the embedded copy")
	cards := flag.String("cards", "", "path to cards YAML file (default: embedded)")
	decks := flag.String("decks", "", "path to known decks YAML file (default: embedded)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.HTTPPort = *port
	}
	if *staticDir != "" {
		cfg.Server.StaticDir = *staticDir
	}
	if *cards != "" {
		cfg.Data.Cards = *cards
	}
	if *decks != "" {
		cfg.Data.Decks = *decks
	}

	engine, err := cfg.NewEngine(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Data.Watch {
		w, err := cfg.NewDataWatcher(engine, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		go w.Run(context.Background())
	}
	srv := web.NewServer(engine, web.Options{
		StaticDir: cfg.Server.StaticDir,
		RPS:       cfg.Limits.RequestsPerSecond,
		Burst:     cfg.Limits.Burst,
	})

	log.Printf("crdeck web UI listening on http://localhost:%s", cfg.Server.HTTPPort)
	if err := srv.ListenAndServe(":" + cfg.Server.HTTPPort); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
