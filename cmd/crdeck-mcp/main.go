package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/crdeck/internal/config"
	crmcp "github.com/peterkuimelis/crdeck/internal/mcp"
)

func main() {
	configFile := flag.String("config", config.DefaultPath, "path to TOML config file")
	cards := flag.String("cards", "", "path to cards YAML file (default: embedded)")
	decks := flag.String("decks", "", "path to known decks YAML file (default: embedded)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
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

	s := server.NewMCPServer("crdeck", "1.0.0")
	crmcp.RegisterTools(s, crmcp.NewTools(engine))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
