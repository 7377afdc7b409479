package config

import (
	"fmt"

	"github.com/peterkuimelis/crdeck/internal/deck"
	"github.com/peterkuimelis/crdeck/internal/log"
)

// NewEngine loads the configured card and deck files, falling back to the
// embedded data for empty paths, and builds a deck engine.
func (c *Config) NewEngine(logger log.EventLogger) (*deck.Engine, error) {
	catalog, library, err := deck.LoadData(c.Data.Cards, c.Data.Decks, logger)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}
	return deck.NewEngine(catalog, library,
		deck.WithLogger(logger),
		deck.WithMatchRatio(c.Matcher.Ratio),
	)
}
