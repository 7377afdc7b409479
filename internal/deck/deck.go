package deck

import (
	"embed"
	"fmt"
	"os"

	"github.com/peterkuimelis/crdeck/internal/log"
	"gopkg.in/yaml.v3"
)

//go:embed data/cards.yaml data/decks.yaml
var defaultData embed.FS

// CatalogFile represents the top-level YAML structure of a card catalog.
type CatalogFile struct {
	Cards []Card `yaml:"cards"`
}

// LibraryFile represents the top-level YAML structure of a known-deck library.
type LibraryFile struct {
	Decks []KnownDeck `yaml:"decks"`
}

// ParseCatalog parses catalog YAML and builds a deduplicated catalog.
func ParseCatalog(data []byte, logger log.EventLogger) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if cf.Cards == nil {
		cf.Cards = []Card{}
	}
	return NewCatalog(cf.Cards, logger)
}

// LoadCatalog reads a catalog YAML file.
func LoadCatalog(path string, logger log.EventLogger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCatalog(data, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseLibrary parses known-deck YAML and validates every deck.
func ParseLibrary(data []byte) (*Library, error) {
	var lf LibraryFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse deck library YAML: %w", err)
	}
	return NewLibrary(lf.Decks)
}

// LoadLibrary reads a known-deck YAML file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog(logger log.EventLogger) (*Catalog, error) {
	data, err := defaultData.ReadFile("data/cards.yaml")
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data, logger)
}

// DefaultLibrary returns the known-deck library bundled with the binary.
func DefaultLibrary() (*Library, error) {
	data, err := defaultData.ReadFile("data/decks.yaml")
	if err != nil {
		return nil, err
	}
	return ParseLibrary(data)
}

// LoadData loads the catalog and library from the given paths, falling back
// to the bundled data for any empty path.
func LoadData(cardsPath, decksPath string, logger log.EventLogger) (*Catalog, *Library, error) {
	var (
		catalog *Catalog
		library *Library
		err     error
	)
	if cardsPath == "" {
		catalog, err = DefaultCatalog(logger)
	} else {
		catalog, err = LoadCatalog(cardsPath, logger)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	if decksPath == "" {
		library, err = DefaultLibrary()
	} else {
		library, err = LoadLibrary(decksPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load deck library: %w", err)
	}
	return catalog, library, nil
}
