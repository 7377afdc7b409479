package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.TCPPort != "7777" || cfg.Matcher.Ratio != 0.3 {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crdeck.toml")
	data := `
[data]
cards = "my-cards.yaml"

[matcher]
ratio = 0.25

[server]
http_port = "9090"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Cards != "my-cards.yaml" || cfg.Data.Decks != "" {
		t.Errorf("Unexpected data section %+v", cfg.Data)
	}
	if cfg.Matcher.Ratio != 0.25 {
		t.Errorf("Expected ratio 0.25, got %v", cfg.Matcher.Ratio)
	}
	if cfg.Server.HTTPPort != "9090" || cfg.Server.TCPPort != "7777" {
		t.Errorf("Expected http 9090 and default tcp, got %+v", cfg.Server)
	}
	if cfg.Limits.Burst != 10 {
		t.Errorf("Expected default burst 10, got %d", cfg.Limits.Burst)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"ratio too loose", "[matcher]\nratio = 0.5\n", "ratio"},
		{"zero burst", "[limits]\nburst = 0\n", "burst"},
		{"bad toml", "[matcher\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "crdeck.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crdeck.toml")
	cfg := Default()
	cfg.Server.StaticDir = "web/static"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}

func TestNewEngineUsesEmbeddedData(t *testing.T) {
	e, err := Default().NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.Catalog().Len() == 0 || e.Library().Len() == 0 {
		t.Error("Expected the embedded catalog and library")
	}
	if e.Matcher().Ratio() != 0.3 {
		t.Errorf("Expected ratio 0.3, got %v", e.Matcher().Ratio())
	}
}

func TestNewEngineMissingDataFile(t *testing.T) {
	cfg := Default()
	cfg.Data.Cards = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.NewEngine(nil); err == nil {
		t.Error("Expected an error for a missing cards file")
	}
}
