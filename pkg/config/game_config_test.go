package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultGameConfig(t *testing.T) {
	cfg := DefaultGameConfig()

	if cfg.MinRecipeSamples != 10 {
		t.Errorf("MinRecipeSamples = %d, want 10", cfg.MinRecipeSamples)
	}
	if cfg.Physics.MixingRate != 40 {
		t.Errorf("MixingRate = %v, want 40", cfg.Physics.MixingRate)
	}
	if cfg.Physics.Flow.UpwardGain != 500 || cfg.Physics.Flow.DownwardGain != 5 || cfg.Physics.Flow.HorizontalGain != 50 {
		t.Errorf("unexpected flow gains %+v", cfg.Physics.Flow)
	}
	if cfg.Physics.FluidFilters {
		t.Error("fluid filters must be disabled by default")
	}
	if water, ok := cfg.Kind("water"); !ok || water.Heat != 1 {
		t.Errorf("water kind = %+v, %v", water, ok)
	}
	if cold, ok := cfg.Kind("cold_water"); !ok || cold.Heat != 0 {
		t.Errorf("cold_water kind = %+v, %v", cold, ok)
	}
	if cfg.Colors.Water != DefaultWaterColor {
		t.Errorf("water color = %+v", cfg.Colors.Water)
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `droplet_radius: 3
physics:
  gravity: 20
  brewing_temperature: 0.6
  water:
    max_particles: 250
  despawn:
    min_x: -500
    max_x: 500
    min_y: -400
    max_y: 900
kinds:
  milk: {heat: 1, milk: 1}
machine_parts:
  heat_source: {cost: 42}
colors:
  water: "#102030"
  brewed: "a0522d"
levels:
  - levels/the_sink.yaml
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig() failed: %v", err)
	}

	if cfg.DropletRadius != 3 || cfg.Physics.Gravity != 20 || cfg.Physics.BrewingTemperature != 0.6 {
		t.Errorf("values not loaded: %+v", cfg)
	}
	if cfg.Physics.Water.MaxParticles != 250 {
		t.Errorf("MaxParticles = %d", cfg.Physics.Water.MaxParticles)
	}
	if milk, _ := cfg.Kind("milk"); milk.Milk != 1 {
		t.Errorf("milk kind = %+v", milk)
	}
	if _, ok := cfg.Kind("water"); !ok {
		t.Error("water kind should be added by defaults")
	}
	if cfg.PartCost("heat_source") != 42 || cfg.PartCost("wall") != 0 {
		t.Errorf("unexpected part costs")
	}
	if cfg.Colors.Water != (HexColor{0x10, 0x20, 0x30}) || cfg.Colors.Brewed != (HexColor{0xa0, 0x52, 0x2d}) {
		t.Errorf("unexpected colors %+v", cfg.Colors)
	}
	if len(cfg.Levels) != 1 {
		t.Errorf("Levels = %v", cfg.Levels)
	}

	d := cfg.Physics.Despawn
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, false},
		{-501, 0, true},
		{501, 0, true},
		{0, -401, true},
		{0, 901, true},
		{0, 899, false},
	}
	for _, tt := range tests {
		if got := d.Outside(tt.x, tt.y); got != tt.want {
			t.Errorf("Outside(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"unknown machine part", "machine_parts:\n  teapot: {cost: 1}\n", ErrUnknownPartType},
		{"negative cost", "machine_parts:\n  wall: {cost: -1}\n", ErrInvalidValue},
		{"bad color", "colors:\n  water: \"#12\"\n", ErrInvalidValue},
		{"inverted despawn bounds", "physics:\n  despawn: {min_x: 10, max_x: -10}\n", ErrInvalidValue},
		{"milk lightening above one", "milk_lightening: 2\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameConfig([]byte(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseGameConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
