package game

import (
	"path/filepath"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
)

// newTestGdataManager 在临时 HOME 下打开 gdata，无法创建时跳过测试
func newTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// newTestConfig 默认配置，加上一种已经泡好的热茶
func newTestConfig() *config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Kinds["hot_tea"] = components.ParticleContents{Heat: 1, Tea: 1}
	cfg.Kinds["warm_water"] = components.ParticleContents{Heat: 0.75}
	cfg.MachineParts[config.PartWall] = config.MachinePartConfig{Cost: 50}
	cfg.MachineParts[config.PartEmitter] = config.MachinePartConfig{Cost: 30}
	return cfg
}

func zeroGravity() *float64 {
	g := 0.0
	return &g
}

// newTestSimulation 创建模拟，失败时终止测试
func newTestSimulation(t *testing.T, cfg *config.GameConfig, level *config.LevelConfig) *Simulation {
	t.Helper()
	sim, err := NewSimulation(cfg, level, nil, 1)
	if err != nil {
		t.Fatalf("NewSimulation() error: %v", err)
	}
	return sim
}

func vesselPart(kind string, x, y, size float64) config.PartConfig {
	return config.PartConfig{
		Type:   config.PartVessel,
		X:      x,
		Y:      y,
		Width:  size,
		Height: size,
		Vessel: &config.VesselConfig{Kind: kind, Shape: "rect", Lifetime: 30},
	}
}
