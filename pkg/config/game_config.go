package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olekspickle/chai-reaction/pkg/components"
)

// GameConfig 全局游戏配置（data/config.yaml）
type GameConfig struct {
	DropletRadius    float64 `yaml:"droplet_radius"`     // 水滴半径（世界单位）
	MinRecipeSamples int     `yaml:"min_recipe_samples"` // 配方判定所需的最少粒子数，默认 10
	FixedTimestep    float64 `yaml:"fixed_timestep"`     // 固定步长（秒），默认 1/60

	Physics PhysicsConfig `yaml:"physics"`
	Sound   SoundConfig   `yaml:"sound"`

	// Kinds 粒子种类 → 初始内容
	Kinds map[string]components.ParticleContents `yaml:"kinds"`

	// MachineParts 零件类型 → 价格
	MachineParts map[string]MachinePartConfig `yaml:"machine_parts"`

	// Levels 关卡文件路径，按游玩顺序排列（相对于 data 目录）
	Levels []string `yaml:"levels"`

	Colors         ColorsConfig `yaml:"colors"`
	MilkLightening float64      `yaml:"milk_lightening"` // 牛奶提亮系数，0 表示不提亮
}

// PhysicsConfig 物理与模拟参数
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`             // 重力倍数，1 = 9.81
	BrewingTemperature float64 `yaml:"brewing_temperature"` // 泡茶所需最低热量
	MixingRate         float64 `yaml:"mixing_rate"`         // 混合速率 K
	ContactSkin        float64 `yaml:"contact_skin"`        // 接触判定余量
	FluidFilters       bool    `yaml:"fluid_filters"`       // 是否启用过滤墙/按钮机制

	Water   WaterConfig   `yaml:"water"`
	Flow    FlowConfig    `yaml:"flow"`
	Despawn DespawnConfig `yaml:"despawn"`
}

// WaterConfig 水滴材质
type WaterConfig struct {
	Friction     float64 `yaml:"friction"`
	Restitution  float64 `yaml:"restitution"`
	MaxParticles int     `yaml:"max_particles"`
	Mass         float64 `yaml:"mass"`
}

// FlowConfig 流场增益，竖直方向上下不对称
type FlowConfig struct {
	HorizontalGain float64 `yaml:"horizontal_gain"`
	UpwardGain     float64 `yaml:"upward_gain"`
	DownwardGain   float64 `yaml:"downward_gain"`
}

// DespawnConfig 粒子越界删除范围；MaxY 为空表示不限制上边界
type DespawnConfig struct {
	MinX float64  `yaml:"min_x"`
	MaxX float64  `yaml:"max_x"`
	MinY float64  `yaml:"min_y"`
	MaxY *float64 `yaml:"max_y"`
}

// Outside 检查点是否在允许范围之外
func (d DespawnConfig) Outside(x, y float64) bool {
	if y < d.MinY || x < d.MinX || x > d.MaxX {
		return true
	}
	return d.MaxY != nil && y > *d.MaxY
}

// SoundConfig 音量（0-1）
type SoundConfig struct {
	General float64 `yaml:"general"`
	Music   float64 `yaml:"music"`
	SFX     float64 `yaml:"sfx"`
}

// SFXVolume 实际音效音量
func (s SoundConfig) SFXVolume() float64 { return s.General * s.SFX }

// MusicVolume 实际音乐音量
func (s SoundConfig) MusicVolume() float64 { return s.General * s.Music }

// MachinePartConfig 零件价格表项
type MachinePartConfig struct {
	Cost int `yaml:"cost"`
}

// ColorsConfig 粒子着色用的基础颜色
type ColorsConfig struct {
	Water  HexColor `yaml:"water"`
	Brewed HexColor `yaml:"brewed"`
}

// HexColor "#rrggbb" 格式的颜色
type HexColor struct {
	R, G, B uint8
}

// UnmarshalYAML 解析 "#rrggbb"
func (c *HexColor) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseHexColor(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHexColor 解析 "#rrggbb" 或 "rrggbb"
func ParseHexColor(s string) (HexColor, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return HexColor{}, fmt.Errorf("color %q: %w", s, ErrInvalidValue)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return HexColor{}, fmt.Errorf("color %q: %w", s, ErrInvalidValue)
	}
	return HexColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// 默认值
const (
	DefaultDropletRadius      = 4.0
	DefaultMinRecipeSamples   = 10
	DefaultFixedTimestep      = 1.0 / 60
	DefaultBrewingTemperature = 0.8
	DefaultMixingRate         = 40.0
	DefaultContactSkin        = 0.5
	DefaultMaxParticles       = 600
	DefaultHorizontalGain     = 50.0
	DefaultUpwardGain         = 500.0
	DefaultDownwardGain       = 5.0
	DefaultDespawnBound       = 1000.0
)

// 水滴的默认颜色（蓝色）和泡好的茶的默认颜色
var (
	DefaultWaterColor  = HexColor{R: 0x49, G: 0x7a, B: 0xc5}
	DefaultBrewedColor = HexColor{R: 0x8b, G: 0x4a, B: 0x1c}
)

// DefaultGameConfig 返回全部使用默认值的配置
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	applyGameDefaults(cfg)
	return cfg
}

// LoadGameConfig 从 YAML 文件加载全局配置
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析全局配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	applyGameDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &cfg, nil
}

// applyGameDefaults 为缺失字段设置默认值
// 注意 fluid_filters 默认关闭，gravity 为 0 时视为未配置
func applyGameDefaults(cfg *GameConfig) {
	if cfg.DropletRadius == 0 {
		cfg.DropletRadius = DefaultDropletRadius
	}
	if cfg.MinRecipeSamples == 0 {
		cfg.MinRecipeSamples = DefaultMinRecipeSamples
	}
	if cfg.FixedTimestep == 0 {
		cfg.FixedTimestep = DefaultFixedTimestep
	}

	p := &cfg.Physics
	if p.Gravity == 0 {
		p.Gravity = 1
	}
	if p.BrewingTemperature == 0 {
		p.BrewingTemperature = DefaultBrewingTemperature
	}
	if p.MixingRate == 0 {
		p.MixingRate = DefaultMixingRate
	}
	if p.ContactSkin == 0 {
		p.ContactSkin = DefaultContactSkin
	}
	if p.Water.MaxParticles == 0 {
		p.Water.MaxParticles = DefaultMaxParticles
	}
	if p.Water.Mass == 0 {
		p.Water.Mass = 1
	}
	if p.Flow.HorizontalGain == 0 {
		p.Flow.HorizontalGain = DefaultHorizontalGain
	}
	if p.Flow.UpwardGain == 0 {
		p.Flow.UpwardGain = DefaultUpwardGain
	}
	if p.Flow.DownwardGain == 0 {
		p.Flow.DownwardGain = DefaultDownwardGain
	}
	if p.Despawn.MinX == 0 && p.Despawn.MaxX == 0 && p.Despawn.MinY == 0 {
		p.Despawn.MinX = -DefaultDespawnBound
		p.Despawn.MaxX = DefaultDespawnBound
		p.Despawn.MinY = -DefaultDespawnBound
	}

	if cfg.Sound == (SoundConfig{}) {
		cfg.Sound = SoundConfig{General: 1, Music: 0.5, SFX: 0.8}
	}

	if cfg.Kinds == nil {
		cfg.Kinds = make(map[string]components.ParticleContents)
	}
	if _, ok := cfg.Kinds["water"]; !ok {
		cfg.Kinds["water"] = components.ParticleContents{Heat: 1}
	}
	if _, ok := cfg.Kinds["cold_water"]; !ok {
		cfg.Kinds["cold_water"] = components.ParticleContents{}
	}

	if cfg.MachineParts == nil {
		cfg.MachineParts = make(map[string]MachinePartConfig)
	}

	if cfg.Colors.Water == (HexColor{}) {
		cfg.Colors.Water = DefaultWaterColor
	}
	if cfg.Colors.Brewed == (HexColor{}) {
		cfg.Colors.Brewed = DefaultBrewedColor
	}
}

func validateGameConfig(cfg *GameConfig) error {
	if cfg.DropletRadius < 0 {
		return fmt.Errorf("droplet_radius must be positive, got %v: %w", cfg.DropletRadius, ErrInvalidValue)
	}
	if cfg.MinRecipeSamples < 1 {
		return fmt.Errorf("min_recipe_samples must be at least 1, got %d: %w", cfg.MinRecipeSamples, ErrInvalidValue)
	}
	if cfg.FixedTimestep < 0 || cfg.FixedTimestep > 1 {
		return fmt.Errorf("fixed_timestep must be in (0, 1], got %v: %w", cfg.FixedTimestep, ErrInvalidValue)
	}
	p := cfg.Physics
	if p.MixingRate < 0 {
		return fmt.Errorf("physics.mixing_rate cannot be negative: %w", ErrInvalidValue)
	}
	if p.Water.MaxParticles < 0 {
		return fmt.Errorf("physics.water.max_particles cannot be negative: %w", ErrInvalidValue)
	}
	if p.Despawn.MinX >= p.Despawn.MaxX {
		return fmt.Errorf("physics.despawn: min_x must be below max_x: %w", ErrInvalidValue)
	}
	if p.Despawn.MaxY != nil && *p.Despawn.MaxY <= p.Despawn.MinY {
		return fmt.Errorf("physics.despawn: max_y must be above min_y: %w", ErrInvalidValue)
	}
	for name, part := range cfg.MachineParts {
		if !IsKnownPartType(name) {
			return fmt.Errorf("machine_parts.%s: %w", name, ErrUnknownPartType)
		}
		if part.Cost < 0 {
			return fmt.Errorf("machine_parts.%s: cost cannot be negative: %w", name, ErrInvalidValue)
		}
	}
	if cfg.MilkLightening < 0 || cfg.MilkLightening > 1 {
		return fmt.Errorf("milk_lightening must be in [0, 1], got %v: %w", cfg.MilkLightening, ErrInvalidValue)
	}
	return nil
}

// Kind 按名称查找粒子种类
func (cfg *GameConfig) Kind(name string) (components.ParticleContents, bool) {
	c, ok := cfg.Kinds[name]
	return c, ok
}

// PartCost 零件价格；未配置的类型价格为 0
func (cfg *GameConfig) PartCost(partType string) int {
	return cfg.MachineParts[partType].Cost
}
