package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olekspickle/chai-reaction/pkg/components"
)

// 零件类型
const (
	PartEmitter      = "emitter"
	PartHeatSource   = "heat_source"
	PartTeaInfuser   = "tea_infuser"
	PartRecipeSensor = "recipe_sensor"
	PartTeaCounter   = "tea_counter"
	PartFlowField    = "flow_field"
	PartWall         = "wall"
	PartConveyor     = "conveyor"
	PartBall         = "ball"
	PartVessel       = "vessel"
	PartFluidFilter  = "fluid_filter"
	PartButton       = "button"
)

var knownPartTypes = map[string]bool{
	PartEmitter:      true,
	PartHeatSource:   true,
	PartTeaInfuser:   true,
	PartRecipeSensor: true,
	PartTeaCounter:   true,
	PartFlowField:    true,
	PartWall:         true,
	PartConveyor:     true,
	PartBall:         true,
	PartVessel:       true,
	PartFluidFilter:  true,
	PartButton:       true,
}

// IsKnownPartType 检查零件类型是否存在
func IsKnownPartType(t string) bool {
	return knownPartTypes[t]
}

// LevelConfig 关卡配置数据结构
// 定义关卡的基本信息和初始零件列表
type LevelConfig struct {
	ID               string       `yaml:"id"`                 // 关卡ID，如 "the_sink"
	Name             string       `yaml:"name"`               // 关卡名称
	Description      string       `yaml:"description"`        // 关卡描述（可选）
	InitialZenPoints int          `yaml:"initial_zen_points"` // 初始禅意点数
	Gravity          *float64     `yaml:"gravity"`            // 覆盖全局重力倍数（可选）
	Parts            []PartConfig `yaml:"parts"`
}

// PartConfig 关卡中的一个零件
// 坐标为世界坐标（Y 轴向上），rotation 单位为度
type PartConfig struct {
	Name     string  `yaml:"name"` // 可选，供按钮引用
	Type     string  `yaml:"type"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Radius   float64 `yaml:"radius"`

	Emitter  *EmitterConfig   `yaml:"emitter"`
	Recipe   *RecipeConfig    `yaml:"recipe"`
	Flow     *FlowFieldConfig `yaml:"flow"`
	Vessel   *VesselConfig    `yaml:"vessel"`
	Conveyor *ConveyorConfig  `yaml:"conveyor"`
	Filter   *FilterConfig    `yaml:"filter"`
	Button   *ButtonConfig    `yaml:"button"`
}

// EmitterConfig 发射器参数
type EmitterConfig struct {
	Kind          string     `yaml:"kind"`
	SpawnRate     float64    `yaml:"spawn_rate"`     // 每秒数量
	SpawnInterval float64    `yaml:"spawn_interval"` // 可选，发射周期（秒），默认 1/spawn_rate
	Speed         [2]float64 `yaml:"speed"`          // [min, max]
	Angle         [2]float64 `yaml:"angle"`          // [min, max]，度
	GravityScale  *float64   `yaml:"gravity_scale"`  // 默认 1
	Lifetime      float64    `yaml:"lifetime"`       // 秒，默认 10
	Inactive      bool       `yaml:"inactive"`       // 初始不发射
}

// RecipeConfig 配方
type RecipeConfig = components.Recipe

// FlowFieldConfig 流场纹理来源：PNG 文件或均匀方向场
type FlowFieldConfig struct {
	Texture       string     `yaml:"texture"` // 相对 data 目录的 PNG 路径
	Rows          int        `yaml:"rows"`
	RotationIndex int        `yaml:"rotation_index"`
	Direction     [2]float64 `yaml:"direction"` // 无纹理时使用
	Strength      float64    `yaml:"strength"`  // 0-1，写入 alpha
	Targets       []string   `yaml:"targets"`   // particles / balls，默认两者
}

// VesselConfig 容器
type VesselConfig struct {
	Kind      string `yaml:"kind"`
	Shape     string `yaml:"shape"` // rect / circle，默认 rect
	Mask      string `yaml:"mask"`  // 可选 PNG 遮罩
	TeaLeaves bool   `yaml:"tea_leaves"`

	GravityScale *float64 `yaml:"gravity_scale"` // 默认 1
	Lifetime     float64  `yaml:"lifetime"`      // 秒，默认 30
}

// ConveyorConfig 传送带
type ConveyorConfig struct {
	Speed float64 `yaml:"speed"`
}

// FilterConfig 过滤墙
type FilterConfig struct {
	Blocked string `yaml:"blocked"` // fluid / tea_leaves
}

// ButtonConfig 按钮
type ButtonConfig struct {
	Filters []string `yaml:"filters"` // 受控过滤墙的 name
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	level, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return level, nil
}

// ParseLevelConfig 解析关卡 YAML
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	// 应用默认值
	applyDefaults(&levelConfig)

	// 验证必填字段
	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}

	return &levelConfig, nil
}

// applyDefaults 为 LevelConfig 中缺失的可选字段设置默认值
func applyDefaults(config *LevelConfig) {
	if config.Name == "" {
		config.Name = config.ID
	}
	for i := range config.Parts {
		applyPartDefaults(&config.Parts[i])
	}
}

func applyPartDefaults(part *PartConfig) {
	if e := part.Emitter; e != nil {
		if e.Kind == "" {
			e.Kind = "water"
		}
		if e.Lifetime == 0 {
			e.Lifetime = 10
		}
		if e.Speed[1] < e.Speed[0] {
			e.Speed[1] = e.Speed[0]
		}
		if e.Angle[1] < e.Angle[0] {
			e.Angle[1] = e.Angle[0]
		}
	}

	if f := part.Flow; f != nil {
		if f.Rows == 0 {
			f.Rows = 1
		}
		if f.Strength == 0 {
			f.Strength = 1
		}
		if len(f.Targets) == 0 {
			f.Targets = []string{"particles", "balls"}
		}
	}

	if v := part.Vessel; v != nil {
		if v.Kind == "" {
			v.Kind = "water"
		}
		if v.Shape == "" {
			v.Shape = "rect"
		}
		if v.Lifetime == 0 {
			v.Lifetime = 30
		}
	}

	if f := part.Filter; f != nil && f.Blocked == "" {
		f.Blocked = "fluid"
	}
}

// PreparePart 为单个零件（玩家放置的零件）填充默认值并校验
func PreparePart(part *PartConfig) error {
	applyPartDefaults(part)
	return validatePart(*part)
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("level ID is required")
	}
	if config.InitialZenPoints < 0 {
		return fmt.Errorf("initial_zen_points cannot be negative: %w", ErrInvalidValue)
	}

	names := make(map[string]bool)
	for i, part := range config.Parts {
		if part.Name != "" {
			names[part.Name] = true
		}
		if err := validatePart(part); err != nil {
			return fmt.Errorf("part %d (%s): %w", i, part.Type, err)
		}
	}

	for i, part := range config.Parts {
		if part.Button == nil {
			continue
		}
		for _, target := range part.Button.Filters {
			if !names[target] {
				return fmt.Errorf("part %d (button): filter %q does not exist: %w", i, target, ErrInvalidValue)
			}
		}
	}
	return nil
}

func validatePart(part PartConfig) error {
	if !IsKnownPartType(part.Type) {
		return fmt.Errorf("type %q: %w", part.Type, ErrUnknownPartType)
	}

	switch part.Type {
	case PartEmitter:
		if part.Emitter == nil {
			return fmt.Errorf("emitter: %w", ErrMissingBlock)
		}
		if part.Emitter.SpawnRate <= 0 {
			return fmt.Errorf("emitter.spawn_rate must be positive, got %v: %w", part.Emitter.SpawnRate, ErrInvalidValue)
		}
		if part.Emitter.SpawnInterval < 0 || part.Emitter.Lifetime < 0 {
			return fmt.Errorf("emitter timings cannot be negative: %w", ErrInvalidValue)
		}
	case PartRecipeSensor:
		if part.Recipe == nil {
			return fmt.Errorf("recipe: %w", ErrMissingBlock)
		}
	case PartFlowField:
		if part.Flow == nil {
			return fmt.Errorf("flow: %w", ErrMissingBlock)
		}
		if part.Flow.RotationIndex < 0 || part.Flow.RotationIndex >= part.Flow.Rows {
			return fmt.Errorf("flow.rotation_index %d outside %d rows: %w", part.Flow.RotationIndex, part.Flow.Rows, ErrInvalidValue)
		}
		for _, t := range part.Flow.Targets {
			if t != "particles" && t != "balls" {
				return fmt.Errorf("flow.targets: %q: %w", t, ErrInvalidValue)
			}
		}
	case PartVessel:
		if part.Vessel == nil {
			return fmt.Errorf("vessel: %w", ErrMissingBlock)
		}
		if part.Vessel.Shape != "rect" && part.Vessel.Shape != "circle" {
			return fmt.Errorf("vessel.shape %q: %w", part.Vessel.Shape, ErrInvalidValue)
		}
	case PartConveyor:
		if part.Conveyor == nil {
			return fmt.Errorf("conveyor: %w", ErrMissingBlock)
		}
	case PartFluidFilter:
		if part.Filter == nil {
			return fmt.Errorf("filter: %w", ErrMissingBlock)
		}
		if part.Filter.Blocked != "fluid" && part.Filter.Blocked != "tea_leaves" {
			return fmt.Errorf("filter.blocked %q: %w", part.Filter.Blocked, ErrInvalidValue)
		}
	case PartButton:
		if part.Button == nil {
			return fmt.Errorf("button: %w", ErrMissingBlock)
		}
	}

	switch part.Type {
	case PartBall:
		if part.Radius <= 0 {
			return fmt.Errorf("radius must be positive: %w", ErrInvalidValue)
		}
	case PartEmitter:
	default:
		if part.Radius <= 0 && (part.Width <= 0 || part.Height <= 0) {
			return fmt.Errorf("width/height or radius must be positive: %w", ErrInvalidValue)
		}
	}
	return nil
}
