package game

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"math/rand"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/entities"
	"github.com/olekspickle/chai-reaction/pkg/physics"
	"github.com/olekspickle/chai-reaction/pkg/systems"
)

// earthGravity 重力倍数 1 对应的加速度（世界单位/秒²）
const earthGravity = 9.81

// victoryHold 所有传感器需要持续满足的时间（秒），0 表示满足的那一帧即完成
const victoryHold = 0.0

// Simulation 一个关卡的完整模拟
//
// 持有实体管理器和全部系统，按固定顺序推进：
// 容器 → 发射 → 物理 → 混合 → 加热 → 浸泡 → 计杯 → 配方 → 流场 → 过滤墙 → 清理 → 着色 → 胜利判定
type Simulation struct {
	cfg    *config.GameConfig
	level  *config.LevelConfig
	assets fs.FS
	seed   int64

	em      *ecs.EntityManager
	factory *entities.PartFactory

	physics   *systems.PhysicsSystem
	vessels   *systems.VesselSystem
	emitters  *systems.EmitterSystem
	mixing    *systems.MixingSystem
	heat      *systems.HeatSystem
	tea       *systems.TeaSystem
	counters  *systems.TeaCounterSystem
	recipes   *systems.RecipeSystem
	flow      *systems.FlowFieldSystem
	filters   *systems.FluidFilterSystem
	lifetime  *systems.LifetimeSystem
	conveyors *systems.ConveyorBeltSystem
	recolor   *systems.RecolorSystem
	victory   *systems.VictorySystem

	paused         bool
	physicsEnabled bool
	tick           int
	elapsed        float64
	events         []Event
}

// NewSimulation 创建关卡模拟并生成关卡自带的零件
//
// 参数：
//   - cfg: 全局配置
//   - level: 关卡配置
//   - assets: 流场纹理和遮罩所在的文件系统（相对 data 目录），可以为 nil
//   - seed: 发射器随机数种子
func NewSimulation(cfg *config.GameConfig, level *config.LevelConfig, assets fs.FS, seed int64) (*Simulation, error) {
	if cfg == nil || level == nil {
		return nil, fmt.Errorf("simulation needs a game config and a level")
	}
	s := &Simulation{
		cfg:    cfg,
		level:  level,
		assets: assets,
		seed:   seed,
		em:     ecs.NewEntityManager(),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset 删除所有实体并重新生成关卡零件
// 玩家放置的零件由 GameState 负责重新放置
func (s *Simulation) Reset() error {
	s.em.Clear()
	s.buildSystems()

	s.paused = false
	s.physicsEnabled = true
	s.tick = 0
	s.elapsed = 0
	s.events = s.events[:0]

	if _, err := s.factory.SpawnLevel(s.level); err != nil {
		return fmt.Errorf("failed to spawn level %s: %w", s.level.ID, err)
	}
	log.Printf("[Simulation] 关卡 %s 已重置，共 %d 个实体", s.level.ID, s.em.Count())
	return nil
}

func (s *Simulation) buildSystems() {
	cfg := s.cfg
	em := s.em

	settings := physics.DefaultSettings()
	g := cfg.Physics.Gravity
	if s.level.Gravity != nil {
		g = *s.level.Gravity
	}
	settings.GravityX, settings.GravityY = 0, -earthGravity*g
	settings.Skin = cfg.Physics.ContactSkin

	s.factory = entities.NewPartFactory(em, cfg, s.assets)
	s.physics = systems.NewPhysicsSystem(em, settings)
	s.vessels = systems.NewVesselSystem(em, cfg)
	s.emitters = systems.NewEmitterSystem(em, cfg, rand.New(rand.NewSource(s.seed)))
	s.mixing = systems.NewMixingSystem(em, s.physics, cfg.Physics.MixingRate)
	s.heat = systems.NewHeatSystem(em, s.physics)
	s.tea = systems.NewTeaSystem(em, s.physics, cfg.Physics.BrewingTemperature)
	s.counters = systems.NewTeaCounterSystem(em, s.physics)
	s.recipes = systems.NewRecipeSystem(em, s.physics, cfg.MinRecipeSamples)
	s.flow = systems.NewFlowFieldSystem(em, s.physics, s.physics, cfg.Physics.Flow)
	s.filters = systems.NewFluidFilterSystem(em, s.physics, cfg.Physics.FluidFilters)
	s.lifetime = systems.NewLifetimeSystem(em, cfg.Physics.Despawn)
	s.conveyors = systems.NewConveyorBeltSystem(em)
	s.recolor = systems.NewRecolorSystem(em, cfg.Colors, cfg.MilkLightening)
	s.victory = systems.NewVictorySystem(em, victoryHold)
}

// Step 推进一个固定步长
func (s *Simulation) Step(dt float64) {
	if s.paused || dt <= 0 {
		return
	}
	s.tick++

	s.vessels.Update(dt)
	s.emitters.Update(dt)
	if s.physicsEnabled {
		s.physics.Update(dt)
	}

	s.mixing.Update(dt)
	s.heat.Update(dt)
	s.tea.Update(dt)
	if cups := s.counters.Update(dt); cups > 0 {
		s.emit(Event{Type: EventCupBrewed, Count: cups})
	}
	for _, id := range s.recipes.Update(dt) {
		s.emit(Event{Type: EventSensorSatisfied, Entity: id})
	}

	s.flow.Update(dt)
	s.filters.Update(dt)
	s.lifetime.Update(dt)
	s.conveyors.Update(dt)
	s.recolor.Update(dt)

	if s.victory.Update(dt) {
		s.emit(Event{Type: EventLevelComplete})
		log.Printf("[Simulation] 关卡 %s 完成（第 %d 帧）", s.level.ID, s.tick)
	}
	s.elapsed += dt
}

func (s *Simulation) emit(e Event) {
	e.Tick = s.tick
	s.events = append(s.events, e)
}

// Events 取出并清空累积的事件
func (s *Simulation) Events() []Event {
	out := s.events
	s.events = nil
	return out
}

// AddPart 放置一个非固定零件
func (s *Simulation) AddPart(part config.PartConfig) (ecs.EntityID, error) {
	if err := config.PreparePart(&part); err != nil {
		return 0, fmt.Errorf("invalid part: %w", err)
	}
	return s.factory.Spawn(part)
}

// RemovePart 删除一个玩家放置的零件，关卡自带的零件不能删除
func (s *Simulation) RemovePart(id ecs.EntityID) error {
	part, ok := ecs.GetComponent[*components.MachinePartComponent](s.em, id)
	if !ok || part.Fixed {
		return fmt.Errorf("entity %d: %w", id, ErrNoSuchPart)
	}
	s.em.DestroyEntity(id)
	s.em.RemoveMarkedEntities()
	return nil
}

// ParticleView 渲染用的粒子快照
type ParticleView struct {
	ID       ecs.EntityID
	X, Y     float64
	Radius   float64
	Contents components.ParticleContents
	Color    color.NRGBA
}

// Particles 当前所有流体粒子
func (s *Simulation) Particles() []ParticleView {
	ids := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.em)
	views := make([]ParticleView, 0, len(ids))
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		v := ParticleView{ID: id, X: pos.X, Y: pos.Y, Radius: s.cfg.DropletRadius, Contents: p.Contents}
		if c, ok := ecs.GetComponent[*components.ColliderComponent](s.em, id); ok {
			v.Radius = c.Shape.BoundingRadius()
		}
		if d, ok := ecs.GetComponent[*components.DisplayColorComponent](s.em, id); ok {
			v.Color = color.NRGBA{R: d.R, G: d.G, B: d.B, A: d.A}
		}
		views = append(views, v)
	}
	return views
}

// SensorView 配方传感器的状态
type SensorView struct {
	ID          ecs.EntityID
	Part        PartView
	Recipe      components.Recipe
	Satisfied   bool
	SampleCount int
	Average     components.ParticleContents
}

// Sensors 所有配方传感器，按实体 ID 排序
func (s *Simulation) Sensors() []SensorView {
	ids := ecs.GetEntitiesWith1[*components.TeaSensorComponent](s.em)
	views := make([]SensorView, 0, len(ids))
	for _, id := range ids {
		sensor, _ := ecs.GetComponent[*components.TeaSensorComponent](s.em, id)
		part, _ := s.partView(id)
		views = append(views, SensorView{
			ID:          id,
			Part:        part,
			Recipe:      sensor.Recipe,
			Satisfied:   sensor.Satisfied,
			SampleCount: sensor.SampleCount,
			Average:     sensor.Average,
		})
	}
	return views
}

// PartView 渲染用的零件快照
type PartView struct {
	ID         ecs.EntityID
	Type       string
	Kind       components.BodyKind
	X, Y       float64
	Rotation   float64 // 弧度
	HalfWidth  float64
	HalfHeight float64
	Radius     float64
	Fixed      bool
	Color      color.NRGBA
	Active     bool // 传感器满足、过滤墙挡水等高亮状态
}

// Parts 所有机器零件（不含粒子和茶叶）
func (s *Simulation) Parts() []PartView {
	ids := ecs.GetEntitiesWith1[*components.MachinePartComponent](s.em)
	views := make([]PartView, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.partView(id); ok {
			views = append(views, v)
		}
	}
	return views
}

func (s *Simulation) partView(id ecs.EntityID) (PartView, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
	if !ok {
		return PartView{}, false
	}
	v := PartView{ID: id, X: pos.X, Y: pos.Y, Rotation: pos.Rotation}
	if part, ok := ecs.GetComponent[*components.MachinePartComponent](s.em, id); ok {
		v.Type = part.Type
		v.Fixed = part.Fixed
	}
	if c, ok := ecs.GetComponent[*components.ColliderComponent](s.em, id); ok {
		v.Kind = c.Kind
		switch c.Shape.Kind {
		case physics.ShapeCircle:
			v.Radius = c.Shape.Radius
		default:
			v.HalfWidth, v.HalfHeight = c.Shape.HalfWidth, c.Shape.HalfHeight
		}
	}
	if d, ok := ecs.GetComponent[*components.DisplayColorComponent](s.em, id); ok {
		v.Color = color.NRGBA{R: d.R, G: d.G, B: d.B, A: d.A}
	}
	if sensor, ok := ecs.GetComponent[*components.TeaSensorComponent](s.em, id); ok {
		v.Active = sensor.Satisfied
	}
	if f, ok := ecs.GetComponent[*components.FluidFilterComponent](s.em, id); ok {
		v.Active = f.Blocked == physics.LayerFluid
	}
	return v, true
}

// Leaves 当前所有茶叶的位置和半径
func (s *Simulation) Leaves() []ParticleView {
	var views []ParticleView
	for _, id := range ecs.GetEntitiesWith2[*components.ColliderComponent, *components.PositionComponent](s.em) {
		c, _ := ecs.GetComponent[*components.ColliderComponent](s.em, id)
		if c.Kind != components.KindLeaf {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		v := ParticleView{ID: id, X: pos.X, Y: pos.Y, Radius: c.Shape.BoundingRadius()}
		if d, ok := ecs.GetComponent[*components.DisplayColorComponent](s.em, id); ok {
			v.Color = color.NRGBA{R: d.R, G: d.G, B: d.B, A: d.A}
		}
		views = append(views, v)
	}
	return views
}

// AllSensorsSatisfied 当前帧所有配方传感器是否都满足
func (s *Simulation) AllSensorsSatisfied() bool {
	return systems.AllSensorsSatisfied(s.em)
}

// Complete 关卡是否已经完成（完成后保持为 true，直到 Reset）
func (s *Simulation) Complete() bool {
	return s.victory.Complete()
}

// ParticleCount 存活的流体粒子数
func (s *Simulation) ParticleCount() int {
	return ecs.CountWith1[*components.ParticleComponent](s.em)
}

// Cups 已泡好的杯数
func (s *Simulation) Cups() int {
	return systems.TotalCups(s.em)
}

// SetPaused 暂停/继续
func (s *Simulation) SetPaused(paused bool) { s.paused = paused }

// Paused 是否暂停
func (s *Simulation) Paused() bool { return s.paused }

// TogglePhysics 开关物理步进；关闭时粒子停在原地，内容仍然按上一次的接触混合
func (s *Simulation) TogglePhysics() bool {
	s.physicsEnabled = !s.physicsEnabled
	return s.physicsEnabled
}

// PhysicsEnabled 物理步进是否开启
func (s *Simulation) PhysicsEnabled() bool { return s.physicsEnabled }

// Tick 已推进的帧数
func (s *Simulation) Tick() int { return s.tick }

// Elapsed 已模拟的时间（秒）
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Level 当前关卡配置
func (s *Simulation) Level() *config.LevelConfig { return s.level }

// Config 全局配置
func (s *Simulation) Config() *config.GameConfig { return s.cfg }

// EntityManager 底层实体管理器（测试和调试工具使用）
func (s *Simulation) EntityManager() *ecs.EntityManager { return s.em }
