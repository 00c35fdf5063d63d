package entities

import (
	"fmt"
	"image"
	"io/fs"
	"log"
	"math"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
	"github.com/olekspickle/chai-reaction/pkg/utils"
)

// 静态零件默认材质
const (
	wallFriction    = 0.5
	// cp 的摩擦系数两两相乘，水只有 0.05，传送带要足够粗糙才带得动
	conveyorGrip    = 20.0
	ballMass        = 2.0
	ballRestitution = 0.4
)

// PartFactory 根据关卡配置创建机器零件
type PartFactory struct {
	em     *ecs.EntityManager
	cfg    *config.GameConfig
	assets fs.FS // 流场纹理和容器遮罩所在的文件系统，可以为 nil

	named map[string]ecs.EntityID
}

// NewPartFactory 创建零件工厂
func NewPartFactory(em *ecs.EntityManager, cfg *config.GameConfig, assets fs.FS) *PartFactory {
	return &PartFactory{
		em:     em,
		cfg:    cfg,
		assets: assets,
		named:  make(map[string]ecs.EntityID),
	}
}

// SpawnLevel 创建关卡自带的全部零件，然后把按钮连接到过滤墙
func (f *PartFactory) SpawnLevel(level *config.LevelConfig) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(level.Parts))
	for i, part := range level.Parts {
		id, err := f.spawn(part, true)
		if err != nil {
			return ids, fmt.Errorf("level %s part %d: %w", level.ID, i, err)
		}
		ids = append(ids, id)
	}

	for i, part := range level.Parts {
		if part.Button == nil {
			continue
		}
		button, ok := ecs.GetComponent[*components.ButtonComponent](f.em, ids[i])
		if !ok {
			continue
		}
		for _, name := range part.Button.Filters {
			if target, ok := f.named[name]; ok {
				button.Filters = append(button.Filters, target)
			}
		}
	}

	log.Printf("[PartFactory] 关卡 %s 创建了 %d 个零件", level.ID, len(ids))
	return ids, nil
}

// Spawn 创建一个玩家放置的零件
func (f *PartFactory) Spawn(part config.PartConfig) (ecs.EntityID, error) {
	return f.spawn(part, false)
}

func (f *PartFactory) spawn(part config.PartConfig, fixed bool) (ecs.EntityID, error) {
	if !config.IsKnownPartType(part.Type) {
		return 0, fmt.Errorf("part type %q: %w", part.Type, config.ErrUnknownPartType)
	}

	// 先准备好需要加载资源的组件，失败时不留下半成品实体
	var extra []interface{}
	var collider *components.ColliderComponent
	var body *components.BodyComponent

	shape := partShape(part)
	sensor := func(kind components.BodyKind) *components.ColliderComponent {
		return &components.ColliderComponent{Shape: shape, Sensor: true, Layers: SensorLayers, Kind: kind}
	}
	solid := func(kind components.BodyKind, layers physics.Layers) *components.ColliderComponent {
		return &components.ColliderComponent{Shape: shape, Layers: layers, Kind: kind}
	}

	switch part.Type {
	case config.PartEmitter:
		emitter, err := f.newEmitter(part.Emitter)
		if err != nil {
			return 0, err
		}
		extra = append(extra, emitter)

	case config.PartHeatSource:
		collider = sensor(components.KindHeatSource)
		extra = append(extra, &components.HeatSourceComponent{})

	case config.PartTeaInfuser:
		collider = sensor(components.KindTeaInfuser)
		extra = append(extra, &components.TeaInfuserComponent{})

	case config.PartRecipeSensor:
		collider = sensor(components.KindRecipeSensor)
		extra = append(extra, &components.TeaSensorComponent{Recipe: *part.Recipe})

	case config.PartTeaCounter:
		collider = sensor(components.KindTeaCounter)
		extra = append(extra, &components.TeaCounterComponent{})

	case config.PartFlowField:
		field, err := f.newFlowField(part)
		if err != nil {
			return 0, err
		}
		collider = sensor(components.KindFlowField)
		extra = append(extra, field)

	case config.PartWall:
		collider = solid(components.KindWall, physics.DefaultLayers)
		body = &components.BodyComponent{Type: physics.Static, Friction: wallFriction}

	case config.PartConveyor:
		collider = solid(components.KindConveyor, physics.DefaultLayers)
		collider.TangentSpeed = part.Conveyor.Speed
		body = &components.BodyComponent{Type: physics.Static, Friction: conveyorGrip}
		extra = append(extra, &components.ConveyorComponent{Speed: part.Conveyor.Speed})

	case config.PartBall:
		collider = solid(components.KindBall, BallLayers)
		body = &components.BodyComponent{
			Type:         physics.Dynamic,
			Mass:         ballMass,
			GravityScale: 1,
			Friction:     wallFriction,
			Restitution:  ballRestitution,
		}
		extra = append(extra, &components.DisplayColorComponent{R: 0xd0, G: 0x30, B: 0x30, A: 255})

	case config.PartVessel:
		vessel, err := f.newVessel(part)
		if err != nil {
			return 0, err
		}
		extra = append(extra, vessel)

	case config.PartFluidFilter:
		blocked, _ := physics.ParseLayer(part.Filter.Blocked)
		collider = solid(components.KindFluidFilter, FilterLayers(blocked))
		body = &components.BodyComponent{Type: physics.Static, Friction: wallFriction}
		extra = append(extra, &components.FluidFilterComponent{Blocked: blocked})

	case config.PartButton:
		collider = sensor(components.KindButton)
		extra = append(extra, &components.ButtonComponent{})
	}

	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{
		X:        part.X,
		Y:        part.Y,
		Rotation: part.Rotation * math.Pi / 180,
	})
	f.em.AddComponent(id, &components.MachinePartComponent{
		Type:  part.Type,
		Cost:  f.cfg.PartCost(part.Type),
		Fixed: fixed,
	})
	if collider != nil {
		f.em.AddComponent(id, collider)
	}
	if body != nil {
		f.em.AddComponent(id, body)
	}
	for _, c := range extra {
		f.em.AddComponent(id, c)
	}

	if part.Name != "" {
		f.named[part.Name] = id
	}
	return id, nil
}

func partShape(part config.PartConfig) physics.Shape {
	if part.Radius > 0 {
		return physics.Circle(part.Radius)
	}
	return physics.Box(part.Width, part.Height)
}

func (f *PartFactory) kind(name string) (components.ParticleContents, error) {
	kind, ok := f.cfg.Kind(name)
	if !ok {
		return components.ParticleContents{}, fmt.Errorf("particle kind %q: %w", name, config.ErrInvalidValue)
	}
	return kind, nil
}

func (f *PartFactory) newEmitter(e *config.EmitterConfig) (*components.EmitterComponent, error) {
	kind, err := f.kind(e.Kind)
	if err != nil {
		return nil, err
	}

	interval := e.SpawnInterval
	if interval == 0 {
		interval = 1 / e.SpawnRate
	}
	gravityScale := 1.0
	if e.GravityScale != nil {
		gravityScale = *e.GravityScale
	}

	return &components.EmitterComponent{
		Kind:            kind,
		KindName:        e.Kind,
		SpawnRate:       e.SpawnRate,
		SpawnTimer:      components.NewTimer(interval, components.TimerRepeating),
		SpeedMin:        e.Speed[0],
		SpeedMax:        e.Speed[1],
		AngleMinDeg:     e.Angle[0],
		AngleMaxDeg:     e.Angle[1],
		GravityScale:    gravityScale,
		LifetimeSeconds: e.Lifetime,
		Layers:          FluidLayers,
		Active:          !e.Inactive,
	}, nil
}

func (f *PartFactory) newFlowField(part config.PartConfig) (*components.FlowFieldComponent, error) {
	flow := part.Flow

	var texture image.Image
	if flow.Texture != "" {
		if f.assets == nil {
			return nil, fmt.Errorf("flow texture %s: no asset filesystem", flow.Texture)
		}
		img, err := utils.LoadPNG(f.assets, flow.Texture)
		if err != nil {
			return nil, err
		}
		texture = img
	} else {
		w, h := int(part.Width), int(part.Height)
		if part.Radius > 0 {
			w, h = int(2*part.Radius), int(2*part.Radius)
		}
		texture = utils.UniformFlowTexture(w, h, flow.Rows, flow.Direction[0], flow.Direction[1], flow.Strength)
	}

	var targets components.FlowTargets
	for _, t := range flow.Targets {
		switch t {
		case "particles":
			targets |= components.FlowParticles
		case "balls":
			targets |= components.FlowBalls
		}
	}

	return &components.FlowFieldComponent{
		Texture:       texture,
		Rows:          flow.Rows,
		RotationIndex: flow.RotationIndex,
		Targets:       targets,
	}, nil
}

func (f *PartFactory) newVessel(part config.PartConfig) (*components.VesselComponent, error) {
	v := part.Vessel
	kind, err := f.kind(v.Kind)
	if err != nil {
		return nil, err
	}

	var mask image.Image
	switch {
	case v.Mask != "":
		if f.assets == nil {
			return nil, fmt.Errorf("vessel mask %s: no asset filesystem", v.Mask)
		}
		if mask, err = utils.LoadPNG(f.assets, v.Mask); err != nil {
			return nil, err
		}
	case v.Shape == "circle":
		r := part.Radius
		if r == 0 {
			r = math.Min(part.Width, part.Height) / 2
		}
		mask = utils.CircleMask(int(r))
	default:
		mask = utils.RectMask(int(part.Width), int(part.Height))
	}

	gravityScale := 1.0
	if v.GravityScale != nil {
		gravityScale = *v.GravityScale
	}

	return &components.VesselComponent{
		Mask:            mask,
		Kind:            kind,
		KindName:        v.Kind,
		TeaLeaves:       v.TeaLeaves,
		GravityScale:    gravityScale,
		LifetimeSeconds: v.Lifetime,
	}, nil
}
