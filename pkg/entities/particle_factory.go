package entities

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// 碰撞层
var (
	// FluidLayers 水滴：与墙、水滴、茶叶、小球和传感器交互
	FluidLayers = physics.NewLayers(physics.LayerFluid,
		physics.LayerDefault, physics.LayerFluid, physics.LayerTeaLeaves, physics.LayerBall, physics.LayerSensor)
	// LeafLayers 茶叶
	LeafLayers = physics.NewLayers(physics.LayerTeaLeaves,
		physics.LayerDefault, physics.LayerFluid, physics.LayerTeaLeaves, physics.LayerSensor)
	// SensorLayers 传感器接受所有层
	SensorLayers = physics.NewLayers(physics.LayerSensor, physics.LayerAll)
	// BallLayers 小球
	BallLayers = physics.NewLayers(physics.LayerBall, physics.LayerAll)
)

// 茶叶质量较轻，容易被水流带动
const teaLeafMass = 0.1

// ParticleParams 创建水滴所需参数
type ParticleParams struct {
	X, Y   float64
	VX, VY float64

	Contents     components.ParticleContents
	Radius       float64
	GravityScale float64
	Lifetime     float64

	Mass        float64
	Friction    float64
	Restitution float64
	Layers      physics.Layers
}

// WaterParticleParams 按全局水滴材质填好默认参数
func WaterParticleParams(cfg *config.GameConfig, x, y float64, contents components.ParticleContents) ParticleParams {
	return ParticleParams{
		X:            x,
		Y:            y,
		Contents:     contents,
		Radius:       cfg.DropletRadius,
		GravityScale: 1,
		Lifetime:     10,
		Mass:         cfg.Physics.Water.Mass,
		Friction:     cfg.Physics.Water.Friction,
		Restitution:  cfg.Physics.Water.Restitution,
		Layers:       FluidLayers,
	}
}

// NewParticle 创建水滴实体
// 内容是参数中 Contents 的一份拷贝
func NewParticle(em *ecs.EntityManager, p ParticleParams) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.PositionComponent{X: p.X, Y: p.Y})
	em.AddComponent(id, &components.BodyComponent{
		Type:         physics.Dynamic,
		VX:           p.VX,
		VY:           p.VY,
		Mass:         p.Mass,
		GravityScale: p.GravityScale,
		Friction:     p.Friction,
		Restitution:  p.Restitution,
	})
	em.AddComponent(id, &components.ColliderComponent{
		Shape:  physics.Circle(p.Radius),
		Layers: p.Layers,
		Kind:   components.KindParticle,
	})
	em.AddComponent(id, components.NewParticleComponent(p.Contents, p.Lifetime))
	em.AddComponent(id, &components.DisplayColorComponent{A: 255})

	return id
}

// NewTeaLeaf 创建茶叶实体
// 茶叶是轻质的动态刚体，接触到足够热的水滴时为其浸泡茶味
func NewTeaLeaf(em *ecs.EntityManager, x, y, radius, gravityScale float64) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.BodyComponent{
		Type:         physics.Dynamic,
		Mass:         teaLeafMass,
		GravityScale: gravityScale,
		Friction:     0.8,
		Restitution:  0,
	})
	em.AddComponent(id, &components.ColliderComponent{
		Shape:  physics.Circle(radius),
		Layers: LeafLayers,
		Kind:   components.KindLeaf,
	})
	em.AddComponent(id, &components.TeaInfuserComponent{})
	em.AddComponent(id, &components.DisplayColorComponent{R: 0x4c, G: 0x6b, B: 0x22, A: 255})

	return id
}

// FilterLayers 过滤墙的碰撞层：挡住 blocked，放行另一种粒子
func FilterLayers(blocked physics.Layer) physics.Layers {
	passable := physics.LayerFluid | physics.LayerTeaLeaves
	return physics.Layers{
		Memberships: physics.LayerDefault,
		Filters:     (physics.LayerAll &^ passable) | blocked,
	}
}
