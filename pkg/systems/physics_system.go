package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// PhysicsSystem 把 ECS 中的刚体同步到 cp 物理世界，步进后把动态刚体的状态写回
// 同时对外提供本帧的接触索引（ContactSource）和冲量写入（ImpulseSink）
type PhysicsSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World

	seen map[ecs.EntityID]bool
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - settings: 重力、接触余量等物理常量
func NewPhysicsSystem(em *ecs.EntityManager, settings physics.Settings) *PhysicsSystem {
	return &PhysicsSystem{
		entityManager: em,
		world:         physics.NewWorld(settings),
		seen:          make(map[ecs.EntityID]bool),
	}
}

// Settings 当前物理常量
func (s *PhysicsSystem) Settings() physics.Settings {
	return s.world.Settings()
}

// SetGravity 修改重力（关卡可以覆盖全局重力）
func (s *PhysicsSystem) SetGravity(x, y float64) {
	s.world.SetGravity(x, y)
}

// Contacts 返回最近一次步进的接触索引
func (s *PhysicsSystem) Contacts() physics.ContactIndex {
	return s.world.Contacts()
}

// BodyCount 物理世界中的刚体数量
func (s *PhysicsSystem) BodyCount() int {
	return s.world.Len()
}

// SetImpulse 覆盖刚体的待施加冲量，下一次 Update 开始时生效
// 静态刚体和没有刚体组件的实体被忽略
func (s *PhysicsSystem) SetImpulse(id ecs.EntityID, x, y float64) {
	body, ok := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
	if !ok || body.Type != physics.Dynamic {
		return
	}
	body.ImpulseX, body.ImpulseY = x, y
	body.HasImpulse = true
}

// Update 推进一次物理步进
func (s *PhysicsSystem) Update(deltaTime float64) {
	s.sync()
	s.world.Step(deltaTime)
	s.writeBack()
}

// sync 新实体加入物理世界，已删除或待删除的实体移出
func (s *PhysicsSystem) sync() {
	for id := range s.seen {
		delete(s.seen, id)
	}

	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.ColliderComponent](s.entityManager)
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)

		def := physics.BodyDef{
			Type:         physics.Static,
			Shape:        col.Shape,
			Sensor:       col.Sensor,
			Layers:       col.Layers,
			X:            pos.X,
			Y:            pos.Y,
			Rotation:     pos.Rotation,
			TangentSpeed: col.TangentSpeed,
		}
		if state, ok := ecs.GetComponent[*components.BodyComponent](s.entityManager, id); ok {
			def.Type = state.Type
			def.VX, def.VY = state.VX, state.VY
			def.Mass = state.Mass
			def.GravityScale = state.GravityScale
			def.Friction = state.Friction
			def.Restitution = state.Restitution
		}

		s.world.Sync(id, def)
		s.seen[id] = true
	}

	s.world.Prune(func(id ecs.EntityID) bool { return s.seen[id] })

	// 冲量在同步速度之后施加，否则会被 ECS 里的旧速度覆盖
	for _, id := range ecs.GetEntitiesWith1[*components.BodyComponent](s.entityManager) {
		state, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		if !state.HasImpulse || !s.seen[id] {
			continue
		}
		s.world.ApplyImpulse(id, state.ImpulseX, state.ImpulseY)
	}
}

func (s *PhysicsSystem) writeBack() {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.BodyComponent](s.entityManager) {
		state, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		if state.Type != physics.Dynamic {
			continue
		}
		state.ImpulseX, state.ImpulseY = 0, 0
		state.HasImpulse = false

		b, ok := s.world.State(id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X, pos.Y = b.X, b.Y
		state.VX, state.VY = b.VX, b.VY
	}
}
