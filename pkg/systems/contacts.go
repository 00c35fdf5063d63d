package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// ContactSource 提供最近一次物理步进的接触索引
// PhysicsSystem 实现此接口；测试中可以换成固定的接触集合
type ContactSource interface {
	Contacts() physics.ContactIndex
}

// ImpulseSink 对动态刚体施加冲量（覆盖语义：同一刚体本帧只保留最后一次写入）
type ImpulseSink interface {
	SetImpulse(id ecs.EntityID, x, y float64)
}

// bodyKind 按实体 ID 查询碰撞体类别
func bodyKind(em *ecs.EntityManager, id ecs.EntityID) (components.BodyKind, bool) {
	c, ok := ecs.GetComponent[*components.ColliderComponent](em, id)
	if !ok {
		return 0, false
	}
	return c.Kind, true
}

// isDynamic 检查实体是否为动态刚体
func isDynamic(em *ecs.EntityManager, id ecs.EntityID) bool {
	b, ok := ecs.GetComponent[*components.BodyComponent](em, id)
	return ok && b.Type == physics.Dynamic
}

// touchingParticles 对 sensor 接触到的每个粒子调用 fn
func touchingParticles(em *ecs.EntityManager, index physics.ContactIndex, sensor ecs.EntityID, fn func(id ecs.EntityID, p *components.ParticleComponent)) {
	for _, other := range index.ContactsWith(sensor) {
		p, ok := ecs.GetComponent[*components.ParticleComponent](em, other)
		if !ok {
			continue
		}
		fn(other, p)
	}
}
