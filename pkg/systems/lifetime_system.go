package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// LifetimeSystem 管理粒子的生命周期
//
// 推进每个粒子的寿命计时器，并把所有通道截断到 [0,1]；
// 寿命到期或越界的粒子（以及越界的茶叶）标记删除，然后立即清理，
// 后续阶段不会再看到已删除的粒子
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	bounds        config.DespawnConfig

	removed int
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, bounds config.DespawnConfig) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		bounds:        bounds,
	}
}

// Update 更新所有粒子的生命周期
func (s *LifetimeSystem) Update(deltaTime float64) {
	particles := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range particles {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		particle.Contents.Clamp()
		particle.Lifetime.Tick(deltaTime)

		if particle.Lifetime.Finished() || s.bounds.Outside(pos.X, pos.Y) {
			s.entityManager.DestroyEntity(id)
		}
	}

	colliders := ecs.GetEntitiesWith2[*components.ColliderComponent, *components.PositionComponent](s.entityManager)
	for _, id := range colliders {
		collider, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
		if collider.Kind != components.KindLeaf && collider.Kind != components.KindBall {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if s.bounds.Outside(pos.X, pos.Y) {
			s.entityManager.DestroyEntity(id)
		}
	}

	s.removed = s.entityManager.RemoveMarkedEntities()
}

// RemovedLastTick 上一次 Update 删除的实体数量
func (s *LifetimeSystem) RemovedLastTick() int {
	return s.removed
}
