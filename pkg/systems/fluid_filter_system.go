package systems

import (
	"log"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/entities"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// FluidFilterSystem 按钮切换过滤墙挡住的粒子层
// 动态刚体开始压住按钮时触发一次；默认不启用（physics.fluid_filters）
type FluidFilterSystem struct {
	entityManager *ecs.EntityManager
	contacts      ContactSource
	enabled       bool
}

// NewFluidFilterSystem 创建过滤墙系统
func NewFluidFilterSystem(em *ecs.EntityManager, contacts ContactSource, enabled bool) *FluidFilterSystem {
	return &FluidFilterSystem{
		entityManager: em,
		contacts:      contacts,
		enabled:       enabled,
	}
}

// Update 检查按钮
func (s *FluidFilterSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}
	index := s.contacts.Contacts()

	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)

		pressed := false
		for _, other := range index.ContactsWith(id) {
			if isDynamic(s.entityManager, other) {
				pressed = true
				break
			}
		}

		if pressed && !button.Pressed {
			button.Presses++
			for _, target := range button.Filters {
				s.toggle(target)
			}
		}
		button.Pressed = pressed
	}
}

func (s *FluidFilterSystem) toggle(id ecs.EntityID) {
	filter, ok := ecs.GetComponent[*components.FluidFilterComponent](s.entityManager, id)
	if !ok {
		return
	}
	if filter.Blocked == physics.LayerFluid {
		filter.Blocked = physics.LayerTeaLeaves
	} else {
		filter.Blocked = physics.LayerFluid
	}
	if collider, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id); ok {
		collider.Layers = entities.FilterLayers(filter.Blocked)
	}
	log.Printf("[FluidFilterSystem] 过滤墙 %d 切换为阻挡 %v", id, filter.Blocked)
}
