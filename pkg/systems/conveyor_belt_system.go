package systems

import (
	"math"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// conveyorScrollPeriod 传送带纹理的重复长度（世界单位）
const conveyorScrollPeriod = 16.0

// ConveyorBeltSystem 传送带动画
// 运送本身由物理步进按 TangentSpeed 完成，这里只推进渲染用的滚动偏移
type ConveyorBeltSystem struct {
	entityManager *ecs.EntityManager
}

// NewConveyorBeltSystem 创建传送带系统
func NewConveyorBeltSystem(em *ecs.EntityManager) *ConveyorBeltSystem {
	return &ConveyorBeltSystem{entityManager: em}
}

// Update 更新所有传送带的滚动偏移，结果保持在 [0, conveyorScrollPeriod)
func (s *ConveyorBeltSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ConveyorComponent](s.entityManager) {
		belt, _ := ecs.GetComponent[*components.ConveyorComponent](s.entityManager, id)
		belt.ScrollOffset = math.Mod(belt.ScrollOffset+belt.Speed*deltaTime, conveyorScrollPeriod)
		if belt.ScrollOffset < 0 {
			belt.ScrollOffset += conveyorScrollPeriod
		}
	}
}
