package components

import (
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// FluidFilterComponent 选择性透过的过滤墙
// Blocked 是当前被挡住的粒子层；另一类粒子可以穿过
type FluidFilterComponent struct {
	Blocked physics.Layer
}

// ButtonComponent 切换过滤墙的按钮传感器
// 有动态刚体开始重叠时触发一次（边沿触发）
type ButtonComponent struct {
	// Filters 受控制的过滤墙实体
	Filters []ecs.EntityID

	// Pressed 上一帧是否有动态刚体压着按钮
	Pressed bool
	Presses int
}
