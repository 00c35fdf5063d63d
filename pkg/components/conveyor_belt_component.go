package components

// ConveyorComponent 传送带
// 运送速度写在 ColliderComponent.TangentSpeed；这里只保存渲染用的滚动偏移
type ConveyorComponent struct {
	Speed        float64
	ScrollOffset float64
}
