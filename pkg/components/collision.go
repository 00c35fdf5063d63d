package components

import "github.com/olekspickle/chai-reaction/pkg/physics"

// PositionComponent 世界坐标（Y 轴向上），Rotation 为弧度，逆时针
type PositionComponent struct {
	X, Y     float64
	Rotation float64
}

// BodyComponent 刚体运动状态
// 静态刚体只有 Type 和材质参数有意义
type BodyComponent struct {
	Type physics.BodyType

	VX, VY float64

	Mass         float64
	GravityScale float64
	Friction     float64
	Restitution  float64

	// 待施加的冲量，下一次物理步进开始时消耗
	ImpulseX, ImpulseY float64
	HasImpulse         bool
}

// ColliderComponent 碰撞形状
type ColliderComponent struct {
	Shape  physics.Shape
	Sensor bool
	Layers physics.Layers
	Kind   BodyKind

	// TangentSpeed 传送带表面速度
	TangentSpeed float64
}
