// Package physics 把关卡里的刚体交给 Chipmunk2D（cp）模拟
//
// 粒子核心只读取每一步之后的接触索引（ContactIndex），并通过冲量影响刚体；
// 这里不关心茶的任何逻辑
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyType 刚体类型
type BodyType int

const (
	// Dynamic 受重力和碰撞影响
	Dynamic BodyType = iota
	// Static 永不移动，传感器一般是静态的
	Static
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// ShapeKind 碰撞形状种类
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// Shape 刚体局部坐标下的碰撞形状，以刚体位置为中心
type Shape struct {
	Kind       ShapeKind
	Radius     float64 // 圆
	HalfWidth  float64 // 矩形
	HalfHeight float64 // 矩形
}

// Circle 圆形碰撞体
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Box 给定完整宽高的矩形碰撞体
func Box(width, height float64) Shape {
	return Shape{Kind: ShapeBox, HalfWidth: width / 2, HalfHeight: height / 2}
}

// BoundingRadius 包含整个形状的最小外接圆半径
func (s Shape) BoundingRadius() float64 {
	if s.Kind == ShapeCircle {
		return s.Radius
	}
	return math.Hypot(s.HalfWidth, s.HalfHeight)
}

// ToLocal 把世界坐标 (x, y) 转换到位于 (ox, oy)、旋转 rot 弧度的刚体局部坐标
func ToLocal(ox, oy, rot, x, y float64) (float64, float64) {
	v := cp.Vector{X: x - ox, Y: y - oy}.Unrotate(cp.ForAngle(rot))
	return v.X, v.Y
}
