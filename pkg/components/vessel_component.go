package components

import "image"

// VesselComponent 粒子容器
// 第一帧按遮罩图扫描出互不重叠的圆，每个圆生成一个粒子，然后标记完成
type VesselComponent struct {
	Mask     image.Image
	Kind     ParticleContents
	KindName string

	// TeaLeaves 为 true 时生成茶叶而不是水滴
	TeaLeaves bool

	GravityScale    float64
	LifetimeSeconds float64

	Completed bool
	Spawned   int
}
