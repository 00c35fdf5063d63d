package components

import "github.com/olekspickle/chai-reaction/pkg/physics"

// EmitterComponent 粒子发射器
// 按固定速率发射粒子；每个粒子获得 Kind 的一份拷贝作为初始内容
//
// 纯数据组件，发射逻辑在 EmitterSystem 中。
type EmitterComponent struct {
	// Kind 每个新粒子的初始内容
	Kind     ParticleContents
	KindName string

	// SpawnRate 每秒发射数量
	SpawnRate float64
	// SpawnTimer 重复计时器，周期默认为 1/SpawnRate
	SpawnTimer Timer

	// 速度大小范围与角度范围（角度单位：度，0 度指向 +X，逆时针）
	SpeedMin    float64
	SpeedMax    float64
	AngleMinDeg float64
	AngleMaxDeg float64

	GravityScale    float64
	LifetimeSeconds float64

	// Layers 新粒子的碰撞层
	Layers physics.Layers

	// Active 为 false 时计时器不推进
	Active bool

	// TotalLaunched 已发射总数
	TotalLaunched int
}
