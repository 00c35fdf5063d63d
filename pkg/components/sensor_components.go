package components

import "github.com/olekspickle/chai-reaction/pkg/ecs"

// Recipe 配方目标
// Milky/Sweet 是精确匹配：要求 Milky=false 的配方在平均值加奶时不满足
type Recipe struct {
	Milky bool `yaml:"milky"`
	Sweet bool `yaml:"sweet"`
}

// TeaSensorComponent 配方传感器
// 每帧根据当前重叠的粒子群重新计算，没有滞回
type TeaSensorComponent struct {
	Recipe    Recipe
	Satisfied bool

	// 供 UI 显示的最近一次采样结果
	SampleCount int
	Average     ParticleContents
}

// HeatSourceComponent 热源标记，无状态
type HeatSourceComponent struct{}

// TeaInfuserComponent 茶叶浸泡标记
// 挂在 "Tea" 传感器和茶叶刚体上
type TeaInfuserComponent struct{}

// TeaCounterComponent 杯子计数器
// 统计接触过的已泡好的粒子（每个粒子只算一次）
type TeaCounterComponent struct {
	Count int
	seen  map[ecs.EntityID]struct{}
}

// MarkSeen 记录一个粒子，首次出现时返回 true
func (c *TeaCounterComponent) MarkSeen(id ecs.EntityID) bool {
	if c.seen == nil {
		c.seen = make(map[ecs.EntityID]struct{})
	}
	if _, ok := c.seen[id]; ok {
		return false
	}
	c.seen[id] = struct{}{}
	c.Count++
	return true
}
