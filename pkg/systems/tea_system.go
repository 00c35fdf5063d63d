package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// TeaSystem 茶叶浸泡
// 接触到浸泡源（Tea 传感器或茶叶）且热量达到泡茶温度的粒子，每秒增加 1 点茶浓度；
// 温度不够的粒子完全不增加
type TeaSystem struct {
	entityManager      *ecs.EntityManager
	contacts           ContactSource
	brewingTemperature float64
}

// NewTeaSystem 创建浸泡系统
func NewTeaSystem(em *ecs.EntityManager, contacts ContactSource, brewingTemperature float64) *TeaSystem {
	return &TeaSystem{
		entityManager:      em,
		contacts:           contacts,
		brewingTemperature: brewingTemperature,
	}
}

// Update 浸泡一次
func (s *TeaSystem) Update(deltaTime float64) {
	index := s.contacts.Contacts()
	for _, infuser := range ecs.GetEntitiesWith1[*components.TeaInfuserComponent](s.entityManager) {
		touchingParticles(s.entityManager, index, infuser, func(_ ecs.EntityID, p *components.ParticleComponent) {
			if p.Contents.Heat >= s.brewingTemperature {
				p.Contents.Tea += deltaTime
			}
		})
	}
}

// TeaCounterSystem 杯子计数器：统计接触过计数器的已泡好的粒子
type TeaCounterSystem struct {
	entityManager *ecs.EntityManager
	contacts      ContactSource
}

// NewTeaCounterSystem 创建计数系统
func NewTeaCounterSystem(em *ecs.EntityManager, contacts ContactSource) *TeaCounterSystem {
	return &TeaCounterSystem{entityManager: em, contacts: contacts}
}

// Update 返回本帧新增的杯数
func (s *TeaCounterSystem) Update(deltaTime float64) int {
	index := s.contacts.Contacts()
	added := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TeaCounterComponent](s.entityManager) {
		counter, _ := ecs.GetComponent[*components.TeaCounterComponent](s.entityManager, id)
		touchingParticles(s.entityManager, index, id, func(pid ecs.EntityID, p *components.ParticleComponent) {
			if p.Contents.IsTea() && counter.MarkSeen(pid) {
				added++
			}
		})
	}
	return added
}

// TotalCups 所有计数器的总杯数
func TotalCups(em *ecs.EntityManager) int {
	total := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TeaCounterComponent](em) {
		counter, _ := ecs.GetComponent[*components.TeaCounterComponent](em, id)
		total += counter.Count
	}
	return total
}
