package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// HeatSystem 热源加热接触到的粒子：每秒接触增加 1 点热量
// 这里不做 clamp，超出 1 的部分由后续阶段截断
type HeatSystem struct {
	entityManager *ecs.EntityManager
	contacts      ContactSource
}

// NewHeatSystem 创建热传递系统
func NewHeatSystem(em *ecs.EntityManager, contacts ContactSource) *HeatSystem {
	return &HeatSystem{entityManager: em, contacts: contacts}
}

// Update 对所有 (热源, 粒子) 接触加热
func (s *HeatSystem) Update(deltaTime float64) {
	index := s.contacts.Contacts()
	for _, source := range ecs.GetEntitiesWith1[*components.HeatSourceComponent](s.entityManager) {
		touchingParticles(s.entityManager, index, source, func(_ ecs.EntityID, p *components.ParticleComponent) {
			p.Contents.Heat += deltaTime
		})
	}
}
