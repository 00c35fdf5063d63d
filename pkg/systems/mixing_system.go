package systems

import (
	"math"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// MixingSystem 相互接触的粒子之间混合内容（扩散近似）
//
// 每个粒子作为"源"从它的邻居更新一次：
//
//	avg = (src + dst) / 2
//	d   = min(dt*K, 1)
//	src = src*(1-d) + avg*d，然后 clamp
//
// 只写源粒子；邻居的值取自本轮开始时的快照，因此结果与遍历顺序无关，
// 持续接触的两个粒子收敛到 (A+B)/2
type MixingSystem struct {
	entityManager *ecs.EntityManager
	contacts      ContactSource
	rate          float64

	snapshot map[ecs.EntityID]components.ParticleContents
}

// NewMixingSystem 创建混合系统，rate 为混合速率 K
func NewMixingSystem(em *ecs.EntityManager, contacts ContactSource, rate float64) *MixingSystem {
	return &MixingSystem{
		entityManager: em,
		contacts:      contacts,
		rate:          rate,
		snapshot:      make(map[ecs.EntityID]components.ParticleContents),
	}
}

// Update 混合一次
func (s *MixingSystem) Update(deltaTime float64) {
	particles := ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager)

	clear(s.snapshot)
	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		s.snapshot[id] = p.Contents
	}

	d := math.Min(deltaTime*s.rate, 1)
	index := s.contacts.Contacts()

	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)

		src := p.Contents
		for _, other := range index.ContactsWith(id) {
			if other == id {
				continue
			}
			dst, ok := s.snapshot[other]
			if !ok {
				continue
			}
			avg := src.Add(dst).Div(2)
			src = src.Lerp(avg, d)
			src.Clamp()
		}
		p.Contents = src
	}
}
