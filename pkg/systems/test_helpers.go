package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// fixedContacts 是测试用的固定接触集合
// 替代物理步进，让各个阶段可以单独测试
type fixedContacts struct {
	index *physics.Contacts
}

func newFixedContacts(pairs ...[2]ecs.EntityID) *fixedContacts {
	c := &fixedContacts{index: physics.NewContacts()}
	for _, p := range pairs {
		c.index.Add(p[0], p[1])
	}
	return c
}

func (c *fixedContacts) Contacts() physics.ContactIndex {
	return c.index
}

// touch 追加一对接触
func (c *fixedContacts) touch(a, b ecs.EntityID) {
	c.index.Add(a, b)
}

// reset 清空接触，模拟物体离开
func (c *fixedContacts) reset() {
	c.index = physics.NewContacts()
}

// recordingSink 记录写入的冲量（覆盖语义）
type recordingSink struct {
	impulses map[ecs.EntityID][2]float64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{impulses: make(map[ecs.EntityID][2]float64)}
}

func (s *recordingSink) SetImpulse(id ecs.EntityID, x, y float64) {
	s.impulses[id] = [2]float64{x, y}
}

// createTestParticle 创建一个只有内容和位置的测试粒子
func createTestParticle(em *ecs.EntityManager, contents components.ParticleContents) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{})
	em.AddComponent(id, &components.BodyComponent{Type: physics.Dynamic, Mass: 1, GravityScale: 1})
	em.AddComponent(id, &components.ColliderComponent{Shape: physics.Circle(1), Kind: components.KindParticle})
	em.AddComponent(id, components.NewParticleComponent(contents, 100))
	em.AddComponent(id, &components.DisplayColorComponent{})
	return id
}

// createTestSensor 创建一个带标记组件的传感器实体
func createTestSensor(em *ecs.EntityManager, kind components.BodyKind, marker interface{}) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{})
	em.AddComponent(id, &components.ColliderComponent{Shape: physics.Box(10, 10), Sensor: true, Kind: kind})
	if marker != nil {
		em.AddComponent(id, marker)
	}
	return id
}

func contentsOf(em *ecs.EntityManager, id ecs.EntityID) components.ParticleContents {
	p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	return p.Contents
}
