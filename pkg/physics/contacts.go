package physics

import (
	"sort"

	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// ContactIndex 查询上一次物理步进中 A 是否接触 B
// 物理阶段之后的所有系统只读
type ContactIndex interface {
	ContactsWith(id ecs.EntityID) []ecs.EntityID
	InContact(a, b ecs.EntityID) bool
}

type pairKey struct {
	a, b ecs.EntityID
}

func makePairKey(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Contacts 一次步进产生的接触集合
// 同一对重复添加无效，所以每一对每步只报告一次
type Contacts struct {
	byEntity map[ecs.EntityID][]ecs.EntityID
	pairs    map[pairKey]struct{}
}

// NewContacts 空接触集合
func NewContacts() *Contacts {
	return &Contacts{
		byEntity: make(map[ecs.EntityID][]ecs.EntityID),
		pairs:    make(map[pairKey]struct{}),
	}
}

// Add 双向记录 a 和 b 的接触
func (c *Contacts) Add(a, b ecs.EntityID) {
	if a == b {
		return
	}
	key := makePairKey(a, b)
	if _, ok := c.pairs[key]; ok {
		return
	}
	c.pairs[key] = struct{}{}
	c.byEntity[a] = append(c.byEntity[a], b)
	c.byEntity[b] = append(c.byEntity[b], a)
}

// ContactsWith 与 id 接触的实体，按 ID 升序
func (c *Contacts) ContactsWith(id ecs.EntityID) []ecs.EntityID {
	return c.byEntity[id]
}

// InContact a 和 b 在上一次步进中是否接触
func (c *Contacts) InContact(a, b ecs.EntityID) bool {
	_, ok := c.pairs[makePairKey(a, b)]
	return ok
}

// Len 不同接触对的数量
func (c *Contacts) Len() int {
	return len(c.pairs)
}

// finish 排序每个邻接列表，保证下游遍历顺序确定
func (c *Contacts) finish() {
	for _, list := range c.byEntity {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	}
}
