package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表（按请求顺序，去重）
	entitiesToDestroy []EntityID
	pendingDestroy    map[EntityID]struct{}
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
		pendingDestroy:    make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 同一实体重复标记只会删除一次
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, exists := em.components[id]; !exists {
		return
	}
	if _, marked := em.pendingDestroy[id]; marked {
		return
	}
	em.pendingDestroy[id] = struct{}{}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsMarkedForDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	_, marked := em.pendingDestroy[id]
	return marked
}

// Exists 检查实体是否存在（包括已标记但尚未清理的实体）
func (em *EntityManager) Exists(id EntityID) bool {
	_, exists := em.components[id]
	return exists
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回本次实际删除的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for _, id := range em.entitiesToDestroy {
		if _, exists := em.components[id]; exists {
			delete(em.components, id)
			removed++
		}
		delete(em.pendingDestroy, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
	return removed
}

// Clear 删除所有实体（关卡卸载或重开时使用）
// ID 计数器不重置，旧ID不会被复用
func (em *EntityManager) Clear() {
	em.components = make(map[EntityID]map[reflect.Type]interface{})
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
	em.pendingDestroy = make(map[EntityID]struct{})
}

// Count 返回当前实体数量
func (em *EntityManager) Count() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序，保证每帧遍历顺序稳定）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sortIDs(result)
	return result
}

func sortIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
