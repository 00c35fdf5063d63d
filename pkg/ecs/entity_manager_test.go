package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testDropComponent struct {
	Tea float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 || id2 != 2 {
		t.Errorf("IDs should start at 1, got %d and %d", id1, id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testDropComponent{Tea: 0.5})

	drop, ok := GetComponent[*testDropComponent](em, id)
	if !ok {
		t.Fatal("generic GetComponent should find component added by generic AddComponent")
	}
	if drop.Tea != 0.5 {
		t.Errorf("Tea = %v, want 0.5", drop.Tea)
	}

	// 泛型和反射两种方式注册的类型必须一致
	if !em.HasComponent(id, reflect.TypeOf(&testDropComponent{})) {
		t.Error("reflection lookup should see generic component")
	}
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("entity should not have position component")
	}

	RemoveComponent[*testDropComponent](em, id)
	if HasComponent[*testDropComponent](em, id) {
		t.Error("component should be removed")
	}
}

func TestDestroyEntityIsDeferredAndDeduplicated(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if !em.IsMarkedForDestroy(id) {
		t.Error("entity should be marked")
	}
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities() = %d, want 1", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("second cleanup removed %d entities, want 0", removed)
	}

	// 已删除的实体再次标记无效
	em.DestroyEntity(id)
	if em.IsMarkedForDestroy(id) {
		t.Error("destroyed entity must not be marked again")
	}
}

func TestGetEntitiesWithIsSortedAndFiltered(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0)
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testDropComponent{})
			ids = append(ids, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testDropComponent](em)
	if len(got) != len(ids) {
		t.Fatalf("got %d entities, want %d", len(got), len(ids))
	}
	for i := range got {
		if got[i] != ids[i] {
			t.Fatalf("entity %d = %d, want %d (ascending order)", i, got[i], ids[i])
		}
	}

	if n := len(GetEntitiesWith1[*testPositionComponent](em)); n != 50 {
		t.Errorf("position query returned %d, want 50", n)
	}
}

func TestCountWithSkipsMarkedEntities(t *testing.T) {
	em := NewEntityManager()
	var last EntityID
	for i := 0; i < 5; i++ {
		last = em.CreateEntity()
		AddComponent(em, last, &testDropComponent{})
	}
	em.DestroyEntity(last)

	if n := CountWith1[*testDropComponent](em); n != 4 {
		t.Errorf("CountWith1 = %d, want 4", n)
	}
}

func TestClearKeepsIDCounter(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	em.DestroyEntity(first)
	em.Clear()

	if em.Count() != 0 {
		t.Errorf("Count() = %d after Clear, want 0", em.Count())
	}
	if next := em.CreateEntity(); next <= first {
		t.Errorf("IDs must not be reused: got %d after %d", next, first)
	}
	if em.RemoveMarkedEntities() != 0 {
		t.Error("Clear should drop pending destroy requests")
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 2000; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%3 == 0 {
			em.AddComponent(id, &testDropComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testDropComponent](em)
	}
}
