package systems

import (
	"testing"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/entities"
)

var testBounds = config.DespawnConfig{MinX: -100, MaxX: 100, MinY: -100}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	id := createTestParticle(em, components.ParticleContents{})
	p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	p.Lifetime = components.NewTimer(1, components.TimerOnce)

	system := NewLifetimeSystem(em, testBounds)

	system.Update(0.6)
	if !em.Exists(id) {
		t.Fatal("particle removed before its lifetime ran out")
	}

	system.Update(0.6)
	if em.Exists(id) {
		t.Error("Expected particle to be removed after 1.2s")
	}
	if system.RemovedLastTick() != 1 {
		t.Errorf("Expected 1 removed, got %d", system.RemovedLastTick())
	}
}

func TestLifetimeOutOfBounds(t *testing.T) {
	maxY := 50.0
	bounds := testBounds
	bounds.MaxY = &maxY

	tests := []struct {
		name   string
		x, y   float64
		remove bool
	}{
		{"inside", 0, 0, false},
		{"below", 0, -101, true},
		{"left", -101, 0, true},
		{"right", 101, 0, true},
		{"above max_y", 0, 51, true},
		{"on the edge", 100, -100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id := createTestParticle(em, components.ParticleContents{})
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			pos.X, pos.Y = tt.x, tt.y

			NewLifetimeSystem(em, bounds).Update(0.01)

			if removed := !em.Exists(id); removed != tt.remove {
				t.Errorf("Expected removed=%v, got %v", tt.remove, removed)
			}
		})
	}
}

func TestLifetimeWithoutMaxYKeepsHighParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	id := createTestParticle(em, components.ParticleContents{})
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	pos.Y = 1e6

	NewLifetimeSystem(em, testBounds).Update(0.01)

	if !em.Exists(id) {
		t.Error("particle above the field should survive when max_y is unset")
	}
}

func TestLifetimeRemovalIsIdempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	id := createTestParticle(em, components.ParticleContents{})
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	pos.X = 500

	// 同一帧被多个原因标记删除
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	system := NewLifetimeSystem(em, testBounds)
	system.Update(0.01)

	if system.RemovedLastTick() != 1 {
		t.Errorf("Expected exactly 1 removal, got %d", system.RemovedLastTick())
	}
	if em.Count() != 0 {
		t.Errorf("Expected empty world, got %d entities", em.Count())
	}

	system.Update(0.01)
	if system.RemovedLastTick() != 0 {
		t.Errorf("second sweep removed %d", system.RemovedLastTick())
	}
}

func TestLifetimeClampsContents(t *testing.T) {
	em := ecs.NewEntityManager()
	id := createTestParticle(em, components.ParticleContents{Heat: 1.7, Tea: -0.2, Sugar: 0.4, Milk: 3})

	NewLifetimeSystem(em, testBounds).Update(0.01)

	want := components.ParticleContents{Heat: 1, Tea: 0, Sugar: 0.4, Milk: 1}
	if got := contentsOf(em, id); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestLifetimeRemovesLostLeaves(t *testing.T) {
	em := ecs.NewEntityManager()
	lost := entities.NewTeaLeaf(em, 0, -500, 2, 1)
	kept := entities.NewTeaLeaf(em, 0, 0, 2, 1)
	wall := em.CreateEntity()
	em.AddComponent(wall, &components.PositionComponent{Y: -500})
	em.AddComponent(wall, &components.ColliderComponent{Kind: components.KindWall})

	NewLifetimeSystem(em, testBounds).Update(0.01)

	if em.Exists(lost) {
		t.Error("leaf below the field should be removed")
	}
	if !em.Exists(kept) {
		t.Error("leaf inside the field was removed")
	}
	if !em.Exists(wall) {
		t.Error("walls are never swept")
	}
}
