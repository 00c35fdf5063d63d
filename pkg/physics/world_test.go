package physics

import (
	"math"
	"testing"

	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

func dropDef(x, y, r float64) BodyDef {
	return BodyDef{
		Type:         Dynamic,
		Shape:        Circle(r),
		Layers:       NewLayers(LayerFluid, LayerDefault, LayerFluid, LayerSensor),
		X:            x,
		Y:            y,
		Mass:         1,
		GravityScale: 1,
		Friction:     0.1,
		Restitution:  0.2,
	}
}

func floorDef(x, y, w, h float64) BodyDef {
	return BodyDef{
		Type:     Static,
		Shape:    Box(w, h),
		Layers:   DefaultLayers,
		X:        x,
		Y:        y,
		Friction: 1,
	}
}

func TestLayersInteracts(t *testing.T) {
	tests := []struct {
		name string
		a, b Layers
		want bool
	}{
		{"fluid with fluid", NewLayers(LayerFluid, LayerFluid), NewLayers(LayerFluid, LayerFluid), true},
		{"fluid ignores leaves", NewLayers(LayerFluid, LayerFluid), NewLayers(LayerTeaLeaves, LayerAll), false},
		{"one-sided filter", NewLayers(LayerFluid, LayerAll), NewLayers(LayerDefault, LayerTeaLeaves), false},
		{"default everything", DefaultLayers, NewLayers(LayerBall, LayerDefault), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Interacts(tt.b); got != tt.want {
				t.Errorf("Interacts() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Interacts(tt.a); got != tt.want {
				t.Errorf("Interacts() is not symmetric: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayersFilter(t *testing.T) {
	f := NewLayers(LayerFluid, LayerDefault, LayerSensor).Filter()
	if f.Categories != uint(LayerFluid) {
		t.Errorf("Categories = %b, want %b", f.Categories, LayerFluid)
	}
	if f.Mask != uint(LayerDefault|LayerSensor) {
		t.Errorf("Mask = %b, want %b", f.Mask, LayerDefault|LayerSensor)
	}
	if f.Group != 0 {
		t.Errorf("Group = %d, want 0", f.Group)
	}
}

func TestWorldGravityScaleAndImpulse(t *testing.T) {
	w := NewWorld(Settings{GravityY: -10, Iterations: 1})
	drop := dropDef(0, 0, 1)
	drop.GravityScale = 0.5
	drop.Mass = 2
	w.Sync(1, drop)
	w.ApplyImpulse(1, 4, 0)

	w.Step(0.1)

	b, ok := w.State(1)
	if !ok {
		t.Fatal("State() missing body")
	}
	if math.Abs(b.VX-2) > 1e-9 {
		t.Errorf("VX = %v, want impulse/mass = 2", b.VX)
	}
	if math.Abs(b.VY-(-0.5)) > 1e-9 {
		t.Errorf("VY = %v, want -0.5 (half gravity for 0.1s)", b.VY)
	}
}

func TestWorldIgnoresStaticImpulse(t *testing.T) {
	w := NewWorld(Settings{Iterations: 1})
	w.Sync(1, floorDef(0, 0, 4, 4))
	w.ApplyImpulse(1, 10, 10)
	w.ApplyImpulse(99, 10, 10)
	w.Step(0.1)

	b, _ := w.State(1)
	if b.X != 0 || b.Y != 0 || b.VX != 0 || b.VY != 0 {
		t.Errorf("static body moved: %+v", b)
	}
}

func TestWorldDropRestsOnFloor(t *testing.T) {
	w := NewWorld(Settings{GravityY: -98, Skin: 0.1, Iterations: 10})
	w.Sync(1, dropDef(0, 10, 2))
	w.Sync(2, floorDef(0, 0, 100, 4))

	var contacts *Contacts
	for i := 0; i < 240; i++ {
		contacts = w.Step(1.0 / 60)
	}

	drop, _ := w.State(1)
	// 地面顶面 y=2，粒子半径 2
	if drop.Y < 3.5 || drop.Y > 4.5 {
		t.Errorf("drop should rest on the floor, y = %v", drop.Y)
	}
	if !contacts.InContact(1, 2) {
		t.Error("resting drop should report a contact with the floor")
	}
	if floor, _ := w.State(2); floor.X != 0 || floor.Y != 0 {
		t.Error("static body moved")
	}
}

func TestWorldSensorReportsWithoutResponse(t *testing.T) {
	w := NewWorld(Settings{Iterations: 2})
	sensor := floorDef(0, 0, 20, 20)
	sensor.Sensor = true
	sensor.Layers = NewLayers(LayerSensor, LayerAll)
	drop := dropDef(0, 0, 2)
	drop.VX = 1

	w.Sync(1, drop)
	w.Sync(2, sensor)
	contacts := w.Step(0.1)

	if !contacts.InContact(1, 2) {
		t.Fatal("sensor contact missing")
	}
	b, _ := w.State(1)
	if math.Abs(b.X-0.1) > 1e-9 || math.Abs(b.Y) > 1e-9 {
		t.Errorf("sensor pushed the drop: (%v, %v)", b.X, b.Y)
	}
}

func TestWorldOverlappingDropsSeparate(t *testing.T) {
	w := NewWorld(Settings{Iterations: 10})
	for i, x := range []float64{0, 1, 50} {
		w.Sync(ecs.EntityID(i+1), dropDef(x, 0, 1))
	}

	contacts := w.Step(1.0 / 60)
	if !contacts.InContact(1, 2) {
		t.Error("overlapping drops should be in contact")
	}
	if contacts.InContact(1, 3) {
		t.Error("far drop should not be in contact")
	}
	if contacts.Len() != 1 {
		t.Errorf("Len() = %d, want 1", contacts.Len())
	}
	if n := contacts.ContactsWith(2); len(n) != 1 || n[0] != 1 {
		t.Errorf("ContactsWith(2) = %v", n)
	}

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	a, _ := w.State(1)
	b, _ := w.State(2)
	if d := math.Hypot(b.X-a.X, b.Y-a.Y); d < 1.5 {
		t.Errorf("drops still overlap: distance %v", d)
	}
}

func TestWorldLayerFilterSkipsContact(t *testing.T) {
	w := NewWorld(Settings{Iterations: 1})
	wall := floorDef(0, 0, 10, 10)
	wall.Layers = NewLayers(LayerDefault, LayerTeaLeaves)
	w.Sync(1, dropDef(0, 0, 1))
	w.Sync(2, wall)

	if contacts := w.Step(0.01); contacts.Len() != 0 {
		t.Error("fluid drop should pass through a wall that only filters leaves")
	}
}

func TestWorldLayerChangeTakesEffect(t *testing.T) {
	w := NewWorld(Settings{Iterations: 1})
	wall := floorDef(0, 0, 10, 10)
	w.Sync(1, dropDef(0, 0, 1))
	w.Sync(2, wall)
	if !w.Step(0.01).InContact(1, 2) {
		t.Fatal("drop inside a default wall should touch it")
	}

	wall.Layers = NewLayers(LayerDefault, LayerTeaLeaves)
	w.Sync(2, wall)
	if w.Step(0.01).InContact(1, 2) {
		t.Error("wall that stopped filtering fluid still reports a contact")
	}
}

func TestWorldConveyorCarriesDrop(t *testing.T) {
	w := NewWorld(Settings{GravityY: -98, Skin: 0.1, Iterations: 10})
	belt := floorDef(0, 0, 1000, 4)
	belt.TangentSpeed = 30
	drop := dropDef(0, 4, 2)
	drop.Friction = 1
	w.Sync(1, drop)
	w.Sync(2, belt)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	if b, _ := w.State(1); b.VX < 20 {
		t.Errorf("drop on a conveyor should move with the belt, VX = %v", b.VX)
	}
}

func TestWorldSyncAndRemove(t *testing.T) {
	w := NewWorld(Settings{Iterations: 1})
	w.Sync(1, dropDef(0, 0, 1))
	w.Sync(2, dropDef(1, 0, 1))
	w.Sync(3, floorDef(0, -10, 4, 4))
	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", w.Len())
	}

	// 形状改变时重建刚体
	w.Sync(1, dropDef(0, 0, 3))
	if w.Len() != 3 || !w.Has(1) {
		t.Error("resync with a new shape should replace the body in place")
	}

	w.Remove(2)
	w.Remove(42)
	if w.Has(2) || w.Len() != 2 {
		t.Errorf("Remove() left %d bodies", w.Len())
	}
	if w.Step(0.01).InContact(1, 2) {
		t.Error("removed body still produced a contact")
	}

	if n := w.Prune(func(id ecs.EntityID) bool { return id == 3 }); n != 1 {
		t.Errorf("Prune() removed %d, want 1", n)
	}
	if w.Has(1) || !w.Has(3) {
		t.Error("Prune() kept the wrong bodies")
	}
}

func TestContactsAddIsIdempotent(t *testing.T) {
	c := NewContacts()
	c.Add(ecs.EntityID(3), ecs.EntityID(1))
	c.Add(ecs.EntityID(1), ecs.EntityID(3))
	c.Add(ecs.EntityID(2), ecs.EntityID(2))
	c.finish()

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if !c.InContact(ecs.EntityID(1), ecs.EntityID(3)) || !c.InContact(ecs.EntityID(3), ecs.EntityID(1)) {
		t.Error("contacts must be symmetric")
	}
	if len(c.ContactsWith(ecs.EntityID(2))) != 0 {
		t.Error("self contacts must be ignored")
	}
}

func TestToLocal(t *testing.T) {
	x, y := ToLocal(10, 0, math.Pi/2, 10, 5)
	if math.Abs(x-5) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("ToLocal() = (%v, %v), want (5, 0)", x, y)
	}
}
