package entities

import (
	"errors"
	"math"
	"testing"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

const testLevelYAML = `id: factory_test
initial_zen_points: 100
parts:
  - type: emitter
    x: 10
    y: 20
    rotation: 90
    emitter:
      kind: cold_water
      spawn_rate: 20
      speed: [1, 2]
      angle: [0, 45]
  - type: recipe_sensor
    width: 50
    height: 30
    recipe: {milky: true, sweet: false}
  - type: conveyor
    width: 200
    height: 10
    conveyor: {speed: 25}
  - type: fluid_filter
    name: gate
    width: 10
    height: 80
    filter: {blocked: tea_leaves}
  - type: button
    radius: 8
    button: {filters: [gate]}
  - type: flow_field
    width: 16
    height: 16
    flow: {direction: [0, 1], rows: 2}
  - type: vessel
    width: 20
    height: 20
    vessel: {kind: water}
`

func TestSpawnLevel(t *testing.T) {
	level, err := config.ParseLevelConfig([]byte(testLevelYAML))
	if err != nil {
		t.Fatalf("ParseLevelConfig: %v", err)
	}
	cfg := config.DefaultGameConfig()
	cfg.MachineParts[config.PartConveyor] = config.MachinePartConfig{Cost: 15}

	em := ecs.NewEntityManager()
	ids, err := NewPartFactory(em, cfg, nil).SpawnLevel(level)
	if err != nil {
		t.Fatalf("SpawnLevel: %v", err)
	}
	if len(ids) != len(level.Parts) {
		t.Fatalf("got %d ids, want %d", len(ids), len(level.Parts))
	}

	t.Run("emitter", func(t *testing.T) {
		e, ok := ecs.GetComponent[*components.EmitterComponent](em, ids[0])
		if !ok {
			t.Fatal("missing EmitterComponent")
		}
		if e.Kind.Heat != 0 || e.KindName != "cold_water" {
			t.Errorf("unexpected kind %+v %q", e.Kind, e.KindName)
		}
		if math.Abs(e.SpawnTimer.Duration-0.05) > 1e-12 || e.SpawnTimer.Mode != components.TimerRepeating {
			t.Errorf("unexpected timer %+v", e.SpawnTimer)
		}
		if !e.Active || e.GravityScale != 1 || e.LifetimeSeconds != 10 {
			t.Errorf("unexpected emitter defaults %+v", e)
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, ids[0])
		if math.Abs(pos.Rotation-math.Pi/2) > 1e-12 {
			t.Errorf("rotation = %v, want pi/2", pos.Rotation)
		}
		if ecs.HasComponent[*components.ColliderComponent](em, ids[0]) {
			t.Error("emitters have no collider")
		}
	})

	t.Run("recipe sensor", func(t *testing.T) {
		s, ok := ecs.GetComponent[*components.TeaSensorComponent](em, ids[1])
		if !ok || !s.Recipe.Milky || s.Recipe.Sweet {
			t.Fatalf("unexpected sensor %+v", s)
		}
		c, _ := ecs.GetComponent[*components.ColliderComponent](em, ids[1])
		if !c.Sensor || c.Kind != components.KindRecipeSensor {
			t.Errorf("unexpected collider %+v", c)
		}
	})

	t.Run("conveyor", func(t *testing.T) {
		c, _ := ecs.GetComponent[*components.ColliderComponent](em, ids[2])
		if c.TangentSpeed != 25 || c.Sensor {
			t.Errorf("unexpected collider %+v", c)
		}
		part, _ := ecs.GetComponent[*components.MachinePartComponent](em, ids[2])
		if part.Cost != 15 || !part.Fixed {
			t.Errorf("unexpected machine part %+v", part)
		}
	})

	t.Run("button wired to filter", func(t *testing.T) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](em, ids[4])
		if len(b.Filters) != 1 || b.Filters[0] != ids[3] {
			t.Errorf("button filters = %v, want [%d]", b.Filters, ids[3])
		}
		f, _ := ecs.GetComponent[*components.FluidFilterComponent](em, ids[3])
		if f.Blocked != physics.LayerTeaLeaves {
			t.Errorf("blocked = %v", f.Blocked)
		}
	})

	t.Run("flow field texture", func(t *testing.T) {
		f, _ := ecs.GetComponent[*components.FlowFieldComponent](em, ids[5])
		if f.Texture == nil || f.Texture.Bounds().Dy() != 32 || f.Rows != 2 {
			t.Errorf("unexpected flow field %+v", f)
		}
		if f.Targets != components.FlowAll {
			t.Errorf("targets = %v, want all", f.Targets)
		}
	})

	t.Run("vessel", func(t *testing.T) {
		v, _ := ecs.GetComponent[*components.VesselComponent](em, ids[6])
		if v.Mask == nil || v.Mask.Bounds().Dx() != 20 || v.Kind.Heat != 1 || v.Completed {
			t.Errorf("unexpected vessel %+v", v)
		}
	})
}

func TestSpawnErrors(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	f := NewPartFactory(em, cfg, nil)

	if _, err := f.Spawn(config.PartConfig{Type: "teapot"}); !errors.Is(err, config.ErrUnknownPartType) {
		t.Errorf("err = %v, want ErrUnknownPartType", err)
	}

	_, err := f.Spawn(config.PartConfig{
		Type:    config.PartEmitter,
		Emitter: &config.EmitterConfig{Kind: "lava", SpawnRate: 1},
	})
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}

	_, err = f.Spawn(config.PartConfig{
		Type:   config.PartFlowField,
		Width:  4,
		Height: 4,
		Flow:   &config.FlowFieldConfig{Texture: "flows/up.png", Rows: 1},
	})
	if err == nil {
		t.Error("expected error loading a texture without an asset filesystem")
	}

	if em.Count() != 0 {
		t.Errorf("failed spawns left %d entities behind", em.Count())
	}
}

func TestNewParticle(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()

	p := WaterParticleParams(cfg, 1, 2, components.ParticleContents{Heat: 1, Tea: 0.25})
	p.VX, p.Lifetime = 3, 4
	id := NewParticle(em, p)

	particle, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
	if !ok {
		t.Fatal("missing ParticleComponent")
	}
	if particle.Contents.Tea != 0.25 || particle.Lifetime.Duration != 4 || particle.Lifetime.Mode != components.TimerOnce {
		t.Errorf("unexpected particle %+v", particle)
	}
	body, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	if body.Type != physics.Dynamic || body.VX != 3 {
		t.Errorf("unexpected body %+v", body)
	}
	c, _ := ecs.GetComponent[*components.ColliderComponent](em, id)
	if c.Kind != components.KindParticle || c.Shape.Radius != cfg.DropletRadius {
		t.Errorf("unexpected collider %+v", c)
	}

	leaf := NewTeaLeaf(em, 0, 0, 2, 1)
	if !ecs.HasComponent[*components.TeaInfuserComponent](em, leaf) || ecs.HasComponent[*components.ParticleComponent](em, leaf) {
		t.Error("tea leaves are infusers, not particles")
	}
}

func TestFilterLayers(t *testing.T) {
	blocksFluid := FilterLayers(physics.LayerFluid)
	if !blocksFluid.Interacts(FluidLayers) {
		t.Error("fluid filter should stop fluid")
	}
	if blocksFluid.Interacts(LeafLayers) {
		t.Error("fluid filter should let leaves through")
	}
	blocksLeaves := FilterLayers(physics.LayerTeaLeaves)
	if blocksLeaves.Interacts(FluidLayers) || !blocksLeaves.Interacts(LeafLayers) {
		t.Error("leaf filter should let fluid through and stop leaves")
	}
}
