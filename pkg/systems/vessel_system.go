package systems

import (
	"log"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/entities"
	"github.com/olekspickle/chai-reaction/pkg/utils"
)

// 容器中的粒子较轻，和茶叶一样
const vesselParticleMass = 0.1

// VesselSystem 容器一次性生成一批粒子
// 生成的粒子计入存活总数，但不受 max_particles 限制
type VesselSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
}

// NewVesselSystem 创建容器系统
func NewVesselSystem(em *ecs.EntityManager, cfg *config.GameConfig) *VesselSystem {
	return &VesselSystem{entityManager: em, cfg: cfg}
}

// Update 处理尚未完成的容器
func (s *VesselSystem) Update(deltaTime float64) {
	vessels := ecs.GetEntitiesWith2[*components.VesselComponent, *components.PositionComponent](s.entityManager)
	for _, id := range vessels {
		vessel, _ := ecs.GetComponent[*components.VesselComponent](s.entityManager, id)
		if vessel.Completed {
			continue
		}
		vessel.Completed = true
		if vessel.Mask == nil {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		radius := s.cfg.DropletRadius
		for _, offset := range utils.ScanImageForCircles(vessel.Mask, int(radius)) {
			x := pos.X + float64(offset.X)
			y := pos.Y + float64(offset.Y)

			if vessel.TeaLeaves {
				entities.NewTeaLeaf(s.entityManager, x, y, radius, vessel.GravityScale)
			} else {
				p := entities.WaterParticleParams(s.cfg, x, y, vessel.Kind)
				p.GravityScale = vessel.GravityScale
				p.Lifetime = vessel.LifetimeSeconds
				p.Mass = vesselParticleMass
				entities.NewParticle(s.entityManager, p)
			}
			vessel.Spawned++
		}
		log.Printf("[VesselSystem] 容器 %d 生成了 %d 个%s", id, vessel.Spawned, vesselContentName(vessel))
	}
}

func vesselContentName(v *components.VesselComponent) string {
	if v.TeaLeaves {
		return "茶叶"
	}
	return "粒子"
}
