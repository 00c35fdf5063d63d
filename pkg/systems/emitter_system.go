package systems

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/entities"
)

// spawnCountEpsilon 吸收 rate*period 的浮点误差（如 10*0.3 = 2.9999999999999996）
const spawnCountEpsilon = 1e-9

// EmitterSystem 粒子发射系统
// 每个发射器的重复计时器到时后发射一批粒子，总数受 max_particles 限制
type EmitterSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	rng           *rand.Rand
}

// NewEmitterSystem 创建发射系统
// rng 决定速度和角度的随机分布，传入固定种子可以得到可复现的模拟
func NewEmitterSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand) *EmitterSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &EmitterSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
	}
}

// Update 推进所有发射器
func (s *EmitterSystem) Update(deltaTime float64) {
	// 存活粒子数在本轮开始时按查询重新计算，发射过程中累加
	alive := ecs.CountWith1[*components.ParticleComponent](s.entityManager)
	maxParticles := s.cfg.Physics.Water.MaxParticles

	emitters := ecs.GetEntitiesWith2[*components.EmitterComponent, *components.PositionComponent](s.entityManager)
	for _, id := range emitters {
		emitter, _ := ecs.GetComponent[*components.EmitterComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if !emitter.Active {
			continue
		}

		emitter.SpawnTimer.Tick(deltaTime)
		if !emitter.SpawnTimer.JustFinished() {
			continue
		}

		count := governSpawnCount(spawnCountForPeriod(emitter.SpawnRate, emitter.SpawnTimer.Duration), alive, maxParticles)
		for i := 0; i < count; i++ {
			s.spawn(emitter, pos)
		}
		alive += count
		emitter.TotalLaunched += count
	}
}

func (s *EmitterSystem) spawn(emitter *components.EmitterComponent, pos *components.PositionComponent) ecs.EntityID {
	speed := uniform(s.rng, emitter.SpeedMin, emitter.SpeedMax)
	angle := uniform(s.rng, emitter.AngleMinDeg, emitter.AngleMaxDeg) * math.Pi / 180

	p := entities.WaterParticleParams(s.cfg, pos.X, pos.Y, emitter.Kind)
	v := cp.ForAngle(angle).Mult(speed)
	p.VX, p.VY = v.X, v.Y
	p.GravityScale = emitter.GravityScale
	p.Lifetime = emitter.LifetimeSeconds
	p.Layers = emitter.Layers

	return entities.NewParticle(s.entityManager, p)
}

// spawnCountForPeriod 一次触发发射的数量 floor(max(1, rate*period))
// period 是计时器配置的周期而不是本帧的 dt
func spawnCountForPeriod(rate, period float64) int {
	return int(math.Floor(math.Max(1, rate*period) + spawnCountEpsilon))
}

// governSpawnCount 把发射数量限制在 max-alive 之内
func governSpawnCount(computed, alive, max int) int {
	if alive >= max {
		return 0
	}
	if alive+computed > max {
		return max - alive
	}
	return computed
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
