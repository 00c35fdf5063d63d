package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// RecipeSystem 配方传感器判定
//
// 每帧对每个传感器：累加当前接触的所有粒子内容并计数；
// 样本数少于 minSamples 时不满足；否则取平均值，
// 满足条件为 avg.IsTea() && avg.IsMilky()==Milky && avg.IsSweet()==Sweet。
// 没有滞回，一帧样本不足就立即清除满足状态
type RecipeSystem struct {
	entityManager *ecs.EntityManager
	contacts      ContactSource
	minSamples    int
}

// NewRecipeSystem 创建配方判定系统
func NewRecipeSystem(em *ecs.EntityManager, contacts ContactSource, minSamples int) *RecipeSystem {
	return &RecipeSystem{
		entityManager: em,
		contacts:      contacts,
		minSamples:    minSamples,
	}
}

// Update 重新计算所有传感器，返回本帧从不满足变为满足的传感器
func (s *RecipeSystem) Update(deltaTime float64) []ecs.EntityID {
	index := s.contacts.Contacts()
	var newlySatisfied []ecs.EntityID

	for _, id := range ecs.GetEntitiesWith1[*components.TeaSensorComponent](s.entityManager) {
		sensor, _ := ecs.GetComponent[*components.TeaSensorComponent](s.entityManager, id)

		var total components.ParticleContents
		count := 0
		touchingParticles(s.entityManager, index, id, func(_ ecs.EntityID, p *components.ParticleComponent) {
			total = total.Add(p.Contents)
			count++
		})

		was := sensor.Satisfied
		sensor.SampleCount = count
		sensor.Average = components.ParticleContents{}
		if count > 0 {
			sensor.Average = total.Div(float64(count))
		}
		sensor.Satisfied = count >= s.minSamples && recipeMatches(sensor.Recipe, sensor.Average)

		if sensor.Satisfied && !was {
			newlySatisfied = append(newlySatisfied, id)
		}
	}
	return newlySatisfied
}

func recipeMatches(r components.Recipe, avg components.ParticleContents) bool {
	return avg.IsTea() && avg.IsMilky() == r.Milky && avg.IsSweet() == r.Sweet
}

// AllSensorsSatisfied 关卡中至少有一个配方传感器，且全部满足
func AllSensorsSatisfied(em *ecs.EntityManager) bool {
	sensors := ecs.GetEntitiesWith1[*components.TeaSensorComponent](em)
	if len(sensors) == 0 {
		return false
	}
	for _, id := range sensors {
		sensor, _ := ecs.GetComponent[*components.TeaSensorComponent](em, id)
		if !sensor.Satisfied {
			return false
		}
	}
	return true
}
