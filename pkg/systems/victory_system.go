package systems

import (
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// VictorySystem 每帧检查关卡是否完成
// 所有配方传感器必须在同一帧同时满足；满足状态本身没有滞回，所以这里要求持续满足 hold 秒
type VictorySystem struct {
	entityManager *ecs.EntityManager
	hold          float64

	satisfiedFor float64
	complete     bool
}

// NewVictorySystem 创建胜利判定系统；hold 为 0 时满足的那一帧即完成
func NewVictorySystem(em *ecs.EntityManager, hold float64) *VictorySystem {
	return &VictorySystem{entityManager: em, hold: hold}
}

// Update 返回本帧是否刚刚完成关卡
func (s *VictorySystem) Update(deltaTime float64) bool {
	if s.complete {
		return false
	}
	if !AllSensorsSatisfied(s.entityManager) {
		s.satisfiedFor = 0
		return false
	}
	s.satisfiedFor += deltaTime
	if s.satisfiedFor+1e-9 < s.hold {
		return false
	}
	s.complete = true
	return true
}

// Complete 关卡是否已完成
func (s *VictorySystem) Complete() bool {
	return s.complete
}

// Reset 重新开始判定
func (s *VictorySystem) Reset() {
	s.satisfiedFor = 0
	s.complete = false
}
