package components

// ParticleComponent 流体粒子
// 持有一份 ParticleContents 和一个一次性寿命计时器；计时器到时后由清理扫描删除
//
// 位置和速度分别在 PositionComponent 和 BodyComponent 中
type ParticleComponent struct {
	Contents ParticleContents
	Lifetime Timer
}

// NewParticleComponent 创建粒子组件，lifetime 为寿命（秒）
func NewParticleComponent(contents ParticleContents, lifetime float64) *ParticleComponent {
	return &ParticleComponent{
		Contents: contents,
		Lifetime: NewTimer(lifetime, TimerOnce),
	}
}
