package app

// FixedStepper 把渲染帧时间换算为固定步长的模拟步数
// 单帧最多推进 MaxSteps 步，多余的积压直接丢弃，避免卡顿后追帧
type FixedStepper struct {
	Step     float64
	MaxSteps int

	accumulator float64
}

// Advance 累加一帧时间，返回本帧需要推进的步数
func (c *FixedStepper) Advance(frame float64) int {
	if c.Step <= 0 || frame <= 0 {
		return 0
	}
	c.accumulator += frame

	steps := 0
	// 1e-9 容差：60 帧 * (1/60) 不能因为舍入少走一步
	for c.accumulator+1e-9 >= c.Step {
		c.accumulator -= c.Step
		steps++
		if c.MaxSteps > 0 && steps >= c.MaxSteps {
			c.accumulator = 0
			break
		}
	}
	if c.accumulator < 0 {
		c.accumulator = 0
	}
	return steps
}

// Reset 清空积压
func (c *FixedStepper) Reset() {
	c.accumulator = 0
}
