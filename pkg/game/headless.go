package game

// RunResult 无界面运行的结果
type RunResult struct {
	Ticks       int
	Complete    bool
	CompletedAt int // 完成所在帧，未完成为 0
	Cups        int
	Particles   int
	Events      []Event
}

// RunFor 连续推进 ticks 步；stopOnComplete 为 true 时关卡完成后立即停止
func RunFor(sim *Simulation, ticks int, dt float64, stopOnComplete bool) RunResult {
	var res RunResult
	for i := 0; i < ticks; i++ {
		sim.Step(dt)
		for _, e := range sim.Events() {
			res.Events = append(res.Events, e)
			if e.Type == EventLevelComplete && res.CompletedAt == 0 {
				res.CompletedAt = e.Tick
			}
		}
		if stopOnComplete && sim.Complete() {
			break
		}
	}
	res.Ticks = sim.Tick()
	res.Complete = sim.Complete()
	res.Cups = sim.Cups()
	res.Particles = sim.ParticleCount()
	return res
}
