package components

import "math"

// TimerMode 计时器模式
type TimerMode int

const (
	// TimerOnce 一次性计时器，到时后保持完成状态
	TimerOnce TimerMode = iota
	// TimerRepeating 重复计时器，到时后回绕继续计时
	TimerRepeating
)

// Timer 通用计时器
// 用于粒子寿命（一次性）和发射器的发射周期（重复）
type Timer struct {
	Duration float64 // 周期（秒）
	Elapsed  float64 // 当前周期内已过时间（秒）
	Mode     TimerMode

	finished      bool
	timesFinished int
}

// NewTimer 创建计时器
func NewTimer(duration float64, mode TimerMode) Timer {
	return Timer{Duration: duration, Mode: mode}
}

// Tick 推进计时器
// 重复计时器在一帧内跨过多个周期时，TimesFinishedThisTick 记录跨过的次数
func (t *Timer) Tick(dt float64) {
	t.timesFinished = 0

	if t.Mode == TimerOnce && t.finished {
		return
	}

	if t.Duration <= 0 {
		t.Elapsed = 0
		t.finished = true
		t.timesFinished = 1
		return
	}

	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		if t.Mode == TimerRepeating {
			t.finished = false
		}
		return
	}

	t.finished = true
	if t.Mode == TimerRepeating {
		t.timesFinished = int(math.Floor(t.Elapsed / t.Duration))
		t.Elapsed = math.Mod(t.Elapsed, t.Duration)
		return
	}
	t.timesFinished = 1
	t.Elapsed = t.Duration
}

// Finished 一次性计时器：已到时；重复计时器：本帧跨过了周期
func (t *Timer) Finished() bool { return t.finished }

// JustFinished 本帧刚刚到时
func (t *Timer) JustFinished() bool { return t.timesFinished > 0 }

// TimesFinishedThisTick 本帧跨过的周期数
func (t *Timer) TimesFinishedThisTick() int { return t.timesFinished }

// Remaining 距离下次到时的剩余时间
func (t *Timer) Remaining() float64 { return math.Max(0, t.Duration-t.Elapsed) }

// Reset 清零
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.timesFinished = 0
}
