package utils

import "math"

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 把 v 限制到 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Pulse 周期为 period 秒的 0→1→0 脉冲，用于高亮闪烁
func Pulse(t, period float64) float64 {
	if period <= 0 {
		return 0
	}
	phase := math.Mod(t, period) / period
	if phase < 0.5 {
		return EaseOutCubic(phase * 2)
	}
	return EaseOutCubic((1 - phase) * 2)
}
