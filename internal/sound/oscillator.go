package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
	WaveSquare
)

// oscillator 生成固定时长的单音
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone 创建一个单音流
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 线性起音和释音
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope 给流加上包络；total 之后的采样被截断
func NewEnvelope(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
