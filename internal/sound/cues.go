// Package sound 合成游戏音效
//
// 所有音效都由振荡器实时合成，不依赖音频文件；
// RenderPCM 把流渲染成 16 位小端立体声 PCM，供 ebiten 的 audio.Context 播放
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 合成和播放使用的采样率
const SampleRate beep.SampleRate = 48000

// Cue 音效类型
type Cue int

const (
	// CueBrewChime 配方传感器满足
	CueBrewChime Cue = iota
	// CueLevelComplete 关卡完成
	CueLevelComplete
	// CueCupDrop 计数器新增一杯
	CueCupDrop
)

// Cues 所有音效
var Cues = []Cue{CueBrewChime, CueLevelComplete, CueCupDrop}

func (c Cue) String() string {
	switch c {
	case CueBrewChime:
		return "brew_chime"
	case CueLevelComplete:
		return "level_complete"
	case CueCupDrop:
		return "cup_drop"
	}
	return "unknown"
}

// withVolume 线性音量；0 及以下静音（log2(0) 为 -Inf）
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return NewEnvelope(NewTone(freq, d, wave, SampleRate), d, 5*time.Millisecond, d/2, SampleRate)
}

// BrewChime 两个泛音叠加的"叮"
func BrewChime(volume float64) beep.Streamer {
	d := 400 * time.Millisecond
	mixed := beep.Mix(
		withVolume(note(1046.5, d, WaveSine), 0.6), // C6
		withVolume(note(2093.0, d, WaveSine), 0.25),
	)
	return withVolume(mixed, volume)
}

// LevelComplete 上行琶音 C5-E5-G5-C6
func LevelComplete(volume float64) beep.Streamer {
	step := 120 * time.Millisecond
	arpeggio := beep.Seq(
		note(523.25, step, WaveTriangle),
		note(659.25, step, WaveTriangle),
		note(783.99, step, WaveTriangle),
		note(1046.5, 3*step, WaveTriangle),
	)
	return withVolume(arpeggio, volume*0.8)
}

// CupDrop 低沉的短促音
func CupDrop(volume float64) beep.Streamer {
	d := 90 * time.Millisecond
	return withVolume(note(196, d, WaveSquare), volume*0.35)
}

// Streamer 按类型创建音效流
func Streamer(cue Cue, volume float64) beep.Streamer {
	switch cue {
	case CueBrewChime:
		return BrewChime(volume)
	case CueLevelComplete:
		return LevelComplete(volume)
	case CueCupDrop:
		return CupDrop(volume)
	}
	return nil
}
