package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
)

const renderChunk = 512

// RenderPCM 把流渲染为 16 位有符号小端立体声 PCM
// 最多渲染 maxSamples 帧，流提前结束时返回已渲染的部分
func RenderPCM(s beep.Streamer, maxSamples int) []byte {
	if s == nil || maxSamples <= 0 {
		return nil
	}
	out := make([]byte, 0, maxSamples*4)
	buf := make([][2]float64, renderChunk)

	for rendered := 0; rendered < maxSamples; {
		chunk := buf
		if left := maxSamples - rendered; left < len(chunk) {
			chunk = chunk[:left]
		}
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(chunk[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(chunk[i][1])))
		}
		rendered += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// RenderCue 渲染一个音效，最长 2 秒
func RenderCue(cue Cue, volume float64) []byte {
	return RenderPCM(Streamer(cue, volume), SampleRate.N(2*time.Second))
}

// Bank 预先渲染好的音效
type Bank map[Cue][]byte

// NewBank 按音量渲染全部音效
func NewBank(volume float64) Bank {
	bank := make(Bank, len(Cues))
	for _, cue := range Cues {
		bank[cue] = RenderCue(cue, volume)
	}
	return bank
}
