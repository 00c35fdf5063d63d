package sound

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func TestToneDuration(t *testing.T) {
	s := NewTone(440, 10*time.Millisecond, WaveSine, SampleRate)
	want := SampleRate.N(10 * time.Millisecond)

	buf := make([][2]float64, 1024)
	n, ok := s.Stream(buf)
	if !ok {
		t.Fatal("first Stream() returned ok=false")
	}
	if n != want {
		t.Errorf("Stream() n = %d, want %d", n, want)
	}
	if n, ok := s.Stream(buf); n != 0 || ok {
		t.Errorf("exhausted tone returned n=%d ok=%v", n, ok)
	}
}

func TestWaveRange(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveTriangle, WaveSquare} {
		s := NewTone(330, 50*time.Millisecond, wave, SampleRate)
		buf := make([][2]float64, 512)
		n, _ := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("wave %d sample %d out of range: %v", wave, i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("wave %d: channels differ at %d", wave, i)
			}
		}
	}
}

func TestEnvelopeAttackStartsSilent(t *testing.T) {
	tone := NewTone(440, 100*time.Millisecond, WaveSquare, SampleRate)
	s := NewEnvelope(tone, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, SampleRate)

	buf := make([][2]float64, SampleRate.N(100*time.Millisecond)+100)
	n, _ := s.Stream(buf)
	if n != SampleRate.N(100*time.Millisecond) {
		t.Fatalf("n = %d, want envelope length", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 during attack", buf[0][0])
	}
	mid := n / 2
	if math.Abs(buf[mid][0]) != 1 {
		t.Errorf("sustain sample = %v, want full amplitude", buf[mid][0])
	}
	if math.Abs(buf[n-1][0]) > 0.01 {
		t.Errorf("last sample = %v, want near 0 after release", buf[n-1][0])
	}
}

func TestCuesRenderAudibleSound(t *testing.T) {
	for _, cue := range Cues {
		t.Run(cue.String(), func(t *testing.T) {
			pcm := RenderCue(cue, 1)
			if len(pcm) == 0 || len(pcm)%4 != 0 {
				t.Fatalf("len(pcm) = %d, want non-empty multiple of 4", len(pcm))
			}
			if len(pcm) > SampleRate.N(2*time.Second)*4 {
				t.Errorf("cue longer than 2s: %d bytes", len(pcm))
			}
			peak := 0
			for i := 0; i+1 < len(pcm); i += 2 {
				v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
			if peak == 0 {
				t.Error("cue is silent at full volume")
			}
		})
	}
}

func TestMutedCueIsSilent(t *testing.T) {
	pcm := RenderCue(CueBrewChime, 0)
	if len(pcm) == 0 {
		t.Fatal("muted cue should still have a length")
	}
	for _, b := range pcm {
		if b != 0 {
			t.Fatal("muted cue produced non-zero samples")
		}
	}
}

func TestLevelCompleteIsArpeggio(t *testing.T) {
	step := SampleRate.N(120 * time.Millisecond)
	pcm := RenderCue(CueLevelComplete, 1)
	got, want := len(pcm)/4, 6*step
	if got < want-2 || got > want+2 {
		t.Errorf("frames = %d, want about %d (four notes)", got, want)
	}
}

func TestRenderPCMLimits(t *testing.T) {
	if RenderPCM(nil, 100) != nil {
		t.Error("nil streamer should render nothing")
	}
	s := NewTone(440, time.Second, WaveSine, SampleRate)
	if got := len(RenderPCM(s, 1000)); got != 4000 {
		t.Errorf("len = %d, want 4000", got)
	}
}

func TestToInt16Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{2, math.MaxInt16},
		{-3, -math.MaxInt16},
	}
	for _, tt := range tests {
		if got := toInt16(tt.in); got != tt.want {
			t.Errorf("toInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewBankHasEveryCue(t *testing.T) {
	bank := NewBank(0.5)
	for _, cue := range Cues {
		if len(bank[cue]) == 0 {
			t.Errorf("bank missing %s", cue)
		}
	}
}
