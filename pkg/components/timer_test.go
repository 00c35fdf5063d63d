package components

import "testing"

func TestTimerOnce(t *testing.T) {
	timer := NewTimer(1, TimerOnce)

	timer.Tick(0.6)
	if timer.Finished() || timer.JustFinished() {
		t.Fatal("timer finished too early")
	}

	timer.Tick(0.6)
	if !timer.Finished() || !timer.JustFinished() {
		t.Fatal("timer should have just finished")
	}
	if timer.Elapsed != 1 {
		t.Errorf("Elapsed = %v, want clamped to duration", timer.Elapsed)
	}

	timer.Tick(0.6)
	if !timer.Finished() {
		t.Error("one-shot timer must stay finished")
	}
	if timer.JustFinished() {
		t.Error("one-shot timer must only just-finish once")
	}

	timer.Reset()
	if timer.Finished() || timer.Elapsed != 0 {
		t.Error("Reset() should clear state")
	}
}

func TestTimerRepeating(t *testing.T) {
	tests := []struct {
		name        string
		duration    float64
		ticks       []float64
		wantTimes   int
		wantElapsed float64
	}{
		{"not yet", 0.5, []float64{0.2, 0.2}, 0, 0.4},
		{"one wrap", 0.5, []float64{0.25, 0.5}, 1, 0.25},
		{"multiple wraps in one tick", 0.1, []float64{0.35}, 3, 0.05},
		{"zero duration fires every tick", 0, []float64{0.016}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewTimer(tt.duration, TimerRepeating)
			for _, dt := range tt.ticks {
				timer.Tick(dt)
			}
			if got := timer.TimesFinishedThisTick(); got != tt.wantTimes {
				t.Errorf("TimesFinishedThisTick() = %d, want %d", got, tt.wantTimes)
			}
			if got := timer.JustFinished(); got != (tt.wantTimes > 0) {
				t.Errorf("JustFinished() = %v", got)
			}
			if d := timer.Elapsed - tt.wantElapsed; d > 1e-9 || d < -1e-9 {
				t.Errorf("Elapsed = %v, want %v", timer.Elapsed, tt.wantElapsed)
			}
		})
	}
}

func TestTimerRepeatingClearsFinishedNextTick(t *testing.T) {
	timer := NewTimer(0.5, TimerRepeating)
	timer.Tick(0.5)
	if !timer.Finished() {
		t.Fatal("expected finished on wrap")
	}
	timer.Tick(0.1)
	if timer.Finished() || timer.JustFinished() {
		t.Error("repeating timer should not stay finished")
	}
}
