package app

import (
	"strings"
	"testing"

	"github.com/olekspickle/chai-reaction/internal/sound"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/game"
)

func TestFixedStepper(t *testing.T) {
	tests := []struct {
		name   string
		frames []float64
		want   []int
	}{
		{"one step per frame", []float64{1.0 / 60, 1.0 / 60}, []int{1, 1}},
		{"slow frames accumulate", []float64{1.0 / 120, 1.0 / 120, 1.0 / 120}, []int{0, 1, 0}},
		{"long frame is capped", []float64{1}, []int{5}},
		{"backlog dropped after cap", []float64{1, 1.0 / 60}, []int{5, 1}},
		{"zero frame", []float64{0}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FixedStepper{Step: 1.0 / 60, MaxSteps: 5}
			for i, frame := range tt.frames {
				if got := c.Advance(frame); got != tt.want[i] {
					t.Errorf("frame %d: Advance(%v) = %d, want %d", i, frame, got, tt.want[i])
				}
			}
		})
	}
}

func TestFixedStepperSixtyFrames(t *testing.T) {
	c := FixedStepper{Step: 1.0 / 60, MaxSteps: 5}
	total := 0
	for i := 0; i < 60; i++ {
		total += c.Advance(1.0 / 60)
	}
	if total != 60 {
		t.Errorf("steps over one second = %d, want 60", total)
	}
}

func TestPlacedPartAt(t *testing.T) {
	parts := []game.PartView{
		{ID: 1, X: 0, Y: 0, HalfWidth: 50, HalfHeight: 5, Fixed: true},
		{ID: 2, X: 0, Y: 0, HalfWidth: 10, HalfHeight: 2},
		{ID: 3, X: 100, Y: 0, Radius: 6},
		{ID: 4, X: 0, Y: 0, HalfWidth: 20, HalfHeight: 1, Rotation: 1.5707963267948966},
	}
	tests := []struct {
		name   string
		x, y   float64
		want   ecs.EntityID
		wantOK bool
	}{
		{"topmost placed part wins", 0, 0, 4, true},
		{"fixed parts are ignored", 40, 0, 0, false},
		{"rotated box", 0, 15, 4, true},
		{"unrotated box edge", 9, 0, 2, true},
		{"ball", 104, 0, 3, true},
		{"empty space", 300, 300, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlacedPartAt(parts, tt.x, tt.y)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PlacedPartAt(%v, %v) = %d, %v, want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCueForEvent(t *testing.T) {
	tests := []struct {
		event game.EventType
		want  sound.Cue
	}{
		{game.EventSensorSatisfied, sound.CueBrewChime},
		{game.EventLevelComplete, sound.CueLevelComplete},
		{game.EventCupBrewed, sound.CueCupDrop},
	}
	for _, tt := range tests {
		got, ok := CueForEvent(tt.event)
		if !ok || got != tt.want {
			t.Errorf("CueForEvent(%v) = %v, %v, want %v", tt.event, got, ok, tt.want)
		}
	}
	if _, ok := CueForEvent(game.EventType(99)); ok {
		t.Error("unknown events have no cue")
	}
}

func TestHUDLines(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.MachineParts[config.PartWall] = config.MachinePartConfig{Cost: 25}
	level := &config.LevelConfig{
		ID:               "hud",
		Name:             "HUD Level",
		InitialZenPoints: 300,
		Parts: []config.PartConfig{
			{Type: config.PartRecipeSensor, Width: 10, Height: 10, Recipe: &config.RecipeConfig{}},
		},
	}
	sim, err := game.NewSimulation(cfg, level, nil, 1)
	if err != nil {
		t.Fatalf("NewSimulation() error: %v", err)
	}
	sim.SetPaused(true)

	lines := HUDLines(game.NewGameState(sim), 4)
	text := strings.Join(lines, "\n")
	for _, want := range []string{"HUD Level", "zen 300", ">5 wall(25)", "sensor", "waiting", "PAUSED"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD missing %q:\n%s", want, text)
		}
	}
}

func TestPointerResolveTouch(t *testing.T) {
	tests := []struct {
		name   string
		input  pointerInput
		onPart bool
		want   pointerAction
	}{
		{"mouse place on part", pointerInput{Action: pointerPlace}, true, pointerPlace},
		{"tap on empty space", pointerInput{Action: pointerPlace, Touch: true}, false, pointerPlace},
		{"tap on placed part", pointerInput{Action: pointerPlace, Touch: true}, true, pointerRemove},
		{"right click", pointerInput{Action: pointerRemove}, true, pointerRemove},
		{"nothing", pointerInput{}, true, pointerNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.resolveTouch(tt.onPart); got != tt.want {
				t.Errorf("resolveTouch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHelpLine(t *testing.T) {
	if !strings.Contains(helpLine(false), "RMB remove") {
		t.Error("desktop help should mention the right mouse button")
	}
	if strings.Contains(helpLine(true), "RMB") {
		t.Error("touch help should not mention mouse buttons")
	}
}
