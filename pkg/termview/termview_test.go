package termview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/game"
)

func TestFitKeepsBoundsVisible(t *testing.T) {
	b := Bounds{MinX: -100, MinY: -50, MaxX: 100, MaxY: 50}
	vp := Fit(b, 40, 20)

	corners := [][2]float64{{-100, -50}, {99, 49}, {-100, 49}, {99, -50}, {0, 0}}
	for _, c := range corners {
		if _, _, ok := vp.Cell(c[0], c[1]); !ok {
			t.Errorf("(%v, %v) is outside the viewport %+v", c[0], c[1], vp)
		}
	}
	if vp.CellH != vp.CellW*cellAspect {
		t.Errorf("cell aspect = %v, want %v", vp.CellH/vp.CellW, cellAspect)
	}
}

func TestCellOrientation(t *testing.T) {
	vp := Viewport{MinX: 0, MinY: 0, CellW: 1, CellH: 2, Cols: 10, Rows: 5}
	tests := []struct {
		name     string
		x, y     float64
		col, row int
		ok       bool
	}{
		{"bottom left", 0.5, 0.5, 0, 4, true},
		{"top right", 9.5, 9.5, 9, 0, true},
		{"above", 5, 10.5, 5, -1, false},
		{"left", -0.5, 1, -1, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := vp.Cell(tt.x, tt.y)
			if col != tt.col || row != tt.row || ok != tt.ok {
				t.Errorf("Cell(%v, %v) = %d, %d, %v, want %d, %d, %v", tt.x, tt.y, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}

	x, y := vp.Center(0, 4)
	if x != 0.5 || y != 1 {
		t.Errorf("Center(0, 4) = (%v, %v), want (0.5, 1)", x, y)
	}
}

func TestPartBounds(t *testing.T) {
	parts := []game.PartView{
		{X: 0, Y: 0, Radius: 5},
		{X: 100, Y: 20, HalfWidth: 3, HalfHeight: 4},
	}
	b := PartBounds(parts, 1)
	want := Bounds{MinX: -6, MinY: -6, MaxX: 106, MaxY: 26}
	if b != want {
		t.Errorf("PartBounds() = %+v, want %+v", b, want)
	}
}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func screenText(screen tcell.SimulationScreen) string {
	cols, rows := screen.Size()
	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestRenderDrawsPartsAndParticles(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Kinds["hot_tea"] = components.ParticleContents{Heat: 1, Tea: 1}
	gravity := 0.0
	level := &config.LevelConfig{
		ID:      "term",
		Name:    "Terminal",
		Gravity: &gravity,
		Parts: []config.PartConfig{
			{Type: config.PartWall, X: 0, Y: -20, Width: 100, Height: 6},
			{Type: config.PartVessel, X: 0, Y: 10, Width: 8, Height: 8,
				Vessel: &config.VesselConfig{Kind: "hot_tea", Shape: "rect", Lifetime: 30}},
		},
	}
	sim, err := game.NewSimulation(cfg, level, nil, 1)
	if err != nil {
		t.Fatalf("NewSimulation() error: %v", err)
	}

	screen := newScreen(t, 60, 24)
	runner := NewRunner(screen, game.NewGameState(sim), 1.0/60)
	var got []game.Event
	runner.OnEvents = func(events []game.Event) { got = append(got, events...) }
	runner.Tick()

	text := screenText(screen)
	if !strings.ContainsRune(text, '█') {
		t.Errorf("wall not drawn:\n%s", text)
	}
	if !strings.ContainsRune(text, '●') {
		t.Errorf("particle not drawn:\n%s", text)
	}
	if !strings.Contains(text, "Terminal") || !strings.Contains(text, "particles 1") {
		t.Errorf("status line missing:\n%s", text)
	}
	if len(got) != 0 {
		t.Errorf("unexpected events %v", got)
	}
}

func TestStatusLine(t *testing.T) {
	sim, err := game.NewSimulation(config.DefaultGameConfig(), &config.LevelConfig{ID: "s", Name: "Status"}, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	sim.SetPaused(true)
	line := StatusLine(sim)
	for _, want := range []string{"Status", "sensors 0/0", "PAUSED"} {
		if !strings.Contains(line, want) {
			t.Errorf("StatusLine() = %q, missing %q", line, want)
		}
	}
}
