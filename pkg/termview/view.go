package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/game"
)

// hudRows 底部状态栏行数
const hudRows = 2

var (
	wallStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x90, 0x80, 0x70))
	sensorStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	satisfiedRune = '+'
	leafStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// partRunes 每种零件的字符；没有列出的零件不显示
var partRunes = map[string]rune{
	config.PartWall:         '█',
	config.PartConveyor:     '=',
	config.PartFluidFilter:  '▒',
	config.PartButton:       'o',
	config.PartHeatSource:   '^',
	config.PartTeaInfuser:   '%',
	config.PartRecipeSensor: '.',
	config.PartTeaCounter:   'u',
	config.PartFlowField:    '~',
	config.PartEmitter:      'E',
	config.PartBall:         'O',
}

// Render 把模拟画到屏幕上（不调用 Show）
func Render(screen tcell.Screen, sim *game.Simulation, margin float64) Viewport {
	screen.Clear()
	cols, rows := screen.Size()
	parts := sim.Parts()
	vp := Fit(PartBounds(parts, margin), cols, rows-hudRows)

	// 先画传感器类零件，实体墙覆盖在上面
	for _, pass := range []bool{true, false} {
		for _, p := range parts {
			if isArea(p.Type) == pass {
				drawPart(screen, vp, p)
			}
		}
	}
	for _, leaf := range sim.Leaves() {
		if col, row, ok := vp.Cell(leaf.X, leaf.Y); ok {
			screen.SetContent(col, row, '*', nil, leafStyle)
		}
	}
	for _, p := range sim.Particles() {
		if col, row, ok := vp.Cell(p.X, p.Y); ok {
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B)))
			screen.SetContent(col, row, '●', nil, style)
		}
	}

	drawText(screen, 0, rows-hudRows, StatusLine(sim), hudStyle)
	drawText(screen, 0, rows-1, "space pause  r restart  t physics  q quit", tcell.StyleDefault)
	return vp
}

// StatusLine 状态栏文字
func StatusLine(sim *game.Simulation) string {
	satisfied, total := 0, 0
	for _, s := range sim.Sensors() {
		total++
		if s.Satisfied {
			satisfied++
		}
	}
	line := fmt.Sprintf("%s  t=%.1fs  particles %d  cups %d  sensors %d/%d",
		sim.Level().Name, sim.Elapsed(), sim.ParticleCount(), sim.Cups(), satisfied, total)
	switch {
	case sim.Complete():
		line += "  COMPLETE"
	case sim.Paused():
		line += "  PAUSED"
	}
	return line
}

func isArea(partType string) bool {
	switch partType {
	case config.PartHeatSource, config.PartTeaInfuser, config.PartRecipeSensor,
		config.PartTeaCounter, config.PartFlowField, config.PartVessel:
		return true
	}
	return false
}

func drawPart(screen tcell.Screen, vp Viewport, p game.PartView) {
	ch, ok := partRunes[p.Type]
	if !ok {
		return
	}
	style := wallStyle
	if isArea(p.Type) {
		style = sensorStyle
	}
	if p.Type == config.PartRecipeSensor && p.Active {
		ch = satisfiedRune
		style = style.Foreground(tcell.ColorLime)
	}
	if p.Type == config.PartFluidFilter && !p.Active {
		ch = '░'
	}

	if p.Radius == 0 && p.HalfWidth == 0 && p.HalfHeight == 0 {
		if col, row, ok := vp.Cell(p.X, p.Y); ok {
			screen.SetContent(col, row, ch, nil, style)
		}
		return
	}

	// 只扫描零件包围盒覆盖的字符格
	r := p.Radius
	if r == 0 {
		r = math.Hypot(p.HalfWidth, p.HalfHeight)
	}
	c0, r1, _ := vp.Cell(p.X-r, p.Y-r)
	c1, r0, _ := vp.Cell(p.X+r, p.Y+r)
	for row := max(r0, 0); row <= min(r1, vp.Rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, vp.Cols-1); col++ {
			x, y := vp.Center(col, row)
			if covers(p, x, y, vp) {
				screen.SetContent(col, row, ch, nil, style)
			}
		}
	}
}

// covers 字符格中心是否在零件内；细零件放宽半个格子，避免画不出来
func covers(p game.PartView, x, y float64, vp Viewport) bool {
	dx, dy := x-p.X, y-p.Y
	if p.Radius > 0 {
		return math.Hypot(dx, dy) <= p.Radius+vp.CellW/2
	}
	c, s := math.Cos(-p.Rotation), math.Sin(-p.Rotation)
	lx, ly := dx*c-dy*s, dx*s+dy*c
	return math.Abs(lx) <= p.HalfWidth+vp.CellW/2 && math.Abs(ly) <= p.HalfHeight+vp.CellH/2
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	cols, _ := screen.Size()
	for _, r := range text {
		if x >= cols {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
