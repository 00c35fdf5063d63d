// Package termview 在终端中用字符画显示模拟
package termview

import (
	"math"

	"github.com/olekspickle/chai-reaction/pkg/game"
)

// 终端字符大约是 1:2 的宽高比
const cellAspect = 2.0

// Viewport 把世界矩形映射到 cols x rows 个字符格
type Viewport struct {
	MinX, MinY float64
	CellW      float64 // 每个字符格的世界宽度
	CellH      float64
	Cols, Rows int
}

// Bounds 世界坐标矩形
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// PartBounds 包含所有零件的最小矩形，外扩 margin
func PartBounds(parts []game.PartView, margin float64) Bounds {
	if len(parts) == 0 {
		return Bounds{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100}
	}
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range parts {
		r := p.Radius
		if r == 0 {
			r = math.Hypot(p.HalfWidth, p.HalfHeight)
		}
		b.MinX = math.Min(b.MinX, p.X-r)
		b.MaxX = math.Max(b.MaxX, p.X+r)
		b.MinY = math.Min(b.MinY, p.Y-r)
		b.MaxY = math.Max(b.MaxY, p.Y+r)
	}
	b.MinX -= margin
	b.MinY -= margin
	b.MaxX += margin
	b.MaxY += margin
	return b
}

// Fit 让 bounds 完整放进 cols x rows，保持字符宽高比
func Fit(b Bounds, cols, rows int) Viewport {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	w := math.Max(b.MaxX-b.MinX, 1)
	h := math.Max(b.MaxY-b.MinY, 1)

	cellW := math.Max(w/float64(cols), h/float64(rows)/cellAspect)
	cellH := cellW * cellAspect

	// 居中
	cx, cy := (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2
	return Viewport{
		MinX:  cx - cellW*float64(cols)/2,
		MinY:  cy - cellH*float64(rows)/2,
		CellW: cellW,
		CellH: cellH,
		Cols:  cols,
		Rows:  rows,
	}
}

// Cell 世界坐标所在的字符格；ok 为 false 表示在视口外。第 0 行在最上面
func (v Viewport) Cell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor((x - v.MinX) / v.CellW))
	row = v.Rows - 1 - int(math.Floor((y-v.MinY)/v.CellH))
	ok = col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
	return col, row, ok
}

// Center 字符格中心的世界坐标
func (v Viewport) Center(col, row int) (x, y float64) {
	x = v.MinX + (float64(col)+0.5)*v.CellW
	y = v.MinY + (float64(v.Rows-1-row)+0.5)*v.CellH
	return x, y
}
