package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/game"
	"github.com/olekspickle/chai-reaction/pkg/utils"
)

// sensorPulsePeriod 满足的配方传感器闪烁周期（秒）
const sensorPulsePeriod = 1.2

// Renderer 绘制零件、茶叶和粒子
type Renderer struct {
	camera Camera
	pixel  *ebiten.Image // 1x1 白色像素，缩放旋转后画矩形
}

// NewRenderer 创建渲染器
func NewRenderer(camera Camera) *Renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{camera: camera, pixel: pixel}
}

// Camera 当前相机
func (r *Renderer) Camera() Camera {
	return r.camera
}

// Draw 绘制一帧：背景 → 零件 → 茶叶 → 粒子
func (r *Renderer) Draw(screen *ebiten.Image, sim *game.Simulation) {
	screen.Fill(backgroundColor)

	glow := utils.Pulse(sim.Elapsed(), sensorPulsePeriod)
	for _, part := range sim.Parts() {
		r.drawPart(screen, part, glow)
	}
	for _, leaf := range sim.Leaves() {
		r.drawCircle(screen, leaf.X, leaf.Y, leaf.Radius, leafColor)
	}
	for _, p := range sim.Particles() {
		r.drawCircle(screen, p.X, p.Y, p.Radius, p.Color)
	}
}

func (r *Renderer) drawPart(screen *ebiten.Image, part game.PartView, glow float64) {
	clr := PartColor(part.Type, part.Active)
	if part.Color.A != 0 {
		clr = part.Color
	}
	if part.Active && part.Type == config.PartRecipeSensor {
		clr = PulseAlpha(clr, glow)
	}
	if part.Radius > 0 {
		r.drawCircle(screen, part.X, part.Y, part.Radius, clr)
		return
	}
	if part.HalfWidth > 0 && part.HalfHeight > 0 {
		r.drawBox(screen, part.X, part.Y, part.HalfWidth, part.HalfHeight, part.Rotation, clr)
		return
	}
	// 发射器没有碰撞体，画一个小标记
	r.drawCircle(screen, part.X, part.Y, 3, clr)
}

func (r *Renderer) drawCircle(screen *ebiten.Image, x, y, radius float64, clr color.Color) {
	sx, sy := r.camera.WorldToScreen(x, y)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius*r.camera.Scale), clr, true)
}

// drawBox 旋转矩形；世界坐标逆时针旋转在屏幕上是顺时针
func (r *Renderer) drawBox(screen *ebiten.Image, x, y, hw, hh, rotation float64, clr color.Color) {
	scale := r.camera.Scale
	sx, sy := r.camera.WorldToScreen(x, y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(2*hw*scale, 2*hh*scale)
	op.GeoM.Rotate(-rotation)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(r.pixel, op)
}
