// Package render 把模拟的快照画到 ebiten 屏幕上
package render

import "github.com/hajimehoshi/ebiten/v2"

// Camera 世界坐标（Y 轴向上）和屏幕坐标（Y 轴向下）之间的转换
type Camera struct {
	ScreenWidth  float64
	ScreenHeight float64
	// 屏幕中心对应的世界坐标
	CenterX, CenterY float64
	// 每个世界单位的像素数
	Scale float64
}

// NewCamera 创建以 (centerX, centerY) 为中心、缩放为 1 的相机
func NewCamera(screenWidth, screenHeight int, centerX, centerY float64) Camera {
	return Camera{
		ScreenWidth:  float64(screenWidth),
		ScreenHeight: float64(screenHeight),
		CenterX:      centerX,
		CenterY:      centerY,
		Scale:        1,
	}
}

// GeoM 世界 → 屏幕的仿射变换：平移到相机中心，按 Scale 缩放并翻转 Y 轴，再移到屏幕中心
func (c Camera) GeoM() ebiten.GeoM {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	var g ebiten.GeoM
	g.Translate(-c.CenterX, -c.CenterY)
	g.Scale(scale, -scale)
	g.Translate(c.ScreenWidth/2, c.ScreenHeight/2)
	return g
}

// WorldToScreen 世界坐标 → 屏幕坐标
func (c Camera) WorldToScreen(x, y float64) (float64, float64) {
	g := c.GeoM()
	return g.Apply(x, y)
}

// ScreenToWorld 屏幕坐标 → 世界坐标
func (c Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	g := c.GeoM()
	g.Invert()
	return g.Apply(sx, sy)
}
