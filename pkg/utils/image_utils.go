// Package utils 图像、遮罩和插值等通用工具函数
package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"math"
)

// LoadPNG 从文件系统（通常是嵌入的 data 目录）解码一张 PNG
func LoadPNG(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG %s: %w", path, err)
	}
	return img, nil
}

// UniformFlowTexture 生成一个均匀方向的流场纹理
// 方向 (dirX, dirY) 为世界坐标方向（Y 轴向上），会被归一化后写入 R/G 通道：
// 通道值 = 0.5 + 分量/2；strength (0-1) 写入 alpha。
// rows 个旋转帧沿竖直方向堆叠，第 i 帧的方向逆时针旋转 i*360/rows 度
func UniformFlowTexture(w, h, rows int, dirX, dirY, strength float64) *image.NRGBA {
	if rows < 1 {
		rows = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h*rows))

	length := math.Hypot(dirX, dirY)
	if length > 0 {
		dirX, dirY = dirX/length, dirY/length
	}
	a := unitToByte(strength)

	for row := 0; row < rows; row++ {
		angle := 2 * math.Pi * float64(row) / float64(rows)
		c, s := math.Cos(angle), math.Sin(angle)
		rx := snapZero(dirX*c - dirY*s)
		ry := snapZero(dirX*s + dirY*c)

		px := color.NRGBA{
			R: unitToByte(0.5 + rx/2),
			G: unitToByte(0.5 + ry/2),
			B: 128,
			A: a,
		}
		for y := row * h; y < (row+1)*h; y++ {
			for x := 0; x < w; x++ {
				img.SetNRGBA(x, y, px)
			}
		}
	}
	return img
}

// RectMask 生成 w*h 的全不透明遮罩
func RectMask(w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

// CircleMask 生成直径 2r 的圆形遮罩
func CircleMask(r int) *image.Alpha {
	d := 2 * r
	img := image.NewAlpha(image.Rect(0, 0, d, d))
	rr := float64(r) * float64(r)
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx := float64(x) + 0.5 - float64(r)
			dy := float64(y) + 0.5 - float64(r)
			if dx*dx+dy*dy <= rr {
				img.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return img
}

// snapZero 消除 sin/cos 的舍入误差，避免 0.5 附近的通道值取整偏向一侧
func snapZero(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(Clamp(v, 0, 1) * 255))
}
