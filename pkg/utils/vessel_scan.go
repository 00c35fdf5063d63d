package utils

import "image"

// Point 整数像素偏移
type Point struct {
	X, Y int
}

// ScanImageForCircles 在遮罩图上寻找互不重叠的半径为 radius 的圆
//
// 按行扫描每个候选圆心：圆内（dx, dy ∈ [-r, r) 且 dx²+dy² <= r²）的像素
// 都不透明且未被占用时接受该圆，并占用这些像素。
// 返回相对图像中心的偏移（世界坐标，Y 轴向上）
func ScanImageForCircles(img image.Image, radius int) []Point {
	if img == nil || radius <= 0 {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	free := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			free[y*w+x] = a != 0
		}
	}

	rr := radius * radius
	var spawns []Point
	claimed := make([]int, 0, 4*rr)

	for y := radius; y < h; y++ {
		for x := radius; x < w; x++ {
			claimed = claimed[:0]
			ok := true
		disc:
			for dx := -radius; dx < radius; dx++ {
				for dy := -radius; dy < radius; dy++ {
					if dx*dx+dy*dy > rr {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h || !free[ny*w+nx] {
						ok = false
						break disc
					}
					claimed = append(claimed, ny*w+nx)
				}
			}
			if !ok {
				continue
			}
			for _, idx := range claimed {
				free[idx] = false
			}
			spawns = append(spawns, Point{X: x - w/2, Y: h/2 - y})
		}
	}
	return spawns
}
