package components

import "image"

// FlowTargets 流场作用的刚体类别（位掩码）
type FlowTargets uint8

const (
	FlowParticles FlowTargets = 1 << iota
	FlowBalls

	FlowAll = FlowParticles | FlowBalls
)

// Has 检查类别是否在过滤集合中
func (t FlowTargets) Has(other FlowTargets) bool { return t&other != 0 }

// FlowFieldComponent 流场
// Texture 的 RGB 编码方向，A 编码强度；多个旋转帧沿竖直方向堆叠，
// 共 Rows 帧，RotationIndex 选择其中一帧
type FlowFieldComponent struct {
	Texture       image.Image
	Rows          int
	RotationIndex int
	Targets       FlowTargets
}
