package physics

import "github.com/jakecoffman/cp"

// Layer 碰撞层位
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerFluid
	LayerTeaLeaves
	LayerBall
	LayerSensor
)

// LayerAll 匹配所有层
const LayerAll Layer = 0xFFFFFFFF

// Layers 刚体所属的层（Memberships）和它愿意碰撞的层（Filters）
type Layers struct {
	Memberships Layer
	Filters     Layer
}

// DefaultLayers 属于默认层，与所有层碰撞
var DefaultLayers = Layers{Memberships: LayerDefault, Filters: LayerAll}

// NewLayers 由所属层和一组过滤层构造 Layers
func NewLayers(member Layer, filters ...Layer) Layers {
	var f Layer
	for _, l := range filters {
		f |= l
	}
	return Layers{Memberships: member, Filters: f}
}

// Interacts 两个刚体能否产生接触，双方都必须接受对方
func (l Layers) Interacts(other Layers) bool {
	return l.Memberships&other.Filters != 0 && other.Memberships&l.Filters != 0
}

// Filter 转换为 cp 的形状过滤器
// cp 拒绝碰撞的条件与 Interacts 相同：任一方的 Categories 不在对方 Mask 里
func (l Layers) Filter() cp.ShapeFilter {
	return cp.ShapeFilter{
		Categories: uint(l.Memberships),
		Mask:       uint(l.Filters),
	}
}

// ParseLayer 关卡文件中的层名 → 层位，未知名字返回 ok=false
func ParseLayer(name string) (Layer, bool) {
	switch name {
	case "default":
		return LayerDefault, true
	case "fluid":
		return LayerFluid, true
	case "tea_leaves":
		return LayerTeaLeaves, true
	case "ball":
		return LayerBall, true
	case "sensor":
		return LayerSensor, true
	case "all":
		return LayerAll, true
	}
	return 0, false
}
