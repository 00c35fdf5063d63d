package components

// DisplayColorComponent 显示颜色，由 RecolorSystem 根据粒子内容计算
type DisplayColorComponent struct {
	R, G, B, A uint8
}

// MachinePartComponent 玩家放置或关卡自带的机器零件
type MachinePartComponent struct {
	Type string
	Cost int

	// Fixed 关卡自带的零件不能被移除
	Fixed bool
}
