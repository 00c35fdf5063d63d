package components

// 判定阈值：通道值严格大于 0.5 才算"是茶/加奶/加糖"
const contentsThreshold = 0.5

// ParticleContents 粒子携带的流体状态
// 四个独立通道，语义上都在 [0,1] 之间；Heat 默认接近 1.0（由发射器配置决定）
type ParticleContents struct {
	Heat  float64 `yaml:"heat"`
	Tea   float64 `yaml:"tea"`
	Sugar float64 `yaml:"sugar"`
	Milk  float64 `yaml:"milk"`
}

// Add 按通道相加
func (c ParticleContents) Add(o ParticleContents) ParticleContents {
	return ParticleContents{
		Heat:  c.Heat + o.Heat,
		Tea:   c.Tea + o.Tea,
		Sugar: c.Sugar + o.Sugar,
		Milk:  c.Milk + o.Milk,
	}
}

// Div 所有通道除以 k
func (c ParticleContents) Div(k float64) ParticleContents {
	return ParticleContents{
		Heat:  c.Heat / k,
		Tea:   c.Tea / k,
		Sugar: c.Sugar / k,
		Milk:  c.Milk / k,
	}
}

// Mul 所有通道乘以 k
func (c ParticleContents) Mul(k float64) ParticleContents {
	return ParticleContents{
		Heat:  c.Heat * k,
		Tea:   c.Tea * k,
		Sugar: c.Sugar * k,
		Milk:  c.Milk * k,
	}
}

// Lerp 返回 c*(1-d) + o*d
func (c ParticleContents) Lerp(o ParticleContents, d float64) ParticleContents {
	return c.Mul(1 - d).Add(o.Mul(d))
}

// Clamp 原地把每个通道限制到 [0,1]
func (c *ParticleContents) Clamp() {
	c.Heat = clampUnit(c.Heat)
	c.Tea = clampUnit(c.Tea)
	c.Sugar = clampUnit(c.Sugar)
	c.Milk = clampUnit(c.Milk)
}

// Clamped 返回限制后的副本
func (c ParticleContents) Clamped() ParticleContents {
	c.Clamp()
	return c
}

func (c ParticleContents) IsTea() bool   { return c.Tea > contentsThreshold }
func (c ParticleContents) IsMilky() bool { return c.Milk > contentsThreshold }
func (c ParticleContents) IsSweet() bool { return c.Sugar > contentsThreshold }

// NaN 被当作 0 处理，保证 Clamp 之后所有通道都落在 [0,1]
func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		return 0
	}
}
