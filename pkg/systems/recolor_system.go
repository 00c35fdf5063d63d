package systems

import (
	"github.com/crazy3lf/colorconv"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/utils"
)

// RecolorSystem 根据粒子内容计算显示颜色
// 颜色在水色和茶色之间按 tea 插值，再在 HSL 空间按 milk 提亮
type RecolorSystem struct {
	entityManager *ecs.EntityManager
	water, brewed config.HexColor
	lightening    float64
}

// NewRecolorSystem 创建着色系统
func NewRecolorSystem(em *ecs.EntityManager, colors config.ColorsConfig, milkLightening float64) *RecolorSystem {
	return &RecolorSystem{
		entityManager: em,
		water:         colors.Water,
		brewed:        colors.Brewed,
		lightening:    milkLightening,
	}
}

// Update 重新着色所有粒子
func (s *RecolorSystem) Update(deltaTime float64) {
	particles := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.DisplayColorComponent](s.entityManager)
	for _, id := range particles {
		particle, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		display, _ := ecs.GetComponent[*components.DisplayColorComponent](s.entityManager, id)

		display.R, display.G, display.B = ContentsColor(particle.Contents, s.water, s.brewed, s.lightening)
		display.A = 255
	}
}

// ContentsColor 计算一份内容的显示颜色
func ContentsColor(c components.ParticleContents, water, brewed config.HexColor, lightening float64) (r, g, b uint8) {
	tea := utils.Clamp(c.Tea, 0, 1)
	r = lerpByte(water.R, brewed.R, tea)
	g = lerpByte(water.G, brewed.G, tea)
	b = lerpByte(water.B, brewed.B, tea)

	milk := utils.Clamp(c.Milk, 0, 1)
	if milk == 0 || lightening == 0 {
		return r, g, b
	}

	h, s, l := colorconv.RGBToHSL(r, g, b)
	l += (1 - l) * milk * lightening
	lr, lg, lb, err := colorconv.HSLToRGB(h, s, utils.Clamp(l, 0, 1))
	if err != nil {
		return r, g, b
	}
	return lr, lg, lb
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(utils.Lerp(float64(a), float64(b), t) + 0.5)
}
