package render

import (
	"image/color"

	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/utils"
)

// 零件颜色，传感器类零件半透明
var partColors = map[string]color.NRGBA{
	config.PartEmitter:      {R: 0x60, G: 0x90, B: 0xd0, A: 0xff},
	config.PartHeatSource:   {R: 0xe0, G: 0x50, B: 0x20, A: 0x70},
	config.PartTeaInfuser:   {R: 0x50, G: 0x90, B: 0x40, A: 0x70},
	config.PartRecipeSensor: {R: 0xd0, G: 0xb0, B: 0x60, A: 0x50},
	config.PartTeaCounter:   {R: 0xf0, G: 0xf0, B: 0xe0, A: 0x50},
	config.PartFlowField:    {R: 0x80, G: 0x80, B: 0xff, A: 0x40},
	config.PartWall:         {R: 0x70, G: 0x60, B: 0x50, A: 0xff},
	config.PartConveyor:     {R: 0x40, G: 0x40, B: 0x48, A: 0xff},
	config.PartVessel:       {R: 0xa0, G: 0xc0, B: 0xe0, A: 0x30},
	config.PartFluidFilter:  {R: 0x90, G: 0x70, B: 0xb0, A: 0xc0},
	config.PartButton:       {R: 0xc0, G: 0x30, B: 0x30, A: 0xff},
}

// 满足/挡水状态下的高亮色
var (
	activeSensorColor = color.NRGBA{R: 0x40, G: 0xe0, B: 0x60, A: 0x70}
	openFilterColor   = color.NRGBA{R: 0x90, G: 0x70, B: 0xb0, A: 0x40}
	leafColor         = color.NRGBA{R: 0x3c, G: 0x5a, B: 0x1e, A: 0xff}
	backgroundColor   = color.NRGBA{R: 0x1c, G: 0x1a, B: 0x20, A: 0xff}
)

// PartColor 零件的显示颜色；active 为传感器满足或过滤墙挡水
func PartColor(partType string, active bool) color.NRGBA {
	switch {
	case active && partType == config.PartRecipeSensor:
		return activeSensorColor
	case !active && partType == config.PartFluidFilter:
		return openFilterColor
	}
	if c, ok := partColors[partType]; ok {
		return c
	}
	return color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
}

// PulseAlpha 按 glow（0-1）在原透明度和不透明之间插值
func PulseAlpha(c color.NRGBA, glow float64) color.NRGBA {
	c.A = uint8(utils.Lerp(float64(c.A), 0xff, utils.Clamp(glow, 0, 1)) + 0.5)
	return c
}
