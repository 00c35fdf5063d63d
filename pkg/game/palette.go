package game

import (
	"fmt"

	"github.com/olekspickle/chai-reaction/pkg/config"
)

// PlaceableParts 玩家可以放置的零件类型，按工具栏顺序
var PlaceableParts = []string{
	config.PartEmitter,
	config.PartHeatSource,
	config.PartTeaInfuser,
	config.PartFlowField,
	config.PartWall,
	config.PartConveyor,
	config.PartBall,
}

// PartTemplate 返回玩家放置零件时使用的默认参数
func PartTemplate(partType string, x, y float64) (config.PartConfig, error) {
	part := config.PartConfig{Type: partType, X: x, Y: y}

	switch partType {
	case config.PartEmitter:
		gravity := 1.0
		part.Emitter = &config.EmitterConfig{
			Kind:         "water",
			SpawnRate:    20,
			Speed:        [2]float64{20, 30},
			Angle:        [2]float64{-100, -80},
			GravityScale: &gravity,
		}
	case config.PartHeatSource, config.PartTeaInfuser:
		part.Width, part.Height = 60, 20
	case config.PartFlowField:
		part.Width, part.Height = 40, 40
		part.Flow = &config.FlowFieldConfig{Direction: [2]float64{1, 0}}
	case config.PartWall:
		part.Width, part.Height = 80, 8
	case config.PartConveyor:
		part.Width, part.Height = 120, 8
		part.Conveyor = &config.ConveyorConfig{Speed: 30}
	case config.PartBall:
		part.Radius = 6
	default:
		if config.IsKnownPartType(partType) {
			return part, fmt.Errorf("part type %q is not placeable: %w", partType, ErrUnknownPartType)
		}
		return part, fmt.Errorf("part type %q: %w", partType, ErrUnknownPartType)
	}
	return part, nil
}
