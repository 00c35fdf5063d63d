package game

import (
	"fmt"
	"log"

	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// pointsPerCup 每杯茶的得分
const pointsPerCup = 10

// Placement 一次玩家放置
type Placement struct {
	ID   ecs.EntityID
	Part config.PartConfig
	Cost int
}

// GameState 一个关卡的玩家状态：禅意点数和玩家放置的零件
// 重开关卡时零件保留，点数不变
type GameState struct {
	sim       *Simulation
	zenPoints int
	placed    []Placement
}

// NewGameState 创建关卡状态，点数取自关卡的 initial_zen_points
func NewGameState(sim *Simulation) *GameState {
	return &GameState{
		sim:       sim,
		zenPoints: sim.Level().InitialZenPoints,
	}
}

// Simulation 当前模拟
func (gs *GameState) Simulation() *Simulation {
	return gs.sim
}

// ZenPoints 剩余禅意点数
func (gs *GameState) ZenPoints() int {
	return gs.zenPoints
}

// Score 得分 = 杯数 * 10
func (gs *GameState) Score() int {
	return gs.sim.Cups() * pointsPerCup
}

// PlacePart 在 (x, y) 放置一个默认参数的零件
func (gs *GameState) PlacePart(partType string, x, y float64) (ecs.EntityID, error) {
	part, err := PartTemplate(partType, x, y)
	if err != nil {
		return 0, err
	}
	return gs.Place(part)
}

// Place 放置一个自定义零件，扣除对应的点数
func (gs *GameState) Place(part config.PartConfig) (ecs.EntityID, error) {
	if !config.IsKnownPartType(part.Type) {
		return 0, fmt.Errorf("part type %q: %w", part.Type, ErrUnknownPartType)
	}
	cost := gs.sim.Config().PartCost(part.Type)
	if cost > gs.zenPoints {
		return 0, fmt.Errorf("%s costs %d, have %d: %w", part.Type, cost, gs.zenPoints, ErrInsufficientZenPoints)
	}

	id, err := gs.sim.AddPart(part)
	if err != nil {
		return 0, err
	}
	gs.zenPoints -= cost
	gs.placed = append(gs.placed, Placement{ID: id, Part: part, Cost: cost})

	log.Printf("[GameState] 放置 %s (实体 %d)，花费 %d，剩余 %d", part.Type, id, cost, gs.zenPoints)
	return id, nil
}

// RemovePart 移除玩家放置的零件并退还点数
func (gs *GameState) RemovePart(id ecs.EntityID) error {
	for i, p := range gs.placed {
		if p.ID != id {
			continue
		}
		if err := gs.sim.RemovePart(id); err != nil {
			return err
		}
		gs.zenPoints += p.Cost
		gs.placed = append(gs.placed[:i], gs.placed[i+1:]...)
		return nil
	}
	return fmt.Errorf("entity %d: %w", id, ErrNoSuchPart)
}

// Placements 玩家放置的零件
func (gs *GameState) Placements() []Placement {
	return gs.placed
}

// Restart 重置模拟并重新放置玩家的零件
func (gs *GameState) Restart() error {
	if err := gs.sim.Reset(); err != nil {
		return err
	}
	for i := range gs.placed {
		id, err := gs.sim.AddPart(gs.placed[i].Part)
		if err != nil {
			return fmt.Errorf("failed to restore placed %s: %w", gs.placed[i].Part.Type, err)
		}
		gs.placed[i].ID = id
	}
	return nil
}
