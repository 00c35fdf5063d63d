package app

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/olekspickle/chai-reaction/pkg/game"
	"github.com/olekspickle/chai-reaction/pkg/utils"
)

const hudLineHeight = 16

// HUDLines 左上角状态文字
func HUDLines(gs *game.GameState, selected int) []string {
	sim := gs.Simulation()
	level := sim.Level()

	lines := []string{
		fmt.Sprintf("%s  zen %d  cups %d  score %d", level.Name, gs.ZenPoints(), sim.Cups(), gs.Score()),
		fmt.Sprintf("particles %d  t=%.1fs", sim.ParticleCount(), sim.Elapsed()),
	}

	costs := make([]string, len(game.PlaceableParts))
	for i, partType := range game.PlaceableParts {
		mark := " "
		if i == selected {
			mark = ">"
		}
		costs[i] = fmt.Sprintf("%s%d %s(%d)", mark, i+1, partType, sim.Config().PartCost(partType))
	}
	lines = append(lines, strings.Join(costs, " "))

	for _, s := range sim.Sensors() {
		state := "waiting"
		if s.Satisfied {
			state = "ok"
		}
		lines = append(lines, fmt.Sprintf("sensor %d [%s] samples %d tea %.2f milk %.2f sugar %.2f",
			s.ID, state, s.SampleCount, s.Average.Tea, s.Average.Milk, s.Average.Sugar))
	}

	var flags []string
	if sim.Paused() {
		flags = append(flags, "PAUSED")
	}
	if !sim.PhysicsEnabled() {
		flags = append(flags, "PHYSICS OFF")
	}
	if sim.Complete() {
		flags = append(flags, "COMPLETE")
	}
	if len(flags) > 0 {
		lines = append(lines, strings.Join(flags, " "))
	}
	return lines
}

func (a *App) drawHUD(screen *ebiten.Image) {
	for i, line := range HUDLines(a.state, a.selected) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*hudLineHeight)
	}
	if a.messageTimer > 0 && a.message != "" {
		ebitenutil.DebugPrintAt(screen, a.message, 8, ScreenHeight-24)
	}
	ebitenutil.DebugPrintAt(screen, helpLine(utils.IsMobile()), 8, ScreenHeight-hudLineHeight-24-8)
}
