package app

import (
	"math"

	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/game"
)

// pickMargin 点选零件时的额外容差（世界单位）
const pickMargin = 2.0

// PlacedPartAt 返回 (x, y) 处最上层（实体 ID 最大）的玩家零件
func PlacedPartAt(parts []game.PartView, x, y float64) (ecs.EntityID, bool) {
	var found ecs.EntityID
	ok := false
	for _, p := range parts {
		if p.Fixed || !containsPoint(p, x, y) {
			continue
		}
		if !ok || p.ID > found {
			found, ok = p.ID, true
		}
	}
	return found, ok
}

func containsPoint(p game.PartView, x, y float64) bool {
	dx, dy := x-p.X, y-p.Y
	if p.Radius > 0 {
		return math.Hypot(dx, dy) <= p.Radius+pickMargin
	}
	if p.HalfWidth == 0 && p.HalfHeight == 0 {
		// 发射器
		return math.Hypot(dx, dy) <= 3+pickMargin
	}
	c, s := math.Cos(-p.Rotation), math.Sin(-p.Rotation)
	lx, ly := dx*c-dy*s, dx*s+dy*c
	return math.Abs(lx) <= p.HalfWidth+pickMargin && math.Abs(ly) <= p.HalfHeight+pickMargin
}
