package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerAction 本帧的指针操作
type pointerAction int

const (
	pointerNone pointerAction = iota
	pointerPlace
	pointerRemove
)

// pointerInput 本帧的点击/触摸
// 触摸优先于鼠标；触摸没有右键，点在已放置的零件上视为移除
type pointerInput struct {
	Action pointerAction
	X, Y   int
	Touch  bool
}

func readPointer() pointerInput {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pointerInput{Action: pointerPlace, X: x, Y: y, Touch: true}
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		return pointerInput{Action: pointerPlace, X: x, Y: y}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		return pointerInput{Action: pointerRemove, X: x, Y: y}
	}
	return pointerInput{X: x, Y: y}
}

// resolveTouch 触摸点落在玩家零件上时改为移除
func (p pointerInput) resolveTouch(onPlacedPart bool) pointerAction {
	if p.Touch && p.Action == pointerPlace && onPlacedPart {
		return pointerRemove
	}
	return p.Action
}

// helpLine 底部按键说明
func helpLine(mobile bool) string {
	if mobile {
		return "tap place  tap part remove"
	}
	return "1-7 part  LMB place  RMB remove  space pause  R restart  N next  T physics  M mute"
}
