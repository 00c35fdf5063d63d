package game

import (
	"errors"

	"github.com/olekspickle/chai-reaction/pkg/config"
)

var (
	// ErrInsufficientZenPoints 禅意点数不足以放置零件
	ErrInsufficientZenPoints = errors.New("insufficient zen points")
	// ErrUnknownPartType 与 config 包共用同一个哨兵错误
	ErrUnknownPartType = config.ErrUnknownPartType
	// ErrNoSuchLevel 关卡 ID 或序号不存在
	ErrNoSuchLevel = errors.New("no such level")
	// ErrNoSuchPart 要移除的零件不存在或不是玩家放置的
	ErrNoSuchPart = errors.New("no such placed part")
)
