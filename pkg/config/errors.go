package config

import "errors"

var (
	// ErrUnknownPartType 零件类型不存在
	ErrUnknownPartType = errors.New("unknown part type")
	// ErrMissingBlock 零件缺少必须的配置块（如 emitter 零件没有 emitter:）
	ErrMissingBlock = errors.New("missing required block")
	// ErrInvalidValue 数值超出允许范围
	ErrInvalidValue = errors.New("invalid value")
)
