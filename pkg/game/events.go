package game

import "github.com/olekspickle/chai-reaction/pkg/ecs"

// EventType 模拟事件类型
type EventType int

const (
	// EventSensorSatisfied 配方传感器从不满足变为满足
	EventSensorSatisfied EventType = iota
	// EventCupBrewed 杯子计数器新增了已泡好的茶
	EventCupBrewed
	// EventLevelComplete 关卡完成（每次加载只发出一次）
	EventLevelComplete
)

func (t EventType) String() string {
	switch t {
	case EventSensorSatisfied:
		return "sensor_satisfied"
	case EventCupBrewed:
		return "cup_brewed"
	case EventLevelComplete:
		return "level_complete"
	}
	return "unknown"
}

// Event 一次 Step 产生的事件，供界面播放音效和提示
type Event struct {
	Type   EventType
	Entity ecs.EntityID // 相关实体，没有时为 0
	Count  int          // EventCupBrewed 的新增杯数
	Tick   int
}
