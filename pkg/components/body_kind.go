package components

// BodyKind 碰撞体类别
// 系统按实体 ID 查询类别，而不是遍历各种标记组件
type BodyKind int

const (
	KindWall BodyKind = iota
	KindParticle
	KindHeatSource
	KindTeaInfuser
	KindRecipeSensor
	KindTeaCounter
	KindFlowField
	KindConveyor
	KindBall
	KindLeaf
	KindFluidFilter
	KindButton
)

var bodyKindNames = [...]string{
	KindWall:         "wall",
	KindParticle:     "particle",
	KindHeatSource:   "heat_source",
	KindTeaInfuser:   "tea_infuser",
	KindRecipeSensor: "recipe_sensor",
	KindTeaCounter:   "tea_counter",
	KindFlowField:    "flow_field",
	KindConveyor:     "conveyor",
	KindBall:         "ball",
	KindLeaf:         "leaf",
	KindFluidFilter:  "fluid_filter",
	KindButton:       "button",
}

func (k BodyKind) String() string {
	if k >= 0 && int(k) < len(bodyKindNames) {
		return bodyKindNames[k]
	}
	return "unknown"
}

// IsSensor 传感器类别只报告重叠，不产生碰撞响应
func (k BodyKind) IsSensor() bool {
	switch k {
	case KindHeatSource, KindTeaInfuser, KindRecipeSensor, KindTeaCounter, KindFlowField, KindButton:
		return true
	}
	return false
}
