package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/olekspickle/chai-reaction/pkg/ecs"
)

// contactType 所有形状共用一个碰撞类型，只注册一个处理器收集接触
const contactType cp.CollisionType = 1

// Settings 每个关卡的物理常量
type Settings struct {
	GravityX, GravityY float64
	// Skin 允许的穿透量（cp 的 collision slop）
	// 静止堆叠的物体保持这点重叠，每一步都能报告接触
	Skin float64
	// Iterations 求解器迭代次数
	Iterations int
}

// DefaultSettings 地球重力，方向 -Y
func DefaultSettings() Settings {
	return Settings{GravityY: -9.81, Skin: 0.5, Iterations: 10}
}

// BodyDef 同步进 World 的刚体描述，调用方每一步从自己的存储重建
type BodyDef struct {
	Type   BodyType
	Shape  Shape
	Sensor bool
	Layers Layers

	X, Y     float64
	Rotation float64 // 弧度，逆时针

	VX, VY float64

	Mass         float64 // <= 0 按 1 处理
	GravityScale float64
	Friction     float64
	Restitution  float64

	// TangentSpeed 表面沿切线方向的速度，传送带靠它运送上面的东西
	TangentSpeed float64
}

// BodyState 步进之后动态刚体的运动状态
type BodyState struct {
	X, Y   float64
	VX, VY float64
}

type worldBody struct {
	def          BodyDef
	body         *cp.Body
	shape        *cp.Shape
	gravityScale float64
}

// World 包装一个 cp.Space，按实体 ID 管理刚体
//
// 每个实体对应一个刚体和一个形状；形状的 UserData 是实体 ID，
// 预处理回调据此填充接触集合
type World struct {
	space    *cp.Space
	settings Settings
	bodies   map[ecs.EntityID]*worldBody

	contacts *Contacts
	stepping *Contacts
}

// NewWorld 创建物理世界
//
// 参数:
//   - settings: 重力、穿透余量和迭代次数
func NewWorld(settings Settings) *World {
	if settings.Iterations <= 0 {
		settings.Iterations = 1
	}
	w := &World{
		space:    cp.NewSpace(),
		settings: settings,
		bodies:   make(map[ecs.EntityID]*worldBody),
		contacts: NewContacts(),
	}
	w.space.Iterations = uint(settings.Iterations)
	w.space.SetGravity(cp.Vector{X: settings.GravityX, Y: settings.GravityY})
	if settings.Skin > 0 {
		w.space.SetCollisionSlop(settings.Skin)
	}

	handler := w.space.NewCollisionHandler(contactType, contactType)
	handler.PreSolveFunc = w.recordContact
	return w
}

// recordContact 每一步对每一对重叠的形状调用一次，传感器也不例外
func (w *World) recordContact(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	if w.stepping == nil {
		return true
	}
	a, b := arb.Shapes()
	idA, okA := a.UserData.(ecs.EntityID)
	idB, okB := b.UserData.(ecs.EntityID)
	if okA && okB {
		w.stepping.Add(idA, idB)
	}
	return true
}

// Settings 当前物理常量
func (w *World) Settings() Settings {
	return w.settings
}

// SetGravity 修改重力
func (w *World) SetGravity(x, y float64) {
	w.settings.GravityX, w.settings.GravityY = x, y
	w.space.SetGravity(cp.Vector{X: x, Y: y})
}

// Len 刚体数量
func (w *World) Len() int {
	return len(w.bodies)
}

// Has 实体是否已有刚体
func (w *World) Has(id ecs.EntityID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Sync 创建或更新实体的刚体
// 类型、形状或传感器标记变化时重建
func (w *World) Sync(id ecs.EntityID, def BodyDef) {
	wb, ok := w.bodies[id]
	if ok && (wb.def.Type != def.Type || wb.def.Shape != def.Shape || wb.def.Sensor != def.Sensor) {
		w.Remove(id)
		ok = false
	}
	if !ok {
		w.add(id, def)
		return
	}
	w.update(wb, def, false)
}

func (w *World) add(id ecs.EntityID, def BodyDef) {
	var body *cp.Body
	if def.Type == Dynamic {
		mass := def.Mass
		if mass <= 0 {
			mass = 1
		}
		// 无穷大转动惯量：粒子和小球只平移不旋转，位置组件没有动态角度
		body = cp.NewBody(mass, math.Inf(1))
	} else {
		body = cp.NewStaticBody()
	}
	body.UserData = id
	w.space.AddBody(body)
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
	body.SetAngle(def.Rotation)

	var shape *cp.Shape
	switch def.Shape.Kind {
	case ShapeCircle:
		shape = cp.NewCircle(body, def.Shape.Radius, cp.Vector{})
	default:
		shape = cp.NewBox(body, 2*def.Shape.HalfWidth, 2*def.Shape.HalfHeight, 0)
	}
	shape.UserData = id
	shape.SetCollisionType(contactType)
	shape.SetSensor(def.Sensor)
	w.space.AddShape(shape)

	wb := &worldBody{body: body, shape: shape}
	if def.Type == Dynamic {
		// 每个刚体自己的重力倍数
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, gravity.Mult(wb.gravityScale), damping, dt)
		})
	}
	w.bodies[id] = wb
	w.update(wb, def, true)
}

func (w *World) update(wb *worldBody, def BodyDef, fresh bool) {
	old := wb.def
	wb.def = def
	wb.gravityScale = def.GravityScale

	if fresh || old.Layers != def.Layers {
		wb.shape.SetFilter(def.Layers.Filter())
	}
	if fresh || old.Friction != def.Friction {
		wb.shape.SetFriction(def.Friction)
	}
	if fresh || old.Restitution != def.Restitution {
		wb.shape.SetElasticity(def.Restitution)
	}
	if fresh || old.TangentSpeed != def.TangentSpeed || old.Rotation != def.Rotation {
		wb.shape.SetSurfaceV(cp.ForAngle(def.Rotation).Mult(def.TangentSpeed))
	}

	if def.Type == Dynamic {
		wb.body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
		wb.body.SetVelocity(def.VX, def.VY)
		return
	}
	// 静态刚体移动后要重建空间索引
	if !fresh && (old.X != def.X || old.Y != def.Y || old.Rotation != def.Rotation) {
		wb.body.SetPosition(cp.Vector{X: def.X, Y: def.Y})
		wb.body.SetAngle(def.Rotation)
		w.space.RemoveShape(wb.shape)
		w.space.AddShape(wb.shape)
	}
}

// Remove 删除实体的刚体，不存在时什么都不做
func (w *World) Remove(id ecs.EntityID) {
	wb, ok := w.bodies[id]
	if !ok {
		return
	}
	w.space.RemoveShape(wb.shape)
	w.space.RemoveBody(wb.body)
	delete(w.bodies, id)
}

// Prune 删除 keep 返回 false 的所有刚体，返回删除数量
func (w *World) Prune(keep func(id ecs.EntityID) bool) int {
	var stale []ecs.EntityID
	for id := range w.bodies {
		if !keep(id) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		w.Remove(id)
	}
	return len(stale)
}

// ApplyImpulse 在质心施加冲量，立即改变速度
// 静态刚体和未知实体被忽略
func (w *World) ApplyImpulse(id ecs.EntityID, x, y float64) {
	wb, ok := w.bodies[id]
	if !ok || wb.def.Type != Dynamic {
		return
	}
	wb.body.ApplyImpulseAtWorldPoint(cp.Vector{X: x, Y: y}, wb.body.Position())
}

// State 动态刚体当前的位置和速度
func (w *World) State(id ecs.EntityID) (BodyState, bool) {
	wb, ok := w.bodies[id]
	if !ok {
		return BodyState{}, false
	}
	p, v := wb.body.Position(), wb.body.Velocity()
	return BodyState{X: p.X, Y: p.Y, VX: v.X, VY: v.Y}, true
}

// Step 推进 dt 秒，返回这一步的接触集合
func (w *World) Step(dt float64) *Contacts {
	if dt <= 0 {
		return w.contacts
	}
	w.stepping = NewContacts()
	w.space.Step(dt)
	w.stepping.finish()
	w.contacts, w.stepping = w.stepping, nil
	return w.contacts
}

// Contacts 上一次步进的接触集合
func (w *World) Contacts() ContactIndex {
	return w.contacts
}
