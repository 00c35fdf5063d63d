package systems

import (
	"image/color"

	"github.com/olekspickle/chai-reaction/pkg/components"
	"github.com/olekspickle/chai-reaction/pkg/config"
	"github.com/olekspickle/chai-reaction/pkg/ecs"
	"github.com/olekspickle/chai-reaction/pkg/physics"
)

// FlowFieldSystem 流场：按纹理颜色对区域内的动态刚体施加冲量
type FlowFieldSystem struct {
	entityManager *ecs.EntityManager
	contacts      ContactSource
	sink          ImpulseSink
	gains         config.FlowConfig
}

// NewFlowFieldSystem 创建流场系统
func NewFlowFieldSystem(em *ecs.EntityManager, contacts ContactSource, sink ImpulseSink, gains config.FlowConfig) *FlowFieldSystem {
	return &FlowFieldSystem{
		entityManager: em,
		contacts:      contacts,
		sink:          sink,
		gains:         gains,
	}
}

// Update 对每个流场接触到的目标刚体写入冲量
func (s *FlowFieldSystem) Update(deltaTime float64) {
	index := s.contacts.Contacts()

	fields := ecs.GetEntitiesWith2[*components.FlowFieldComponent, *components.PositionComponent](s.entityManager)
	for _, id := range fields {
		field, _ := ecs.GetComponent[*components.FlowFieldComponent](s.entityManager, id)
		fieldPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if field.Texture == nil {
			continue
		}

		for _, other := range index.ContactsWith(id) {
			kind, ok := bodyKind(s.entityManager, other)
			if !ok || !affects(field.Targets, kind) || !isDynamic(s.entityManager, other) {
				continue
			}
			pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, other)
			if !ok {
				continue
			}
			fx, fy, ok := SampleFlowForce(field, fieldPos, pos.X, pos.Y, s.gains)
			if !ok {
				continue
			}
			s.sink.SetImpulse(other, fx, fy)
		}
	}
}

func affects(targets components.FlowTargets, kind components.BodyKind) bool {
	switch kind {
	case components.KindParticle:
		return targets.Has(components.FlowParticles)
	case components.KindBall:
		return targets.Has(components.FlowBalls)
	}
	return false
}

// SampleFlowForce 计算流场在世界坐标 (x, y) 处的冲量
//
// 坐标先变换到流场局部空间，再映射到当前旋转帧的像素：
// px = int(local.x + w/2)，py = int(-local.y + h/2) + h*RotationIndex。
// 超出纹理范围时 ok 为 false
func SampleFlowForce(field *components.FlowFieldComponent, fieldPos *components.PositionComponent, x, y float64, gains config.FlowConfig) (fx, fy float64, ok bool) {
	tex := field.Texture
	if tex == nil {
		return 0, 0, false
	}

	rows := field.Rows
	if rows < 1 {
		rows = 1
	}
	bounds := tex.Bounds()
	w := bounds.Dx()
	h := bounds.Dy() / rows
	if w == 0 || h == 0 || field.RotationIndex < 0 || field.RotationIndex >= rows {
		return 0, 0, false
	}

	lx, ly := physics.ToLocal(fieldPos.X, fieldPos.Y, fieldPos.Rotation, x, y)
	px := int(lx + float64(w)/2)
	py := int(-ly + float64(h)/2)
	if px < 0 || py < 0 || px >= w || py >= h {
		return 0, 0, false
	}

	c := color.NRGBAModel.Convert(tex.At(bounds.Min.X+px, bounds.Min.Y+py+h*field.RotationIndex)).(color.NRGBA)
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	a := float64(c.A) / 255

	fx = (r - 0.5) * 2 * a
	fy = (g - 0.5) * 2 * a

	if fy > 0 {
		fy *= gains.UpwardGain
	} else {
		fy *= gains.DownwardGain
	}
	fx *= gains.HorizontalGain
	return fx, fy, true
}
