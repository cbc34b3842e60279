package scene

import (
	"math"

	"github.com/milk9111/trsdemo/common"
)

// Motion is the per-second change applied to a Model.
type Motion struct {
	MovementSpeed float32
	RotationRate  float32 // radians per second
	Axis          common.Vec2
}

// Model is the model matrix of the scene plus the angle and offset it has
// accumulated since the last reset. Both are expressed in the frame of the
// initial matrix, so Matrix() == initial · T(offset) · R(angle) up to
// rounding. Movement is along the model's own axis, so the shape travels
// along a curve while it turns.
type Model struct {
	motion Motion

	matrix common.Mat4
	angle  float32
	offset common.Vec2

	step, turn common.Mat4
}

// NewModel starts a model at initial with nothing accumulated.
func NewModel(initial common.Mat4, motion Motion) *Model {
	return &Model{motion: motion, matrix: initial}
}

// Update folds one frame of movement and rotation into the model matrix:
//
//	M = M · T(axis·speed·dt) · R(rate·dt)
//
// The matrix is never rebuilt from the accumulated angle and offset, so
// rounding error grows with the number of frames.
func (m *Model) Update(dt float32) {
	if dt == 0 {
		return
	}

	movement := m.motion.MovementSpeed * dt
	rotation := m.motion.RotationRate * dt

	d := m.motion.Axis.Mul(movement)
	common.TranslationInto(&m.step, d.X(), d.Y())
	common.RotationInto(&m.turn, rotation)
	m.matrix = m.matrix.Mul4(m.step).Mul4(m.turn)

	// d is along the axes as they were before this frame's turn
	sin, cos := math.Sincos(float64(m.angle))
	s, c := float32(sin), float32(cos)
	m.offset = m.offset.Add(common.Vec2{c*d.X() - s*d.Y(), s*d.X() + c*d.Y()})
	m.angle += rotation
}

// Reset replaces the model matrix and clears the accumulated state.
func (m *Model) Reset(initial common.Mat4) {
	m.matrix = initial
	m.angle = 0
	m.offset = common.Vec2{}
}

// SetMotion changes the rates used by later updates.
func (m *Model) SetMotion(motion Motion) { m.motion = motion }

func (m *Model) Motion() Motion { return m.motion }

func (m *Model) Matrix() common.Mat4 { return m.matrix }

func (m *Model) Angle() float32 { return m.angle }

func (m *Model) Offset() common.Vec2 { return m.offset }
