package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/trsdemo/common"
)

const eps = 1e-6

func TestModelUpdateZeroIsNoop(t *testing.T) {
	initial := common.TRS(common.Vec2{0.25, 0}, 0.3, common.Vec2{0.1, 0.1})
	m := NewModel(initial, Motion{MovementSpeed: 1, RotationRate: common.Tau / 12, Axis: common.Vec2{0, 1}})

	for i := 0; i < 100; i++ {
		m.Update(0)
	}

	if m.Matrix() != initial {
		t.Fatalf("expected unchanged matrix %v, got %v", initial, m.Matrix())
	}
	if m.Angle() != 0 || m.Offset() != (common.Vec2{}) {
		t.Fatalf("expected no accumulated motion, got angle=%v offset=%v", m.Angle(), m.Offset())
	}
}

func TestModelUpdateOneSecond(t *testing.T) {
	m := NewModel(mgl32.Ident4(), Motion{MovementSpeed: 1, RotationRate: common.Tau / 12, Axis: common.Vec2{0, 1}})
	m.Update(1)

	sin30, cos30 := float32(0.5), float32(math.Sqrt(3)/2)
	want := []common.Vec4{
		{cos30, sin30, 0, 0},
		{-sin30, cos30, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 1},
	}

	got := m.Matrix()
	for col, w := range want {
		if c := got.Col(col); !c.ApproxEqualThreshold(w, eps) {
			t.Fatalf("column %d: expected %v, got %v", col, w, c)
		}
	}

	if math.Abs(float64(m.Angle())-math.Pi/6) > eps {
		t.Fatalf("expected angle 30deg, got %v rad", m.Angle())
	}
	if !m.Offset().ApproxEqualThreshold(common.Vec2{0, 1}, eps) {
		t.Fatalf("expected offset (0,1), got %v", m.Offset())
	}
}

func TestModelUpdateIsIncremental(t *testing.T) {
	motion := Motion{MovementSpeed: 0.5, RotationRate: 1.3, Axis: common.Vec2{1, 0}}
	initial := mgl32.Translate3D(0.25, 0, 0).Mul4(mgl32.Scale3D(0.1, 0.1, 0.1))

	m := NewModel(initial, motion)
	m.Update(0.25)
	m.Update(0.5)

	// the same two steps with the library's own builders
	want := initial
	for _, dt := range []float32{0.25, 0.5} {
		want = want.
			Mul4(mgl32.Translate3D(motion.MovementSpeed*dt, 0, 0)).
			Mul4(mgl32.HomogRotate3DZ(motion.RotationRate * dt))
	}

	if !m.Matrix().ApproxEqualThreshold(want, eps) {
		t.Fatalf("expected %v, got %v", want, m.Matrix())
	}
	if math.Abs(float64(m.Angle())-1.3*0.75) > eps {
		t.Fatalf("expected accumulated angle %v, got %v", 1.3*0.75, m.Angle())
	}
}

func TestModelFullTurnReturnsHome(t *testing.T) {
	// twelve 30 degree steps of one unit trace a regular dodecagon back to
	// the start
	m := NewModel(mgl32.Ident4(), Motion{MovementSpeed: 1, RotationRate: common.Tau / 12, Axis: common.Vec2{0, 1}})
	for i := 0; i < 12; i++ {
		m.Update(1)
	}
	if !m.Matrix().ApproxEqualThreshold(mgl32.Ident4(), 1e-5) {
		t.Fatalf("expected identity after a full turn, got %v", m.Matrix())
	}
}

func TestModelReset(t *testing.T) {
	m := NewModel(mgl32.Ident4(), Motion{MovementSpeed: 2, RotationRate: 1, Axis: common.Vec2{0, 1}})
	m.Update(0.3)

	initial := common.Scale(2, 2)
	m.Reset(initial)
	if m.Matrix() != initial || m.Angle() != 0 || m.Offset() != (common.Vec2{}) {
		t.Fatalf("reset did not restore state: %v %v %v", m.Matrix(), m.Angle(), m.Offset())
	}
}

func TestModelOffsetInInitialFrame(t *testing.T) {
	initial := common.TRS(common.Vec2{0.25, 0}, 0.4, common.Vec2{0.1, 0.2})
	m := NewModel(initial, Motion{MovementSpeed: 1, RotationRate: common.Tau / 4, Axis: common.Vec2{0, 1}})

	// up one, turn left, up one along what is now -x
	m.Update(1)
	m.Update(1)

	if !m.Offset().ApproxEqualThreshold(common.Vec2{-1, 1}, eps) {
		t.Fatalf("expected offset (-1,1), got %v", m.Offset())
	}

	want := initial.
		Mul4(common.Translation(m.Offset().X(), m.Offset().Y())).
		Mul4(common.Rotation(m.Angle()))
	if !m.Matrix().ApproxEqualThreshold(want, eps) {
		t.Fatalf("expected %v, got %v", want, m.Matrix())
	}
}
