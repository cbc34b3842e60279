package scene

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/trsdemo/common"
	"github.com/milk9111/trsdemo/prefabs"
)

var ErrNilShader = errors.New("scene: shader is nil")

// Scene owns the mesh buffers, the shader and the model transform. Update and
// Draw are called once per frame, in that order, from the game loop.
type Scene struct {
	Debug bool

	spec   prefabs.SceneSpec
	shader *ebiten.Shader
	mesh   *Mesh
	model  *Model

	vertices []ebiten.Vertex
	indices  []uint32
	scratch  []ebiten.Vertex
}

// New builds a scene from spec, drawn with shader.
func New(spec prefabs.SceneSpec, shader *ebiten.Shader) (*Scene, error) {
	if shader == nil {
		return nil, ErrNilShader
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &Scene{
		spec:   spec,
		shader: shader,
		mesh:   NewMesh(),
	}
	s.model = NewModel(InitialMatrix(spec), MotionFromSpec(spec))
	s.upload()
	return s, nil
}

// NewShader compiles Kage source into a shader handle.
func NewShader(src []byte) (*ebiten.Shader, error) {
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("scene: compile shader: %w", err)
	}
	return sh, nil
}

// LoadShader loads and compiles a shader from the prefabs.
func LoadShader(name string) (*ebiten.Shader, error) {
	src, err := prefabs.LoadShader(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load shader %s: %w", name, err)
	}
	return NewShader(src)
}

// InitialMatrix builds the model matrix a scene starts from.
func InitialMatrix(spec prefabs.SceneSpec) common.Mat4 {
	offset := common.Vec2(spec.Offset)
	scale := common.Vec2(spec.Scale)

	if spec.Builder == prefabs.BuilderManual {
		return common.TRS(offset, spec.Angle, scale)
	}
	return mgl32.Translate3D(offset.X(), offset.Y(), 0).
		Mul4(mgl32.HomogRotate3DZ(spec.Angle)).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), 1))
}

// MotionFromSpec reads the per-second movement and rotation from spec.
func MotionFromSpec(spec prefabs.SceneSpec) Motion {
	return Motion{
		MovementSpeed: spec.MovementSpeed,
		RotationRate:  spec.Rate(),
		Axis:          common.Vec2(spec.UnitAxis()),
	}
}

func (s *Scene) upload() {
	if len(s.spec.Colours) == prefabs.MeshVertexCount {
		cs := make([]color.Color, len(s.spec.Colours))
		for i, c := range s.spec.Colours {
			cs[i] = c.Color
		}
		s.mesh.SetColours(cs)
	}
	s.vertices = s.mesh.Upload()
	s.indices = append(s.indices[:0], s.mesh.Indices...)
	s.scratch = make([]ebiten.Vertex, len(s.vertices))
}

// Update advances the model transform by dt seconds.
func (s *Scene) Update(dt float32) {
	s.model.Update(dt)
	if s.Debug {
		log.Printf("scene %s: update dt=%.4f angle=%.4f offset=%v", s.spec.Name, dt, s.model.Angle(), s.model.Offset())
	}
}

// Draw issues one indexed draw of the mesh with the current model matrix.
func (s *Scene) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}

	b := screen.Bounds()
	s.transform(float32(b.Dx()), float32(b.Dy()))

	screen.DrawTrianglesShader32(s.scratch, s.indices, s.shader, &ebiten.DrawTrianglesShaderOptions{})
}

// transform writes the model-space vertex buffer, moved by the model matrix
// and mapped from normalised device coordinates to a w×h target, into scratch.
func (s *Scene) transform(w, h float32) {
	m := s.model.Matrix()
	for i, v := range s.vertices {
		p := common.Apply(m, common.Vec4{v.DstX, v.DstY, 0, 1})
		x, y := NDCToScreen(p.X(), p.Y(), w, h)
		v.DstX, v.DstY = x, y
		s.scratch[i] = v
	}
}

// NDCToScreen maps x and y in [-1, 1] to pixels with y pointing down.
func NDCToScreen(x, y, w, h float32) (float32, float32) {
	return common.Lerp(0, w, (x+1)/2), common.Lerp(h, 0, (y+1)/2)
}

// Reconfigure applies a new spec: colours are uploaded again and the model is
// reset to the spec's initial transform.
func (s *Scene) Reconfigure(spec prefabs.SceneSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.spec = spec
	s.mesh = NewMesh()
	s.upload()
	s.model.SetMotion(MotionFromSpec(spec))
	s.model.Reset(InitialMatrix(spec))
	return nil
}

func (s *Scene) SetShader(shader *ebiten.Shader) error {
	if shader == nil {
		return ErrNilShader
	}
	if s.shader != nil && s.shader != shader {
		s.shader.Deallocate()
	}
	s.shader = shader
	return nil
}

func (s *Scene) Spec() prefabs.SceneSpec { return s.spec }

func (s *Scene) Model() *Model { return s.model }

// Background is the clear colour for the frame, or nil to leave the screen
// as ebiten hands it over.
func (s *Scene) Background() color.Color {
	if s.spec.Background == nil {
		return nil
	}
	return s.spec.Background.Color
}
