package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownBuilder = errors.New("prefabs: unknown builder")
	ErrZeroAxis       = errors.New("prefabs: movement axis has zero length")
	ErrVertexColours  = errors.New("prefabs: colours must list one entry per mesh vertex")
)

// Builder names how the initial model matrix is assembled.
type Builder string

const (
	// BuilderLibrary chains mathgl's Translate3D and Scale3D.
	BuilderLibrary Builder = "library"
	// BuilderManual composes the hand-written translation, rotation and scale
	// matrices in T·R·S order.
	BuilderManual Builder = "manual"
)

// MeshVertexCount is the number of vertices in the demo mesh.
const MeshVertexCount = 4

// LoadSpec decodes the named spec over defaults, so fields missing from the
// file keep their default values.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SceneSpec struct {
	Name          string      `yaml:"name"`
	Offset        Vec2Spec    `yaml:"offset"`
	Scale         Vec2Spec    `yaml:"scale"`
	Angle         float32     `yaml:"angle"`
	MovementSpeed float32     `yaml:"movement_speed"`
	Axis          Vec2Spec    `yaml:"axis"`
	RotationRate  *float32    `yaml:"rotation_rate"`
	RotationTurns *float32    `yaml:"rotation_turns"`
	Builder       Builder     `yaml:"builder"`
	Shader        string      `yaml:"shader"`
	Background    *YAMLColor  `yaml:"background"`
	Colours       []YAMLColor `yaml:"colours"`
}

// DefaultSceneSpec mirrors the embedded scene.yaml.
func DefaultSceneSpec() SceneSpec {
	turns := float32(1.0 / 12)
	return SceneSpec{
		Name:          "scene",
		Offset:        Vec2Spec{0.25, 0},
		Scale:         Vec2Spec{0.1, 0.1},
		MovementSpeed: 1,
		Axis:          Vec2Spec{0, 1},
		RotationTurns: &turns,
		Builder:       BuilderLibrary,
		Shader:        "mesh.kage",
	}
}

// LoadSceneSpec loads and validates a scene spec. Fields left out of the file
// keep their DefaultSceneSpec values.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	spec, err := LoadSpec(name, DefaultSceneSpec())
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseSceneSpec decodes and validates a scene spec that does not live under
// the prefabs, such as a file named on the command line.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	spec := DefaultSceneSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	switch s.Builder {
	case BuilderLibrary, BuilderManual:
	case "":
		s.Builder = BuilderLibrary
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBuilder, s.Builder)
	}

	if s.Axis[0] == 0 && s.Axis[1] == 0 {
		return ErrZeroAxis
	}

	if len(s.Colours) != 0 && len(s.Colours) != MeshVertexCount {
		return fmt.Errorf("%w: got %d, want %d", ErrVertexColours, len(s.Colours), MeshVertexCount)
	}

	return nil
}

// Rate returns the rotation rate in radians per second. rotation_rate wins
// over rotation_turns when both are set.
func (s *SceneSpec) Rate() float32 {
	if s.RotationRate != nil {
		return *s.RotationRate
	}
	if s.RotationTurns != nil {
		return *s.RotationTurns * 2 * math.Pi
	}
	return 0
}

// UnitAxis returns the movement axis normalised to length 1.
func (s *SceneSpec) UnitAxis() [2]float32 {
	x, y := float64(s.Axis[0]), float64(s.Axis[1])
	l := math.Hypot(x, y)
	if l == 0 {
		return [2]float32{}
	}
	return [2]float32{float32(x / l), float32(y / l)}
}

type Vec2Spec [2]float32

func (v *Vec2Spec) UnmarshalYAML(value *yaml.Node) error {
	var xs []float32
	if err := value.Decode(&xs); err != nil {
		return fmt.Errorf("vector must be a [x, y] list: %w", err)
	}
	if len(xs) != 2 {
		return fmt.Errorf("vector must have 2 components, got %d", len(xs))
	}
	v[0], v[1] = xs[0], xs[1]
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
