package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/milk9111/trsdemo/common"
)

// Mesh is an arrowhead built from two triangles sharing the edge from the
// centre to the tip:
//
//	        (0,1)
//	         /|\
//	        / | \
//	       /  |  \
//	      / (0,0) \
//	     /  /   \  \
//	    / /       \ \
//	(-1,-1)       (1,-1)
type Mesh struct {
	Positions []common.Vec4
	Colours   []common.Vec4 // premultiplied RGBA
	Indices   []uint32
}

// NewMesh returns the arrowhead with its default colours.
func NewMesh() *Mesh {
	return &Mesh{
		Positions: []common.Vec4{
			{0, 0, 0, 1},
			{0, 1, 0, 1},
			{-1, -1, 0, 1},
			{1, -1, 0, 1},
		},
		Colours: []common.Vec4{
			rgba(colornames.Magenta),
			rgba(colornames.Magenta),
			rgba(colornames.Red),
			rgba(colornames.Blue),
		},
		Indices: []uint32{
			0, 1, 2, // left triangle
			0, 1, 3, // right triangle
		},
	}
}

// SetColours replaces the per-vertex colours. Extra entries are ignored.
func (m *Mesh) SetColours(cs []color.Color) {
	for i := 0; i < len(cs) && i < len(m.Colours); i++ {
		m.Colours[i] = rgba(cs[i])
	}
}

// Upload packs positions and colours into a vertex buffer for
// DrawTrianglesShader32. Positions stay in model space until draw time.
func (m *Mesh) Upload() []ebiten.Vertex {
	vs := make([]ebiten.Vertex, len(m.Positions))
	for i, p := range m.Positions {
		c := m.Colours[i]
		vs[i] = ebiten.Vertex{
			DstX:   p.X(),
			DstY:   p.Y(),
			ColorR: c.X(),
			ColorG: c.Y(),
			ColorB: c.Z(),
			ColorA: c.W(),
		}
	}
	return vs
}

// rgba returns c as premultiplied components in [0, 1], the form ebiten
// expects in vertex colours.
func rgba(c color.Color) common.Vec4 {
	r, g, b, a := c.RGBA()
	return common.Vec4{float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff, float32(a) / 0xffff}
}
