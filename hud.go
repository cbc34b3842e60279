package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/trsdemo/scene"
)

const hudLineHeight = 14

// HUD prints the model state in the top left corner.
type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(screen *ebiten.Image, model *scene.Model, header string) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = hudLineHeight
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, hudText(model, header), h.face, op)
}

func hudText(model *scene.Model, header string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "angle %.3f rad   offset (%.3f, %.3f)\n", model.Angle(), model.Offset().X(), model.Offset().Y())

	m := model.Matrix()
	for row := 0; row < 4; row++ {
		fmt.Fprintf(&b, "[% .3f % .3f % .3f % .3f]\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
	}
	return b.String()
}
