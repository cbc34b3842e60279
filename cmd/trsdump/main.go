package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/trsdemo/common"
	"github.com/milk9111/trsdemo/prefabs"
	"github.com/milk9111/trsdemo/scene"
)

// trsdump steps a scene's model transform without opening a window and prints
// the matrix and the transformed mesh after every frame.
func main() {
	sceneName := flag.String("scene", "scene", "scene spec name in prefabs/")
	file := flag.String("file", "", "scene spec file to read instead of -scene")
	frames := flag.Int("frames", 12, "number of frames to step")
	dt := flag.Float64("dt", 1, "seconds per frame")
	flag.Parse()

	spec, err := loadSpec(*sceneName, *file)
	if err != nil {
		log.Fatal(err)
	}

	model := scene.NewModel(scene.InitialMatrix(*spec), scene.MotionFromSpec(*spec))
	dump(os.Stdout, model, scene.NewMesh(), *frames, float32(*dt))
}

func loadSpec(name, file string) (*prefabs.SceneSpec, error) {
	if file == "" {
		return prefabs.LoadSceneSpec(name)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("trsdump: read %s: %w", file, err)
	}
	return prefabs.ParseSceneSpec(data)
}

func dump(w io.Writer, model *scene.Model, mesh *scene.Mesh, frames int, dt float32) {
	printFrame(w, 0, model, mesh)
	for i := 1; i <= frames; i++ {
		model.Update(dt)
		printFrame(w, i, model, mesh)
	}
}

func printFrame(w io.Writer, frame int, model *scene.Model, mesh *scene.Mesh) {
	m := model.Matrix()
	fmt.Fprintf(w, "frame %d angle=%.6f offset=(%.6f, %.6f)\n", frame, model.Angle(), model.Offset().X(), model.Offset().Y())
	for col := 0; col < 4; col++ {
		c := m.Col(col)
		fmt.Fprintf(w, "  col%d % .6f % .6f % .6f % .6f\n", col, c.X(), c.Y(), c.Z(), c.W())
	}
	for i, p := range mesh.Positions {
		q := common.Apply(m, p)
		fmt.Fprintf(w, "  v%d (% .6f, % .6f)\n", i, q.X(), q.Y())
	}
}
