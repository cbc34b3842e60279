package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/trsdemo/prefabs"
	"github.com/milk9111/trsdemo/scene"
)

const (
	baseWidth  = 800
	baseHeight = 800
)

type Game struct {
	frames    int
	debug     bool
	sceneName string

	scene   *scene.Scene
	hud     *HUD
	watcher *prefabs.Watcher
}

func NewGame(sceneName string, debug, watch bool) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(sceneName)
	if err != nil {
		return nil, err
	}

	shader, err := scene.LoadShader(spec.Shader)
	if err != nil {
		return nil, err
	}

	sc, err := scene.New(*spec, shader)
	if err != nil {
		return nil, err
	}
	sc.Debug = debug

	g := &Game{
		debug:     debug,
		sceneName: sceneName,
		scene:     sc,
		hud:       NewHUD(),
	}

	if watch {
		w, err := prefabs.WatchDisk()
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	g.reload()

	g.scene.Update(1 / float32(ebiten.TPS()))
	return nil
}

type reloadKind int

const (
	reloadNone reloadKind = iota
	reloadSpec
	reloadShader
)

// reloadTarget decides what a changed file means for a scene loaded from
// sceneName that draws with shaderName.
func reloadTarget(path, sceneName, shaderName string) reloadKind {
	name := filepath.Base(path)
	switch {
	case prefabs.IsSpecFile(path) && name == prefabs.SpecFile(sceneName):
		return reloadSpec
	case prefabs.IsShaderFile(path) && name == prefabs.ShaderFile(shaderName):
		return reloadShader
	}
	return reloadNone
}

// reload applies spec and shader edits picked up by the watcher. A file that
// fails to load or compile is logged and the running scene is left as is.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}

	for _, err := range g.watcher.PendingErrors() {
		log.Printf("watch prefabs: %v", err)
	}

	for _, path := range g.watcher.Pending() {
		name := filepath.Base(path)
		switch reloadTarget(path, g.sceneName, g.scene.Spec().Shader) {
		case reloadSpec:
			g.reloadSpec(name)
		case reloadShader:
			g.reloadShader(g.scene.Spec().Shader)
		}
	}
}

func (g *Game) reloadSpec(name string) {
	spec, err := prefabs.LoadSceneSpec(g.sceneName)
	if err != nil {
		log.Printf("reload %s: %v", name, err)
		return
	}

	prev := g.scene.Spec().Shader
	if err := g.scene.Reconfigure(*spec); err != nil {
		log.Printf("reload %s: %v", name, err)
		return
	}
	log.Printf("reloaded %s", name)

	if prefabs.ShaderFile(spec.Shader) != prefabs.ShaderFile(prev) {
		g.reloadShader(spec.Shader)
	}
}

func (g *Game) reloadShader(name string) {
	shader, err := scene.LoadShader(name)
	if err != nil {
		log.Printf("reload %s: %v", prefabs.ShaderFile(name), err)
		return
	}
	if err := g.scene.SetShader(shader); err != nil {
		log.Printf("reload %s: %v", prefabs.ShaderFile(name), err)
		return
	}
	log.Printf("reloaded %s", prefabs.ShaderFile(name))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if bg := g.scene.Background(); bg != nil {
		screen.Fill(bg)
	}

	g.scene.Draw(screen)

	if g.debug {
		g.hud.Draw(screen, g.scene.Model(), fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
