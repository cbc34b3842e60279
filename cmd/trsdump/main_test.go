package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/trsdemo/common"
	"github.com/milk9111/trsdemo/prefabs"
	"github.com/milk9111/trsdemo/scene"
)

func TestDumpOneFrame(t *testing.T) {
	model := scene.NewModel(mgl32.Ident4(), scene.Motion{MovementSpeed: 1, RotationRate: common.Tau / 4, Axis: common.Vec2{1, 0}})

	var buf bytes.Buffer
	dump(&buf, model, scene.NewMesh(), 1, 1)
	out := buf.String()

	if strings.Count(out, "frame ") != 2 {
		t.Fatalf("expected frames 0 and 1, got:\n%s", out)
	}
	if !strings.Contains(out, "frame 1 angle=1.570796 offset=(1.000000, 0.000000)") {
		t.Fatalf("missing frame 1 state:\n%s", out)
	}
	// the centre vertex only sees the translation
	if !strings.Contains(out, "  v0 ( 1.000000,  0.000000)") {
		t.Fatalf("unexpected centre position:\n%s", out)
	}
}

func TestLoadSpecFromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "fast.yaml")
	if err := os.WriteFile(good, []byte("movement_speed: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := loadSpec("ignored", good)
	if err != nil {
		t.Fatalf("loadSpec: %v", err)
	}
	if spec.MovementSpeed != 4 || spec.Builder != prefabs.BuilderLibrary {
		t.Fatalf("unexpected spec %+v", spec)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("axis: [0, 0]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSpec("", bad); !errors.Is(err, prefabs.ErrZeroAxis) {
		t.Fatalf("expected ErrZeroAxis, got %v", err)
	}

	if _, err := loadSpec("", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
