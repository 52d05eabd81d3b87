package loaders

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

const sampleScene = `
name = "sample"

[camera]
fov = 90
position = [0, 1, 0]
orbit = [0, -1, 0]

[[objects]]
name = "front"
mesh = "meshes/cube.obj"
position = [0, 0, 5]
scale = 2
colour = "#ff8000"
bias = { rotation = [0, 1, 1] }

[[objects]]
name = "side"
id = "3f1c4c9e-5a4b-4d59-9a7e-0e6a1f1b2c3d"
mesh = "/abs/tetra.obj"
position = [5.5, 0, 0]
scale = [1, 2, 3]
`

func TestParseScene(t *testing.T) {
	scene, err := ParseScene(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if scene.Name != "sample" || len(scene.Objects) != 2 {
		t.Fatalf("unexpected scene %+v", scene)
	}

	if scene.Camera.Fov != 90 || scene.Camera.Near != DefaultCameraNear || scene.Camera.Far != DefaultCameraFar {
		t.Errorf("camera = %+v", scene.Camera)
	}
	camera, err := scene.Camera.Transform()
	if err != nil {
		t.Fatal(err)
	}
	if camera.Position() != math.NewVec3(0, 1, 0) || camera.Scale() != math.NewVec3One() {
		t.Errorf("camera transform = %v", camera)
	}
	if orbit, _ := scene.Camera.OrbitRate(); orbit != math.NewVec3(0, -1, 0) {
		t.Errorf("orbit = %v", orbit)
	}

	front := scene.Objects[0]
	transform, err := front.Transform()
	if err != nil {
		t.Fatal(err)
	}
	if transform.Position() != math.NewVec3(0, 0, 5) || transform.Scale() != math.NewVec3(2, 2, 2) {
		t.Errorf("front transform = %v", transform)
	}
	bias, err := front.BiasTransform()
	if err != nil {
		t.Fatal(err)
	}
	if bias.Rotation() != math.NewVec3(0, 1, 1) || bias.Position() != math.NewVec3Zero() || bias.Scale() != math.NewVec3Zero() {
		t.Errorf("front bias = %v", bias)
	}
	if c, _ := front.RGBA(); c != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("front colour = %v", c)
	}

	side := scene.Objects[1]
	transform, _ = side.Transform()
	if transform.Position() != math.NewVec3(5.5, 0, 0) || transform.Scale() != math.NewVec3(1, 2, 3) {
		t.Errorf("side transform = %v", transform)
	}
	if c, _ := side.RGBA(); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("side default colour = %v", c)
	}

	scene.BaseDir = "assets/scenes"
	if p := scene.MeshPath(front); p != filepath.Join("assets/scenes", "meshes/cube.obj") {
		t.Errorf("relative mesh path = %s", p)
	}
	if p := scene.MeshPath(side); p != "/abs/tetra.obj" {
		t.Errorf("absolute mesh path = %s", p)
	}
}

func TestParseSceneInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"unknown field", "[camera]\nzoom = 2\n", ErrInvalidScene},
		{"not toml", "[camera\n", ErrInvalidScene},
		{"object without mesh", "[[objects]]\nname = \"a\"\n", ErrInvalidScene},
		{"object without name", "[[objects]]\nmesh = \"a.obj\"\n", ErrInvalidScene},
		{"bad id", "[[objects]]\nname = \"a\"\nmesh = \"a.obj\"\nid = \"nope\"\n", ErrInvalidScene},
		{"bad colour", "[[objects]]\nname = \"a\"\nmesh = \"a.obj\"\ncolour = \"#ggg000\"\n", ErrInvalidScene},
		{"short colour", "[[objects]]\nname = \"a\"\nmesh = \"a.obj\"\ncolour = \"#fff\"\n", ErrInvalidScene},
		{"two component scale", "[[objects]]\nname = \"a\"\nmesh = \"a.obj\"\nscale = [1, 2]\n", core.ErrTypeMismatch},
		{"five component position", "[[objects]]\nname = \"a\"\nmesh = \"a.obj\"\nposition = [1, 2, 3, 4, 5]\n", core.ErrTypeMismatch},
		{"string position", "[[objects]]\nname = \"a\"\nmesh = \"a.obj\"\nposition = \"up\"\n", core.ErrTypeMismatch},
		{"string in list", "[camera]\nrotation = [0, \"x\", 0]\n", core.ErrTypeMismatch},
		{"bad orbit", "[camera]\norbit = [1, 1]\n", core.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScene(strings.NewReader(tt.src)); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestParseSceneDefaults(t *testing.T) {
	scene, err := ParseScene(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if scene.Camera.Fov != DefaultCameraFov || scene.Camera.Near != DefaultCameraNear || scene.Camera.Far != DefaultCameraFar {
		t.Errorf("camera defaults = %+v", scene.Camera)
	}
	if len(scene.Objects) != 0 {
		t.Errorf("objects = %v", scene.Objects)
	}
}

func TestSceneLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	if err := os.WriteFile(path, []byte("[[objects]]\nname = \"a\"\nmesh = \"cube.obj\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := (&SceneLoader{}).Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	scene, ok := res.Data.(*SceneConfig)
	if !ok || res.Type != metadata.ResourceTypeScene {
		t.Fatalf("unexpected resource %+v", res)
	}
	if scene.Name != "demo" || scene.BaseDir != dir {
		t.Errorf("name %q base %q", scene.Name, scene.BaseDir)
	}
	if p := scene.MeshPath(scene.Objects[0]); p != filepath.Join(dir, "cube.obj") {
		t.Errorf("mesh path = %s", p)
	}
}
