package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/wireframe/engine/assets/loaders"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

const triangleObj = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want metadata.ResourceType
	}{
		{"meshes/cube.obj", metadata.ResourceTypeMesh},
		{"scenes/default.toml", metadata.ResourceTypeScene},
		{"textures/wall.png", metadata.ResourceTypeNone},
		{"README", metadata.ResourceTypeNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := determineAssetType(tt.path); got != tt.want {
				t.Errorf("determineAssetType(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestAssetManagerIndexAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "meshes", "tri.obj"), triangleObj)
	writeFile(t, filepath.Join(dir, "scenes", "one.toml"), "[[objects]]\nname = \"tri\"\nmesh = \"../meshes/tri.obj\"\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	am := NewAssetManager(core.NewEventSystem())
	if err := am.Initialize(dir, false); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer am.Shutdown()

	if all := am.Assets(metadata.ResourceTypeNone); len(all) != 2 {
		t.Fatalf("indexed %v", all)
	}
	scenes := am.Assets(metadata.ResourceTypeScene)
	if len(scenes) != 1 || scenes[0].Path != filepath.Join(dir, "scenes", "one.toml") {
		t.Fatalf("scenes = %v", scenes)
	}

	res, err := am.LoadAsset(scenes[0].Path, metadata.ResourceTypeNone, nil)
	if err != nil {
		t.Fatalf("LoadAsset scene: %v", err)
	}
	scene := res.Data.(*loaders.SceneConfig)
	meshRes, err := am.LoadAsset(scene.MeshPath(scene.Objects[0]), metadata.ResourceTypeMesh, nil)
	if err != nil {
		t.Fatalf("LoadAsset mesh: %v", err)
	}
	if mesh := meshRes.Data.(*metadata.Mesh); len(mesh.Triangles) != 1 {
		t.Errorf("mesh = %v", mesh)
	}
	if err := am.UnloadAsset(meshRes); err != nil || meshRes.Data != nil {
		t.Errorf("UnloadAsset: %v", err)
	}

	if _, err := am.LoadAsset(filepath.Join(dir, "notes.txt"), metadata.ResourceTypeNone, nil); !errors.Is(err, ErrUnknownAssetType) {
		t.Errorf("expected ErrUnknownAssetType, got %v", err)
	}
}

func TestAssetManagerMissingDirectory(t *testing.T) {
	am := NewAssetManager(core.NewEventSystem())
	if err := am.Initialize(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
	am.Shutdown()
	if err := am.Initialize(t.TempDir(), false); !errors.Is(err, ErrAssetManagerClosed) {
		t.Errorf("expected ErrAssetManagerClosed, got %v", err)
	}
}

func TestAssetManagerWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	writeFile(t, path, triangleObj)

	events := core.NewEventSystem()
	changed := make(chan string, 16)
	events.Register(core.EVENT_CODE_ASSET_CHANGED, t, func(context core.EventContext) bool {
		changed <- context.Data.(*core.AssetEvent).Path
		return true
	})

	am := NewAssetManager(events)
	if err := am.Initialize(dir, true); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer am.Shutdown()

	writeFile(t, path, triangleObj+"f 3 2 1\n")
	writeFile(t, filepath.Join(dir, "ignored.txt"), "x")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		events.Dispatch()
		select {
		case p := <-changed:
			if p != path {
				t.Fatalf("changed path = %s, want %s", p, path)
			}
			return
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("no asset change event within the deadline")
}
