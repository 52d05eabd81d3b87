package testbed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/wireframe/engine"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/platform"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

const scene = `
[camera]
rotation = [0, 3.141592653589793, 0]

[[objects]]
name = "tri"
mesh = "tri.obj"
position = [0, 0, -5]
`

func newTestEngine(t *testing.T) (*TestGame, *engine.Engine) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte("v -1 -1 0\nv 1 -1 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}

	tg := NewTestGame(&engine.ApplicationConfig{
		Name:        "testbed",
		StartWidth:  160,
		StartHeight: 120,
		TargetFPS:   1000,
		Frames:      3,
		Headless:    true,
		ScenePath:   path,
		Workers:     1,
	})
	e, err := engine.New(tg.Game)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { e.Shutdown() })
	return tg, e
}

func TestTestGameRuns(t *testing.T) {
	tg, e := newTestEngine(t)
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	state := tg.State.(*gameState)
	if state.frames != 3 {
		t.Errorf("frames = %d, want 3", state.frames)
	}
	if tg.camera() != tg.SystemManager.SceneSystem.Camera() {
		t.Error("the testbed should follow the scene camera")
	}
}

func TestTestGamePoseOverlay(t *testing.T) {
	tg, e := newTestEngine(t)

	packet := &metadata.RenderPacket{}
	if err := tg.Render(packet, 0.016); err != nil {
		t.Fatal(err)
	}
	if len(packet.Overlay) != 0 {
		t.Fatalf("overlay = %v, want nothing before TAB", packet.Overlay)
	}

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_TAB}})
	if err := tg.Render(packet, 0.016); err != nil {
		t.Fatal(err)
	}
	if len(packet.Overlay) != 2 || !strings.HasPrefix(packet.Overlay[0], "Pos=") {
		t.Fatalf("overlay = %v, want the camera pose", packet.Overlay)
	}
	if !strings.Contains(packet.Overlay[0], "180.000") {
		t.Errorf("overlay %q should show the yaw in degrees", packet.Overlay[0])
	}
}

func TestTestGameResize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"grow", 320, 240},
		{"shrink", 80, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := NewTestGame(&engine.ApplicationConfig{StartWidth: 160, StartHeight: 120})
			if err := tg.OnResize(tt.width, tt.height); err != nil {
				t.Fatal(err)
			}
			state := tg.State.(*gameState)
			if state.width != tt.width || state.height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", state.width, state.height, tt.width, tt.height)
			}
		})
	}
}

func pressKey(e *engine.Engine, key core.KeyCode) {
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: key}})
}

func TestTestGameFollowsCameraAfterReset(t *testing.T) {
	tg, e := newTestEngine(t)
	before := tg.SystemManager.SceneSystem.Camera()

	pressKey(e, core.KEY_R)
	after := tg.SystemManager.SceneSystem.Camera()
	if after == nil {
		t.Fatal("the scene has no camera after a reset")
	}
	if got := tg.camera(); got != after {
		t.Fatalf("testbed camera %p, scene camera %p (before reset %p)", got, after, before)
	}

	after.Transform().SetRotation(math.NewVec3(0, math.K_HALF_PI, 0))
	pressKey(e, core.KEY_TAB)
	packet := &metadata.RenderPacket{}
	if err := tg.Render(packet, 0.016); err != nil {
		t.Fatal(err)
	}
	if len(packet.Overlay) == 0 || !strings.Contains(packet.Overlay[0], " 90.000") {
		t.Errorf("overlay = %v, want the pose of the camera after the reset", packet.Overlay)
	}
}

func TestTestGameKeysReachTheWindow(t *testing.T) {
	tg, _ := newTestEngine(t)

	listed := map[core.KeyCode]bool{}
	for _, key := range tg.Keys() {
		listed[key] = true
	}
	for code := core.KeyCode(0); code < core.KEYS_MAX_KEYS; code++ {
		handled := tg.gameOnKey(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: code}})
		if handled && !listed[code] {
			t.Errorf("key 0x%02X is handled but missing from Keys()", code)
		}
	}

	keys := append(tg.Keys(), tg.SystemManager.SceneSystem.Keys()...)
	for _, key := range keys {
		if !platform.ForwardsKey(key) {
			t.Errorf("key 0x%02X is handled but the window never forwards it", key)
		}
	}
}
