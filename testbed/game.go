package testbed

import (
	"fmt"

	"github.com/spaghettifunk/wireframe/engine"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/components"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  int
	height int

	elapsed float64
	frames  uint64
	// Show the camera pose on the HUD.
	showPose bool
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				width:  config.StartWidth,
				height: config.StartHeight,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	if g.camera() == nil {
		return fmt.Errorf("scene '%s' has no camera", g.SystemManager.SceneSystem.Name)
	}

	for _, obj := range g.SystemManager.SceneSystem.Objects() {
		core.LogDebug("loaded %s", obj)
	}

	g.SystemManager.Events.Register(core.EVENT_CODE_KEY_PRESSED, g, g.gameOnKey)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.elapsed += deltaTime
	state.frames++
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)
	camera := g.camera()
	if !state.showPose || camera == nil {
		return nil
	}

	pos := camera.Transform().Position()
	rot := camera.Transform().Rotation()
	packet.Overlay = append(packet.Overlay,
		fmt.Sprintf("Pos=[%7.3f %7.3f %7.3f] Rot=[%7.3f %7.3f %7.3f]",
			pos.X, pos.Y, pos.Z,
			math.RadToDeg(rot.X), math.RadToDeg(rot.Y), math.RadToDeg(rot.Z)),
		fmt.Sprintf("Size=%dx%d  t=%.1fs", state.width, state.height, state.elapsed),
	)
	return nil
}

func (g *TestGame) OnResize(width int, height int) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogDebug("testbed ran %d frames in %.2fs", state.frames, state.elapsed)

	if g.SystemManager != nil {
		g.SystemManager.Events.Unregister(core.EVENT_CODE_KEY_PRESSED, g)
	}
	return nil
}

// Keys returns the key codes the testbed handles on top of the scene.
func (g *TestGame) Keys() []core.KeyCode {
	return []core.KeyCode{core.KEY_TAB, core.KEY_ENTER}
}

// camera is the one the scene shows right now. A reset or a reload replaces it.
func (g *TestGame) camera() *components.Camera {
	if g.SystemManager == nil || g.SystemManager.SceneSystem == nil {
		return nil
	}
	return g.SystemManager.SceneSystem.Camera()
}

func (g *TestGame) gameOnKey(ec core.EventContext) bool {
	key, ok := ec.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	state := g.State.(*gameState)

	switch key.KeyCode {
	case core.KEY_TAB:
		state.showPose = !state.showPose
		return true
	case core.KEY_ENTER:
		if camera := g.camera(); camera != nil {
			core.LogInfo("%s", camera)
		}
		return true
	}
	return false
}
