package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/platform"
	"github.com/spaghettifunk/wireframe/engine/renderer/canvas"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
	"github.com/spaghettifunk/wireframe/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return "uninitialized"
}

const DEFAULT_TARGET_FPS int = 60

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *ApplicationConfig
	isRunning     bool
	isSuspended   bool
	platform      platform.Platform
	events        *core.EventSystem
	input         *core.Input
	systemManager *systems.SystemManager
	width         int
	height        int
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("func New - a game with an application config is required")
	}
	config := g.ApplicationConfig
	core.SetLevel(config.LogLevel)
	if config.TargetFPS <= 0 {
		config.TargetFPS = DEFAULT_TARGET_FPS
	}
	if config.AssetDir == "" && config.ScenePath != "" {
		config.AssetDir = filepath.Dir(config.ScenePath)
	}

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       config,
		events:       core.NewEventSystem(),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		isRunning:    true,
		width:        config.StartWidth,
		height:       config.StartHeight,
	}
	e.input = core.NewInput(e.events)

	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		AppName:     config.Name,
		Width:       config.StartWidth,
		Height:      config.StartHeight,
		AssetDir:    config.AssetDir,
		Watch:       config.Watch,
		Workers:     config.Workers,
		ShowOverlay: config.ShowOverlay,
	}, e.events, e.input, canvas.New())
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}
	e.systemManager = sm
	g.SystemManager = sm

	frames := sm.RendererSystem.Backend().Frame
	if config.Headless {
		e.platform, err = platform.NewHeadless(platform.HeadlessConfig{
			FPS:       config.TargetFPS,
			Frames:    config.Frames,
			OutDir:    config.OutDir,
			SaveEvery: config.SaveEvery,
		}, frames)
	} else {
		e.platform, err = platform.NewWindow(platform.WindowConfig{
			Title:  config.Name,
			Width:  config.StartWidth,
			Height: config.StartHeight,
			FPS:    config.TargetFPS,
		}, e.input, e.events, frames)
	}
	if err != nil {
		sm.Shutdown()
		return nil, err
	}

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.systemManager.RendererSystem.Initialize(); err != nil {
		return err
	}

	if e.config.ScenePath != "" {
		if err := e.systemManager.SceneSystem.LoadFile(e.config.ScenePath, e.width, e.height); err != nil {
			return err
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Runs the frame loop until the game quits, the configured duration or
 * frame count is reached, or ctx is cancelled.
 */
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run while %s", e.currentStage)
	}
	e.currentStage = EngineStageRunning

	if e.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Duration)
		defer cancel()
	}

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	err := e.platform.Run(ctx, e.step)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		err = nil
	}
	core.LogInfo("%d frames drawn, %.1f fps over the last second", e.metrics.TotalFrames(), e.metrics.FPS())
	return err
}

// step is a single frame: posted events, game update, scene update, draw.
func (e *Engine) step() error {
	e.events.Dispatch()
	if !e.isRunning {
		return platform.ErrQuit
	}

	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	if e.isSuspended {
		return nil
	}

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			return err
		}
	}
	if err := e.systemManager.SceneSystem.Update(delta); err != nil {
		core.LogError("Scene update failed, shutting down: %s", err)
		return err
	}

	packet := &metadata.RenderPacket{DeltaTime: delta}
	if e.metrics.Update(delta) {
		core.LogInfo("%.0f fps, %.2f ms per frame, %s", e.metrics.FPS(), e.metrics.FrameTime(), e.systemManager.RendererSystem.LastStats)
	}
	fps, frameTime := e.metrics.Frame()
	packet.Overlay = []string{fmt.Sprintf("%.0f fps  %.2f ms", fps, frameTime)}

	// Call the game's render routine.
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			return err
		}
	}

	if err := e.systemManager.RendererSystem.DrawFrame(packet); err != nil {
		return err
	}

	// NOTE: Input update/state copying should always be handled
	// after any input should be recorded; I.E. before this line.
	// As a safety, input is the last thing to be updated before
	// this frame ends.
	e.input.Update()
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.clock.Stop()

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.events.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order) of the framebuffer.
func (e *Engine) GetFramebufferSize() (int, int) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) Input() *core.Input {
	return e.input
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) onEvent(ec core.EventContext) bool {
	switch ec.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(ec core.EventContext) bool {
	ke, ok := ec.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ec.Type)
		return false
	}

	if ec.Type == core.EVENT_CODE_KEY_PRESSED {
		switch ke.KeyCode {
		case core.KEY_ESCAPE, core.KEY_Q:
			// NOTE: Technically firing an event to itself, but there may be other listeners.
			e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
			// Block anything else from processing this.
			return true
		}
		core.LogDebug("key 0x%02x pressed in window.", ke.KeyCode)
	} else {
		core.LogDebug("key 0x%02x released in window.", ke.KeyCode)
	}
	return false
}

func (e *Engine) onResized(ec core.EventContext) bool {
	se, ok := ec.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ec.Type)
		return false
	}

	width := int(se.WindowWidth)
	height := int(se.WindowHeight)

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("%s", err.Error())
		}
	}
	e.systemManager.RendererSystem.OnResize(width, height)
	return false
}
