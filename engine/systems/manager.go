package systems

import (
	"runtime"

	"github.com/spaghettifunk/wireframe/engine/assets"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer"
	"github.com/spaghettifunk/wireframe/engine/renderer/views"
)

/** @brief The configuration shared by the engine systems. */
type SystemManagerConfig struct {
	AppName string
	Width   int
	Height  int
	/** @brief The directory indexed (and optionally watched) for meshes and scenes. */
	AssetDir string
	/** @brief Reload meshes and scenes when they change on disk. */
	Watch bool
	/** @brief Number of workers parsing meshes at start-up. 0 uses the CPU count. */
	Workers     int
	ShowOverlay bool
}

type SystemManager struct {
	Events         *core.EventSystem
	Input          *core.Input
	AssetManager   *assets.AssetManager
	JobSystem      *JobSystem
	MeshSystem     *MeshSystem
	SceneSystem    *SceneSystem
	RendererSystem *RendererSystem
}

func NewSystemManager(config SystemManagerConfig, events *core.EventSystem, input *core.Input, backend renderer.RendererBackend) (*SystemManager, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	js, err := NewJobSystem(workers, workers*2)
	if err != nil {
		return nil, err
	}

	am := assets.NewAssetManager(events)
	if config.AssetDir != "" {
		if err := am.Initialize(config.AssetDir, config.Watch); err != nil {
			js.Shutdown()
			return nil, err
		}
	}

	ms, err := NewMeshSystem(am, js)
	if err != nil {
		return nil, err
	}
	ss, err := NewSceneSystem(ms, events, input)
	if err != nil {
		return nil, err
	}
	rs, err := NewRendererSystem(config.AppName, config.Width, config.Height, backend)
	if err != nil {
		return nil, err
	}
	rs.ShowOverlay = config.ShowOverlay
	if err := rs.RegisterView(views.NewRenderViewWorld(ss)); err != nil {
		return nil, err
	}
	if err := rs.RegisterView(views.NewRenderViewUI(backend, ss)); err != nil {
		return nil, err
	}

	return &SystemManager{
		Events:         events,
		Input:          input,
		AssetManager:   am,
		JobSystem:      js,
		MeshSystem:     ms,
		SceneSystem:    ss,
		RendererSystem: rs,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.SceneSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.RendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.AssetManager.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
