package systems

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/wireframe/engine/assets/loaders"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/components"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

const (
	// Units per second the camera moves while a movement key is held.
	CameraMoveSpeed float64 = 5.0
	// Radians per second the camera turns while an arrow key is held.
	CameraTurnSpeed float64 = 1.0
)

// Keys the scene reacts to: held movement keys plus P (pause) and R (reset).
var sceneKeys = []core.KeyCode{
	core.KEY_W, core.KEY_S, core.KEY_A, core.KEY_D, core.KEY_SPACE,
	core.KEY_LEFT, core.KEY_RIGHT, core.KEY_UP, core.KEY_DOWN,
	core.KEY_P, core.KEY_R,
}

type sceneObject struct {
	object   *components.GameObject
	meshPath string
}

/**
 * @brief Owns the camera and the game objects of the scene being shown. It
 * advances them every frame and draws them as wireframes.
 */
type SceneSystem struct {
	Name string

	meshes *MeshSystem
	events *core.EventSystem
	input  *core.Input

	config    *loaders.SceneConfig
	scenePath string
	camera    *components.Camera
	orbit     math.Vec3
	objects   []*sceneObject
	paused    bool
	stats     metadata.RenderStats
}

func NewSceneSystem(meshes *MeshSystem, events *core.EventSystem, input *core.Input) (*SceneSystem, error) {
	if meshes == nil || events == nil {
		return nil, fmt.Errorf("func NewSceneSystem - a mesh system and an event system are required")
	}
	ss := &SceneSystem{
		meshes: meshes,
		events: events,
		input:  input,
	}
	events.Register(core.EVENT_CODE_ASSET_CHANGED, ss, ss.onAssetChanged)
	events.Register(core.EVENT_CODE_KEY_PRESSED, ss, ss.onKeyPressed)
	return ss, nil
}

/**
 * @brief Loads the scene file at path and builds it for a viewport of width x height.
 * The file is read again whenever it changes on disk while being watched.
 */
func (ss *SceneSystem) LoadFile(path string, width, height int) error {
	resource, err := ss.meshes.assets.LoadAsset(path, metadata.ResourceTypeScene, nil)
	if err != nil {
		return err
	}
	config, ok := resource.Data.(*loaders.SceneConfig)
	if !ok {
		return fmt.Errorf("%w: resource %s holds %T, not a scene", core.ErrTypeMismatch, path, resource.Data)
	}

	paths := make([]string, 0, len(config.Objects))
	for _, obj := range config.Objects {
		paths = append(paths, config.MeshPath(obj))
	}
	if err := ss.meshes.Preload(paths); err != nil {
		return fmt.Errorf("scene '%s': %w", config.Name, err)
	}

	if err := ss.Load(config, width, height); err != nil {
		return err
	}
	ss.scenePath = filepath.Clean(path)
	return nil
}

/**
 * @brief Builds the camera and the objects described by config, replacing the
 * current scene. On error the current scene is kept.
 */
func (ss *SceneSystem) Load(config *loaders.SceneConfig, width, height int) error {
	camera, err := components.NewCamera(config.Camera.Fov, width, height, config.Camera.Near, config.Camera.Far)
	if err != nil {
		return fmt.Errorf("scene '%s': %w", config.Name, err)
	}
	pose, err := config.Camera.Transform()
	if err != nil {
		return fmt.Errorf("scene '%s' camera: %w", config.Name, err)
	}
	camera.Transform().SetPositionRotationScale(pose.Position(), pose.Rotation(), pose.Scale())
	if err := camera.Update(); err != nil {
		return fmt.Errorf("scene '%s': %w", config.Name, err)
	}
	orbit, err := config.Camera.OrbitRate()
	if err != nil {
		return fmt.Errorf("scene '%s' camera: %w", config.Name, err)
	}

	objects := make([]*sceneObject, 0, len(config.Objects))
	release := func() {
		for _, o := range objects {
			ss.meshes.Release(o.meshPath)
		}
	}
	for _, obj := range config.Objects {
		object, meshPath, err := ss.buildObject(config, obj)
		if err != nil {
			release()
			return fmt.Errorf("scene '%s': %w", config.Name, err)
		}
		objects = append(objects, &sceneObject{object: object, meshPath: meshPath})
	}

	ss.releaseObjects()
	ss.Name = config.Name
	ss.config = config
	ss.camera = camera
	ss.orbit = orbit
	ss.objects = objects
	ss.stats = metadata.RenderStats{}

	core.LogInfo("scene '%s' loaded: %d objects, %s", ss.Name, len(ss.objects), ss.camera)
	return nil
}

func (ss *SceneSystem) buildObject(config *loaders.SceneConfig, obj loaders.ObjectConfig) (*components.GameObject, string, error) {
	transform, err := obj.Transform()
	if err != nil {
		return nil, "", fmt.Errorf("object '%s': %w", obj.Name, err)
	}
	bias, err := obj.BiasTransform()
	if err != nil {
		return nil, "", fmt.Errorf("object '%s' bias: %w", obj.Name, err)
	}
	colour, err := obj.RGBA()
	if err != nil {
		return nil, "", fmt.Errorf("object '%s': %w", obj.Name, err)
	}

	meshPath := filepath.Clean(config.MeshPath(obj))
	mesh, err := ss.meshes.Acquire(meshPath)
	if err != nil {
		return nil, "", fmt.Errorf("object '%s': %w", obj.Name, err)
	}

	object := components.NewGameObject(obj.Name, mesh, transform, bias, colour)
	if obj.ID != "" {
		if id, err := core.ParseIdentifier(obj.ID); err == nil {
			object.ID = id
		}
	}
	return object, meshPath, nil
}

func (ss *SceneSystem) releaseObjects() {
	for _, o := range ss.objects {
		ss.meshes.Release(o.meshPath)
	}
	ss.objects = nil
}

// Reset rebuilds the scene from the configuration it was loaded from.
func (ss *SceneSystem) Reset() error {
	if ss.config == nil {
		return nil
	}
	width, height := ss.camera.Size()
	return ss.Load(ss.config, width, height)
}

/**
 * @brief Advances the scene by deltaTime seconds: held keys move the camera, the
 * camera orbits and every object integrates its bias. Nothing moves while paused.
 */
func (ss *SceneSystem) Update(deltaTime float64) error {
	if ss.camera == nil {
		return nil
	}
	if ss.input != nil {
		ss.handleMovement(deltaTime)
	}
	if ss.paused {
		return nil
	}

	ss.camera.Transform().Rotate(ss.orbit.MulScalar(deltaTime))
	for _, o := range ss.objects {
		o.object.Update(deltaTime)
	}
	return ss.camera.Update()
}

func (ss *SceneSystem) handleMovement(deltaTime float64) {
	move := CameraMoveSpeed * deltaTime
	turn := CameraTurnSpeed * deltaTime

	if ss.input.IsKeyDown(core.KEY_W) {
		ss.camera.MoveForward(move)
	}
	if ss.input.IsKeyDown(core.KEY_S) {
		ss.camera.MoveBackward(move)
	}
	if ss.input.IsKeyDown(core.KEY_A) {
		ss.camera.MoveLeft(move)
	}
	if ss.input.IsKeyDown(core.KEY_D) {
		ss.camera.MoveRight(move)
	}
	if ss.input.IsKeyDown(core.KEY_SPACE) {
		ss.camera.MoveUp(move)
	}
	if ss.input.IsKeyDown(core.KEY_LEFT) {
		ss.camera.Yaw(turn)
	}
	if ss.input.IsKeyDown(core.KEY_RIGHT) {
		ss.camera.Yaw(-turn)
	}
	if ss.input.IsKeyDown(core.KEY_UP) {
		ss.camera.Pitch(turn)
	}
	if ss.input.IsKeyDown(core.KEY_DOWN) {
		ss.camera.Pitch(-turn)
	}
}

/**
 * @brief Draws every object as a wireframe. An object that fails to render is
 * logged and skipped for this frame; the others are still drawn.
 */
func (ss *SceneSystem) Render(fb metadata.Framebuffer) metadata.RenderStats {
	total := metadata.RenderStats{}
	if ss.camera == nil {
		return total
	}
	for _, o := range ss.objects {
		stats, err := o.object.RenderWireframe(fb, ss.camera)
		total = total.Add(stats)
		if err != nil {
			core.LogWarn("skipping %s this frame: %s", o.object.Name, err)
		}
	}
	ss.stats = total
	return total
}

// OnResize follows the viewport size with the camera.
func (ss *SceneSystem) OnResize(width, height int) error {
	if ss.camera == nil {
		return nil
	}
	return ss.camera.Resize(width, height)
}

func (ss *SceneSystem) Camera() *components.Camera {
	return ss.camera
}

func (ss *SceneSystem) Objects() []*components.GameObject {
	out := make([]*components.GameObject, len(ss.objects))
	for i, o := range ss.objects {
		out[i] = o.object
	}
	return out
}

func (ss *SceneSystem) Paused() bool {
	return ss.paused
}

func (ss *SceneSystem) SetPaused(paused bool) {
	ss.paused = paused
}

// Overlay describes the scene in a few lines for the HUD.
func (ss *SceneSystem) Overlay() []string {
	if ss.camera == nil {
		return nil
	}
	state := "running"
	if ss.paused {
		state = "paused"
	}
	p := ss.camera.Transform().Position()
	return []string{
		fmt.Sprintf("scene %s (%s), %d objects", ss.Name, state, len(ss.objects)),
		fmt.Sprintf("camera %.2f %.2f %.2f fov %g", p.X, p.Y, p.Z, ss.camera.Fov()),
		fmt.Sprintf("triangles %s", ss.stats),
	}
}

// Keys returns the key codes the scene handles.
func (ss *SceneSystem) Keys() []core.KeyCode {
	return append([]core.KeyCode(nil), sceneKeys...)
}

func (ss *SceneSystem) onKeyPressed(ec core.EventContext) bool {
	key, ok := ec.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	switch key.KeyCode {
	case core.KEY_P:
		ss.paused = !ss.paused
		core.LogInfo("scene '%s' paused: %t", ss.Name, ss.paused)
		return true
	case core.KEY_R:
		if err := ss.Reset(); err != nil {
			core.LogError("failed to reset scene '%s': %s", ss.Name, err)
		}
		return true
	}
	return false
}

// onAssetChanged reloads the scene file or swaps the meshes of the objects using a changed file.
func (ss *SceneSystem) onAssetChanged(ec core.EventContext) bool {
	changed, ok := ec.Data.(*core.AssetEvent)
	if !ok {
		return false
	}
	path := filepath.Clean(changed.Path)

	if ss.scenePath != "" && path == ss.scenePath {
		width, height := ss.camera.Size()
		if err := ss.LoadFile(path, width, height); err != nil {
			core.LogError("failed to reload scene %s, keeping the current one: %s", path, err)
		}
		return false
	}

	var mesh *metadata.Mesh
	for _, o := range ss.objects {
		if o.meshPath != path {
			continue
		}
		if mesh == nil {
			reloaded, err := ss.meshes.Reload(path)
			if err != nil {
				core.LogError("failed to reload mesh %s, keeping the current one: %s", path, err)
				return false
			}
			mesh = reloaded
		}
		o.object.Mesh = mesh
	}
	return false
}

func (ss *SceneSystem) Shutdown() error {
	ss.events.Unregister(core.EVENT_CODE_ASSET_CHANGED, ss)
	ss.events.Unregister(core.EVENT_CODE_KEY_PRESSED, ss)
	ss.releaseObjects()
	ss.camera = nil
	ss.config = nil
	return nil
}
