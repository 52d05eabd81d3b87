package systems

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spaghettifunk/wireframe/engine/assets"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

var ErrMeshNotLoaded = errors.New("mesh not loaded")

type meshReference struct {
	mesh           *metadata.Mesh
	referenceCount uint32
}

/**
 * @brief Keeps one copy of every mesh file in memory, shared by all the objects
 * that use it. Meshes are keyed by their cleaned path and released when the last
 * object lets go of them. A preloaded mesh nobody acquired stays until Shutdown.
 */
type MeshSystem struct {
	assets *assets.AssetManager
	jobs   *JobSystem

	mutex  sync.Mutex
	meshes map[string]*meshReference
}

func NewMeshSystem(am *assets.AssetManager, js *JobSystem) (*MeshSystem, error) {
	if am == nil {
		return nil, fmt.Errorf("func NewMeshSystem - an asset manager is required")
	}
	return &MeshSystem{
		assets: am,
		jobs:   js,
		meshes: make(map[string]*meshReference),
	}, nil
}

func (ms *MeshSystem) load(path string) (*metadata.Mesh, *metadata.Resource, error) {
	resource, err := ms.assets.LoadAsset(path, metadata.ResourceTypeMesh, nil)
	if err != nil {
		return nil, nil, err
	}
	mesh, ok := resource.Data.(*metadata.Mesh)
	if !ok {
		return nil, nil, fmt.Errorf("%w: resource %s holds %T, not a mesh", core.ErrTypeMismatch, path, resource.Data)
	}
	return mesh, resource, nil
}

/**
 * @brief Returns the mesh stored at path, loading it the first time. Every call
 * must be paired with a Release.
 */
func (ms *MeshSystem) Acquire(path string) (*metadata.Mesh, error) {
	path = filepath.Clean(path)

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if ref, exists := ms.meshes[path]; exists {
		ref.referenceCount++
		return ref.mesh, nil
	}

	mesh, _, err := ms.load(path)
	if err != nil {
		return nil, err
	}
	ms.meshes[path] = &meshReference{mesh: mesh, referenceCount: 1}
	core.LogDebug("mesh '%s' acquired: %s", path, mesh)
	return mesh, nil
}

// Release drops one reference to the mesh at path and forgets it once none is left.
func (ms *MeshSystem) Release(path string) {
	path = filepath.Clean(path)

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	ref, exists := ms.meshes[path]
	if !exists || ref.referenceCount == 0 {
		core.LogWarn("mesh '%s' released but not acquired", path)
		return
	}
	ref.referenceCount--
	if ref.referenceCount == 0 {
		delete(ms.meshes, path)
		core.LogDebug("mesh '%s' released", path)
	}
}

/**
 * @brief Reads the mesh at path again. The previous mesh is left untouched, objects
 * still drawing it keep a valid triangle list; the returned mesh has its Generation
 * increased and is handed out by later Acquire calls.
 */
func (ms *MeshSystem) Reload(path string) (*metadata.Mesh, error) {
	path = filepath.Clean(path)

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	ref, exists := ms.meshes[path]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrMeshNotLoaded, path)
	}
	mesh, _, err := ms.load(path)
	if err != nil {
		return nil, err
	}
	mesh.Generation = ref.mesh.Generation + 1
	ref.mesh = mesh
	core.LogInfo("mesh '%s' reloaded (generation %d)", path, mesh.Generation)
	return mesh, nil
}

/**
 * @brief Parses the given mesh files in parallel on the job system and keeps them
 * until Shutdown. Meshes already in memory are skipped. Returns once every job
 * finished, with the failures joined.
 */
func (ms *MeshSystem) Preload(paths []string) error {
	paths = ms.missing(paths)
	if ms.jobs == nil {
		for _, path := range paths {
			if err := ms.preloadOne(path); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	var errMutex sync.Mutex
	var errs []error

	for _, path := range paths {
		path = filepath.Clean(path)
		wg.Add(1)
		err := ms.jobs.Submit(metadata.JobTask{
			InputParams: &metadata.MeshLoadParams{ResourceName: path},
			OnStart:     ms.meshLoadJobStart,
			OnComplete:  ms.meshLoadJobSuccess,
			OnFailure: func(params interface{}, err error) {
				errMutex.Lock()
				errs = append(errs, err)
				errMutex.Unlock()
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			errMutex.Lock()
			errs = append(errs, err)
			errMutex.Unlock()
			break
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

// missing returns the cleaned paths, without duplicates, of the meshes not in memory yet.
func (ms *MeshSystem) missing(paths []string) []string {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		path = filepath.Clean(path)
		if _, loaded := ms.meshes[path]; loaded || seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}

func (ms *MeshSystem) preloadOne(path string) error {
	params, err := ms.meshLoadJobStart(&metadata.MeshLoadParams{ResourceName: filepath.Clean(path)})
	if err != nil {
		return err
	}
	ms.meshLoadJobSuccess(params)
	return nil
}

/**
 * @brief Called when a mesh loading job begins, on a worker goroutine.
 *
 * @param params *metadata.MeshLoadParams naming the file.
 * @return The same params with the mesh and its resource filled in.
 */
func (ms *MeshSystem) meshLoadJobStart(params interface{}) (interface{}, error) {
	loadParams, ok := params.(*metadata.MeshLoadParams)
	if !ok {
		return nil, fmt.Errorf("%w: failed to cast params to `*metadata.MeshLoadParams`", core.ErrTypeMismatch)
	}
	mesh, resource, err := ms.load(loadParams.ResourceName)
	if err != nil {
		return nil, err
	}
	loadParams.OutMesh = mesh
	loadParams.MeshResource = resource
	return loadParams, nil
}

/**
 * @brief Called when the job completes successfully.
 *
 * @param result The *metadata.MeshLoadParams returned by meshLoadJobStart.
 */
func (ms *MeshSystem) meshLoadJobSuccess(result interface{}) {
	loadParams := result.(*metadata.MeshLoadParams)

	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	if _, exists := ms.meshes[loadParams.ResourceName]; !exists {
		ms.meshes[loadParams.ResourceName] = &meshReference{mesh: loadParams.OutMesh}
	}
	core.LogDebug("Successfully loaded mesh '%s' (%d bytes).", loadParams.ResourceName, loadParams.MeshResource.DataSize)
}

// ReferenceCount reports how many objects hold the mesh at path.
func (ms *MeshSystem) ReferenceCount(path string) (uint32, bool) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	ref, exists := ms.meshes[filepath.Clean(path)]
	if !exists {
		return 0, false
	}
	return ref.referenceCount, true
}

// IsLoaded reports whether the mesh at path is held in memory.
func (ms *MeshSystem) IsLoaded(path string) bool {
	_, loaded := ms.ReferenceCount(path)
	return loaded
}

func (ms *MeshSystem) Shutdown() error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	for path, ref := range ms.meshes {
		if ref.referenceCount > 0 {
			core.LogWarn("mesh '%s' still has %d references at shutdown", path, ref.referenceCount)
		}
	}
	ms.meshes = make(map[string]*meshReference)
	return nil
}
