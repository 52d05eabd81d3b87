package engine

import (
	"time"

	"github.com/spaghettifunk/wireframe/engine/core"
)

type ApplicationConfig struct {
	// Framebuffer starting width.
	StartWidth int
	// Framebuffer starting height.
	StartHeight int
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel

	// Frames per second the loop aims for.
	TargetFPS int
	// Stop after this long. 0 runs until quit.
	Duration time.Duration
	// Stop after this many frames. 0 runs until quit.
	Frames uint64

	// Run without a window.
	Headless bool
	// Directory headless frames are written to. Empty writes nothing.
	OutDir string
	// Write every n-th headless frame. 0 only writes the last one.
	SaveEvery uint64

	// The scene file to show.
	ScenePath string
	// The directory indexed for assets. Empty uses the directory of the scene.
	AssetDir string
	// Reload meshes and the scene when they change on disk.
	Watch bool
	// Draw frame statistics on top of the wireframes.
	ShowOverlay bool
	// Workers parsing meshes at start-up. 0 uses the CPU count.
	Workers int
}
