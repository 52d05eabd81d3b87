package renderer

import (
	"image"

	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(appName string, width, height int) error
	Shutdown() error
	Resized(width, height int) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	// Framebuffer is the surface draws go to between BeginFrame and EndFrame.
	Framebuffer() metadata.Framebuffer
	// SetOverlay sets the text lines drawn over the next presented frame.
	SetOverlay(lines []string)
	// Frame is the last image completed by EndFrame, nil before the first one.
	Frame() *image.RGBA
}
