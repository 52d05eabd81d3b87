package systems

import (
	"fmt"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
	"github.com/spaghettifunk/wireframe/engine/renderer/views"
)

type RendererSystem struct {
	backend renderer.RendererBackend
	views   []views.RenderView

	// application
	AppName   string
	AppWidth  int
	AppHeight int

	// Draw the text overlay on top of the wireframes.
	ShowOverlay bool

	// The current framebuffer width.
	FramebufferWidth int
	// The current framebuffer height.
	FramebufferHeight int
	// Indicates if a resize arrived since the last frame.
	Resizing bool

	FrameNumber uint64
	// Counters of the last drawn frame.
	LastStats metadata.RenderStats
}

func NewRendererSystem(appName string, appWidth, appHeight int, backend renderer.RendererBackend) (*RendererSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("func NewRendererSystem - a backend is required")
	}
	return &RendererSystem{
		backend:           backend,
		AppName:           appName,
		AppWidth:          appWidth,
		AppHeight:         appHeight,
		FramebufferWidth:  appWidth,
		FramebufferHeight: appHeight,
	}, nil
}

func (r *RendererSystem) Initialize() error {
	r.FrameNumber = 0
	r.Resizing = false
	if err := r.backend.Initialize(r.AppName, r.FramebufferWidth, r.FramebufferHeight); err != nil {
		return err
	}
	core.LogInfo("renderer initialized at %dx%d", r.FramebufferWidth, r.FramebufferHeight)
	return nil
}

func (r *RendererSystem) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *RendererSystem) Backend() renderer.RendererBackend {
	return r.backend
}

// RegisterView appends a view. Views are drawn in registration order.
func (r *RendererSystem) RegisterView(view views.RenderView) error {
	for _, v := range r.views {
		if v.Name() == view.Name() {
			return fmt.Errorf("render view '%s' already registered", view.Name())
		}
	}
	r.views = append(r.views, view)
	core.LogDebug("render view '%s' registered", view.Name())
	return nil
}

/**
 * @brief Records a new framebuffer size. It is applied at the start of the next
 * frame, on the frame goroutine.
 */
func (r *RendererSystem) OnResize(width, height int) {
	if width == r.FramebufferWidth && height == r.FramebufferHeight {
		return
	}
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	r.Resizing = true
}

/**
 * @brief Draws one frame: applies a pending resize, then lets every view draw
 * into the backend framebuffer and presents.
 */
func (r *RendererSystem) DrawFrame(packet *metadata.RenderPacket) error {
	r.FrameNumber++
	packet.Frame = r.FrameNumber
	packet.ShowOverlay = r.ShowOverlay
	packet.Stats = metadata.RenderStats{}

	if r.Resizing {
		if err := r.backend.Resized(r.FramebufferWidth, r.FramebufferHeight); err != nil {
			return err
		}
		for _, view := range r.views {
			if err := view.OnResize(r.FramebufferWidth, r.FramebufferHeight); err != nil {
				return fmt.Errorf("render view '%s' resize: %w", view.Name(), err)
			}
		}
		core.LogDebug("framebuffer resized to %dx%d", r.FramebufferWidth, r.FramebufferHeight)
		r.Resizing = false
	}

	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		return err
	}

	fb := r.backend.Framebuffer()
	for _, view := range r.views {
		if err := view.OnRender(fb, packet); err != nil {
			core.LogError("render view '%s' failed: %s", view.Name(), err)
			return err
		}
	}
	r.LastStats = packet.Stats

	// End the frame. If this fails, it is likely unrecoverable.
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		err := fmt.Errorf("backend func EndFrame failed: %w", err)
		core.LogError("%s", err)
		return err
	}

	return nil
}
