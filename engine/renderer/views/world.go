package views

import (
	"github.com/spaghettifunk/wireframe/engine/renderer/components"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

// WorldSource is what the world view draws, usually the scene system.
type WorldSource interface {
	Camera() *components.Camera
	Render(fb metadata.Framebuffer) metadata.RenderStats
	OnResize(width, height int) error
}

/** @brief Clears the framebuffer through the scene camera and draws every object. */
type RenderViewWorld struct {
	source WorldSource
}

func NewRenderViewWorld(source WorldSource) *RenderViewWorld {
	return &RenderViewWorld{source: source}
}

func (vw *RenderViewWorld) Name() string {
	return "world"
}

func (vw *RenderViewWorld) OnResize(width, height int) error {
	return vw.source.OnResize(width, height)
}

func (vw *RenderViewWorld) OnRender(fb metadata.Framebuffer, packet *metadata.RenderPacket) error {
	camera := vw.source.Camera()
	if camera == nil {
		return nil
	}
	if err := camera.Clear(fb); err != nil {
		return err
	}
	packet.Stats = packet.Stats.Add(vw.source.Render(fb))
	return nil
}
