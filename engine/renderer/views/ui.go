package views

import "github.com/spaghettifunk/wireframe/engine/renderer/metadata"

// OverlaySink receives the text drawn over the next presented frame.
type OverlaySink interface {
	SetOverlay(lines []string)
}

// OverlaySource adds its own lines after the ones in the packet.
type OverlaySource interface {
	Overlay() []string
}

/**
 * @brief Hands the overlay text to the backend. The text is drawn when the frame is
 * presented, on top of everything else. A packet with ShowOverlay unset clears it.
 */
type RenderViewUI struct {
	sink    OverlaySink
	sources []OverlaySource
}

func NewRenderViewUI(sink OverlaySink, sources ...OverlaySource) *RenderViewUI {
	return &RenderViewUI{sink: sink, sources: sources}
}

func (vu *RenderViewUI) Name() string {
	return "ui"
}

func (vu *RenderViewUI) OnResize(width, height int) error {
	return nil
}

func (vu *RenderViewUI) OnRender(fb metadata.Framebuffer, packet *metadata.RenderPacket) error {
	if !packet.ShowOverlay {
		vu.sink.SetOverlay(nil)
		return nil
	}
	lines := append([]string{}, packet.Overlay...)
	for _, source := range vu.sources {
		lines = append(lines, source.Overlay()...)
	}
	vu.sink.SetOverlay(lines)
	return nil
}
