package views

import "github.com/spaghettifunk/wireframe/engine/renderer/metadata"

/**
 * @brief One layer of a frame. The renderer draws its views in the order
 * they were registered, so the world goes first and the ui last.
 */
type RenderView interface {
	Name() string
	/** @brief Called on the frame goroutine once a new framebuffer size is applied. */
	OnResize(width, height int) error
	/**
	 * @brief Draws the view into fb. Views may add to packet.Stats.
	 * An error aborts the frame.
	 */
	OnRender(fb metadata.Framebuffer, packet *metadata.RenderPacket) error
}
