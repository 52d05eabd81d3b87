package metadata

import (
	"fmt"
	"image/color"
)

/** @brief A pixel position on the drawing surface. The origin is the top-left corner. */
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

/**
 * @brief The drawing surface the wireframe pipeline submits to. The pipeline only
 * needs these two primitives; everything else (windowing, presenting) lives behind
 * the backend.
 */
type Framebuffer interface {
	/**
	 * @brief Draws connected line segments between consecutive points, closing the
	 * loop back to the first point when closed is true.
	 */
	DrawPolyline(colour color.RGBA, closed bool, points []Point) error
	/** @brief Fills every pixel with colour. */
	Clear(colour color.RGBA) error
	/** @brief The size of the surface in pixels. */
	Size() (width, height int)
}
