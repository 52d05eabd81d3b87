package components

import (
	"fmt"
	"image/color"

	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

var clearColour = color.RGBA{R: 0, G: 0, B: 0, A: 255}

/**
 * @brief Takes a local-space point through the model-view-projection matrix:
 * lift to w = 1, multiply, then divide by w.
 * Fails with core.ErrDegenerateProjection when the point lands on w = 0.
 */
func Project(point math.Vec3, mvp math.Mat4) (math.Vec3, error) {
	return mvp.MulVec4(point.ToHomogeneous()).ToCartesian()
}

// IsClipped reports whether any coordinate of a projected point is outside [-1, 1].
func IsClipped(ndc math.Vec3) bool {
	return ndc.X < -1 || ndc.X > 1 ||
		ndc.Y < -1 || ndc.Y > 1 ||
		ndc.Z < -1 || ndc.Z > 1
}

/**
 * @brief Maps a point in normalized device coordinates to a pixel of the viewport.
 * x and y go from [-1, 1] to [0, size]; there is no vertical flip, so +y points
 * down on a surface whose origin is the top-left corner.
 * @return The pixel and the depth, (z + 1) * clip midpoint.
 */
func (c *Camera) ViewportTransform(ndc math.Vec3) (metadata.Point, float64) {
	halfWidth, halfHeight := c.HalfSize()
	p := metadata.Point{
		X: int((ndc.X + 1) * float64(halfWidth)),
		Y: int((ndc.Y + 1) * float64(halfHeight)),
	}
	return p, (ndc.Z + 1) * c.ClipMidpoint()
}

// Clear fills the framebuffer with black.
func (c *Camera) Clear(fb metadata.Framebuffer) error {
	return fb.Clear(clearColour)
}

/**
 * @brief Draws the edges of every triangle of mesh, placed by transform, as seen by
 * the camera. Each vertex is tested against the [-1, 1] cube after projection:
 *  - no vertex clipped: a closed outline A, B, C;
 *  - one vertex clipped: the single edge between the two others, left open;
 *  - two or more clipped: nothing.
 * Edges are never cut at the cube boundary.
 *
 * The first projection or drawing error stops the render and is returned together
 * with the counters gathered so far.
 */
func (c *Camera) RenderWireframe(fb metadata.Framebuffer, transform *math.Transform, mesh *metadata.Mesh, colour color.RGBA) (metadata.RenderStats, error) {
	stats := metadata.RenderStats{}
	if mesh == nil {
		return stats, nil
	}

	vp, err := c.ViewProjection()
	if err != nil {
		return stats, err
	}
	mvp := vp.Mul(transform.ModelMatrix())

	var (
		projected [3]math.Vec3
		clipped   [3]bool
		points    = make([]metadata.Point, 0, 3)
	)
	for i, tri := range mesh.Triangles {
		clippedCount := 0
		for v := range tri {
			ndc, err := Project(tri[v], mvp)
			if err != nil {
				return stats, fmt.Errorf("%s triangle %d: %w", mesh.Name, i, err)
			}
			projected[v] = ndc
			clipped[v] = IsClipped(ndc)
			if clipped[v] {
				clippedCount++
			}
		}

		if clippedCount >= 2 {
			stats.Dropped++
			continue
		}

		points = points[:0]
		for v := range projected {
			if !clipped[v] {
				p, _ := c.ViewportTransform(projected[v])
				points = append(points, p)
			}
		}

		closed := clippedCount == 0
		if err := fb.DrawPolyline(colour, closed, points); err != nil {
			return stats, fmt.Errorf("%s triangle %d: %w", mesh.Name, i, err)
		}
		if closed {
			stats.Submitted++
		} else {
			stats.Partial++
		}
	}
	return stats, nil
}
