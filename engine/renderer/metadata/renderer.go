package metadata

import "fmt"

/**
 * @brief Everything the renderer needs to draw one frame.
 */
type RenderPacket struct {
	/** @brief Seconds since the previous frame. */
	DeltaTime float64
	/** @brief The number of the frame being drawn, starting at 1. */
	Frame uint64
	/** @brief Lines of text drawn on top of the wireframes, if the overlay is on. */
	Overlay []string
	/** @brief Set by the renderer when the overlay is drawn this frame. */
	ShowOverlay bool
	/** @brief Filled in by the views while the frame is drawn. */
	Stats RenderStats
}

/**
 * @brief Counters gathered while drawing wireframes. They add up across
 * objects so a frame can report a single total.
 */
type RenderStats struct {
	/** @brief Triangles drawn as a closed outline. */
	Submitted int
	/** @brief Triangles drawn as a single edge because one vertex was clipped. */
	Partial int
	/** @brief Triangles skipped because two or more vertices were clipped. */
	Dropped int
}

func (rs RenderStats) Add(other RenderStats) RenderStats {
	return RenderStats{
		Submitted: rs.Submitted + other.Submitted,
		Partial:   rs.Partial + other.Partial,
		Dropped:   rs.Dropped + other.Dropped,
	}
}

// Total is the number of triangles considered.
func (rs RenderStats) Total() int {
	return rs.Submitted + rs.Partial + rs.Dropped
}

func (rs RenderStats) String() string {
	return fmt.Sprintf("%d drawn, %d partial, %d dropped", rs.Submitted, rs.Partial, rs.Dropped)
}
