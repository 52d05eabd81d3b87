package components

import (
	"fmt"
	"image/color"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

/**
 * @brief A mesh placed in the world that moves by itself. Every tick its
 * transform advances by Bias scaled by the elapsed time.
 */
type GameObject struct {
	/** @brief A unique identifier, used in logs. */
	ID   string
	Name string
	/** @brief The pose of the object. */
	Transform *math.Transform
	/** @brief The geometry. It may be shared with other objects and is never modified. */
	Mesh *metadata.Mesh
	/** @brief Position, rotation and scale added per second. */
	Bias   *math.Transform
	Colour color.RGBA
}

func NewGameObject(name string, mesh *metadata.Mesh, transform, bias *math.Transform, colour color.RGBA) *GameObject {
	if transform == nil {
		transform = math.NewTransform()
	}
	if bias == nil {
		bias = math.NewTransformZero()
	}
	return &GameObject{
		ID:        core.NewIdentifier(),
		Name:      name,
		Transform: transform,
		Mesh:      mesh,
		Bias:      bias,
		Colour:    colour,
	}
}

// Update integrates the bias over deltaTime seconds.
func (g *GameObject) Update(deltaTime float64) {
	g.Transform.Translate(g.Bias.Position().MulScalar(deltaTime))
	g.Transform.Rotate(g.Bias.Rotation().MulScalar(deltaTime))
	g.Transform.Grow(g.Bias.Scale().MulScalar(deltaTime))
}

func (g *GameObject) RenderWireframe(fb metadata.Framebuffer, camera *Camera) (metadata.RenderStats, error) {
	return camera.RenderWireframe(fb, g.Transform, g.Mesh, g.Colour)
}

func (g *GameObject) String() string {
	mesh := "<none>"
	if g.Mesh != nil {
		mesh = g.Mesh.Name
	}
	return fmt.Sprintf("GameObject(%s, id=%s, mesh=%s, %s)", g.Name, g.ID, mesh, g.Transform)
}
